package mocks

import (
	"context"

	"kyc-screening/internal/models"
	"kyc-screening/internal/services"

	"github.com/stretchr/testify/mock"
)

var _ services.ScreeningService = (*MockScreeningService)(nil)

// MockScreeningService является моком для services.ScreeningService интерфейса
type MockScreeningService struct {
	mock.Mock
}

// ScreenCustomer мок для ScreenCustomer
func (m *MockScreeningService) ScreenCustomer(ctx context.Context, req *models.ScreeningRequest) (*models.ScreeningResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ScreeningResponse), args.Error(1)
}

// ScreenBatch мок для ScreenBatch
func (m *MockScreeningService) ScreenBatch(ctx context.Context, req *models.BatchScreeningRequest) (*models.BatchScreeningResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BatchScreeningResponse), args.Error(1)
}

// GetScreening мок для GetScreening
func (m *MockScreeningService) GetScreening(ctx context.Context, screeningID string) (*models.Screening, error) {
	args := m.Called(ctx, screeningID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Screening), args.Error(1)
}

// GetReport мок для GetReport
func (m *MockScreeningService) GetReport(ctx context.Context, screeningID string) (*models.Report, error) {
	args := m.Called(ctx, screeningID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Report), args.Error(1)
}

// ListScreenings мок для ListScreenings
func (m *MockScreeningService) ListScreenings(ctx context.Context, filter models.ScreeningFilter) ([]*models.Screening, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Screening), args.Error(1)
}

// Review мок для Review
func (m *MockScreeningService) Review(ctx context.Context, screeningID string, req *models.ReviewRequest) (*models.Screening, error) {
	args := m.Called(ctx, screeningID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Screening), args.Error(1)
}

// GetCustomer мок для GetCustomer
func (m *MockScreeningService) GetCustomer(ctx context.Context, customerCode string) (*models.Customer, error) {
	args := m.Called(ctx, customerCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

// ListCustomers мок для ListCustomers
func (m *MockScreeningService) ListCustomers(ctx context.Context, limit int) ([]*models.Customer, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Customer), args.Error(1)
}

// ClearHistory мок для ClearHistory
func (m *MockScreeningService) ClearHistory(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// CacheStats мок для CacheStats
func (m *MockScreeningService) CacheStats(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}
