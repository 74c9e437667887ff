package mocks

import (
	"context"
	"time"

	"kyc-screening/internal/models"
	"kyc-screening/internal/storage"

	"github.com/stretchr/testify/mock"
)

var _ storage.Repository = (*MockRepository)(nil)

// MockRepository является моком для storage.Repository интерфейса
type MockRepository struct {
	mock.Mock
}

// SaveCustomer мок для SaveCustomer
func (m *MockRepository) SaveCustomer(ctx context.Context, c *models.Customer, performedBy string) (int64, error) {
	args := m.Called(ctx, c, performedBy)
	return args.Get(0).(int64), args.Error(1)
}

// GetCustomer мок для GetCustomer
func (m *MockRepository) GetCustomer(ctx context.Context, customerCode string) (*models.Customer, error) {
	args := m.Called(ctx, customerCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

// ListCustomers мок для ListCustomers
func (m *MockRepository) ListCustomers(ctx context.Context, limit int) ([]*models.Customer, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Customer), args.Error(1)
}

// UpdateCustomerStatus мок для UpdateCustomerStatus
func (m *MockRepository) UpdateCustomerStatus(ctx context.Context, customerCode, kycStatus, riskCategory string) error {
	args := m.Called(ctx, customerCode, kycStatus, riskCategory)
	return args.Error(0)
}

// UpsertSanction мок для UpsertSanction
func (m *MockRepository) UpsertSanction(ctx context.Context, s *models.Sanction) (int64, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(int64), args.Error(1)
}

// GetSanction мок для GetSanction
func (m *MockRepository) GetSanction(ctx context.Context, id int64) (*models.Sanction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Sanction), args.Error(1)
}

// SearchSanctions мок для SearchSanctions
func (m *MockRepository) SearchSanctions(ctx context.Context, query string, limit int) ([]*models.Sanction, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Sanction), args.Error(1)
}

// FindCandidates мок для FindCandidates
func (m *MockRepository) FindCandidates(ctx context.Context, terms []string, limit int) ([]*models.Sanction, error) {
	args := m.Called(ctx, terms, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Sanction), args.Error(1)
}

// ListSanctions мок для ListSanctions
func (m *MockRepository) ListSanctions(ctx context.Context, source string, limit int) ([]*models.Sanction, error) {
	args := m.Called(ctx, source, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Sanction), args.Error(1)
}

// CountSanctions мок для CountSanctions
func (m *MockRepository) CountSanctions(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// SaveScreening мок для SaveScreening
func (m *MockRepository) SaveScreening(ctx context.Context, s *models.Screening) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

// GetScreening мок для GetScreening
func (m *MockRepository) GetScreening(ctx context.Context, screeningID string) (*models.Screening, error) {
	args := m.Called(ctx, screeningID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Screening), args.Error(1)
}

// ListScreenings мок для ListScreenings
func (m *MockRepository) ListScreenings(ctx context.Context, filter models.ScreeningFilter) ([]*models.Screening, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Screening), args.Error(1)
}

// ReviewScreening мок для ReviewScreening
func (m *MockRepository) ReviewScreening(ctx context.Context, screeningID string, review *models.ReviewRequest, reviewedAt time.Time) error {
	args := m.Called(ctx, screeningID, review, reviewedAt)
	return args.Error(0)
}

// ClearScreenings мок для ClearScreenings
func (m *MockRepository) ClearScreenings(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// AddAudit мок для AddAudit
func (m *MockRepository) AddAudit(ctx context.Context, entry *models.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// ListAudit мок для ListAudit
func (m *MockRepository) ListAudit(ctx context.Context, limit int) ([]*models.AuditEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.AuditEntry), args.Error(1)
}

// GetStatistics мок для GetStatistics
func (m *MockRepository) GetStatistics(ctx context.Context) (*models.Statistics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Statistics), args.Error(1)
}
