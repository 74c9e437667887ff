package mocks

import (
	"context"

	"kyc-screening/internal/models"
	"kyc-screening/internal/sanctions"
	"kyc-screening/internal/services"

	"github.com/stretchr/testify/mock"
)

var _ services.SanctionsService = (*MockSanctionsService)(nil)

// MockSanctionsService является моком для services.SanctionsService интерфейса
type MockSanctionsService struct {
	mock.Mock
}

// Search мок для Search
func (m *MockSanctionsService) Search(ctx context.Context, query string, limit int, fuzzy bool) ([]*models.SanctionSearchResult, error) {
	args := m.Called(ctx, query, limit, fuzzy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.SanctionSearchResult), args.Error(1)
}

// Get мок для Get
func (m *MockSanctionsService) Get(ctx context.Context, id int64) (*models.Sanction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Sanction), args.Error(1)
}

// Import мок для Import
func (m *MockSanctionsService) Import(ctx context.Context, location string) (*sanctions.ImportResult, error) {
	args := m.Called(ctx, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sanctions.ImportResult), args.Error(1)
}

// Count мок для Count
func (m *MockSanctionsService) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
