package mocks

import (
	"context"

	"kyc-screening/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockClientInterface является моком для redis.ClientInterface интерфейса
type MockClientInterface struct {
	mock.Mock
}

// CacheScreening мок для CacheScreening
func (m *MockClientInterface) CacheScreening(ctx context.Context, s *models.Screening) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

// GetCachedScreening мок для GetCachedScreening
func (m *MockClientInterface) GetCachedScreening(ctx context.Context, screeningID string) (*models.Screening, error) {
	args := m.Called(ctx, screeningID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Screening), args.Error(1)
}

// IsHighRiskCountry мок для IsHighRiskCountry
func (m *MockClientInterface) IsHighRiskCountry(ctx context.Context, countryCode string) (bool, error) {
	args := m.Called(ctx, countryCode)
	return args.Bool(0), args.Error(1)
}

// InitializeHighRiskCountries мок для InitializeHighRiskCountries
func (m *MockClientInterface) InitializeHighRiskCountries(ctx context.Context, codes []string) error {
	args := m.Called(ctx, codes)
	return args.Error(0)
}

// IncrementScreeningStats мок для IncrementScreeningStats
func (m *MockClientInterface) IncrementScreeningStats(ctx context.Context, result string) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

// IncrementRiskStats мок для IncrementRiskStats
func (m *MockClientInterface) IncrementRiskStats(ctx context.Context, riskLevel string) error {
	args := m.Called(ctx, riskLevel)
	return args.Error(0)
}

// IncrementSanctionHit мок для IncrementSanctionHit
func (m *MockClientInterface) IncrementSanctionHit(ctx context.Context, sanctionID int64) error {
	args := m.Called(ctx, sanctionID)
	return args.Error(0)
}

// GetScreeningStats мок для GetScreeningStats
func (m *MockClientInterface) GetScreeningStats(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

// ClearScreeningData мок для ClearScreeningData
func (m *MockClientInterface) ClearScreeningData(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Close мок для Close
func (m *MockClientInterface) Close() error {
	args := m.Called()
	return args.Error(0)
}
