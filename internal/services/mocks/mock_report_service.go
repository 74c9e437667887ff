package mocks

import (
	"context"

	"kyc-screening/internal/models"
	"kyc-screening/internal/services"

	"github.com/stretchr/testify/mock"
)

var _ services.ReportService = (*MockReportService)(nil)

// MockReportService является моком для services.ReportService интерфейса
type MockReportService struct {
	mock.Mock
}

// Statistics мок для Statistics
func (m *MockReportService) Statistics(ctx context.Context) (*models.Statistics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Statistics), args.Error(1)
}

// Summary мок для Summary
func (m *MockReportService) Summary(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// Export мок для Export
func (m *MockReportService) Export(ctx context.Context, kind string) (string, error) {
	args := m.Called(ctx, kind)
	return args.String(0), args.Error(1)
}

// ComplianceReport мок для ComplianceReport
func (m *MockReportService) ComplianceReport(ctx context.Context, kind string, days int) (*models.ComplianceReport, error) {
	args := m.Called(ctx, kind, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ComplianceReport), args.Error(1)
}
