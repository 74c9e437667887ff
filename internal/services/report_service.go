package services

import (
	"context"

	"kyc-screening/internal/logger"
	"kyc-screening/internal/models"
	"kyc-screening/internal/report"
	"kyc-screening/internal/storage"
)

// ReportServiceImpl реализует интерфейс ReportService
type ReportServiceImpl struct {
	repo      storage.Repository
	generator *report.Generator
	exporter  *report.Exporter
}

// NewReportService создает сервис отчетов; выгрузки пишутся в exportDir
func NewReportService(repo storage.Repository, generator *report.Generator, exportDir string) ReportService {
	if generator == nil {
		generator = report.NewGenerator(nil)
	}
	return &ReportServiceImpl{
		repo:      repo,
		generator: generator,
		exporter:  report.NewExporter(repo, exportDir),
	}
}

func (s *ReportServiceImpl) Statistics(ctx context.Context) (*models.Statistics, error) {
	return s.repo.GetStatistics(ctx)
}

func (s *ReportServiceImpl) Summary(ctx context.Context) (string, error) {
	stats, err := s.repo.GetStatistics(ctx)
	if err != nil {
		return "", err
	}
	return report.SummaryText(stats), nil
}

func (s *ReportServiceImpl) Export(ctx context.Context, kind string) (string, error) {
	path, err := s.exporter.Export(ctx, kind)
	if err != nil {
		return "", err
	}

	logger.LogEvent(logger.EventExportCompleted, defaultServiceName, "report", map[string]any{
		"kind": kind,
		"path": path,
	})
	return path, nil
}

func (s *ReportServiceImpl) ComplianceReport(ctx context.Context, kind string, days int) (*models.ComplianceReport, error) {
	r, err := s.generator.ComplianceReport(ctx, s.repo, kind, days)
	if err != nil {
		return nil, err
	}

	logger.LogEvent(logger.EventReportGenerated, defaultServiceName, "report", map[string]any{
		"kind": r.Kind,
	})
	return r, nil
}
