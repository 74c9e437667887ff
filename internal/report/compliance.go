package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"kyc-screening/internal/models"
)

// Виды отчетов для комплаенса
const (
	KindRisk       = "risk"
	KindActivity   = "activity"
	KindCompliance = "compliance"
)

// DefaultPeriodDays - период отчета об активности по умолчанию
const DefaultPeriodDays = 30

// ErrUnknownReport возвращается для неизвестного вида отчета
var ErrUnknownReport = errors.New("unknown report kind")

// ComplianceSource предоставляет данные для отчетов комплаенса
type ComplianceSource interface {
	GetStatistics(ctx context.Context) (*models.Statistics, error)
	ListScreenings(ctx context.Context, filter models.ScreeningFilter) ([]*models.Screening, error)
}

// ComplianceReport формирует отчет: оценка рисков, активность скрининга
// за последние days дней или сводка состояния комплаенса
func (g *Generator) ComplianceReport(ctx context.Context, src ComplianceSource, kind string, days int) (*models.ComplianceReport, error) {
	if days <= 0 {
		days = DefaultPeriodDays
	}
	now := g.now().UTC()

	stats, err := src.GetStatistics(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get statistics: %w", err)
	}

	report := &models.ComplianceReport{
		Kind:        strings.ToLower(kind),
		GeneratedAt: now,
		Sections:    map[string]any{},
	}

	switch report.Kind {
	case KindRisk:
		report.Title = "Risk Assessment Summary"
		report.Sections["summary"] = SummaryText(stats)
		report.Sections["risk_distribution"] = stats.RiskDistribution
		report.Sections["total_customers"] = stats.TotalCustomers
		report.Sections["pep_customers"] = stats.PEPCustomers
		report.Sections["elevated_risk_customers"] = stats.RiskDistribution[models.RiskHigh] + stats.RiskDistribution[models.RiskCritical]

	case KindActivity:
		report.Title = "Screening Activity Report"
		report.PeriodDays = days

		screenings, err := src.ListScreenings(ctx, models.ScreeningFilter{
			Since: now.AddDate(0, 0, -days),
			Limit: exportLimit,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list screenings: %w", err)
		}

		byResult := map[string]int{}
		byType := map[string]int{}
		byDay := map[string]int{}
		totalMatches, exactMatches, reviewed := 0, 0, 0
		for _, sc := range screenings {
			byResult[sc.Result]++
			byType[sc.ScreeningType]++
			byDay[sc.ScreeningDate.UTC().Format("2006-01-02")]++
			totalMatches += sc.TotalMatches
			exactMatches += sc.ExactMatches
			if sc.ReviewedBy != "" {
				reviewed++
			}
		}
		report.Sections["total_screenings"] = len(screenings)
		report.Sections["by_result"] = byResult
		report.Sections["by_type"] = byType
		report.Sections["by_day"] = byDay
		report.Sections["total_matches"] = totalMatches
		report.Sections["exact_matches"] = exactMatches
		report.Sections["reviewed"] = reviewed

	case KindCompliance:
		report.Title = "Compliance Status Report"

		pending, err := src.ListScreenings(ctx, models.ScreeningFilter{
			Result: models.ResultReviewRequired,
			Limit:  exportLimit,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list screenings: %w", err)
		}
		pendingIDs := make([]string, 0, len(pending))
		for _, sc := range pending {
			pendingIDs = append(pendingIDs, sc.ScreeningID)
		}

		clearRate := 0.0
		if stats.TotalScreenings > 0 {
			cleared := stats.ScreeningResults[models.ResultClear] + stats.ScreeningResults[models.ResultClearWithWarning]
			clearRate = float64(cleared) * 100 / float64(stats.TotalScreenings)
		}

		report.Sections["total_sanctions"] = stats.TotalSanctions
		report.Sections["sanctions_by_source"] = stats.SanctionsBySource
		report.Sections["total_screenings"] = stats.TotalScreenings
		report.Sections["screening_results"] = stats.ScreeningResults
		report.Sections["rejected"] = stats.ScreeningResults[models.ResultRejected]
		report.Sections["pending_reviews"] = len(pending)
		report.Sections["pending_review_ids"] = pendingIDs
		report.Sections["clear_rate_percent"] = clearRate
		report.Sections["recent_screenings"] = stats.RecentScreenings

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownReport, kind)
	}

	return report, nil
}

// SaveComplianceReport сохраняет отчет в {dir}/{kind}_report_<YYYYMMDD_HHMMSS>.json
func SaveComplianceReport(dir string, report *models.ComplianceReport) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}

	name := fmt.Sprintf("%s_report_%s.json", report.Kind, report.GeneratedAt.UTC().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}
