// Package report формирует отчеты о скрининге, сводки статистики,
// отчеты для комплаенса и выгрузки данных.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"kyc-screening/internal/config"
	"kyc-screening/internal/matching"
	"kyc-screening/internal/models"
	"kyc-screening/internal/risk"

	"github.com/rs/zerolog/log"
)

const (
	ReportType    = "KYC_SCREENING_REPORT"
	ReportVersion = "1.0"

	// maxListedExactMatches - сколько точных совпадений перечислять в рекомендациях
	maxListedExactMatches = 3

	dateTimeLayout = "2006-01-02 15:04:05"

	// idVisibleChars - сколько символов номера документа остается в отчете
	idVisibleChars = 4
)

// Generator строит отчеты с учетом брендинга из правил
type Generator struct {
	rules *config.Rules
	now   func() time.Time
}

func NewGenerator(rules *config.Rules) *Generator {
	if rules == nil {
		rules = config.DefaultRules()
	}
	return &Generator{rules: rules, now: time.Now}
}

// Build формирует отчет о скрининге клиента
func (g *Generator) Build(sc *models.Screening, customer *models.Customer) *models.Report {
	now := g.now().UTC()

	report := &models.Report{
		ReportID:       "SCR-" + now.Format("20060102-150405"),
		GenerationDate: now.Format(dateTimeLayout),
		ReportType:     ReportType,
		Version:        ReportVersion,
		Company:        g.rules.Report.CompanyName,
		ScreeningSummary: models.ScreeningSummary{
			ScreeningID:    sc.ScreeningID,
			ScreeningDate:  sc.ScreeningDate,
			ScreeningType:  sc.ScreeningType,
			TotalMatches:   len(sc.Matches),
			ExactMatches:   countMatches(sc.Matches, models.MatchExact),
			PartialMatches: countMatches(sc.Matches, models.MatchPartial),
			RiskScore:      sc.RiskScore,
			RiskLevel:      sc.RiskLevel,
			Result:         sc.Result,
		},
		MatchesDetails: sc.Matches,
		RiskAssessment: models.ReportRiskSection{
			RiskFactors: sc.RiskFactors,
			RiskDetails: sc.RiskDetails,
		},
		Recommendations: Recommendations(sc.Matches, sc.RiskLevel),
		Disclaimer:      g.rules.Report.Disclaimer,
		Footer:          g.rules.Report.Footer,
	}
	if report.MatchesDetails == nil {
		report.MatchesDetails = []models.SanctionMatch{}
	}
	if report.RiskAssessment.RiskFactors == nil {
		report.RiskAssessment.RiskFactors = []string{}
	}

	if customer != nil {
		report.CustomerInformation = models.CustomerInformation{
			CustomerCode: customer.CustomerCode,
			FullName:     customer.FullNameEn,
			Nationality:  customer.NationalityCode,
			DateOfBirth:  customer.DateOfBirth,
			IDNumber:     matching.MaskSensitive(customer.IDNumber, idVisibleChars),
			Occupation:   customer.Occupation,
		}
	} else {
		report.CustomerInformation = models.CustomerInformation{
			CustomerCode: sc.CustomerCode,
			FullName:     sc.CustomerName,
		}
	}

	return report
}

// Recommendations формирует рекомендации по совпадениям и уровню риска
func Recommendations(matches []models.SanctionMatch, riskLevel string) []string {
	var recs []string

	if len(matches) == 0 {
		recs = append(recs, "No sanctions matches found - Proceed with standard onboarding")
	} else {
		recs = append(recs, "Sanctions matches detected - Immediate review required")

		listed := 0
		for _, m := range matches {
			if m.MatchType != models.MatchExact {
				continue
			}
			if listed == 0 {
				recs = append(recs, "REJECT customer - Exact matches with sanctioned entities")
			}
			if listed < maxListedExactMatches {
				recs = append(recs, fmt.Sprintf("   - %s (%s)", m.SanctionName, m.SanctionSource))
			}
			listed++
		}

		if countMatches(matches, models.MatchPartial) > 0 {
			recs = append(recs, "Enhanced Due Diligence required - Partial matches found")
		}
	}

	switch {
	case risk.IsElevated(riskLevel):
		recs = append(recs,
			"Request additional verification documents",
			"Schedule monthly monitoring for first 6 months",
			"Escalate to senior compliance officer for review",
		)
	case riskLevel == models.RiskMedium:
		recs = append(recs,
			"Conduct additional verification checks",
			"Schedule quarterly review",
		)
	default:
		recs = append(recs, "Standard monitoring procedures applicable")
	}

	return append(recs,
		"Ensure all customer documents are properly archived",
		"Schedule next review based on risk level",
	)
}

// SaveJSON сохраняет отчет в {dir}/{screening_id}_report.json и возвращает путь
func SaveJSON(dir string, report *models.Report) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}

	path := filepath.Join(dir, report.ScreeningSummary.ScreeningID+"_report.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	log.Info().Str("path", path).Str("report_id", report.ReportID).Msg("Screening report saved")
	return path, nil
}

// SummaryText возвращает сводку статистики в читаемом виде
func SummaryText(stats *models.Statistics) string {
	rule := strings.Repeat("=", 50)

	var b strings.Builder
	b.WriteString("KYC SCREENING STATISTICS SUMMARY\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", stats.GeneratedAt.UTC().Format(dateTimeLayout))

	fmt.Fprintf(&b, "Total Customers Screened: %d\n", stats.TotalCustomers)
	fmt.Fprintf(&b, "Sanctions Records: %d\n", stats.TotalSanctions)
	fmt.Fprintf(&b, "Total Screenings: %d\n", stats.TotalScreenings)
	fmt.Fprintf(&b, "PEP Customers: %d\n", stats.PEPCustomers)
	fmt.Fprintf(&b, "Screenings (last 30 days): %d\n", stats.RecentScreenings)

	writeCounts(&b, "Screening Results", stats.ScreeningResults)
	writeCounts(&b, "Risk Level Distribution", stats.RiskDistribution)
	writeCounts(&b, "Sanctions by Source", stats.SanctionsBySource)

	b.WriteString("\n" + rule + "\n")
	return b.String()
}

func writeCounts(b *strings.Builder, title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s:\n", title)
	for _, key := range sortedKeys(counts) {
		fmt.Fprintf(b, "  %s: %d\n", key, counts[key])
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func countMatches(matches []models.SanctionMatch, matchType string) int {
	n := 0
	for _, m := range matches {
		if m.MatchType == matchType {
			n++
		}
	}
	return n
}
