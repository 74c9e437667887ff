package report

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"kyc-screening/internal/models"

	"github.com/rs/zerolog/log"
)

// Виды выгрузок
const (
	ExportSanctions  = "sanctions"
	ExportScreenings = "screenings"
	ExportCustomers  = "customers"
	ExportStatistics = "statistics"
)

// exportLimit - максимальное количество строк в выгрузке
const exportLimit = 10000

// utf8BOM позволяет Excel корректно открыть CSV с арабскими именами
const utf8BOM = "\ufeff"

// ErrUnknownExport возвращается для неизвестного вида выгрузки
var ErrUnknownExport = errors.New("unknown export kind")

// ExportKinds возвращает поддерживаемые виды выгрузок
func ExportKinds() []string {
	return []string{ExportSanctions, ExportScreenings, ExportCustomers, ExportStatistics}
}

// ExportSource предоставляет данные для выгрузок
type ExportSource interface {
	ListSanctions(ctx context.Context, source string, limit int) ([]*models.Sanction, error)
	ListScreenings(ctx context.Context, filter models.ScreeningFilter) ([]*models.Screening, error)
	ListCustomers(ctx context.Context, limit int) ([]*models.Customer, error)
	GetStatistics(ctx context.Context) (*models.Statistics, error)
	AddAudit(ctx context.Context, entry *models.AuditEntry) error
}

// Exporter выгружает данные в файлы <kind>_<YYYYMMDD_HHMMSS>.<ext>
type Exporter struct {
	src ExportSource
	dir string
	now func() time.Time
}

func NewExporter(src ExportSource, dir string) *Exporter {
	return &Exporter{src: src, dir: dir, now: time.Now}
}

// Export выгружает данные указанного вида и возвращает путь к файлу
func (e *Exporter) Export(ctx context.Context, kind string) (string, error) {
	kind, err := ParseExportKind(kind)
	if err != nil {
		return "", err
	}
	ext := "csv"
	if kind == ExportStatistics {
		ext = "json"
	}

	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(e.dir, fmt.Sprintf("%s_%s.%s", kind, e.now().UTC().Format("20060102_150405"), ext))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}

	rows, err := e.write(ctx, kind, f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to export %s: %w", kind, err)
	}

	details, _ := json.Marshal(map[string]any{"kind": kind, "rows": rows, "file": filepath.Base(path)})
	if err := e.src.AddAudit(ctx, &models.AuditEntry{
		Action:     models.AuditExport,
		EntityType: kind,
		EntityID:   filepath.Base(path),
		Details:    string(details),
	}); err != nil {
		log.Warn().Err(err).Str("kind", kind).Msg("Failed to record export audit entry")
	}

	log.Info().Str("kind", kind).Int("rows", rows).Str("path", path).Msg("Export completed")
	return path, nil
}

func (e *Exporter) write(ctx context.Context, kind string, w io.Writer) (int, error) {
	switch kind {
	case ExportSanctions:
		sanctions, err := e.src.ListSanctions(ctx, "", exportLimit)
		if err != nil {
			return 0, err
		}
		return len(sanctions), WriteSanctionsCSV(w, sanctions)
	case ExportScreenings:
		screenings, err := e.src.ListScreenings(ctx, models.ScreeningFilter{Limit: exportLimit})
		if err != nil {
			return 0, err
		}
		return len(screenings), WriteScreeningsCSV(w, screenings)
	case ExportCustomers:
		customers, err := e.src.ListCustomers(ctx, exportLimit)
		if err != nil {
			return 0, err
		}
		return len(customers), WriteCustomersCSV(w, customers)
	default:
		stats, err := e.src.GetStatistics(ctx)
		if err != nil {
			return 0, err
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return 1, enc.Encode(stats)
	}
}

func isExportKind(kind string) bool {
	for _, k := range ExportKinds() {
		if k == kind {
			return true
		}
	}
	return false
}

var sanctionsHeader = []string{
	"id", "list_source", "list_type", "reference_id", "full_name_en", "full_name_ar",
	"alias_en", "alias_ar", "nationality_code", "date_of_birth", "place_of_birth",
	"id_type", "id_number", "designation", "reason", "effective_date", "risk_level", "is_active",
}

// WriteSanctionsCSV пишет записи санкционных списков в CSV (UTF-8 с BOM)
func WriteSanctionsCSV(w io.Writer, sanctions []*models.Sanction) error {
	rows := make([][]string, 0, len(sanctions))
	for _, s := range sanctions {
		rows = append(rows, []string{
			strconv.FormatInt(s.ID, 10), s.ListSource, s.ListType, s.ReferenceID, s.FullNameEn, s.FullNameAr,
			s.AliasEn, s.AliasAr, s.NationalityCode, s.DateOfBirth, s.PlaceOfBirth,
			s.IDType, s.IDNumber, s.Designation, s.Reason, s.EffectiveDate, s.RiskLevel,
			strconv.FormatBool(s.IsActive),
		})
	}
	return writeCSV(w, sanctionsHeader, rows)
}

var screeningsHeader = []string{
	"screening_id", "customer_code", "customer_name", "screening_date", "screening_type",
	"total_matches", "exact_matches", "partial_matches", "highest_match_score",
	"risk_score", "risk_level", "screening_result", "performed_by", "reviewed_by", "review_date",
}

// WriteScreeningsCSV пишет историю скрининга в CSV (UTF-8 с BOM)
func WriteScreeningsCSV(w io.Writer, screenings []*models.Screening) error {
	rows := make([][]string, 0, len(screenings))
	for _, sc := range screenings {
		reviewDate := ""
		if sc.ReviewDate != nil {
			reviewDate = sc.ReviewDate.UTC().Format(dateTimeLayout)
		}
		rows = append(rows, []string{
			sc.ScreeningID, sc.CustomerCode, sc.CustomerName, sc.ScreeningDate.UTC().Format(dateTimeLayout), sc.ScreeningType,
			strconv.Itoa(sc.TotalMatches), strconv.Itoa(sc.ExactMatches), strconv.Itoa(sc.PartialMatches),
			strconv.FormatFloat(sc.HighestMatchScore, 'f', 2, 64),
			strconv.Itoa(sc.RiskScore), sc.RiskLevel, sc.Result, sc.PerformedBy, sc.ReviewedBy, reviewDate,
		})
	}
	return writeCSV(w, screeningsHeader, rows)
}

var customersHeader = []string{
	"customer_code", "full_name_en", "full_name_ar", "date_of_birth", "nationality_code",
	"id_type", "id_number", "gender", "occupation", "customer_type", "risk_category",
	"pep_flag", "kyc_status", "created_at",
}

// WriteCustomersCSV пишет клиентов в CSV (UTF-8 с BOM)
func WriteCustomersCSV(w io.Writer, customers []*models.Customer) error {
	rows := make([][]string, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, []string{
			c.CustomerCode, c.FullNameEn, c.FullNameAr, c.DateOfBirth, c.NationalityCode,
			c.IDType, c.IDNumber, c.Gender, c.Occupation, c.CustomerType, c.RiskCategory,
			strconv.FormatBool(c.PEPFlag), c.KYCStatus, c.CreatedAt.UTC().Format(dateTimeLayout),
		})
	}
	return writeCSV(w, customersHeader, rows)
}

func writeCSV(w io.Writer, header []string, rows [][]string) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

// ParseExportKind приводит имя выгрузки к каноническому виду
func ParseExportKind(kind string) (string, error) {
	kind = strings.ToLower(strings.TrimSpace(kind))
	if !isExportKind(kind) {
		return "", fmt.Errorf("%w: %s", ErrUnknownExport, kind)
	}
	return kind, nil
}
