package services

import (
	"context"
	"errors"

	"kyc-screening/internal/models"
	"kyc-screening/internal/sanctions"
)

// ErrInvalidReview возвращается для недопустимого результата ручной проверки
var ErrInvalidReview = errors.New("invalid review result")

// ScreeningService определяет интерфейс для скрининга клиентов
type ScreeningService interface {
	// ScreenCustomer проверяет клиента, сохраняет результат и формирует отчет
	ScreenCustomer(ctx context.Context, req *models.ScreeningRequest) (*models.ScreeningResponse, error)

	// ScreenBatch проверяет пакет клиентов параллельно
	ScreenBatch(ctx context.Context, req *models.BatchScreeningRequest) (*models.BatchScreeningResponse, error)

	// GetScreening возвращает результат скрининга (сначала из кеша)
	GetScreening(ctx context.Context, screeningID string) (*models.Screening, error)

	// GetReport формирует отчет по сохраненному скринингу
	GetReport(ctx context.Context, screeningID string) (*models.Report, error)

	ListScreenings(ctx context.Context, filter models.ScreeningFilter) ([]*models.Screening, error)

	// Review фиксирует решение офицера комплаенса
	Review(ctx context.Context, screeningID string, req *models.ReviewRequest) (*models.Screening, error)

	GetCustomer(ctx context.Context, customerCode string) (*models.Customer, error)
	ListCustomers(ctx context.Context, limit int) ([]*models.Customer, error)

	// ClearHistory очищает историю скрининга и кеш
	ClearHistory(ctx context.Context) error

	// CacheStats возвращает счетчики результатов и уровней риска из Redis
	CacheStats(ctx context.Context) (map[string]int64, error)
}

// SanctionsService определяет интерфейс для работы с санкционными списками
type SanctionsService interface {
	// Search ищет записи по имени; fuzzy ранжирует по нечеткой схожести
	Search(ctx context.Context, query string, limit int, fuzzy bool) ([]*models.SanctionSearchResult, error)

	Get(ctx context.Context, id int64) (*models.Sanction, error)

	// Import загружает список из файла или URL
	Import(ctx context.Context, location string) (*sanctions.ImportResult, error)

	Count(ctx context.Context) (int, error)
}

// ReportService определяет интерфейс для статистики, выгрузок и отчетов
type ReportService interface {
	Statistics(ctx context.Context) (*models.Statistics, error)

	// Summary возвращает сводку статистики в текстовом виде
	Summary(ctx context.Context) (string, error)

	// Export выгружает данные и возвращает путь к файлу
	Export(ctx context.Context, kind string) (string, error)

	// ComplianceReport формирует отчет risk, activity или compliance
	ComplianceReport(ctx context.Context, kind string, days int) (*models.ComplianceReport, error)
}
