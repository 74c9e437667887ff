package redis

import (
	"context"

	"kyc-screening/internal/models"
)

// ClientInterface определяет интерфейс для работы с Redis
// Это позволяет легко создавать моки для тестирования
type ClientInterface interface {
	// CacheScreening сохраняет результат скрининга в кеш
	CacheScreening(ctx context.Context, s *models.Screening) error

	// GetCachedScreening получает результат скрининга из кеша
	GetCachedScreening(ctx context.Context, screeningID string) (*models.Screening, error)

	// IsHighRiskCountry проверяет, является ли страна высокорисковой
	IsHighRiskCountry(ctx context.Context, countryCode string) (bool, error)

	// InitializeHighRiskCountries заполняет множество высокорисковых стран
	InitializeHighRiskCountries(ctx context.Context, codes []string) error

	IncrementScreeningStats(ctx context.Context, result string) error
	IncrementRiskStats(ctx context.Context, riskLevel string) error
	IncrementSanctionHit(ctx context.Context, sanctionID int64) error
	GetScreeningStats(ctx context.Context) (map[string]int64, error)

	// ClearScreeningData очищает кеш и счетчики скрининга
	ClearScreeningData(ctx context.Context) error

	// Close закрывает соединение с Redis
	Close() error
}

// Убеждаемся, что Client реализует ClientInterface
var _ ClientInterface = (*Client)(nil)
