package storage

import (
	"context"
	"errors"
	"time"

	"kyc-screening/internal/models"
)

var (
	// ErrDuplicateCustomer возвращается при повторном customer_code или id_number
	ErrDuplicateCustomer = errors.New("customer already exists")

	// ErrNotFound возвращается при обновлении несуществующей записи
	ErrNotFound = errors.New("record not found")
)

// CustomerRepository определяет интерфейс для работы с клиентами
type CustomerRepository interface {
	// SaveCustomer сохраняет клиента вместе с адресами и контактами
	SaveCustomer(ctx context.Context, c *models.Customer, performedBy string) (int64, error)

	// GetCustomer получает клиента по customer_code
	GetCustomer(ctx context.Context, customerCode string) (*models.Customer, error)

	// ListCustomers получает последних клиентов
	ListCustomers(ctx context.Context, limit int) ([]*models.Customer, error)

	// UpdateCustomerStatus обновляет статус KYC и категорию риска
	UpdateCustomerStatus(ctx context.Context, customerCode, kycStatus, riskCategory string) error
}

// SanctionRepository определяет интерфейс для работы с санкционными списками
type SanctionRepository interface {
	// UpsertSanction добавляет или обновляет запись по (list_source, reference_id)
	UpsertSanction(ctx context.Context, s *models.Sanction) (int64, error)

	// GetSanction получает запись по id
	GetSanction(ctx context.Context, id int64) (*models.Sanction, error)

	// SearchSanctions ищет подстроку в именах и псевдонимах
	SearchSanctions(ctx context.Context, query string, limit int) ([]*models.Sanction, error)

	// FindCandidates ищет активные записи, содержащие любой из терминов
	FindCandidates(ctx context.Context, terms []string, limit int) ([]*models.Sanction, error)

	// ListSanctions получает записи (опционально одного источника)
	ListSanctions(ctx context.Context, source string, limit int) ([]*models.Sanction, error)

	// CountSanctions возвращает количество активных записей
	CountSanctions(ctx context.Context) (int, error)
}

// ScreeningRepository определяет интерфейс для работы с результатами скрининга
type ScreeningRepository interface {
	// SaveScreening сохраняет результат скрининга и совпадения в одной транзакции
	SaveScreening(ctx context.Context, s *models.Screening) error

	// GetScreening получает результат скрининга по screening_id
	GetScreening(ctx context.Context, screeningID string) (*models.Screening, error)

	// ListScreenings получает историю скрининга по фильтру
	ListScreenings(ctx context.Context, filter models.ScreeningFilter) ([]*models.Screening, error)

	// ReviewScreening фиксирует решение офицера комплаенса
	ReviewScreening(ctx context.Context, screeningID string, review *models.ReviewRequest, reviewedAt time.Time) error

	// ClearScreenings удаляет историю скрининга
	ClearScreenings(ctx context.Context) error
}

// AuditRepository определяет интерфейс журнала аудита
type AuditRepository interface {
	AddAudit(ctx context.Context, entry *models.AuditEntry) error
	ListAudit(ctx context.Context, limit int) ([]*models.AuditEntry, error)
}

// Repository объединяет все хранилища системы
type Repository interface {
	CustomerRepository
	SanctionRepository
	ScreeningRepository
	AuditRepository

	// GetStatistics возвращает агрегированную статистику
	GetStatistics(ctx context.Context) (*models.Statistics, error)
}
