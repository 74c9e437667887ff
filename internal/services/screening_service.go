package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"kyc-screening/internal/config"
	"kyc-screening/internal/kafka"
	"kyc-screening/internal/logger"
	"kyc-screening/internal/metrics"
	"kyc-screening/internal/models"
	"kyc-screening/internal/redis"
	"kyc-screening/internal/report"
	"kyc-screening/internal/risk"
	"kyc-screening/internal/screening"
	"kyc-screening/internal/storage"
	"kyc-screening/internal/validation"
)

const (
	defaultServiceName = "screening-service"
	eventTypeCompleted = "screening_completed"

	customerCodeSuffixLen = 12
)

// ScreeningDeps содержит зависимости сервиса скрининга.
// Producer, Redis и Metrics опциональны.
type ScreeningDeps struct {
	Repo       storage.Repository
	Rules      *config.Rules
	Screener   *screening.Screener
	Generator  *report.Generator
	Producer   kafka.Producer
	Redis      redis.ClientInterface
	Metrics    *metrics.Metrics
	ReportsDir string
	Service    string
}

// ScreeningServiceImpl реализует интерфейс ScreeningService
type ScreeningServiceImpl struct {
	repo        storage.Repository
	rules       *config.Rules
	screener    *screening.Screener
	generator   *report.Generator
	producer    kafka.Producer
	redisClient redis.ClientInterface
	metrics     *metrics.Metrics
	reportsDir  string
	service     string
	now         func() time.Time
}

// NewScreeningService создает новый сервис скрининга
func NewScreeningService(d ScreeningDeps) ScreeningService {
	if d.Rules == nil {
		d.Rules = config.DefaultRules()
	}
	if d.Screener == nil {
		var countries risk.CountryChecker
		if d.Redis != nil {
			countries = d.Redis
		}
		d.Screener = screening.NewScreener(d.Repo, d.Rules, risk.NewCalculator(d.Rules, countries))
	}
	if d.Generator == nil {
		d.Generator = report.NewGenerator(d.Rules)
	}
	if d.Service == "" {
		d.Service = defaultServiceName
	}
	return &ScreeningServiceImpl{
		repo:        d.Repo,
		rules:       d.Rules,
		screener:    d.Screener,
		generator:   d.Generator,
		producer:    d.Producer,
		redisClient: d.Redis,
		metrics:     d.Metrics,
		reportsDir:  d.ReportsDir,
		service:     d.Service,
		now:         time.Now,
	}
}

// ScreenCustomer проверяет клиента: валидация, скрининг, сохранение, кеш,
// метрики, событие в Kafka и отчет
func (s *ScreeningServiceImpl) ScreenCustomer(ctx context.Context, req *models.ScreeningRequest) (*models.ScreeningResponse, error) {
	return s.screen(ctx, req, true)
}

func (s *ScreeningServiceImpl) screen(ctx context.Context, req *models.ScreeningRequest, withReport bool) (*models.ScreeningResponse, error) {
	start := s.now()
	customer := req.Customer
	if customer.CustomerCode == "" {
		customer.CustomerCode = NewCustomerCode(start)
	}
	screeningType, err := validation.NormalizeScreeningType(req.ScreeningType)
	if err != nil {
		return nil, err
	}

	result := validation.ValidateCustomer(&customer, s.rules, start)
	if err := result.Err(); err != nil {
		logger.LogEvent(logger.EventValidationFailed, s.service, "validation", map[string]any{
			"customer_code": customer.CustomerCode,
			"errors":        result.Errors,
		})
		return nil, err
	}

	logger.LogEvent(logger.EventScreeningRequested, s.service, "screening", map[string]any{
		"customer_code":  customer.CustomerCode,
		"screening_type": screeningType,
	})

	sc, err := s.screener.Screen(ctx, &customer, screeningType)
	if err != nil {
		return nil, err
	}
	sc.PerformedBy = req.PerformedBy
	sc.Warnings = result.Warnings
	sc.Customer = &customer

	if err := s.repo.SaveScreening(ctx, sc); err != nil {
		return nil, err
	}
	logger.LogEvent(logger.EventScreeningSaved, s.service, "sqlite", map[string]any{
		"screening_id": sc.ScreeningID,
		"matches":      sc.TotalMatches,
	})

	resp := &models.ScreeningResponse{Screening: sc}
	if !req.SkipCustomerSave {
		resp.Saved = s.persistCustomer(ctx, &customer, sc)
	}

	s.publish(ctx, sc, s.now().Sub(start))

	if withReport {
		resp.Report = s.generator.Build(sc, &customer)
		if s.reportsDir != "" && (req.SaveReport || s.rules.Screening.AutoGenerateReports) {
			path, err := report.SaveJSON(s.reportsDir, resp.Report)
			if err != nil {
				log.Warn().Err(err).Str("screening_id", sc.ScreeningID).Msg("Failed to save screening report")
				s.metrics.IncrementSideEffectError("report")
			} else {
				resp.ReportPath = path
				logger.LogEvent(logger.EventReportGenerated, s.service, "report", map[string]any{
					"screening_id": sc.ScreeningID,
					"path":         path,
				})
			}
		}
	}

	logger.LogEvent(logger.EventScreeningCompleted, s.service, "screening", map[string]any{
		"screening_id":     sc.ScreeningID,
		"customer_code":    sc.CustomerCode,
		"screening_result": sc.Result,
		"risk_score":       sc.RiskScore,
	})
	return resp, nil
}

// persistCustomer сохраняет принятого клиента или обновляет статус уже известного.
// Возвращает true, если клиент добавлен.
func (s *ScreeningServiceImpl) persistCustomer(ctx context.Context, customer *models.Customer, sc *models.Screening) bool {
	kycStatus := kycStatusFor(sc.Result)
	customer.RiskCategory = sc.RiskLevel
	customer.KYCStatus = kycStatus
	if pep, _ := sc.RiskDetails["pep_detected"].(bool); pep {
		customer.PEPFlag = true
	}

	if !isAccepted(sc.Result) {
		s.updateCustomerStatus(ctx, customer.CustomerCode, kycStatus, sc.RiskLevel)
		return false
	}

	_, err := s.repo.SaveCustomer(ctx, customer, sc.PerformedBy)
	switch {
	case err == nil:
		logger.LogEvent(logger.EventCustomerSaved, s.service, "sqlite", map[string]any{
			"customer_code": customer.CustomerCode,
			"kyc_status":    kycStatus,
		})
		return true
	case errors.Is(err, storage.ErrDuplicateCustomer):
		sc.Warnings = append(sc.Warnings, "Customer already exists in database")
		s.updateCustomerStatus(ctx, customer.CustomerCode, kycStatus, sc.RiskLevel)
	default:
		log.Warn().Err(err).Str("customer_code", customer.CustomerCode).Msg("Failed to save customer")
		sc.Warnings = append(sc.Warnings, "Customer could not be saved")
	}
	return false
}

func (s *ScreeningServiceImpl) updateCustomerStatus(ctx context.Context, customerCode, kycStatus, riskLevel string) {
	err := s.repo.UpdateCustomerStatus(ctx, customerCode, kycStatus, riskLevel)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		log.Warn().Err(err).Str("customer_code", customerCode).Msg("Failed to update customer status")
	}
}

// publish выполняет побочные действия после сохранения: кеш и счетчики в Redis,
// метрики и событие в Kafka. Ошибки только логируются.
func (s *ScreeningServiceImpl) publish(ctx context.Context, sc *models.Screening, elapsed time.Duration) {
	s.metrics.ObserveScreening(sc.Result, sc.ScreeningType, elapsed)
	for _, m := range sc.Matches {
		s.metrics.IncrementMatch(m.MatchType)
	}

	if s.redisClient != nil {
		if err := s.redisClient.CacheScreening(ctx, sc); err != nil {
			s.sideEffectFailed("redis", sc.ScreeningID, err)
		} else {
			logger.LogEvent(logger.EventRedisCached, s.service, "redis", map[string]any{
				"screening_id": sc.ScreeningID,
			})
		}
		if err := s.redisClient.IncrementScreeningStats(ctx, sc.Result); err != nil {
			s.sideEffectFailed("redis", sc.ScreeningID, err)
		}
		if err := s.redisClient.IncrementRiskStats(ctx, sc.RiskLevel); err != nil {
			s.sideEffectFailed("redis", sc.ScreeningID, err)
		}
		for _, m := range sc.Matches {
			if err := s.redisClient.IncrementSanctionHit(ctx, m.SanctionID); err != nil {
				s.sideEffectFailed("redis", sc.ScreeningID, err)
			}
		}
	}

	if s.producer != nil {
		event := NewScreeningEvent(sc, s.now())
		if err := s.producer.SendScreeningEvent(event); err != nil {
			s.sideEffectFailed("kafka", sc.ScreeningID, err)
			return
		}
		logger.LogEvent(logger.EventKafkaSent, s.service, "kafka", map[string]any{
			"screening_id": sc.ScreeningID,
			"event_id":     event.EventID,
		})
	}
}

func (s *ScreeningServiceImpl) sideEffectFailed(kind, screeningID string, err error) {
	log.Warn().Err(err).Str("component", kind).Str("screening_id", screeningID).Msg("Screening side effect failed")
	s.metrics.IncrementSideEffectError(kind)
}

// ScreenBatch проверяет клиентов пакета параллельно; отчеты для пакета не формируются
func (s *ScreeningServiceImpl) ScreenBatch(ctx context.Context, req *models.BatchScreeningRequest) (*models.BatchScreeningResponse, error) {
	if len(req.Customers) == 0 {
		return nil, fmt.Errorf("%w: batch contains no customers", validation.ErrValidation)
	}
	requestID := req.RequestID
	if requestID == "" {
		requestID = "batch_" + uuid.New().String()
	}
	screeningType, err := validation.NormalizeScreeningType(req.ScreeningType)
	if err != nil {
		return nil, err
	}
	if screeningType == "" {
		screeningType = models.ScreeningTypeBatch
	}

	results := screening.RunBatch(ctx, req.Customers, s.rules.Screening.BatchWorkers, func(ctx context.Context, c *models.Customer) (*models.Screening, error) {
		resp, err := s.screen(ctx, &models.ScreeningRequest{
			Customer:      *c,
			ScreeningType: screeningType,
			PerformedBy:   req.PerformedBy,
		}, false)
		if err != nil {
			return nil, err
		}
		return resp.Screening, nil
	})
	for i := range results {
		if results[i].Screening != nil {
			results[i].CustomerCode = results[i].Screening.CustomerCode
		}
	}

	summary := screening.Summarize(requestID, results)
	logger.LogEvent(logger.EventBatchCompleted, s.service, "screening", map[string]any{
		"request_id": requestID,
		"total":      summary.Total,
		"succeeded":  summary.Succeeded,
		"failed":     summary.Failed,
	})
	log.Info().
		Str("request_id", requestID).
		Int("total", summary.Total).
		Int("failed", summary.Failed).
		Msg("Batch screening completed")
	return summary, nil
}

// GetScreening возвращает результат скрининга, сначала из Redis
func (s *ScreeningServiceImpl) GetScreening(ctx context.Context, screeningID string) (*models.Screening, error) {
	if s.redisClient != nil {
		cached, err := s.redisClient.GetCachedScreening(ctx, screeningID)
		if err == nil && cached != nil {
			return cached, nil
		}
		if err != nil {
			log.Debug().Err(err).Str("screening_id", screeningID).Msg("Screening cache lookup failed")
		}
	}

	sc, err := s.repo.GetScreening(ctx, screeningID)
	if err != nil {
		return nil, err
	}
	if sc == nil {
		return nil, nil
	}

	if s.redisClient != nil {
		if err := s.redisClient.CacheScreening(ctx, sc); err != nil {
			log.Debug().Err(err).Str("screening_id", screeningID).Msg("Failed to cache screening")
		}
	}
	return sc, nil
}

// GetReport формирует отчет по сохраненному скринингу. Данные клиента берутся
// из снимка на момент скрининга, для старых записей из таблицы клиентов.
func (s *ScreeningServiceImpl) GetReport(ctx context.Context, screeningID string) (*models.Report, error) {
	sc, err := s.repo.GetScreening(ctx, screeningID)
	if err != nil || sc == nil {
		return nil, err
	}

	customer := sc.Customer
	if customer == nil {
		customer, err = s.repo.GetCustomer(ctx, sc.CustomerCode)
		if err != nil {
			return nil, err
		}
	}
	return s.generator.Build(sc, customer), nil
}

func (s *ScreeningServiceImpl) ListScreenings(ctx context.Context, filter models.ScreeningFilter) ([]*models.Screening, error) {
	return s.repo.ListScreenings(ctx, filter)
}

// Review фиксирует решение офицера, обновляет статус клиента и кеш
func (s *ScreeningServiceImpl) Review(ctx context.Context, screeningID string, req *models.ReviewRequest) (*models.Screening, error) {
	req.Result = strings.ToUpper(strings.TrimSpace(req.Result))
	if !isReviewResult(req.Result) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidReview, req.Result)
	}
	if strings.TrimSpace(req.ReviewedBy) == "" {
		return nil, fmt.Errorf("%w: reviewer is required", ErrInvalidReview)
	}

	if err := s.repo.ReviewScreening(ctx, screeningID, req, s.now()); err != nil {
		return nil, err
	}

	sc, err := s.repo.GetScreening(ctx, screeningID)
	if err != nil {
		return nil, err
	}
	if sc == nil {
		return nil, storage.ErrNotFound
	}

	s.updateCustomerStatus(ctx, sc.CustomerCode, kycStatusFor(sc.Result), sc.RiskLevel)
	if s.redisClient != nil {
		if err := s.redisClient.CacheScreening(ctx, sc); err != nil {
			s.sideEffectFailed("redis", screeningID, err)
		}
	}

	logger.LogEvent(logger.EventScreeningReviewed, s.service, "sqlite", map[string]any{
		"screening_id":     screeningID,
		"screening_result": sc.Result,
		"reviewed_by":      req.ReviewedBy,
	})
	return sc, nil
}

func (s *ScreeningServiceImpl) GetCustomer(ctx context.Context, customerCode string) (*models.Customer, error) {
	return s.repo.GetCustomer(ctx, customerCode)
}

func (s *ScreeningServiceImpl) ListCustomers(ctx context.Context, limit int) ([]*models.Customer, error) {
	return s.repo.ListCustomers(ctx, limit)
}

// ClearHistory удаляет историю скрининга вместе с кешем и счетчиками Redis
func (s *ScreeningServiceImpl) ClearHistory(ctx context.Context) error {
	if err := s.repo.ClearScreenings(ctx); err != nil {
		return fmt.Errorf("failed to clear screenings: %w", err)
	}
	if s.redisClient != nil {
		if err := s.redisClient.ClearScreeningData(ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to clear Redis screening data")
		}
	}
	log.Info().Msg("Screening history cleared")
	return nil
}

// CacheStats возвращает счетчики скрининга из Redis; без Redis пустой набор
func (s *ScreeningServiceImpl) CacheStats(ctx context.Context) (map[string]int64, error) {
	if s.redisClient == nil {
		return map[string]int64{}, nil
	}
	return s.redisClient.GetScreeningStats(ctx)
}

// NewCustomerCode генерирует код клиента CUST<YYYYMMDDHHMMSS><12 hex>
func NewCustomerCode(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:customerCodeSuffixLen]
	return "CUST" + now.UTC().Format("20060102150405") + suffix
}

// NewScreeningEvent формирует событие о завершенном скрининге
func NewScreeningEvent(sc *models.Screening, now time.Time) *models.KafkaScreeningEvent {
	return &models.KafkaScreeningEvent{
		EventID:   "evt_" + uuid.New().String(),
		EventType: eventTypeCompleted,
		Timestamp: now.UTC(),
		Data: models.KafkaScreeningData{
			ScreeningID:       sc.ScreeningID,
			CustomerCode:      sc.CustomerCode,
			ScreeningType:     sc.ScreeningType,
			Result:            sc.Result,
			RiskScore:         sc.RiskScore,
			RiskLevel:         sc.RiskLevel,
			TotalMatches:      sc.TotalMatches,
			ExactMatches:      sc.ExactMatches,
			HighestMatchScore: sc.HighestMatchScore,
		},
	}
}

func isAccepted(result string) bool {
	return result == models.ResultClear || result == models.ResultClearWithWarning
}

func isReviewResult(result string) bool {
	switch result {
	case models.ResultClear, models.ResultClearWithWarning, models.ResultReviewRequired, models.ResultRejected:
		return true
	}
	return false
}

// kycStatusFor сопоставляет итог скрининга статусу KYC клиента
func kycStatusFor(result string) string {
	switch result {
	case models.ResultClear:
		return models.KYCStatusCompleted
	case models.ResultClearWithWarning:
		return models.KYCStatusInProgress
	case models.ResultRejected:
		return models.KYCStatusRejected
	default:
		return models.KYCStatusOnHold
	}
}
