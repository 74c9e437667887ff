package sanctions

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"kyc-screening/internal/config"
	"kyc-screening/internal/metrics"
	"kyc-screening/internal/models"

	"github.com/rs/zerolog/log"
)

// Store описывает хранилище, в которое загружаются списки
type Store interface {
	UpsertSanction(ctx context.Context, s *models.Sanction) (int64, error)
	CountSanctions(ctx context.Context) (int, error)
	AddAudit(ctx context.Context, entry *models.AuditEntry) error
}

// ImportResult итог одной загрузки
type ImportResult struct {
	Source   string   `json:"source" yaml:"source"`
	Fetched  int      `json:"fetched" yaml:"fetched"`
	Imported int      `json:"imported" yaml:"imported"`
	Skipped  int      `json:"skipped" yaml:"skipped"`
	Errors   []string `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// Loader загружает санкционные списки в хранилище и периодически их обновляет
type Loader struct {
	store   Store
	rules   *config.Rules
	metrics *metrics.Metrics

	running int32
	mu      sync.Mutex
	stop    context.CancelFunc
}

func NewLoader(store Store, rules *config.Rules, m *metrics.Metrics) *Loader {
	if rules == nil {
		rules = config.DefaultRules()
	}
	return &Loader{
		store:   store,
		rules:   rules,
		metrics: m,
	}
}

// Seed загружает встроенный набор, если таблица санкций пуста
func (l *Loader) Seed(ctx context.Context) (*ImportResult, error) {
	count, err := l.store.CountSanctions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count sanctions: %w", err)
	}
	if count > 0 {
		log.Debug().Int("count", count).Msg("Sanctions table already populated, skipping seed")
		return &ImportResult{Source: "embedded"}, nil
	}
	return l.Import(ctx, SeedSource())
}

// Import загружает все записи источника с upsert по (list_source, reference_id).
// Некорректные записи пропускаются и попадают в Errors.
func (l *Loader) Import(ctx context.Context, src Source) (*ImportResult, error) {
	sanctions, err := src.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Source: src.Name(), Fetched: len(sanctions)}
	perSource := map[string]int{}

	for i := range sanctions {
		s := &sanctions[i]
		if err := l.normalize(s); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("record %d: %v", i+1, err))
			continue
		}

		if _, err := l.store.UpsertSanction(ctx, s); err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("record %d (%s/%s): %v", i+1, s.ListSource, s.ReferenceID, err))
			continue
		}
		result.Imported++
		perSource[s.ListSource]++
	}

	active, err := l.store.CountSanctions(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to count sanctions after import")
	}
	for source, n := range perSource {
		l.metrics.AddImported(source, n, active)
	}

	details, _ := json.Marshal(result)
	if err := l.store.AddAudit(ctx, &models.AuditEntry{
		Action:     models.AuditImportSanctions,
		EntityType: "sanctions",
		EntityID:   src.Name(),
		Details:    string(details),
	}); err != nil {
		log.Warn().Err(err).Msg("Failed to write import audit entry")
	}

	log.Info().
		Str("source", result.Source).
		Int("fetched", result.Fetched).
		Int("imported", result.Imported).
		Int("skipped", result.Skipped).
		Msg("Sanctions imported")
	return result, nil
}

func (l *Loader) normalize(s *models.Sanction) error {
	s.ListSource = strings.ToUpper(strings.TrimSpace(s.ListSource))
	s.ListType = strings.ToUpper(strings.TrimSpace(s.ListType))
	s.RiskLevel = strings.ToUpper(strings.TrimSpace(s.RiskLevel))
	s.ReferenceID = strings.TrimSpace(s.ReferenceID)
	s.FullNameEn = strings.TrimSpace(s.FullNameEn)

	if !l.rules.IsKnownSource(s.ListSource) {
		return fmt.Errorf("unknown list source %q", s.ListSource)
	}
	if s.ReferenceID == "" {
		return fmt.Errorf("reference_id is required")
	}
	if s.FullNameEn == "" {
		return fmt.Errorf("full_name_en is required")
	}

	switch s.ListType {
	case "":
		s.ListType = models.ListTypeIndividual
	case models.ListTypeIndividual, models.ListTypeEntity, models.ListTypeVessel, models.ListTypeAircraft:
	default:
		return fmt.Errorf("unknown list type %q", s.ListType)
	}

	switch s.RiskLevel {
	case "":
		s.RiskLevel = models.RiskHigh
	case models.RiskLow, models.RiskMedium, models.RiskHigh, models.RiskCritical:
	default:
		return fmt.Errorf("unknown risk level %q", s.RiskLevel)
	}
	return nil
}

// Run выполняет первоначальную загрузку и затем обновляет список с интервалом.
// Блокируется до отмены ctx или вызова Stop.
func (l *Loader) Run(ctx context.Context, src Source, interval time.Duration) error {
	if !atomic.CompareAndSwapInt32(&l.running, 0, 1) {
		return fmt.Errorf("sanctions loader: already running")
	}
	defer atomic.StoreInt32(&l.running, 0)

	ctx, cancel := context.WithCancel(ctx)
	l.mu.Lock()
	l.stop = cancel
	l.mu.Unlock()
	defer cancel()

	if _, err := l.Import(ctx, src); err != nil {
		log.Error().Err(err).Str("source", src.Name()).Msg("Initial sanctions import failed")
	}

	if interval <= 0 {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := l.Import(ctx, src); err != nil && ctx.Err() == nil {
				log.Error().Err(err).Str("source", src.Name()).Msg("Sanctions refresh failed")
			}
		}
	}
}

// Stop останавливает Run
func (l *Loader) Stop() error {
	if !l.IsRunning() {
		return fmt.Errorf("sanctions loader: not running")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stop != nil {
		l.stop()
	}
	return nil
}

func (l *Loader) IsRunning() bool {
	return atomic.LoadInt32(&l.running) == 1
}
