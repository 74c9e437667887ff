package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics хранит метрики Prometheus конвейера скрининга.
// Все методы безопасны для nil-получателя.
type Metrics struct {
	// Результаты скрининга по итогу и типу проверки
	ScreeningsTotal *prometheus.CounterVec

	// Длительность одного скрининга
	ScreeningDuration prometheus.Histogram

	// Совпадения с санкционными списками по типу совпадения
	MatchesTotal *prometheus.CounterVec

	// Загруженные записи санкционных списков по источнику
	SanctionsImported *prometheus.CounterVec

	// Текущее количество активных записей
	SanctionsActive prometheus.Gauge

	// Ошибки побочных действий (кеш, события, отчеты)
	SideEffectErrors *prometheus.CounterVec
}

// New регистрирует метрики в reg (nil - стандартный регистратор)
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		ScreeningsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kyc_screenings_total",
			Help: "Total customer screenings by result and screening type",
		}, []string{"result", "type"}),

		ScreeningDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "kyc_screening_duration_seconds",
			Help:    "Duration of a single customer screening",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),

		MatchesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kyc_sanction_matches_total",
			Help: "Total sanctions matches by match type",
		}, []string{"match_type"}),

		SanctionsImported: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kyc_sanctions_imported_total",
			Help: "Total sanctions list entries imported by list source",
		}, []string{"source"}),

		SanctionsActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "kyc_sanctions_active",
			Help: "Number of active sanctions list entries",
		}),

		SideEffectErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kyc_side_effect_errors_total",
			Help: "Failures of cache, event and report side effects",
		}, []string{"kind"}),
	}
}

// ObserveScreening фиксирует результат и длительность скрининга
func (m *Metrics) ObserveScreening(result, screeningType string, d time.Duration) {
	if m != nil {
		m.ScreeningsTotal.WithLabelValues(result, screeningType).Inc()
		m.ScreeningDuration.Observe(d.Seconds())
	}
}

func (m *Metrics) IncrementMatch(matchType string) {
	if m != nil {
		m.MatchesTotal.WithLabelValues(matchType).Inc()
	}
}

// AddImported учитывает загруженные записи и обновляет число активных
func (m *Metrics) AddImported(source string, imported, active int) {
	if m != nil {
		m.SanctionsImported.WithLabelValues(source).Add(float64(imported))
		m.SanctionsActive.Set(float64(active))
	}
}

func (m *Metrics) IncrementSideEffectError(kind string) {
	if m != nil {
		m.SideEffectErrors.WithLabelValues(kind).Inc()
	}
}
