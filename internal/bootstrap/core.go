// Package bootstrap собирает зависимости приложения: хранилище, правила,
// загрузчик санкционных списков и сервисы скрининга.
package bootstrap

import (
	"context"
	"fmt"

	"kyc-screening/internal/config"
	"kyc-screening/internal/kafka"
	"kyc-screening/internal/metrics"
	"kyc-screening/internal/redis"
	"kyc-screening/internal/report"
	"kyc-screening/internal/sanctions"
	"kyc-screening/internal/services"
	"kyc-screening/internal/storage"
	"kyc-screening/internal/storage/sqlite"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

// CoreOptions задает опциональные зависимости ядра
type CoreOptions struct {
	Redis      redis.ClientInterface
	Producer   kafka.Producer
	Registerer prometheus.Registerer
	Service    string

	// SkipSeed отключает загрузку встроенного санкционного набора в пустую БД
	SkipSeed bool

	WebOptions []sanctions.WebOption
}

// Core содержит хранилище и сервисы, общие для CLI и сетевого сервиса
type Core struct {
	Storage *sqlite.SQLiteStorage
	Repo    storage.Repository
	Rules   *config.Rules
	Metrics *metrics.Metrics
	Loader  *sanctions.Loader

	ScreeningService services.ScreeningService
	SanctionsService services.SanctionsService
	ReportService    services.ReportService
}

// LoadRules читает файл правил из конфигурации или возвращает правила по умолчанию
func LoadRules(cfg *config.Config) (*config.Rules, error) {
	rules, err := config.LoadRules(cfg.RulesFile)
	if err != nil {
		return nil, err
	}
	if cfg.RulesFile != "" {
		log.Info().Str("path", cfg.RulesFile).Msg("Screening rules loaded")
	}
	return rules, nil
}

// NewCore открывает SQLite, при необходимости загружает встроенный список и создает сервисы
func NewCore(ctx context.Context, cfg *config.Config, rules *config.Rules, opts CoreOptions) (*Core, error) {
	if rules == nil {
		rules = config.DefaultRules()
	}

	storageConn, err := sqlite.NewConnection(cfg)
	if err != nil {
		return nil, err
	}
	repo := sqlite.NewRepository(storageConn)

	var m *metrics.Metrics
	if opts.Registerer != nil {
		m = metrics.New(opts.Registerer)
	}

	loader := sanctions.NewLoader(repo, rules, m)
	if !opts.SkipSeed {
		if _, err := loader.Seed(ctx); err != nil {
			storageConn.Close()
			return nil, fmt.Errorf("failed to seed sanctions: %w", err)
		}
	}

	generator := report.NewGenerator(rules)

	return &Core{
		Storage: storageConn,
		Repo:    repo,
		Rules:   rules,
		Metrics: m,
		Loader:  loader,
		ScreeningService: services.NewScreeningService(services.ScreeningDeps{
			Repo:       repo,
			Rules:      rules,
			Generator:  generator,
			Producer:   opts.Producer,
			Redis:      opts.Redis,
			Metrics:    m,
			ReportsDir: cfg.Output.ReportsDir,
			Service:    opts.Service,
		}),
		SanctionsService: services.NewSanctionsService(repo, loader, rules, opts.WebOptions...),
		ReportService:    services.NewReportService(repo, generator, cfg.Output.ExportDir),
	}, nil
}

// SanctionsSource возвращает внешний источник из конфигурации (URL приоритетнее файла) или nil
func SanctionsSource(cfg *config.Config, opts ...sanctions.WebOption) sanctions.Source {
	switch {
	case cfg.Sanctions.URL != "":
		return sanctions.NewWebSource(cfg.Sanctions.URL, opts...)
	case cfg.Sanctions.File != "":
		return sanctions.NewFileSource(cfg.Sanctions.File)
	}
	return nil
}

// Close закрывает хранилище
func (c *Core) Close() error {
	if c.Storage != nil {
		return c.Storage.Close()
	}
	return nil
}
