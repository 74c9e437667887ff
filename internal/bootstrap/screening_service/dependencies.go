package screening_service

import (
	"context"

	"kyc-screening/internal/bootstrap"
	"kyc-screening/internal/config"
	"kyc-screening/internal/kafka"
	"kyc-screening/internal/redis"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
)

const serviceName = "screening-service"

// Dependencies содержит все зависимости для screening service
type Dependencies struct {
	*bootstrap.Core

	Registry      *prometheus.Registry
	RedisClient   *redis.Client
	KafkaProducer kafka.Producer
	KafkaConsumer kafka.Consumer
}

// InitializeDependencies инициализирует зависимости. SQLite обязателен,
// Redis и Kafka подключаются, если доступны.
func InitializeDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	rules, err := bootstrap.LoadRules(cfg)
	if err != nil {
		return nil, err
	}

	deps := &Dependencies{Registry: prometheus.NewRegistry()}
	deps.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	opts := bootstrap.CoreOptions{
		Registerer: deps.Registry,
		Service:    serviceName,
	}

	// Инициализация Redis
	log.Info().Msg("Connecting to Redis...")
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, continuing without cache")
	} else {
		log.Info().Msg("Redis connection established")
		if err := redisClient.InitializeHighRiskCountries(ctx, rules.HighRiskCountries); err != nil {
			log.Warn().Err(err).Msg("Failed to initialize high risk countries")
		}
		deps.RedisClient = redisClient
		opts.Redis = redisClient
	}

	// Инициализация Kafka Producer
	log.Info().Msg("Connecting to Kafka...")
	producer, err := kafka.NewProducer(cfg)
	if err != nil {
		log.Warn().Err(err).Msg("Kafka producer unavailable, screening events will not be published")
	} else {
		deps.KafkaProducer = producer
		opts.Producer = producer
	}

	core, err := bootstrap.NewCore(ctx, cfg, rules, opts)
	if err != nil {
		deps.Close()
		return nil, err
	}
	deps.Core = core

	// Запросы на пакетный скрининг из Kafka
	consumer, err := kafka.NewConsumer(cfg, newBatchHandler(core.ScreeningService))
	if err != nil {
		log.Warn().Err(err).Msg("Kafka consumer unavailable, batch requests will only be accepted over HTTP")
	} else {
		deps.KafkaConsumer = consumer
	}

	return deps, nil
}

// Close закрывает все соединения
func (d *Dependencies) Close() error {
	if d.KafkaConsumer != nil {
		if err := d.KafkaConsumer.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Kafka consumer")
		}
	}
	if d.KafkaProducer != nil {
		if err := d.KafkaProducer.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Kafka producer")
		}
	}
	if d.RedisClient != nil {
		if err := d.RedisClient.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis client")
		}
	}
	if d.Core != nil {
		return d.Core.Close()
	}
	return nil
}
