package kafka

import (
	"context"

	"kyc-screening/internal/models"
)

// Producer определяет интерфейс для отправки событий скрининга в Kafka
type Producer interface {
	SendScreeningEvent(event *models.KafkaScreeningEvent) error

	Close() error
}

// Consumer определяет интерфейс для чтения запросов на пакетный скрининг
type Consumer interface {
	// Start блокируется до отмены ctx
	Start(ctx context.Context) error

	Close() error
}

// BatchHandler обрабатывает один запрос на пакетный скрининг
type BatchHandler func(ctx context.Context, req *models.BatchScreeningRequest) error
