package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"kyc-screening/internal/config"
	"kyc-screening/internal/models"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog/log"
)

type ProducerImpl struct {
	producer sarama.SyncProducer
	topic    string
}

// NewProducerConfig возвращает конфигурацию синхронного продюсера
func NewProducerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	return config
}

func NewProducer(cfg *config.Config) (Producer, error) {
	producer, err := sarama.NewSyncProducer(cfg.Kafka.Brokers, NewProducerConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	log.Info().Strs("brokers", cfg.Kafka.Brokers).Msg("Kafka producer created successfully")
	return NewProducerWithSync(producer, cfg.Kafka.ScreeningTopic), nil
}

// NewProducerWithSync оборачивает готовый sarama.SyncProducer
func NewProducerWithSync(producer sarama.SyncProducer, topic string) *ProducerImpl {
	return &ProducerImpl{
		producer: producer,
		topic:    topic,
	}
}

// SendScreeningEvent публикует событие, ключ сообщения - customer_code
func (p *ProducerImpl) SendScreeningEvent(event *models.KafkaScreeningEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic:     p.topic,
		Key:       sarama.StringEncoder(event.Data.CustomerCode),
		Value:     sarama.ByteEncoder(data),
		Timestamp: time.Now(),
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	log.Debug().
		Str("topic", p.topic).
		Int32("partition", partition).
		Int64("offset", offset).
		Str("screening_id", event.Data.ScreeningID).
		Msg("Screening event sent")
	return nil
}

func (p *ProducerImpl) Close() error {
	return p.producer.Close()
}
