package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"kyc-screening/internal/config"
	"kyc-screening/internal/models"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog/log"
)

type ConsumerImpl struct {
	consumer sarama.ConsumerGroup
	topic    string
	handler  BatchHandler
}

func NewConsumer(cfg *config.Config, handler BatchHandler) (Consumer, error) {
	config := sarama.NewConfig()
	config.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	config.Consumer.Offsets.Initial = sarama.OffsetOldest
	config.Consumer.Return.Errors = true
	config.Version = sarama.V2_8_0_0

	consumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.Kafka.ConsumerGroupID, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka consumer: %w", err)
	}

	log.Info().
		Str("group", cfg.Kafka.ConsumerGroupID).
		Str("topic", cfg.Kafka.RequestTopic).
		Msg("Kafka consumer created successfully")
	return &ConsumerImpl{
		consumer: consumer,
		topic:    cfg.Kafka.RequestTopic,
		handler:  handler,
	}, nil
}

func (c *ConsumerImpl) Start(ctx context.Context) error {
	topics := []string{c.topic}

	consumerHandler := &consumerGroupHandler{
		handler: c.handler,
	}

	wg := &sync.WaitGroup{}
	wg.Add(1)

	go func() {
		defer wg.Done()
		for {
			if err := c.consumer.Consume(ctx, topics, consumerHandler); err != nil {
				log.Error().Err(err).Msg("Error from consumer")
				return
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	go func() {
		for {
			select {
			case err, ok := <-c.consumer.Errors():
				if !ok {
					return
				}
				log.Warn().Err(err).Msg("Consumer error")
			case <-ctx.Done():
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Consumer context cancelled, shutting down...")
	wg.Wait()
	return c.consumer.Close()
}

func (c *ConsumerImpl) Close() error {
	return c.consumer.Close()
}

type consumerGroupHandler struct {
	handler BatchHandler
}

func (h *consumerGroupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *consumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok || message == nil {
				return nil
			}
			h.handleMessage(session.Context(), message)
			session.MarkMessage(message, "")

		case <-session.Context().Done():
			return nil
		}
	}
}

// handleMessage декодирует запрос и передает его обработчику.
// Битые сообщения и ошибки обработки только логируются, смещение все равно фиксируется.
func (h *consumerGroupHandler) handleMessage(ctx context.Context, message *sarama.ConsumerMessage) {
	var req models.BatchScreeningRequest
	if err := json.Unmarshal(message.Value, &req); err != nil {
		log.Warn().Err(err).Int64("offset", message.Offset).Msg("Error unmarshaling batch request")
		return
	}
	if req.RequestID == "" {
		req.RequestID = string(message.Key)
	}

	if err := h.handler(ctx, &req); err != nil {
		log.Error().Err(err).Str("request_id", req.RequestID).Msg("Error handling batch request")
	}
}
