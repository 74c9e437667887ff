package screening_service

import (
	"context"

	"kyc-screening/internal/kafka"
	"kyc-screening/internal/logger"
	"kyc-screening/internal/models"
	"kyc-screening/internal/services"

	"github.com/rs/zerolog/log"
)

// newBatchHandler обрабатывает запрос на пакетный скрининг из Kafka.
// Ошибки отдельных клиентов остаются в результатах пакета.
func newBatchHandler(svc services.ScreeningService) kafka.BatchHandler {
	return func(ctx context.Context, req *models.BatchScreeningRequest) error {
		logger.LogEvent(logger.EventKafkaReceived, serviceName, "kafka", map[string]any{
			"request_id": req.RequestID,
			"customers":  len(req.Customers),
		})

		if len(req.Customers) == 0 {
			log.Warn().Str("request_id", req.RequestID).Msg("Skipping batch request without customers")
			return nil
		}

		resp, err := svc.ScreenBatch(ctx, req)
		if err != nil {
			log.Error().Err(err).Str("request_id", req.RequestID).Msg("Batch screening failed")
			return err
		}

		for _, item := range resp.Results {
			if item.Error != "" {
				log.Warn().
					Str("request_id", resp.RequestID).
					Str("customer_code", item.CustomerCode).
					Str("error", item.Error).
					Msg("Customer screening failed in batch")
			}
		}
		return nil
	}
}
