package screening

import (
	"context"

	"kyc-screening/internal/models"

	"golang.org/x/sync/errgroup"
)

// ScreenFunc проверяет одного клиента пакета
type ScreenFunc func(ctx context.Context, customer *models.Customer) (*models.Screening, error)

// RunBatch выполняет fn для каждого клиента не более чем в workers горутинах.
// Ошибка одного клиента не прерывает пакет; порядок результатов совпадает со входом.
func RunBatch(ctx context.Context, customers []models.Customer, workers int, fn ScreenFunc) []models.BatchItemResult {
	if workers <= 0 {
		workers = 1
	}

	results := make([]models.BatchItemResult, len(customers))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range customers {
		i := i
		customer := &customers[i]
		results[i].CustomerCode = customer.CustomerCode

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i].Error = err.Error()
				return nil
			}
			sc, err := fn(gctx, customer)
			if err != nil {
				results[i].Error = err.Error()
				return nil
			}
			results[i].Screening = sc
			return nil
		})
	}

	_ = g.Wait()
	return results
}

// ScreenBatch выполняет Screen для пакета клиентов без сохранения результатов
func (s *Screener) ScreenBatch(ctx context.Context, customers []models.Customer, screeningType string, workers int) []models.BatchItemResult {
	if workers <= 0 {
		workers = s.rules.Screening.BatchWorkers
	}
	return RunBatch(ctx, customers, workers, func(ctx context.Context, c *models.Customer) (*models.Screening, error) {
		return s.Screen(ctx, c, screeningType)
	})
}

// Summarize подсчитывает успешные и неуспешные элементы пакета
func Summarize(requestID string, results []models.BatchItemResult) *models.BatchScreeningResponse {
	resp := &models.BatchScreeningResponse{
		RequestID: requestID,
		Total:     len(results),
		Results:   results,
	}
	for _, r := range results {
		if r.Error != "" {
			resp.Failed++
		} else {
			resp.Succeeded++
		}
	}
	return resp
}
