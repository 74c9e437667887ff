package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"kyc-screening/internal/models"

	redisv9 "github.com/redis/go-redis/v9"
)

const screeningTTL = time.Hour

func screeningKey(screeningID string) string {
	return fmt.Sprintf("screening:%s:result", screeningID)
}

// CacheScreening сохраняет результат скрининга в Redis с TTL 1 час
func (c *Client) CacheScreening(ctx context.Context, s *models.Screening) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal screening: %w", err)
	}

	return c.rdb.Set(ctx, screeningKey(s.ScreeningID), data, screeningTTL).Err()
}

// GetCachedScreening получает результат скрининга из кеша, nil если его нет
func (c *Client) GetCachedScreening(ctx context.Context, screeningID string) (*models.Screening, error) {
	data, err := c.rdb.Get(ctx, screeningKey(screeningID)).Bytes()
	if err == redisv9.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get screening: %w", err)
	}

	var s models.Screening
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal screening: %w", err)
	}
	return &s, nil
}
