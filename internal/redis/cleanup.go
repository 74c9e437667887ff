package redis

import (
	"context"
	"fmt"
)

// ClearScreeningData очищает кеш и счетчики скрининга (множество стран сохраняется)
func (c *Client) ClearScreeningData(ctx context.Context) error {
	patterns := []string{
		"screening:*",
		screeningStatsPrefix + "*",
		riskStatsPrefix + "*",
		sanctionHitsPrefix + "*",
	}

	for _, pattern := range patterns {
		iter := c.rdb.Scan(ctx, 0, pattern, 0).Iterator()
		for iter.Next(ctx) {
			if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
				return fmt.Errorf("failed to delete %s: %w", iter.Val(), err)
			}
		}
		if err := iter.Err(); err != nil {
			return fmt.Errorf("failed to clear pattern %s: %w", pattern, err)
		}
	}

	return nil
}
