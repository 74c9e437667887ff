package redis

import (
	"context"
	"fmt"
	"strings"
)

const (
	screeningStatsPrefix = "screening_stats:"
	riskStatsPrefix      = "risk_stats:"
	sanctionHitsPrefix   = "sanctions_hits:"
)

// IncrementScreeningStats увеличивает счетчик результатов скрининга
func (c *Client) IncrementScreeningStats(ctx context.Context, result string) error {
	return c.rdb.Incr(ctx, screeningStatsPrefix+result).Err()
}

// IncrementRiskStats увеличивает счетчик статистики рисков
func (c *Client) IncrementRiskStats(ctx context.Context, riskLevel string) error {
	return c.rdb.Incr(ctx, riskStatsPrefix+riskLevel).Err()
}

// IncrementSanctionHit увеличивает счетчик совпадений с записью санкционного списка
func (c *Client) IncrementSanctionHit(ctx context.Context, sanctionID int64) error {
	return c.rdb.Incr(ctx, fmt.Sprintf("%s%d", sanctionHitsPrefix, sanctionID)).Err()
}

// GetScreeningStats возвращает счетчики в виде "screening_stats.CLEAR" -> 3
func (c *Client) GetScreeningStats(ctx context.Context) (map[string]int64, error) {
	stats := make(map[string]int64)
	for _, prefix := range []string{screeningStatsPrefix, riskStatsPrefix} {
		iter := c.rdb.Scan(ctx, 0, prefix+"*", 0).Iterator()
		for iter.Next(ctx) {
			key := iter.Val()
			value, err := c.rdb.Get(ctx, key).Int64()
			if err != nil {
				return nil, fmt.Errorf("failed to read counter %s: %w", key, err)
			}
			stats[strings.TrimSuffix(prefix, ":")+"."+strings.TrimPrefix(key, prefix)] = value
		}
		if err := iter.Err(); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", prefix, err)
		}
	}
	return stats, nil
}
