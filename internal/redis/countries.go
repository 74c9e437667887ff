package redis

import (
	"context"
	"fmt"
	"strings"
)

const highRiskCountriesKey = "high_risk_countries"

// IsHighRiskCountry проверяет, является ли страна высокорисковой
func (c *Client) IsHighRiskCountry(ctx context.Context, countryCode string) (bool, error) {
	return c.rdb.SIsMember(ctx, highRiskCountriesKey, strings.ToUpper(countryCode)).Result()
}

// InitializeHighRiskCountries заменяет множество высокорисковых стран
func (c *Client) InitializeHighRiskCountries(ctx context.Context, codes []string) error {
	pipe := c.rdb.TxPipeline()
	pipe.Del(ctx, highRiskCountriesKey)
	if len(codes) > 0 {
		members := make([]any, 0, len(codes))
		for _, code := range codes {
			members = append(members, strings.ToUpper(code))
		}
		pipe.SAdd(ctx, highRiskCountriesKey, members...)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to initialize high risk countries: %w", err)
	}
	return nil
}
