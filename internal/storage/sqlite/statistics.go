package sqlite

import (
	"context"
	"time"

	"kyc-screening/internal/models"
)

// recentWindow определяет период для подсчета последних проверок
const recentWindow = 30 * 24 * time.Hour

// GetStatistics собирает агрегированную статистику по клиентам, спискам и скринингу
func (s *SQLiteStorage) GetStatistics(ctx context.Context) (*models.Statistics, error) {
	now := time.Now().UTC()
	stats := &models.Statistics{
		SanctionsBySource: map[string]int{},
		RiskDistribution:  map[string]int{},
		ScreeningResults:  map[string]int{},
		GeneratedAt:       now,
	}

	counters := []struct {
		query string
		args  []any
		dest  *int
	}{
		{`SELECT COUNT(*) FROM customers`, nil, &stats.TotalCustomers},
		{`SELECT COUNT(*) FROM sanctions WHERE is_active = 1`, nil, &stats.TotalSanctions},
		{`SELECT COUNT(*) FROM screening_results`, nil, &stats.TotalScreenings},
		{`SELECT COUNT(*) FROM customers WHERE pep_flag = 1`, nil, &stats.PEPCustomers},
		{`SELECT COUNT(*) FROM screening_results WHERE screening_date >= ?`, []any{now.Add(-recentWindow)}, &stats.RecentScreenings},
	}
	for _, c := range counters {
		if err := s.DB.QueryRowContext(ctx, c.query, c.args...).Scan(c.dest); err != nil {
			return nil, err
		}
	}

	groups := []struct {
		query string
		dest  map[string]int
	}{
		{`SELECT list_source, COUNT(*) FROM sanctions WHERE is_active = 1 GROUP BY list_source`, stats.SanctionsBySource},
		{`SELECT risk_category, COUNT(*) FROM customers GROUP BY risk_category`, stats.RiskDistribution},
		{`SELECT screening_result, COUNT(*) FROM screening_results GROUP BY screening_result`, stats.ScreeningResults},
	}
	for _, g := range groups {
		if err := s.countGrouped(ctx, g.query, g.dest); err != nil {
			return nil, err
		}
	}

	return stats, nil
}

func (s *SQLiteStorage) countGrouped(ctx context.Context, query string, dest map[string]int) error {
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return err
		}
		dest[key] = count
	}
	return rows.Err()
}
