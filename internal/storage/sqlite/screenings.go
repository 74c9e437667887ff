package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"kyc-screening/internal/models"
	"kyc-screening/internal/storage"
)

const screeningColumns = `
	id, screening_id, customer_code, customer_name, screening_date, screening_type,
	total_matches, exact_matches, partial_matches, highest_match_score, risk_score, risk_level,
	risk_factors, risk_details, screening_result, performed_by, reviewed_by, review_date, review_notes,
	customer_snapshot`

// SaveScreening сохраняет результат скрининга, совпадения и запись аудита в одной транзакции
func (s *SQLiteStorage) SaveScreening(ctx context.Context, sc *models.Screening) error {
	factors, err := json.Marshal(sc.RiskFactors)
	if err != nil {
		return fmt.Errorf("failed to marshal risk factors: %w", err)
	}
	details, err := json.Marshal(sc.RiskDetails)
	if err != nil {
		return fmt.Errorf("failed to marshal risk details: %w", err)
	}
	var snapshot sql.NullString
	if sc.Customer != nil {
		data, err := json.Marshal(sc.Customer)
		if err != nil {
			return fmt.Errorf("failed to marshal customer snapshot: %w", err)
		}
		snapshot = sql.NullString{String: string(data), Valid: true}
	}

	return retryOperation(ctx, func() error {
		tx, err := s.DB.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer tx.Rollback()

		res, err := tx.ExecContext(ctx, `
			INSERT INTO screening_results (
				screening_id, customer_code, customer_name, screening_date, screening_type,
				total_matches, exact_matches, partial_matches, highest_match_score, risk_score,
				risk_level, risk_factors, risk_details, screening_result, performed_by, customer_snapshot
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			sc.ScreeningID, sc.CustomerCode, nullString(sc.CustomerName), sc.ScreeningDate.UTC(), sc.ScreeningType,
			sc.TotalMatches, sc.ExactMatches, sc.PartialMatches, sc.HighestMatchScore, sc.RiskScore,
			sc.RiskLevel, string(factors), string(details), sc.Result, nullString(sc.PerformedBy), snapshot,
		)
		if err != nil {
			return fmt.Errorf("failed to save screening: %w", err)
		}
		if id, err := res.LastInsertId(); err == nil {
			sc.ID = id
		}

		for i := range sc.Matches {
			m := &sc.Matches[i]
			fields := strings.Join(m.MatchedFields, ",")
			res, err := tx.ExecContext(ctx, `
				INSERT INTO sanction_matches (
					screening_id, sanction_id, sanction_name, sanction_source, match_type, match_score,
					name_match_score, dob_match, nationality_match, id_match, matched_fields,
					risk_level, recommended_action
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				sc.ScreeningID, m.SanctionID, nullString(m.SanctionName), nullString(m.SanctionSource),
				m.MatchType, m.MatchScore, m.NameMatchScore, boolToInt(m.DOBMatch),
				boolToInt(m.NationalityMatch), boolToInt(m.IDMatch), nullString(fields),
				nullString(m.RiskLevel), nullString(m.RecommendedAction),
			)
			if err != nil {
				return fmt.Errorf("failed to save sanction match: %w", err)
			}
			if id, err := res.LastInsertId(); err == nil {
				m.ID = id
			}
		}

		auditDetails, _ := json.Marshal(map[string]any{
			"customer_code":    sc.CustomerCode,
			"screening_result": sc.Result,
			"risk_score":       sc.RiskScore,
			"total_matches":    sc.TotalMatches,
		})
		if err := insertAudit(ctx, tx, &models.AuditEntry{
			Action:      models.AuditScreening,
			EntityType:  "screening",
			EntityID:    sc.ScreeningID,
			Details:     string(auditDetails),
			PerformedBy: sc.PerformedBy,
		}); err != nil {
			return err
		}

		return tx.Commit()
	})
}

// GetScreening получает результат скрининга вместе с совпадениями
func (s *SQLiteStorage) GetScreening(ctx context.Context, screeningID string) (*models.Screening, error) {
	query := `SELECT ` + screeningColumns + ` FROM screening_results WHERE screening_id = ?`

	sc, err := scanScreening(s.DB.QueryRowContext(ctx, query, screeningID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := s.loadMatches(ctx, sc); err != nil {
		return nil, err
	}
	return sc, nil
}

// ListScreenings получает историю скрининга, новые записи первыми
func (s *SQLiteStorage) ListScreenings(ctx context.Context, filter models.ScreeningFilter) ([]*models.Screening, error) {
	var conditions []string
	var args []any

	if filter.CustomerCode != "" {
		conditions = append(conditions, "customer_code = ?")
		args = append(args, filter.CustomerCode)
	}
	if filter.Result != "" {
		conditions = append(conditions, "screening_result = ?")
		args = append(args, filter.Result)
	}
	if !filter.Since.IsZero() {
		conditions = append(conditions, "screening_date >= ?")
		args = append(args, filter.Since.UTC())
	}

	query := `SELECT ` + screeningColumns + ` FROM screening_results`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY screening_date DESC, id DESC LIMIT ?"
	args = append(args, limitOrDefault(filter.Limit))

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	screenings := []*models.Screening{}
	for rows.Next() {
		sc, err := scanScreening(rows)
		if err != nil {
			return nil, err
		}
		screenings = append(screenings, sc)
	}
	return screenings, rows.Err()
}

// ReviewScreening фиксирует решение офицера комплаенса и пишет запись аудита
func (s *SQLiteStorage) ReviewScreening(ctx context.Context, screeningID string, review *models.ReviewRequest, reviewedAt time.Time) error {
	return retryOperation(ctx, func() error {
		tx, err := s.DB.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer tx.Rollback()

		res, err := tx.ExecContext(ctx, `
			UPDATE screening_results
			SET screening_result = ?, reviewed_by = ?, review_date = ?, review_notes = ?
			WHERE screening_id = ?`,
			review.Result, review.ReviewedBy, reviewedAt.UTC(), nullString(review.Notes), screeningID,
		)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return storage.ErrNotFound
		}

		details, _ := json.Marshal(map[string]any{
			"screening_result": review.Result,
			"review_notes":     review.Notes,
		})
		if err := insertAudit(ctx, tx, &models.AuditEntry{
			Action:      models.AuditReview,
			EntityType:  "screening",
			EntityID:    screeningID,
			Details:     string(details),
			PerformedBy: review.ReviewedBy,
			CreatedAt:   reviewedAt.UTC(),
		}); err != nil {
			return err
		}

		return tx.Commit()
	})
}

// ClearScreenings удаляет всю историю скрининга (совпадения удаляются каскадно)
func (s *SQLiteStorage) ClearScreenings(ctx context.Context) error {
	return retryOperation(ctx, func() error {
		tx, err := s.DB.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer tx.Rollback()

		if _, err := tx.ExecContext(ctx, `DELETE FROM sanction_matches`); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM screening_results`); err != nil {
			return err
		}
		if err := insertAudit(ctx, tx, &models.AuditEntry{
			Action:     models.AuditClear,
			EntityType: "screening",
		}); err != nil {
			return err
		}
		return tx.Commit()
	})
}

func (s *SQLiteStorage) loadMatches(ctx context.Context, sc *models.Screening) error {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, sanction_id, sanction_name, sanction_source, match_type, match_score,
			name_match_score, dob_match, nationality_match, id_match, matched_fields,
			risk_level, recommended_action
		FROM sanction_matches
		WHERE screening_id = ?
		ORDER BY match_score DESC, id`, sc.ScreeningID)
	if err != nil {
		return err
	}
	defer rows.Close()

	sc.Matches = []models.SanctionMatch{}
	for rows.Next() {
		var m models.SanctionMatch
		var name, source, fields, riskLevel, action sql.NullString
		var nameScore sql.NullFloat64
		err := rows.Scan(
			&m.ID, &m.SanctionID, &name, &source, &m.MatchType, &m.MatchScore,
			&nameScore, &m.DOBMatch, &m.NationalityMatch, &m.IDMatch, &fields,
			&riskLevel, &action,
		)
		if err != nil {
			return err
		}
		m.SanctionName = name.String
		m.SanctionSource = source.String
		m.NameMatchScore = nameScore.Float64
		m.RiskLevel = riskLevel.String
		m.RecommendedAction = action.String
		if fields.String != "" {
			m.MatchedFields = strings.Split(fields.String, ",")
		}
		sc.Matches = append(sc.Matches, m)
	}
	return rows.Err()
}

func scanScreening(row rowScanner) (*models.Screening, error) {
	var sc models.Screening
	var name, factors, details, performedBy, reviewedBy, notes, snapshot sql.NullString
	var reviewDate sql.NullTime

	err := row.Scan(
		&sc.ID, &sc.ScreeningID, &sc.CustomerCode, &name, &sc.ScreeningDate, &sc.ScreeningType,
		&sc.TotalMatches, &sc.ExactMatches, &sc.PartialMatches, &sc.HighestMatchScore, &sc.RiskScore, &sc.RiskLevel,
		&factors, &details, &sc.Result, &performedBy, &reviewedBy, &reviewDate, &notes,
		&snapshot,
	)
	if err != nil {
		return nil, err
	}

	sc.CustomerName = name.String
	sc.PerformedBy = performedBy.String
	sc.ReviewedBy = reviewedBy.String
	sc.ReviewNotes = notes.String
	if reviewDate.Valid {
		t := reviewDate.Time.UTC()
		sc.ReviewDate = &t
	}
	if factors.String != "" {
		if err := json.Unmarshal([]byte(factors.String), &sc.RiskFactors); err != nil {
			return nil, fmt.Errorf("failed to decode risk factors: %w", err)
		}
	}
	if details.String != "" && details.String != "null" {
		if err := json.Unmarshal([]byte(details.String), &sc.RiskDetails); err != nil {
			return nil, fmt.Errorf("failed to decode risk details: %w", err)
		}
	}
	if snapshot.String != "" {
		var customer models.Customer
		if err := json.Unmarshal([]byte(snapshot.String), &customer); err != nil {
			return nil, fmt.Errorf("failed to decode customer snapshot: %w", err)
		}
		sc.Customer = &customer
	}
	sc.ScreeningDate = sc.ScreeningDate.UTC()
	return &sc, nil
}
