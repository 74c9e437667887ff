package sqlite

import (
	"context"
	"database/sql"
	"time"

	"kyc-screening/internal/models"
)

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertAudit(ctx context.Context, db execer, entry *models.AuditEntry) error {
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO audit_log (action, entity_type, entity_id, details, performed_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		entry.Action, entry.EntityType, nullString(entry.EntityID), nullString(entry.Details),
		nullString(entry.PerformedBy), createdAt,
	)
	return err
}

// AddAudit добавляет запись в журнал аудита
func (s *SQLiteStorage) AddAudit(ctx context.Context, entry *models.AuditEntry) error {
	return retryOperation(ctx, func() error {
		return insertAudit(ctx, s.DB, entry)
	})
}

// ListAudit получает последние записи журнала аудита
func (s *SQLiteStorage) ListAudit(ctx context.Context, limit int) ([]*models.AuditEntry, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, action, entity_type, entity_id, details, performed_by, created_at
		FROM audit_log
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limitOrDefault(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.AuditEntry
	for rows.Next() {
		var e models.AuditEntry
		var entityID, details, performedBy sql.NullString
		if err := rows.Scan(&e.ID, &e.Action, &e.EntityType, &entityID, &details, &performedBy, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.EntityID, e.Details, e.PerformedBy = entityID.String, details.String, performedBy.String
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
