package sqlite

import (
	"kyc-screening/internal/storage"
)

var _ storage.Repository = (*SQLiteStorage)(nil)

// NewRepository возвращает хранилище SQLite как storage.Repository
func NewRepository(s *SQLiteStorage) storage.Repository {
	return s
}
