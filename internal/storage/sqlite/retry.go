package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	writeRetries    = 5
	writeRetryDelay = 50 * time.Millisecond
)

// isRetryableError проверяет, можно ли повторить операцию при данной ошибке
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	// SQLITE_BUSY (5) - база данных заблокирована
	// SQLITE_LOCKED (6) - таблица заблокирована
	return strings.Contains(errStr, "database is locked") ||
		strings.Contains(errStr, "SQLITE_BUSY") ||
		strings.Contains(errStr, "SQLITE_LOCKED")
}

// retryOperation выполняет операцию с повторными попытками при ошибках блокировки.
// Задержка растет линейно с номером попытки.
func retryOperation(ctx context.Context, operation func() error) error {
	var lastErr error
	for i := 0; i < writeRetries; i++ {
		err := operation()
		if err == nil {
			return nil
		}
		lastErr = err

		if !isRetryableError(err) {
			return err
		}

		if i < writeRetries-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(writeRetryDelay * time.Duration(i+1)):
			}
		}
	}

	return fmt.Errorf("operation failed after %d retries: %w", writeRetries, lastErr)
}

// isUniqueViolation распознает нарушение UNIQUE ограничения
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
