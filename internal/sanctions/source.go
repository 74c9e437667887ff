// Package sanctions загружает санкционные списки из встроенного набора,
// локальных файлов и веб-источников в хранилище.
package sanctions

import (
	"context"
	"strings"

	"kyc-screening/internal/models"
)

// Source описывает источник записей санкционного списка
type Source interface {
	// Name возвращает человекочитаемое имя источника для логов и аудита
	Name() string

	Fetch(ctx context.Context) ([]models.Sanction, error)
}

// NewSourceFromLocation выбирает веб-источник для http(s) адресов, иначе файловый
func NewSourceFromLocation(location string, opts ...WebOption) Source {
	lower := strings.ToLower(location)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return NewWebSource(location, opts...)
	}
	return NewFileSource(location)
}
