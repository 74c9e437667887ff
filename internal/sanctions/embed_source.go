package sanctions

import (
	"context"
	_ "embed"

	"kyc-screening/internal/models"
)

//go:embed seed/sanctions.json
var seedSanctions []byte

type embedSource struct {
	sanctions []models.Sanction
}

// NewEmbedSource создает источник из JSON данных в памяти
func NewEmbedSource(data []byte) (Source, error) {
	sanctions, err := DecodeJSON(data)
	if err != nil {
		return nil, err
	}
	return &embedSource{sanctions: sanctions}, nil
}

// SeedSource возвращает встроенный демонстрационный набор записей
func SeedSource() Source {
	src, err := NewEmbedSource(seedSanctions)
	if err != nil {
		panic(err)
	}
	return src
}

func (e *embedSource) Name() string {
	return "embedded"
}

func (e *embedSource) Fetch(context.Context) ([]models.Sanction, error) {
	out := make([]models.Sanction, len(e.sanctions))
	copy(out, e.sanctions)
	return out, nil
}
