package sanctions

import (
	"context"
	"fmt"
	"os"

	"kyc-screening/internal/models"
)

type fileSource struct {
	path string
}

// NewFileSource создает источник из локального JSON или CSV файла
func NewFileSource(path string) Source {
	return &fileSource{path: path}
}

func (f *fileSource) Name() string {
	return "file:" + f.path
}

func (f *fileSource) Fetch(context.Context) ([]models.Sanction, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sanctions file: %w", err)
	}
	return Decode(DetectFormat(f.path, data), data)
}
