package sanctions

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"kyc-screening/internal/models"
)

// Format задает формат данных источника
type Format int

const (
	FormatJSON Format = iota
	FormatCSV
)

// DetectFormat определяет формат по расширению или первому значащему символу
func DetectFormat(name string, data []byte) Format {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".csv"):
		return FormatCSV
	case strings.HasSuffix(lower, ".json"):
		return FormatJSON
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '[' || trimmed[0] == '{') {
		return FormatJSON
	}
	return FormatCSV
}

// Decode разбирает данные в указанном формате
func Decode(format Format, data []byte) ([]models.Sanction, error) {
	if format == FormatCSV {
		return DecodeCSV(bytes.NewReader(data))
	}
	return DecodeJSON(data)
}

// DecodeJSON разбирает JSON массив записей; отсутствующий is_active считается true
func DecodeJSON(data []byte) ([]models.Sanction, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []models.Sanction{}, nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode sanctions JSON: %w", err)
	}

	sanctions := make([]models.Sanction, 0, len(raw))
	for i, item := range raw {
		s := models.Sanction{IsActive: true}
		if err := json.Unmarshal(item, &s); err != nil {
			return nil, fmt.Errorf("failed to decode sanction #%d: %w", i+1, err)
		}
		sanctions = append(sanctions, s)
	}
	return sanctions, nil
}

var csvColumns = map[string]func(s *models.Sanction, v string) error{
	"list_source":      func(s *models.Sanction, v string) error { s.ListSource = strings.ToUpper(v); return nil },
	"list_type":        func(s *models.Sanction, v string) error { s.ListType = strings.ToUpper(v); return nil },
	"reference_id":     func(s *models.Sanction, v string) error { s.ReferenceID = v; return nil },
	"full_name_ar":     func(s *models.Sanction, v string) error { s.FullNameAr = v; return nil },
	"full_name_en":     func(s *models.Sanction, v string) error { s.FullNameEn = v; return nil },
	"alias_ar":         func(s *models.Sanction, v string) error { s.AliasAr = v; return nil },
	"alias_en":         func(s *models.Sanction, v string) error { s.AliasEn = v; return nil },
	"nationality_code": func(s *models.Sanction, v string) error { s.NationalityCode = strings.ToUpper(v); return nil },
	"date_of_birth":    func(s *models.Sanction, v string) error { s.DateOfBirth = v; return nil },
	"place_of_birth":   func(s *models.Sanction, v string) error { s.PlaceOfBirth = v; return nil },
	"id_type":          func(s *models.Sanction, v string) error { s.IDType = v; return nil },
	"id_number":        func(s *models.Sanction, v string) error { s.IDNumber = v; return nil },
	"designation":      func(s *models.Sanction, v string) error { s.Designation = v; return nil },
	"reason":           func(s *models.Sanction, v string) error { s.Reason = v; return nil },
	"effective_date":   func(s *models.Sanction, v string) error { s.EffectiveDate = v; return nil },
	"expiry_date":      func(s *models.Sanction, v string) error { s.ExpiryDate = v; return nil },
	"un_resolution":    func(s *models.Sanction, v string) error { s.UNResolution = v; return nil },
	"eu_regulation":    func(s *models.Sanction, v string) error { s.EURegulation = v; return nil },
	"ofac_id":          func(s *models.Sanction, v string) error { s.OFACID = v; return nil },
	"risk_level":       func(s *models.Sanction, v string) error { s.RiskLevel = strings.ToUpper(v); return nil },
	"is_active": func(s *models.Sanction, v string) error {
		if v == "" {
			return nil
		}
		active, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid is_active %q", v)
		}
		s.IsActive = active
		return nil
	},
}

// DecodeCSV разбирает CSV с заголовком; имена колонок совпадают с JSON полями.
// Неизвестные колонки игнорируются.
func DecodeCSV(r io.Reader) ([]models.Sanction, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []models.Sanction{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	setters := make([]func(*models.Sanction, string) error, len(header))
	for i, name := range header {
		setters[i] = csvColumns[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))]
	}

	sanctions := []models.Sanction{}
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}

		s := models.Sanction{IsActive: true}
		for i, value := range record {
			if i >= len(setters) || setters[i] == nil {
				continue
			}
			if err := setters[i](&s, strings.TrimSpace(value)); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
		}
		sanctions = append(sanctions, s)
	}
	return sanctions, nil
}
