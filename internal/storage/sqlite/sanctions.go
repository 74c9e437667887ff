package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"kyc-screening/internal/models"
)

const sanctionColumns = `
	id, list_source, list_type, reference_id, full_name_ar, full_name_en, alias_ar, alias_en,
	nationality_code, date_of_birth, place_of_birth, id_type, id_number, designation, reason,
	effective_date, expiry_date, un_resolution, eu_regulation, ofac_id, risk_level, is_active,
	created_at, updated_at`

// riskOrder упорядочивает записи от критического риска к низкому
const riskOrder = `
	CASE risk_level
		WHEN 'CRITICAL' THEN 4
		WHEN 'HIGH' THEN 3
		WHEN 'MEDIUM' THEN 2
		ELSE 1
	END DESC, full_name_en`

// UpsertSanction добавляет или обновляет запись по (list_source, reference_id)
func (s *SQLiteStorage) UpsertSanction(ctx context.Context, sn *models.Sanction) (int64, error) {
	query := `
		INSERT INTO sanctions (
			list_source, list_type, reference_id, full_name_ar, full_name_en, alias_ar, alias_en,
			nationality_code, date_of_birth, place_of_birth, id_type, id_number, designation, reason,
			effective_date, expiry_date, un_resolution, eu_regulation, ofac_id, risk_level, is_active
		) VALUES (?, COALESCE(NULLIF(?, ''), 'INDIVIDUAL'), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
			COALESCE(NULLIF(?, ''), 'HIGH'), ?)
		ON CONFLICT (list_source, reference_id) DO UPDATE SET
			list_type = excluded.list_type,
			full_name_ar = excluded.full_name_ar,
			full_name_en = excluded.full_name_en,
			alias_ar = excluded.alias_ar,
			alias_en = excluded.alias_en,
			nationality_code = excluded.nationality_code,
			date_of_birth = excluded.date_of_birth,
			place_of_birth = excluded.place_of_birth,
			id_type = excluded.id_type,
			id_number = excluded.id_number,
			designation = excluded.designation,
			reason = excluded.reason,
			effective_date = excluded.effective_date,
			expiry_date = excluded.expiry_date,
			un_resolution = excluded.un_resolution,
			eu_regulation = excluded.eu_regulation,
			ofac_id = excluded.ofac_id,
			risk_level = excluded.risk_level,
			is_active = excluded.is_active,
			updated_at = ?
		RETURNING id`

	var id int64
	err := retryOperation(ctx, func() error {
		return s.DB.QueryRowContext(ctx, query,
			sn.ListSource, sn.ListType, sn.ReferenceID, nullString(sn.FullNameAr), sn.FullNameEn,
			nullString(sn.AliasAr), nullString(sn.AliasEn), nullString(sn.NationalityCode),
			nullString(sn.DateOfBirth), nullString(sn.PlaceOfBirth), nullString(sn.IDType),
			nullString(sn.IDNumber), nullString(sn.Designation), nullString(sn.Reason),
			nullString(sn.EffectiveDate), nullString(sn.ExpiryDate), nullString(sn.UNResolution),
			nullString(sn.EURegulation), nullString(sn.OFACID), sn.RiskLevel, boolToInt(sn.IsActive),
			time.Now().UTC(),
		).Scan(&id)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// GetSanction получает запись санкционного списка по id
func (s *SQLiteStorage) GetSanction(ctx context.Context, id int64) (*models.Sanction, error) {
	query := `SELECT ` + sanctionColumns + ` FROM sanctions WHERE id = ?`

	sn, err := scanSanction(s.DB.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return sn, nil
}

// SearchSanctions ищет подстроку в английских и арабских именах и псевдонимах
func (s *SQLiteStorage) SearchSanctions(ctx context.Context, query string, limit int) ([]*models.Sanction, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*models.Sanction{}, nil
	}

	pattern := "%" + query + "%"
	sqlQuery := `SELECT ` + sanctionColumns + `
		FROM sanctions
		WHERE full_name_en LIKE ? OR alias_en LIKE ? OR full_name_ar LIKE ? OR alias_ar LIKE ?
		ORDER BY ` + riskOrder + `
		LIMIT ?`

	return s.querySanctions(ctx, sqlQuery, pattern, pattern, pattern, pattern, limitOrDefault(limit))
}

// FindCandidates ищет активные записи, имена которых содержат любой из терминов.
// Термины упорядочены от самого специфичного: записи, совпавшие с более ранним
// термином, попадают в выдачу раньше и не вытесняются лимитом.
func (s *SQLiteStorage) FindCandidates(ctx context.Context, terms []string, limit int) ([]*models.Sanction, error) {
	const nameCondition = "full_name_en LIKE ? OR alias_en LIKE ? OR full_name_ar LIKE ? OR alias_ar LIKE ?"

	var patterns []string
	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		patterns = append(patterns, "%"+term+"%")
	}
	if len(patterns) == 0 {
		return []*models.Sanction{}, nil
	}

	conditions := make([]string, 0, len(patterns))
	var where, order []any
	var rank strings.Builder
	rank.WriteString("CASE")
	for i, pattern := range patterns {
		conditions = append(conditions, nameCondition)
		where = append(where, pattern, pattern, pattern, pattern)
		fmt.Fprintf(&rank, " WHEN %s THEN %d", nameCondition, i)
		order = append(order, pattern, pattern, pattern, pattern)
	}
	rank.WriteString(" END")

	sqlQuery := `SELECT ` + sanctionColumns + `
		FROM sanctions
		WHERE is_active = 1 AND (` + strings.Join(conditions, " OR ") + `)
		ORDER BY ` + rank.String() + `, ` + riskOrder + `
		LIMIT ?`
	args := append(where, order...)
	args = append(args, limitOrDefault(limit))

	return s.querySanctions(ctx, sqlQuery, args...)
}

// ListSanctions получает записи санкционных списков, опционально одного источника
func (s *SQLiteStorage) ListSanctions(ctx context.Context, source string, limit int) ([]*models.Sanction, error) {
	sqlQuery := `SELECT ` + sanctionColumns + `
		FROM sanctions
		WHERE (? = '' OR list_source = ?)
		ORDER BY list_source, reference_id
		LIMIT ?`
	return s.querySanctions(ctx, sqlQuery, source, source, limitOrDefault(limit))
}

// CountSanctions возвращает количество активных записей
func (s *SQLiteStorage) CountSanctions(ctx context.Context) (int, error) {
	var count int
	err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM sanctions WHERE is_active = 1`).Scan(&count)
	return count, err
}

func (s *SQLiteStorage) querySanctions(ctx context.Context, query string, args ...any) ([]*models.Sanction, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sanctions := []*models.Sanction{}
	for rows.Next() {
		sn, err := scanSanction(rows)
		if err != nil {
			return nil, err
		}
		sanctions = append(sanctions, sn)
	}
	return sanctions, rows.Err()
}

func scanSanction(row rowScanner) (*models.Sanction, error) {
	var sn models.Sanction
	var nameAr, aliasAr, aliasEn, nationality, dob, pob, idType, idNumber sql.NullString
	var designation, reason, effective, expiry, unRes, euReg, ofacID sql.NullString

	err := row.Scan(
		&sn.ID, &sn.ListSource, &sn.ListType, &sn.ReferenceID, &nameAr, &sn.FullNameEn, &aliasAr, &aliasEn,
		&nationality, &dob, &pob, &idType, &idNumber, &designation, &reason,
		&effective, &expiry, &unRes, &euReg, &ofacID, &sn.RiskLevel, &sn.IsActive,
		&sn.CreatedAt, &sn.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	sn.FullNameAr = nameAr.String
	sn.AliasAr = aliasAr.String
	sn.AliasEn = aliasEn.String
	sn.NationalityCode = nationality.String
	sn.DateOfBirth = dob.String
	sn.PlaceOfBirth = pob.String
	sn.IDType = idType.String
	sn.IDNumber = idNumber.String
	sn.Designation = designation.String
	sn.Reason = reason.String
	sn.EffectiveDate = effective.String
	sn.ExpiryDate = expiry.String
	sn.UNResolution = unRes.String
	sn.EURegulation = euReg.String
	sn.OFACID = ofacID.String
	return &sn, nil
}
