package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"kyc-screening/internal/models"
	"kyc-screening/internal/storage"
)

const customerColumns = `
	id, customer_code, full_name_ar, full_name_en, date_of_birth, nationality_code,
	nationality_name, id_type, id_number, id_issue_date, id_expiry_date, gender,
	occupation, customer_type, risk_category, pep_flag, kyc_status, notes,
	created_at, updated_at`

// SaveCustomer сохраняет клиента вместе с адресами, контактами и записью аудита
func (s *SQLiteStorage) SaveCustomer(ctx context.Context, c *models.Customer, performedBy string) (int64, error) {
	var id int64
	err := retryOperation(ctx, func() error {
		tx, err := s.DB.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer tx.Rollback()

		var exists int
		err = tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM customers WHERE customer_code = ? OR id_number = ?`,
			c.CustomerCode, c.IDNumber,
		).Scan(&exists)
		if err != nil {
			return err
		}
		if exists > 0 {
			return storage.ErrDuplicateCustomer
		}

		res, err := tx.ExecContext(ctx, `
			INSERT INTO customers (
				customer_code, full_name_ar, full_name_en, date_of_birth, nationality_code,
				nationality_name, id_type, id_number, id_issue_date, id_expiry_date, gender,
				occupation, customer_type, risk_category, pep_flag, kyc_status, notes
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
				COALESCE(NULLIF(?, ''), 'INDIVIDUAL'),
				COALESCE(NULLIF(?, ''), 'LOW'),
				?,
				COALESCE(NULLIF(?, ''), 'PENDING'),
				?)`,
			c.CustomerCode, nullString(c.FullNameAr), c.FullNameEn, nullString(c.DateOfBirth), c.NationalityCode,
			nullString(c.NationalityName), nullString(c.IDType), c.IDNumber, nullString(c.IDIssueDate),
			nullString(c.IDExpiryDate), nullString(c.Gender), nullString(c.Occupation),
			c.CustomerType, c.RiskCategory, boolToInt(c.PEPFlag), c.KYCStatus, nullString(c.Notes),
		)
		if err != nil {
			if isUniqueViolation(err) {
				return storage.ErrDuplicateCustomer
			}
			return err
		}

		id, err = res.LastInsertId()
		if err != nil {
			return err
		}

		for _, a := range c.Addresses {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO addresses (customer_id, address_type, line1, line2, city, state, postal_code, country_code, is_primary)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				id, a.Type, a.Line1, nullString(a.Line2), nullString(a.City), nullString(a.State),
				nullString(a.PostalCode), nullString(a.CountryCode), boolToInt(a.IsPrimary),
			)
			if err != nil {
				return fmt.Errorf("failed to save address: %w", err)
			}
		}

		for _, ct := range c.Contacts {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO contacts (customer_id, contact_type, contact_value, is_primary)
				VALUES (?, ?, ?, ?)`,
				id, ct.Type, ct.Value, boolToInt(ct.IsPrimary),
			)
			if err != nil {
				return fmt.Errorf("failed to save contact: %w", err)
			}
		}

		details, _ := json.Marshal(map[string]any{
			"full_name_en":     c.FullNameEn,
			"nationality_code": c.NationalityCode,
		})
		if err := insertAudit(ctx, tx, &models.AuditEntry{
			Action:      models.AuditCreateCustomer,
			EntityType:  "customer",
			EntityID:    c.CustomerCode,
			Details:     string(details),
			PerformedBy: performedBy,
		}); err != nil {
			return err
		}

		return tx.Commit()
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// GetCustomer получает клиента по customer_code
func (s *SQLiteStorage) GetCustomer(ctx context.Context, customerCode string) (*models.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_code = ?`

	c, err := scanCustomer(s.DB.QueryRowContext(ctx, query, customerCode))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := s.loadCustomerDetails(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ListCustomers получает последних клиентов (без адресов и контактов)
func (s *SQLiteStorage) ListCustomers(ctx context.Context, limit int) ([]*models.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY created_at DESC, id DESC LIMIT ?`

	rows, err := s.DB.QueryContext(ctx, query, limitOrDefault(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []*models.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// UpdateCustomerStatus обновляет статус KYC и категорию риска клиента
func (s *SQLiteStorage) UpdateCustomerStatus(ctx context.Context, customerCode, kycStatus, riskCategory string) error {
	return retryOperation(ctx, func() error {
		res, err := s.DB.ExecContext(ctx, `
			UPDATE customers
			SET kyc_status = ?, risk_category = ?, updated_at = ?
			WHERE customer_code = ?`,
			kycStatus, riskCategory, time.Now().UTC(), customerCode,
		)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return storage.ErrNotFound
		}
		return nil
	})
}

func (s *SQLiteStorage) loadCustomerDetails(ctx context.Context, c *models.Customer) error {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT address_type, line1, line2, city, state, postal_code, country_code, is_primary
		FROM addresses WHERE customer_id = ? ORDER BY id`, c.ID)
	if err != nil {
		return err
	}
	for rows.Next() {
		var a models.Address
		var line2, city, state, postal, country sql.NullString
		if err := rows.Scan(&a.Type, &a.Line1, &line2, &city, &state, &postal, &country, &a.IsPrimary); err != nil {
			rows.Close()
			return err
		}
		a.Line2, a.City, a.State, a.PostalCode, a.CountryCode = line2.String, city.String, state.String, postal.String, country.String
		c.Addresses = append(c.Addresses, a)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = s.DB.QueryContext(ctx, `
		SELECT contact_type, contact_value, is_primary
		FROM contacts WHERE customer_id = ? ORDER BY id`, c.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var ct models.Contact
		if err := rows.Scan(&ct.Type, &ct.Value, &ct.IsPrimary); err != nil {
			return err
		}
		c.Contacts = append(c.Contacts, ct)
	}
	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCustomer(row rowScanner) (*models.Customer, error) {
	var c models.Customer
	var nameAr, dob, natName, idType, issue, expiry, gender, occupation, notes sql.NullString

	err := row.Scan(
		&c.ID, &c.CustomerCode, &nameAr, &c.FullNameEn, &dob, &c.NationalityCode,
		&natName, &idType, &c.IDNumber, &issue, &expiry, &gender,
		&occupation, &c.CustomerType, &c.RiskCategory, &c.PEPFlag, &c.KYCStatus, &notes,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.FullNameAr = nameAr.String
	c.DateOfBirth = dob.String
	c.NationalityName = natName.String
	c.IDType = idType.String
	c.IDIssueDate = issue.String
	c.IDExpiryDate = expiry.String
	c.Gender = gender.String
	c.Occupation = occupation.String
	c.Notes = notes.String
	return &c, nil
}
