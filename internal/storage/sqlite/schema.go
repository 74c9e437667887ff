package sqlite

import "fmt"

// initSchema инициализирует схему БД
func (s *SQLiteStorage) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS customers (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		customer_code TEXT UNIQUE NOT NULL,
		full_name_ar TEXT,
		full_name_en TEXT NOT NULL,
		date_of_birth TEXT,
		nationality_code TEXT NOT NULL,
		nationality_name TEXT,
		id_type TEXT,
		id_number TEXT UNIQUE NOT NULL,
		id_issue_date TEXT,
		id_expiry_date TEXT,
		gender TEXT CHECK (gender IN ('M', 'F', 'O', '')),
		occupation TEXT,
		customer_type TEXT NOT NULL DEFAULT 'INDIVIDUAL',
		risk_category TEXT NOT NULL DEFAULT 'LOW'
			CHECK (risk_category IN ('VERY_LOW', 'LOW', 'MEDIUM', 'HIGH', 'CRITICAL')),
		pep_flag INTEGER NOT NULL DEFAULT 0,
		kyc_status TEXT NOT NULL DEFAULT 'PENDING'
			CHECK (kyc_status IN ('PENDING', 'IN_PROGRESS', 'COMPLETED', 'REJECTED', 'ON_HOLD')),
		notes TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS addresses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		customer_id INTEGER NOT NULL REFERENCES customers(id) ON DELETE CASCADE,
		address_type TEXT NOT NULL CHECK (address_type IN ('RESIDENTIAL', 'BUSINESS', 'MAILING', 'OTHER')),
		line1 TEXT NOT NULL,
		line2 TEXT,
		city TEXT,
		state TEXT,
		postal_code TEXT,
		country_code TEXT,
		is_primary INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS contacts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		customer_id INTEGER NOT NULL REFERENCES customers(id) ON DELETE CASCADE,
		contact_type TEXT NOT NULL CHECK (contact_type IN ('EMAIL', 'PHONE', 'MOBILE', 'FAX', 'WEBSITE')),
		contact_value TEXT NOT NULL,
		is_primary INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS sanctions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		list_source TEXT NOT NULL CHECK (list_source IN ('OFAC', 'UN', 'EU', 'UK', 'AU', 'CA', 'OTHER')),
		list_type TEXT NOT NULL DEFAULT 'INDIVIDUAL'
			CHECK (list_type IN ('INDIVIDUAL', 'ENTITY', 'VESSEL', 'AIRCRAFT')),
		reference_id TEXT NOT NULL,
		full_name_ar TEXT,
		full_name_en TEXT NOT NULL,
		alias_ar TEXT,
		alias_en TEXT,
		nationality_code TEXT,
		date_of_birth TEXT,
		place_of_birth TEXT,
		id_type TEXT,
		id_number TEXT,
		designation TEXT,
		reason TEXT,
		effective_date TEXT,
		expiry_date TEXT,
		un_resolution TEXT,
		eu_regulation TEXT,
		ofac_id TEXT,
		risk_level TEXT NOT NULL DEFAULT 'HIGH'
			CHECK (risk_level IN ('LOW', 'MEDIUM', 'HIGH', 'CRITICAL')),
		is_active INTEGER NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (list_source, reference_id)
	);

	CREATE TABLE IF NOT EXISTS screening_results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		screening_id TEXT UNIQUE NOT NULL,
		customer_code TEXT NOT NULL,
		customer_name TEXT,
		screening_date DATETIME NOT NULL,
		screening_type TEXT NOT NULL
			CHECK (screening_type IN ('ONBOARDING', 'PERIODIC', 'AD_HOC', 'BATCH')),
		total_matches INTEGER NOT NULL DEFAULT 0,
		exact_matches INTEGER NOT NULL DEFAULT 0,
		partial_matches INTEGER NOT NULL DEFAULT 0,
		highest_match_score REAL NOT NULL DEFAULT 0,
		risk_score INTEGER NOT NULL DEFAULT 0,
		risk_level TEXT NOT NULL,
		risk_factors TEXT,
		risk_details TEXT,
		screening_result TEXT NOT NULL
			CHECK (screening_result IN ('CLEAR', 'CLEAR_WITH_WARNING', 'REVIEW_REQUIRED', 'REJECTED', 'PENDING')),
		performed_by TEXT,
		reviewed_by TEXT,
		review_date DATETIME,
		review_notes TEXT,
		customer_snapshot TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS sanction_matches (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		screening_id TEXT NOT NULL REFERENCES screening_results(screening_id) ON DELETE CASCADE,
		sanction_id INTEGER NOT NULL,
		sanction_name TEXT,
		sanction_source TEXT,
		match_type TEXT NOT NULL CHECK (match_type IN ('EXACT', 'PARTIAL', 'FUZZY', 'NO_MATCH')),
		match_score REAL NOT NULL,
		name_match_score REAL,
		dob_match INTEGER NOT NULL DEFAULT 0,
		nationality_match INTEGER NOT NULL DEFAULT 0,
		id_match INTEGER NOT NULL DEFAULT 0,
		matched_fields TEXT,
		risk_level TEXT,
		recommended_action TEXT
	);

	CREATE TABLE IF NOT EXISTS audit_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		action TEXT NOT NULL,
		entity_type TEXT NOT NULL,
		entity_id TEXT,
		details TEXT,
		performed_by TEXT,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_customers_name ON customers(full_name_en);
	CREATE INDEX IF NOT EXISTS idx_customers_nationality ON customers(nationality_code);
	CREATE INDEX IF NOT EXISTS idx_sanctions_name ON sanctions(full_name_en);
	CREATE INDEX IF NOT EXISTS idx_sanctions_source ON sanctions(list_source);
	CREATE INDEX IF NOT EXISTS idx_screening_customer ON screening_results(customer_code);
	CREATE INDEX IF NOT EXISTS idx_screening_date ON screening_results(screening_date);
	CREATE INDEX IF NOT EXISTS idx_matches_screening ON sanction_matches(screening_id);
	CREATE INDEX IF NOT EXISTS idx_audit_created ON audit_log(created_at);
	`

	if _, err := s.DB.Exec(query); err != nil {
		return err
	}

	// Базы, созданные до появления снимка клиента
	return s.ensureColumn("screening_results", "customer_snapshot", "TEXT")
}

// ensureColumn добавляет колонку в существующую таблицу, если ее еще нет
func (s *SQLiteStorage) ensureColumn(table, column, definition string) error {
	rows, err := s.DB.Query(`SELECT name FROM pragma_table_info(?)`, table)
	if err != nil {
		return fmt.Errorf("failed to inspect table %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		if name == column {
			return nil
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	rows.Close()

	if _, err := s.DB.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, definition)); err != nil {
		return fmt.Errorf("failed to add column %s.%s: %w", table, column, err)
	}
	return nil
}
