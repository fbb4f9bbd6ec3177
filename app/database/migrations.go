package database

import (
	"database/sql"
	"log"
)

// RunMigrations creates the schema on first run and applies additive
// updates on subsequent runs. SQLite keeps the whole database in a single
// file, so bootstrap and upgrade share the same path.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			matricule TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'clerk',
			is_active INTEGER NOT NULL DEFAULT 1,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS students (
			id TEXT PRIMARY KEY,
			matricule TEXT NOT NULL UNIQUE,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			gender TEXT,
			date_of_birth TIMESTAMP,
			address TEXT,
			guardian_name TEXT,
			guardian_phone TEXT,
			fee_category TEXT NOT NULL DEFAULT 'payable',
			discount_percentage REAL NOT NULL DEFAULT 0,
			sponsor_name TEXT,
			sponsor_phone TEXT,
			is_active INTEGER NOT NULL DEFAULT 1,
			enrolled_at TIMESTAMP NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			deleted_at TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS teachers (
			id TEXT PRIMARY KEY,
			matricule TEXT NOT NULL UNIQUE,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			phone TEXT,
			email TEXT,
			specialty TEXT,
			is_active INTEGER NOT NULL DEFAULT 1,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			deleted_at TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS classes (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			fee_type TEXT NOT NULL DEFAULT 'standard',
			monthly_fee REAL NOT NULL DEFAULT 0,
			teacher_id TEXT REFERENCES teachers(id),
			is_active INTEGER NOT NULL DEFAULT 1,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS class_enrollments (
			id TEXT PRIMARY KEY,
			class_id TEXT NOT NULL REFERENCES classes(id) ON DELETE CASCADE,
			student_id TEXT NOT NULL REFERENCES students(id) ON DELETE CASCADE,
			enrolled_at TIMESTAMP NOT NULL,
			UNIQUE(class_id, student_id)
		)`,
		`CREATE TABLE IF NOT EXISTS fee_charges (
			id TEXT PRIMARY KEY,
			student_id TEXT NOT NULL REFERENCES students(id) ON DELETE CASCADE,
			charge_type TEXT NOT NULL,
			academic_year TEXT NOT NULL,
			month INTEGER,
			amount REAL NOT NULL,
			amount_paid REAL NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'UNPAID',
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_fee_charges_student_period
			ON fee_charges(student_id, charge_type, academic_year, month)`,
		`CREATE TABLE IF NOT EXISTS payments (
			id TEXT PRIMARY KEY,
			student_id TEXT NOT NULL REFERENCES students(id) ON DELETE CASCADE,
			amount REAL NOT NULL,
			payment_method TEXT NOT NULL,
			receipt_number TEXT UNIQUE,
			sponsor_name TEXT,
			sponsor_phone TEXT,
			notes TEXT,
			recorded_by TEXT,
			payment_date TIMESTAMP NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS student_credits (
			id TEXT PRIMARY KEY,
			student_id TEXT NOT NULL REFERENCES students(id) ON DELETE CASCADE,
			amount REAL NOT NULL,
			payment_id TEXT NOT NULL REFERENCES payments(id) ON DELETE CASCADE,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS receipt_books (
			id TEXT PRIMARY KEY,
			receipt_type TEXT NOT NULL,
			year INTEGER NOT NULL,
			start_number INTEGER NOT NULL,
			end_number INTEGER NOT NULL,
			current_number INTEGER NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS attendance_records (
			id TEXT PRIMARY KEY,
			student_id TEXT NOT NULL REFERENCES students(id) ON DELETE CASCADE,
			class_id TEXT NOT NULL REFERENCES classes(id) ON DELETE CASCADE,
			date TIMESTAMP NOT NULL,
			status TEXT NOT NULL,
			recorded_by TEXT,
			created_at TIMESTAMP NOT NULL,
			UNIQUE(student_id, class_id, date)
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			log.Printf("Migration statement failed: %v", err)
			return err
		}
	}

	if err := seedDefaultSettings(db); err != nil {
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func seedDefaultSettings(db *sql.DB) error {
	// Academic year runs September to August unless reconfigured.
	_, err := db.Exec(`INSERT INTO settings (key, value, updated_at)
		SELECT 'academic_year_start_month', '9', CURRENT_TIMESTAMP
		WHERE NOT EXISTS (SELECT 1 FROM settings WHERE key = 'academic_year_start_month')`)
	return err
}
