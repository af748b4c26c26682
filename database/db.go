package database

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var DB *sql.DB

func InitDB() error {
	var dbPath string
	if os.Getenv("FLY_APP_NAME") != "" {
		// We're running on Fly.io, use the mounted volume
		dbPath = filepath.Join("/data", "monedero.db")
	} else if os.Getenv("TEST_DB") == "1" {
		// We're running tests, use in-memory database
		dbPath = ":memory:"
	} else {
		// Local development
		dbPath = "./monedero.db"
	}

	var err error
	// Connection parameters to better handle concurrent requests
	dsn := dbPath + "?_journal=WAL&_timeout=10000&_busy_timeout=10000&_fk=1"
	DB, err = sql.Open("sqlite3", dsn)
	if err != nil {
		return err
	}

	DB.SetMaxOpenConns(5)
	DB.SetMaxIdleConns(5)
	DB.SetConnMaxLifetime(time.Minute * 5)

	_, err = DB.Exec("PRAGMA journal_mode=WAL;")
	if err != nil {
		return err
	}

	_, err = DB.Exec("PRAGMA busy_timeout=5000;")
	if err != nil {
		return err
	}

	err = DB.Ping()
	if err != nil {
		return err
	}

	return CreateSchema(DB)
}

// CreateSchema creates all application tables if they don't exist yet.
func CreateSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS user_profiles (
		id TEXT PRIMARY KEY,
		full_name TEXT,
		currency TEXT NOT NULL DEFAULT 'ARS',
		timezone TEXT NOT NULL DEFAULT 'America/Argentina/Buenos_Aires',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS banks (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		code TEXT,
		type TEXT NOT NULL,
		logo_url TEXT,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		is_system_bank BOOLEAN NOT NULL DEFAULT 0,
		created_by_user_id TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS category_templates (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		color TEXT NOT NULL DEFAULT '#6366f1',
		icon TEXT,
		type TEXT NOT NULL,
		sort_order INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS categories (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		color TEXT NOT NULL DEFAULT '#6366f1',
		icon TEXT,
		type TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(user_id, name)
	);

	CREATE TABLE IF NOT EXISTS payment_methods (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		bank_id TEXT REFERENCES banks(id),
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		brand TEXT,
		is_credit BOOLEAN NOT NULL DEFAULT 0,
		credit_limit NUMERIC(15,2),
		last_four_digits TEXT,
		expiry_month INTEGER,
		expiry_year INTEGER,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS transactions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		category_id TEXT NOT NULL REFERENCES categories(id),
		subcategory_id TEXT,
		payment_method_id TEXT REFERENCES payment_methods(id),
		type TEXT NOT NULL,
		amount NUMERIC(15,2) NOT NULL,
		currency TEXT NOT NULL DEFAULT 'ARS',
		description TEXT NOT NULL,
		notes TEXT,
		transaction_date DATETIME NOT NULL,
		due_date DATETIME,
		status TEXT NOT NULL DEFAULT 'paid',
		is_debt BOOLEAN NOT NULL DEFAULT 0,
		installments INTEGER NOT NULL DEFAULT 1,
		current_installment INTEGER NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS debt_installments (
		id TEXT PRIMARY KEY,
		transaction_id TEXT NOT NULL REFERENCES transactions(id),
		installment_number INTEGER NOT NULL,
		amount NUMERIC(15,2) NOT NULL,
		due_date DATETIME NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		paid_date DATETIME,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(transaction_id, installment_number)
	);

	CREATE INDEX IF NOT EXISTS idx_transactions_user_date
		ON transactions(user_id, transaction_date);
	CREATE INDEX IF NOT EXISTS idx_installments_transaction
		ON debt_installments(transaction_id);
	`
	_, err := db.Exec(schema)
	return err
}
