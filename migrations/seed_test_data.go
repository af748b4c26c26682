package migrations

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
)

// SeedTestData seeds test data for development and PR environments
// This should only be called in non-production environments
func SeedTestData(db *sql.DB) error {
	// Check if we're in production - we should NEVER run this in production
	if os.Getenv("APP_ENV") == "production" || os.Getenv("ENVIRONMENT") == "production" {
		log.Println("Refusing to seed test data in production environment")
		return nil
	}

	// Only seed if explicitly requested or in dev/PR environment
	if os.Getenv("RESET_DB") != "true" &&
		os.Getenv("APP_ENV") != "development" &&
		os.Getenv("PR_DEPLOYMENT") != "true" {
		log.Println("Skipping test data seeding - not explicitly requested and not in dev/PR environment")
		return nil
	}

	log.Println("Seeding test data for development/PR environment...")

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	// Clear existing user data, keeping the system catalogs
	tables := []string{"debt_installments", "transactions", "payment_methods", "categories", "user_profiles"}
	for _, table := range tables {
		_, err = tx.Exec("DELETE FROM " + table)
		if err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
	}

	const testUser = "dev-user-1"

	_, err = tx.Exec(`
		INSERT INTO user_profiles (id, full_name, currency, timezone)
		VALUES (?, ?, 'ARS', 'America/Argentina/Buenos_Aires')
	`, testUser, "Dev User")
	if err != nil {
		return fmt.Errorf("failed to insert test profile: %w", err)
	}

	groceriesID := uuid.NewString()
	salaryID := uuid.NewString()
	_, err = tx.Exec(`
		INSERT INTO categories (id, user_id, name, color, icon, type)
		VALUES (?, ?, 'Groceries', '#22c55e', '🛒', 'expense'),
		       (?, ?, 'Salary', '#16a34a', '💼', 'income')
	`, groceriesID, testUser, salaryID, testUser)
	if err != nil {
		return fmt.Errorf("failed to insert test categories: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO transactions (id, user_id, category_id, type, amount, currency, description, transaction_date, status)
		VALUES (?, ?, ?, 'expense', 15250.50, 'ARS', 'Weekly groceries', date('now'), 'paid'),
		       (?, ?, ?, 'income', 950000, 'ARS', 'Monthly salary', date('now', 'start of month'), 'paid')
	`, uuid.NewString(), testUser, groceriesID, uuid.NewString(), testUser, salaryID)
	if err != nil {
		return fmt.Errorf("failed to insert test transactions: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit test data: %w", err)
	}

	log.Println("Test data seeded successfully")
	return nil
}
