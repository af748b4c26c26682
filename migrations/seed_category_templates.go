package migrations

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/google/uuid"
)

// SeedCategoryTemplates inserts the catalog of category templates users can
// instantiate into their own categories on first use.
func SeedCategoryTemplates(db *sql.DB) error {
	log.Println("Seeding category templates...")

	templates := []struct {
		name  string
		color string
		icon  string
		typ   string
	}{
		{"Groceries", "#22c55e", "🛒", "expense"},
		{"Dining Out", "#f97316", "🍽️", "expense"},
		{"Transport", "#3b82f6", "🚌", "expense"},
		{"Housing", "#8b5cf6", "🏠", "expense"},
		{"Utilities", "#06b6d4", "💡", "expense"},
		{"Health", "#ef4444", "💊", "expense"},
		{"Entertainment", "#ec4899", "🎬", "expense"},
		{"Education", "#eab308", "📚", "expense"},
		{"Shopping", "#a855f7", "🛍️", "expense"},
		{"Other Expenses", "#6366f1", "📦", "expense"},
		{"Salary", "#16a34a", "💼", "income"},
		{"Freelance", "#0ea5e9", "💻", "income"},
		{"Investments", "#f59e0b", "📈", "income"},
		{"Other Income", "#6366f1", "💰", "income"},
	}

	for i, t := range templates {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM category_templates WHERE name = ?", t.name).Scan(&count)
		if err != nil {
			return fmt.Errorf("failed to check template %s: %w", t.name, err)
		}
		if count > 0 {
			continue
		}

		_, err = db.Exec(`
			INSERT INTO category_templates (id, name, color, icon, type, sort_order)
			VALUES (?, ?, ?, ?, ?, ?)
		`, uuid.NewString(), t.name, t.color, t.icon, t.typ, i)
		if err != nil {
			return fmt.Errorf("failed to insert template %s: %w", t.name, err)
		}
	}

	log.Println("Category templates seeded successfully")
	return nil
}
