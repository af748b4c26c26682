package migrations

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/google/uuid"
)

// SeedSystemBanks inserts the built-in banks available to every user.
func SeedSystemBanks(db *sql.DB) error {
	log.Println("Seeding system banks...")

	banks := []struct {
		name string
		code string
		typ  string
	}{
		{"Banco Nación", "BNA", "traditional_bank"},
		{"Banco Galicia", "GAL", "traditional_bank"},
		{"Banco Santander", "SAN", "traditional_bank"},
		{"BBVA", "BBVA", "traditional_bank"},
		{"Brubank", "BRU", "digital_bank"},
		{"Ualá", "UALA", "fintech"},
		{"Mercado Pago", "MP", "fintech"},
		{"Naranja X", "NX", "credit_card_company"},
	}

	for _, b := range banks {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM banks WHERE name = ? AND is_system_bank = 1", b.name).Scan(&count)
		if err != nil {
			return fmt.Errorf("failed to check bank %s: %w", b.name, err)
		}
		if count > 0 {
			continue
		}

		_, err = db.Exec(`
			INSERT INTO banks (id, name, code, type, is_active, is_system_bank)
			VALUES (?, ?, ?, ?, 1, 1)
		`, uuid.NewString(), b.name, b.code, b.typ)
		if err != nil {
			return fmt.Errorf("failed to insert bank %s: %w", b.name, err)
		}
	}

	log.Println("System banks seeded successfully")
	return nil
}
