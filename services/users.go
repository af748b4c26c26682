package services

import (
	"fmt"
	"log"
	"time"

	"monedero/backend/database"
	"monedero/backend/models"
)

// SyncUserProfile upserts the user's profile from the authenticated
// identity. It runs right after sign-up (and is harmless to repeat). The
// starter-category seeding that follows is best effort: its failure is
// logged and ignored so a half-provisioned account stays usable.
func SyncUserProfile(userID, fullName string) (*models.UserProfile, error) {
	now := time.Now()

	_, err := database.DB.Exec(`
		INSERT INTO user_profiles (id, full_name, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET full_name = excluded.full_name, updated_at = excluded.updated_at
	`, userID, nullable(fullName), now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user profile: %w", err)
	}

	if err := seedStarterCategories(userID); err != nil {
		log.Printf("Warning: starter category seeding failed for user %s: %v", userID, err)
	}

	return GetUserProfile(userID)
}

// GetUserProfile fetches the user's profile row.
func GetUserProfile(userID string) (*models.UserProfile, error) {
	var p models.UserProfile
	var fullName *string
	err := database.DB.QueryRow(`
		SELECT id, full_name, currency, timezone, created_at, updated_at
		FROM user_profiles WHERE id = ?
	`, userID).Scan(&p.ID, &fullName, &p.Currency, &p.Timezone, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to query user profile: %w", err)
	}
	if fullName != nil {
		p.FullName = *fullName
	}
	return &p, nil
}

// seedStarterCategories instantiates a small starter set from the template
// catalog so a fresh account isn't empty.
func seedStarterCategories(userID string) error {
	starters := []string{"Groceries", "Transport", "Salary"}
	for _, name := range starters {
		if _, err := EnsureCategory(userID, name); err != nil {
			return err
		}
	}
	return nil
}
