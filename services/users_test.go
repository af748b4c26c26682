package services

import "testing"

func TestSyncUserProfileUpsert(t *testing.T) {
	setupTestDB(t)

	profile, err := SyncUserProfile("user-1", "Ana García")
	if err != nil {
		t.Fatalf("Failed to sync profile: %v", err)
	}
	if profile.FullName != "Ana García" {
		t.Errorf("Expected full name Ana García, got %q", profile.FullName)
	}
	if profile.Currency != "ARS" {
		t.Errorf("Expected default currency ARS, got %q", profile.Currency)
	}

	// Repeating the sync updates in place instead of failing
	profile, err = SyncUserProfile("user-1", "Ana María García")
	if err != nil {
		t.Fatalf("Failed to re-sync profile: %v", err)
	}
	if profile.FullName != "Ana María García" {
		t.Errorf("Expected updated name, got %q", profile.FullName)
	}
}

func TestSyncUserProfileSeedsStarterCategories(t *testing.T) {
	setupTestDB(t)

	if _, err := SyncUserProfile("user-1", "Ana García"); err != nil {
		t.Fatalf("Failed to sync profile: %v", err)
	}

	categories, err := GetUserCategories("user-1", "")
	if err != nil {
		t.Fatalf("Failed to list categories: %v", err)
	}

	names := map[string]bool{}
	for _, c := range categories {
		names[c.Name] = true
	}
	for _, want := range []string{"Groceries", "Transport", "Salary"} {
		if !names[want] {
			t.Errorf("Expected starter category %q, got %v", want, names)
		}
	}

	// Seeding is idempotent across repeated syncs
	if _, err := SyncUserProfile("user-1", "Ana García"); err != nil {
		t.Fatalf("Failed to re-sync profile: %v", err)
	}
	again, _ := GetUserCategories("user-1", "")
	if len(again) != len(categories) {
		t.Errorf("Expected category count unchanged, got %d then %d", len(categories), len(again))
	}
}
