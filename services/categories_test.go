package services

import (
	"errors"
	"testing"
)

func TestEnsureCategoryIdempotent(t *testing.T) {
	setupTestDB(t)

	first, err := EnsureCategory("user-1", "Groceries")
	if err != nil {
		t.Fatalf("Failed to ensure category: %v", err)
	}
	if first == "" {
		t.Fatal("Expected a category ID")
	}

	second, err := EnsureCategory("user-1", "Groceries")
	if err != nil {
		t.Fatalf("Failed to ensure category a second time: %v", err)
	}
	if second != first {
		t.Errorf("Expected the same category ID, got %s and %s", first, second)
	}

	categories, err := GetUserCategories("user-1", "")
	if err != nil {
		t.Fatalf("Failed to list categories: %v", err)
	}
	if len(categories) != 1 {
		t.Errorf("Expected 1 category, got %d", len(categories))
	}
}

func TestEnsureCategoryUsesTemplate(t *testing.T) {
	setupTestDB(t)

	// "Groceries" is a seeded template; the instantiated category inherits
	// its appearance and type
	id, err := EnsureCategory("user-1", "Groceries")
	if err != nil {
		t.Fatalf("Failed to ensure category: %v", err)
	}

	categories, err := GetUserCategories("user-1", "")
	if err != nil {
		t.Fatalf("Failed to list categories: %v", err)
	}
	if len(categories) != 1 || categories[0].ID != id {
		t.Fatalf("Expected the ensured category in the listing, got %+v", categories)
	}
	if categories[0].Type != "expense" {
		t.Errorf("Expected template type expense, got %s", categories[0].Type)
	}
	if categories[0].Icon == "" || categories[0].Color == "" {
		t.Errorf("Expected template appearance, got icon %q color %q", categories[0].Icon, categories[0].Color)
	}
}

func TestEnsureCategoryUnknownNameGetsDefaults(t *testing.T) {
	setupTestDB(t)

	if _, err := EnsureCategory("user-1", "Llama Grooming"); err != nil {
		t.Fatalf("Failed to ensure category without template: %v", err)
	}

	categories, err := GetUserCategories("user-1", "expense")
	if err != nil {
		t.Fatalf("Failed to list categories: %v", err)
	}
	if len(categories) != 1 {
		t.Fatalf("Expected 1 expense category, got %d", len(categories))
	}
	if categories[0].Color != "#6366f1" || categories[0].Icon != "📦" {
		t.Errorf("Expected default appearance, got color %q icon %q", categories[0].Color, categories[0].Icon)
	}
}

func TestEnsureCategoryScopedPerUser(t *testing.T) {
	setupTestDB(t)

	one, err := EnsureCategory("user-1", "Groceries")
	if err != nil {
		t.Fatalf("Failed to ensure category for user-1: %v", err)
	}
	two, err := EnsureCategory("user-2", "Groceries")
	if err != nil {
		t.Fatalf("Failed to ensure category for user-2: %v", err)
	}
	if one == two {
		t.Error("Expected distinct category rows per user")
	}
}

func TestCreateCustomCategoryRejectsDuplicates(t *testing.T) {
	setupTestDB(t)

	if _, err := CreateCustomCategory("user-1", "Pets", "expense", "#ff0000", "🐈"); err != nil {
		t.Fatalf("Failed to create category: %v", err)
	}

	_, err := CreateCustomCategory("user-1", "Pets", "expense", "#00ff00", "🐕")
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation for duplicate name, got %v", err)
	}
}

func TestGetCategoryTemplatesMarksCreated(t *testing.T) {
	setupTestDB(t)

	if _, err := EnsureCategory("user-1", "Groceries"); err != nil {
		t.Fatalf("Failed to ensure category: %v", err)
	}

	templates, err := GetCategoryTemplates("user-1", "")
	if err != nil {
		t.Fatalf("Failed to list templates: %v", err)
	}
	if len(templates) == 0 {
		t.Fatal("Expected seeded templates")
	}

	var sawCreated, sawUncreated bool
	for _, tpl := range templates {
		if tpl.Name == "Groceries" {
			if !tpl.IsCreated {
				t.Error("Expected Groceries template to be marked created")
			}
			sawCreated = true
		} else if !tpl.IsCreated {
			sawUncreated = true
		}
	}
	if !sawCreated || !sawUncreated {
		t.Errorf("Expected both created and uncreated templates, created=%v uncreated=%v", sawCreated, sawUncreated)
	}
}

func TestDeleteCategoryInUse(t *testing.T) {
	setupTestDB(t)

	tx, err := CreateTransaction("user-1", CreateTransactionRequest{
		Type:            "expense",
		Amount:          100,
		Description:     "Weekly shop",
		CategoryName:    "Groceries",
		TransactionDate: "2024-05-10",
	})
	if err != nil {
		t.Fatalf("Failed to create transaction: %v", err)
	}

	err = DeleteCategory("user-1", tx.CategoryID)
	if !errors.Is(err, ErrInUse) {
		t.Errorf("Expected ErrInUse for referenced category, got %v", err)
	}

	// Once the dependent transaction is gone the delete succeeds
	if err := DeleteTransaction("user-1", tx.ID); err != nil {
		t.Fatalf("Failed to delete transaction: %v", err)
	}
	if err := DeleteCategory("user-1", tx.CategoryID); err != nil {
		t.Errorf("Expected delete to succeed after removing dependents, got %v", err)
	}
}

func TestDeleteCategoryNotFound(t *testing.T) {
	setupTestDB(t)

	err := DeleteCategory("user-1", "missing-id")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestUpdateCategory(t *testing.T) {
	setupTestDB(t)

	cat, err := CreateCustomCategory("user-1", "Pets", "expense", "#ff0000", "🐈")
	if err != nil {
		t.Fatalf("Failed to create category: %v", err)
	}

	newName := "Pet Care"
	newColor := "#123456"
	if err := UpdateCategory("user-1", cat.ID, &newName, &newColor, nil); err != nil {
		t.Fatalf("Failed to update category: %v", err)
	}

	categories, err := GetUserCategories("user-1", "")
	if err != nil {
		t.Fatalf("Failed to list categories: %v", err)
	}
	if len(categories) != 1 {
		t.Fatalf("Expected 1 category, got %d", len(categories))
	}
	if categories[0].Name != "Pet Care" || categories[0].Color != "#123456" {
		t.Errorf("Update not applied: %+v", categories[0])
	}
	if categories[0].Icon != "🐈" {
		t.Errorf("Expected icon untouched, got %q", categories[0].Icon)
	}

	// Other users' categories are out of reach
	if err := UpdateCategory("user-2", cat.ID, &newName, nil, nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for another user's category, got %v", err)
	}
}
