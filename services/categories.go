package services

import (
	"database/sql"
	"fmt"
	"strings"

	"monedero/backend/database"
	"monedero/backend/models"

	"github.com/google/uuid"
)

const defaultCategoryColor = "#6366f1"
const defaultCategoryIcon = "📦"

// EnsureCategory resolves a category name to the user's category id,
// instantiating it from a matching template (or defaults) when the user has
// no category with that name yet. Resolution is idempotent; a concurrent
// duplicate insert loses to the UNIQUE(user_id, name) constraint and the
// winner's id is re-fetched.
func EnsureCategory(userID, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: category name is required", ErrValidation)
	}

	var id string
	err := database.DB.QueryRow(
		"SELECT id FROM categories WHERE user_id = ? AND name = ?",
		userID, name,
	).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return "", fmt.Errorf("failed to look up category: %w", err)
	}

	// Instantiate from the template catalog when one matches, otherwise
	// fall back to a generic expense category.
	color := defaultCategoryColor
	icon := defaultCategoryIcon
	categoryType := models.TypeExpense
	err = database.DB.QueryRow(
		"SELECT color, icon, type FROM category_templates WHERE name = ?",
		name,
	).Scan(&color, &icon, &categoryType)
	if err != nil && err != sql.ErrNoRows {
		return "", fmt.Errorf("failed to look up category template: %w", err)
	}

	id = uuid.NewString()
	_, err = database.DB.Exec(`
		INSERT INTO categories (id, user_id, name, color, icon, type)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, userID, name, color, icon, categoryType)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			// Lost a get-or-create race; the existing row wins.
			err = database.DB.QueryRow(
				"SELECT id FROM categories WHERE user_id = ? AND name = ?",
				userID, name,
			).Scan(&id)
			if err != nil {
				return "", fmt.Errorf("failed to re-fetch category after conflict: %w", err)
			}
			return id, nil
		}
		return "", fmt.Errorf("failed to create category: %w", err)
	}

	return id, nil
}

// GetUserCategories returns the user's categories, optionally filtered by
// type, ordered by name.
func GetUserCategories(userID, categoryType string) ([]models.Category, error) {
	query := "SELECT id, user_id, name, color, icon, type, created_at FROM categories WHERE user_id = ?"
	args := []interface{}{userID}

	if categoryType != "" {
		query += " AND type = ?"
		args = append(args, categoryType)
	}
	query += " ORDER BY name"

	rows, err := database.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		var icon sql.NullString
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Color, &icon, &c.Type, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		c.Icon = icon.String
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

// GetCategoryTemplates lists the template catalog, marking the entries the
// user has already instantiated.
func GetCategoryTemplates(userID, categoryType string) ([]models.CategoryTemplate, error) {
	query := `
		SELECT t.id, t.name, t.color, t.icon, t.type, t.sort_order,
		       EXISTS(SELECT 1 FROM categories c WHERE c.user_id = ? AND c.name = t.name)
		FROM category_templates t
	`
	args := []interface{}{userID}

	if categoryType != "" {
		query += " WHERE t.type = ?"
		args = append(args, categoryType)
	}
	query += " ORDER BY t.sort_order, t.name"

	rows, err := database.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query category templates: %w", err)
	}
	defer rows.Close()

	var templates []models.CategoryTemplate
	for rows.Next() {
		var t models.CategoryTemplate
		var icon sql.NullString
		if err := rows.Scan(&t.ID, &t.Name, &t.Color, &icon, &t.Type, &t.SortOrder, &t.IsCreated); err != nil {
			return nil, fmt.Errorf("failed to scan category template: %w", err)
		}
		t.Icon = icon.String
		templates = append(templates, t)
	}

	return templates, rows.Err()
}

// CreateCustomCategory creates a user-owned category outside the template
// catalog.
func CreateCustomCategory(userID, name, categoryType, color, icon string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", ErrValidation)
	}
	if categoryType != models.TypeExpense && categoryType != models.TypeIncome {
		return nil, fmt.Errorf("%w: category type must be expense or income", ErrValidation)
	}
	if color == "" {
		color = defaultCategoryColor
	}
	if icon == "" {
		icon = defaultCategoryIcon
	}

	c := &models.Category{
		ID:     uuid.NewString(),
		UserID: userID,
		Name:   name,
		Color:  color,
		Icon:   icon,
		Type:   categoryType,
	}

	_, err := database.DB.Exec(`
		INSERT INTO categories (id, user_id, name, color, icon, type)
		VALUES (?, ?, ?, ?, ?, ?)
	`, c.ID, c.UserID, c.Name, c.Color, c.Icon, c.Type)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, fmt.Errorf("%w: a category named %q already exists", ErrValidation, name)
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return c, nil
}

// UpdateCategory updates the mutable fields of a user's category.
func UpdateCategory(userID, categoryID string, name, color, icon *string) error {
	sets := []string{}
	args := []interface{}{}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return fmt.Errorf("%w: category name cannot be empty", ErrValidation)
		}
		sets = append(sets, "name = ?")
		args = append(args, trimmed)
	}
	if color != nil {
		sets = append(sets, "color = ?")
		args = append(args, *color)
	}
	if icon != nil {
		sets = append(sets, "icon = ?")
		args = append(args, *icon)
	}
	if len(sets) == 0 {
		return fmt.Errorf("%w: nothing to update", ErrValidation)
	}

	args = append(args, categoryID, userID)
	result, err := database.DB.Exec(
		"UPDATE categories SET "+strings.Join(sets, ", ")+" WHERE id = ? AND user_id = ?",
		args...,
	)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: category", ErrNotFound)
	}

	return nil
}

// DeleteCategory removes a category. Deletion is refused while any
// transaction still references it; the dependent check runs before the
// delete so the caller gets a descriptive message instead of a bare
// constraint error.
func DeleteCategory(userID, categoryID string) error {
	var dependent int
	err := database.DB.QueryRow(
		"SELECT COUNT(*) FROM (SELECT 1 FROM transactions WHERE category_id = ? LIMIT 1)",
		categoryID,
	).Scan(&dependent)
	if err != nil {
		return fmt.Errorf("failed to check category transactions: %w", err)
	}
	if dependent > 0 {
		return fmt.Errorf("%w: cannot delete a category that has transactions", ErrInUse)
	}

	result, err := database.DB.Exec(
		"DELETE FROM categories WHERE id = ? AND user_id = ?",
		categoryID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: category", ErrNotFound)
	}

	return nil
}
