package services

import (
	"database/sql"
	"fmt"
	"strings"

	"monedero/backend/database"
	"monedero/backend/models"

	"github.com/google/uuid"
)

var validBankTypes = map[string]bool{
	models.BankTypeTraditional:       true,
	models.BankTypeDigital:           true,
	models.BankTypeFintech:           true,
	models.BankTypeCreditCardCompany: true,
	models.BankTypeCustom:            true,
}

// GetBanks lists active banks, system banks first, then by name.
func GetBanks() ([]models.Bank, error) {
	return queryBanks("WHERE is_active = 1 ORDER BY is_system_bank DESC, name")
}

// GetSystemBanks lists only the built-in active banks.
func GetSystemBanks() ([]models.Bank, error) {
	return queryBanks("WHERE is_system_bank = 1 AND is_active = 1 ORDER BY name")
}

func queryBanks(clause string) ([]models.Bank, error) {
	rows, err := database.DB.Query(`
		SELECT id, name, code, type, logo_url, is_active, is_system_bank, created_by_user_id, created_at
		FROM banks ` + clause)
	if err != nil {
		return nil, fmt.Errorf("failed to query banks: %w", err)
	}
	defer rows.Close()

	banks := []models.Bank{}
	for rows.Next() {
		var b models.Bank
		var code, logoURL, createdBy sql.NullString
		err := rows.Scan(&b.ID, &b.Name, &code, &b.Type, &logoURL, &b.IsActive,
			&b.IsSystemBank, &createdBy, &b.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bank: %w", err)
		}
		b.Code = code.String
		b.LogoURL = logoURL.String
		b.CreatedByUserID = createdBy.String
		banks = append(banks, b)
	}

	return banks, rows.Err()
}

// CreateCustomBank adds a user-created bank alongside the system catalog.
func CreateCustomBank(userID, name, bankType, code string) (*models.Bank, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: bank name is required", ErrValidation)
	}
	if bankType == "" {
		bankType = models.BankTypeCustom
	}
	if !validBankTypes[bankType] {
		return nil, fmt.Errorf("%w: invalid bank type %q", ErrValidation, bankType)
	}

	b := &models.Bank{
		ID:              uuid.NewString(),
		Name:            name,
		Code:            code,
		Type:            bankType,
		IsActive:        true,
		IsSystemBank:    false,
		CreatedByUserID: userID,
	}

	_, err := database.DB.Exec(`
		INSERT INTO banks (id, name, code, type, is_active, is_system_bank, created_by_user_id)
		VALUES (?, ?, ?, ?, 1, 0, ?)
	`, b.ID, b.Name, nullable(b.Code), b.Type, b.CreatedByUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to create bank: %w", err)
	}

	return b, nil
}

// UpdateCustomBank updates a non-system bank. System banks are read-only.
func UpdateCustomBank(bankID string, name, code, bankType *string, isActive *bool) error {
	sets := []string{}
	args := []interface{}{}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return fmt.Errorf("%w: bank name cannot be empty", ErrValidation)
		}
		sets = append(sets, "name = ?")
		args = append(args, trimmed)
	}
	if code != nil {
		sets = append(sets, "code = ?")
		args = append(args, nullable(*code))
	}
	if bankType != nil {
		if !validBankTypes[*bankType] {
			return fmt.Errorf("%w: invalid bank type %q", ErrValidation, *bankType)
		}
		sets = append(sets, "type = ?")
		args = append(args, *bankType)
	}
	if isActive != nil {
		sets = append(sets, "is_active = ?")
		args = append(args, *isActive)
	}
	if len(sets) == 0 {
		return fmt.Errorf("%w: nothing to update", ErrValidation)
	}

	args = append(args, bankID)
	result, err := database.DB.Exec(
		"UPDATE banks SET "+strings.Join(sets, ", ")+" WHERE id = ? AND is_system_bank = 0",
		args...,
	)
	if err != nil {
		return fmt.Errorf("failed to update bank: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: custom bank", ErrNotFound)
	}

	return nil
}

// DeleteCustomBank removes a non-system bank. Deletion is refused while any
// payment method still references it.
func DeleteCustomBank(bankID string) error {
	var dependent int
	err := database.DB.QueryRow(
		"SELECT COUNT(*) FROM (SELECT 1 FROM payment_methods WHERE bank_id = ? LIMIT 1)",
		bankID,
	).Scan(&dependent)
	if err != nil {
		return fmt.Errorf("failed to check bank payment methods: %w", err)
	}
	if dependent > 0 {
		return fmt.Errorf("%w: cannot delete a bank that is used by payment methods", ErrInUse)
	}

	result, err := database.DB.Exec(
		"DELETE FROM banks WHERE id = ? AND is_system_bank = 0",
		bankID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete bank: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: custom bank", ErrNotFound)
	}

	return nil
}

// BankNameExists reports whether a bank with the given name already exists,
// compared case-insensitively, optionally excluding one id.
func BankNameExists(name, excludeID string) (bool, error) {
	query := "SELECT COUNT(*) FROM banks WHERE LOWER(name) = LOWER(?)"
	args := []interface{}{strings.TrimSpace(name)}

	if excludeID != "" {
		query += " AND id != ?"
		args = append(args, excludeID)
	}

	var count int
	if err := database.DB.QueryRow(query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check bank name: %w", err)
	}
	return count > 0, nil
}
