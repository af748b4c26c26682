package services

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"monedero/backend/database"
	"monedero/backend/models"
	"monedero/backend/security"

	"github.com/google/uuid"
)

var validPaymentTypes = map[string]bool{
	models.PaymentTypeCash:          true,
	models.PaymentTypeDebitCard:     true,
	models.PaymentTypeCreditCard:    true,
	models.PaymentTypeBankTransfer:  true,
	models.PaymentTypeDigitalWallet: true,
	models.PaymentTypeOther:         true,
}

// CreatePaymentMethodRequest carries a new payment method's fields.
type CreatePaymentMethodRequest struct {
	Name           string  `json:"name"`
	Type           string  `json:"type"`
	BankID         string  `json:"bankId,omitempty"`
	Brand          string  `json:"brand,omitempty"`
	IsCredit       bool    `json:"isCredit"`
	CreditLimit    float64 `json:"creditLimit,omitempty"`
	LastFourDigits string  `json:"lastFourDigits,omitempty"`
	ExpiryMonth    int     `json:"expiryMonth,omitempty"`
	ExpiryYear     int     `json:"expiryYear,omitempty"`
}

// CreatePaymentMethod stores a payment method for the user. Credit cards
// with an expiry in the past are rejected. Card digits are encrypted before
// they touch the store.
func CreatePaymentMethod(userID string, req CreatePaymentMethodRequest) (*models.PaymentMethod, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if !validPaymentTypes[req.Type] {
		return nil, fmt.Errorf("%w: invalid payment method type %q", ErrValidation, req.Type)
	}

	if req.Type == models.PaymentTypeCreditCard && req.ExpiryMonth != 0 && req.ExpiryYear != 0 {
		now := time.Now()
		if req.ExpiryYear < now.Year() ||
			(req.ExpiryYear == now.Year() && req.ExpiryMonth < int(now.Month())) {
			return nil, fmt.Errorf("%w: the card is expired", ErrValidation)
		}
	}

	pm := &models.PaymentMethod{
		ID:             uuid.NewString(),
		UserID:         userID,
		BankID:         req.BankID,
		Name:           name,
		Type:           req.Type,
		Brand:          strings.TrimSpace(req.Brand),
		IsCredit:       req.IsCredit,
		CreditLimit:    req.CreditLimit,
		LastFourDigits: strings.TrimSpace(req.LastFourDigits),
		ExpiryMonth:    req.ExpiryMonth,
		ExpiryYear:     req.ExpiryYear,
		IsActive:       true,
	}

	storedDigits := pm.LastFourDigits
	if storedDigits != "" {
		encrypted, err := security.Encrypt(storedDigits)
		if err != nil {
			return nil, fmt.Errorf("failed to encrypt card digits: %w", err)
		}
		storedDigits = encrypted
	}

	_, err := database.DB.Exec(`
		INSERT INTO payment_methods (id, user_id, bank_id, name, type, brand, is_credit,
			credit_limit, last_four_digits, expiry_month, expiry_year, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1)
	`, pm.ID, pm.UserID, nullable(pm.BankID), pm.Name, pm.Type, nullable(pm.Brand), pm.IsCredit,
		nullableFloat(pm.CreditLimit), nullable(storedDigits), nullableInt(pm.ExpiryMonth), nullableInt(pm.ExpiryYear))
	if err != nil {
		return nil, fmt.Errorf("failed to insert payment method: %w", err)
	}

	return pm, nil
}

// GetUserPaymentMethods lists the user's payment methods with bank names
// joined in, ordered by name. Card digits are decrypted for the response;
// rows whose ciphertext cannot be decrypted come back without digits.
func GetUserPaymentMethods(userID string, activeOnly bool) ([]models.PaymentMethod, error) {
	query := `
		SELECT pm.id, pm.user_id, pm.bank_id, pm.name, pm.type, pm.brand, pm.is_credit,
		       pm.credit_limit, pm.last_four_digits, pm.expiry_month, pm.expiry_year,
		       pm.is_active, pm.created_at, b.name
		FROM payment_methods pm
		LEFT JOIN banks b ON b.id = pm.bank_id
		WHERE pm.user_id = ?
	`
	args := []interface{}{userID}

	if activeOnly {
		query += " AND pm.is_active = 1"
	}
	query += " ORDER BY pm.name"

	rows, err := database.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query payment methods: %w", err)
	}
	defer rows.Close()

	methods := []models.PaymentMethod{}
	for rows.Next() {
		var pm models.PaymentMethod
		var bankID, brand, digits, bankName sql.NullString
		var creditLimit sql.NullFloat64
		var expiryMonth, expiryYear sql.NullInt64

		err := rows.Scan(&pm.ID, &pm.UserID, &bankID, &pm.Name, &pm.Type, &brand, &pm.IsCredit,
			&creditLimit, &digits, &expiryMonth, &expiryYear, &pm.IsActive, &pm.CreatedAt, &bankName)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment method: %w", err)
		}

		pm.BankID = bankID.String
		pm.Brand = brand.String
		pm.CreditLimit = creditLimit.Float64
		pm.ExpiryMonth = int(expiryMonth.Int64)
		pm.ExpiryYear = int(expiryYear.Int64)
		pm.BankName = bankName.String

		if digits.Valid && digits.String != "" {
			plain, err := security.Decrypt(digits.String)
			if err != nil {
				log.Printf("Failed to decrypt card digits for payment method %s: %v", pm.ID, err)
			} else {
				pm.LastFourDigits = plain
			}
		}

		methods = append(methods, pm)
	}

	return methods, rows.Err()
}

// UpdatePaymentMethodRequest carries a partial update; nil fields are left
// unchanged.
type UpdatePaymentMethodRequest struct {
	Name           *string  `json:"name,omitempty"`
	Type           *string  `json:"type,omitempty"`
	BankID         *string  `json:"bankId,omitempty"`
	Brand          *string  `json:"brand,omitempty"`
	IsCredit       *bool    `json:"isCredit,omitempty"`
	CreditLimit    *float64 `json:"creditLimit,omitempty"`
	LastFourDigits *string  `json:"lastFourDigits,omitempty"`
	ExpiryMonth    *int     `json:"expiryMonth,omitempty"`
	ExpiryYear     *int     `json:"expiryYear,omitempty"`
}

// UpdatePaymentMethod applies a partial update to a user's payment method.
func UpdatePaymentMethod(userID, paymentMethodID string, req UpdatePaymentMethodRequest) error {
	sets := []string{}
	args := []interface{}{}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return fmt.Errorf("%w: name cannot be empty", ErrValidation)
		}
		sets = append(sets, "name = ?")
		args = append(args, name)
	}
	if req.Type != nil {
		if !validPaymentTypes[*req.Type] {
			return fmt.Errorf("%w: invalid payment method type %q", ErrValidation, *req.Type)
		}
		sets = append(sets, "type = ?")
		args = append(args, *req.Type)
	}
	if req.BankID != nil {
		sets = append(sets, "bank_id = ?")
		args = append(args, nullable(*req.BankID))
	}
	if req.Brand != nil {
		sets = append(sets, "brand = ?")
		args = append(args, nullable(strings.TrimSpace(*req.Brand)))
	}
	if req.IsCredit != nil {
		sets = append(sets, "is_credit = ?")
		args = append(args, *req.IsCredit)
	}
	if req.CreditLimit != nil {
		sets = append(sets, "credit_limit = ?")
		args = append(args, nullableFloat(*req.CreditLimit))
	}
	if req.LastFourDigits != nil {
		digits := strings.TrimSpace(*req.LastFourDigits)
		if digits != "" {
			encrypted, err := security.Encrypt(digits)
			if err != nil {
				return fmt.Errorf("failed to encrypt card digits: %w", err)
			}
			digits = encrypted
		}
		sets = append(sets, "last_four_digits = ?")
		args = append(args, nullable(digits))
	}
	if req.ExpiryMonth != nil {
		sets = append(sets, "expiry_month = ?")
		args = append(args, nullableInt(*req.ExpiryMonth))
	}
	if req.ExpiryYear != nil {
		sets = append(sets, "expiry_year = ?")
		args = append(args, nullableInt(*req.ExpiryYear))
	}

	if len(sets) == 0 {
		return fmt.Errorf("%w: nothing to update", ErrValidation)
	}

	args = append(args, paymentMethodID, userID)
	result, err := database.DB.Exec(
		"UPDATE payment_methods SET "+strings.Join(sets, ", ")+" WHERE id = ? AND user_id = ?",
		args...,
	)
	if err != nil {
		return fmt.Errorf("failed to update payment method: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: payment method", ErrNotFound)
	}

	return nil
}

// SetPaymentMethodActive deactivates or reactivates a payment method
// without touching its history.
func SetPaymentMethodActive(userID, paymentMethodID string, active bool) error {
	result, err := database.DB.Exec(
		"UPDATE payment_methods SET is_active = ? WHERE id = ? AND user_id = ?",
		active, paymentMethodID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update payment method: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: payment method", ErrNotFound)
	}

	return nil
}

// DeletePaymentMethod removes a payment method. Deletion is refused while
// any transaction still references it; deactivation is the alternative.
func DeletePaymentMethod(userID, paymentMethodID string) error {
	var dependent int
	err := database.DB.QueryRow(
		"SELECT COUNT(*) FROM (SELECT 1 FROM transactions WHERE payment_method_id = ? LIMIT 1)",
		paymentMethodID,
	).Scan(&dependent)
	if err != nil {
		return fmt.Errorf("failed to check payment method transactions: %w", err)
	}
	if dependent > 0 {
		return fmt.Errorf("%w: cannot delete a payment method that has transactions; deactivate it instead", ErrInUse)
	}

	result, err := database.DB.Exec(
		"DELETE FROM payment_methods WHERE id = ? AND user_id = ?",
		paymentMethodID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete payment method: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: payment method", ErrNotFound)
	}

	return nil
}

// FormatPaymentMethodName builds the display name shown in pickers:
// brand and bank for cards, bank for wallets, the bare name otherwise.
func FormatPaymentMethodName(pm models.PaymentMethod) string {
	switch pm.Type {
	case models.PaymentTypeCreditCard, models.PaymentTypeDebitCard:
		name := pm.Name
		if pm.Brand != "" {
			name = pm.Brand + " " + name
		}
		if pm.BankName != "" {
			name = name + " (" + pm.BankName + ")"
		}
		if pm.LastFourDigits != "" {
			name = name + " ****" + pm.LastFourDigits
		}
		return name
	case models.PaymentTypeDigitalWallet:
		if pm.BankName != "" {
			return pm.Name + " (" + pm.BankName + ")"
		}
	}
	return pm.Name
}

func nullableFloat(f float64) interface{} {
	if f == 0 {
		return nil
	}
	return f
}

func nullableInt(i int) interface{} {
	if i == 0 {
		return nil
	}
	return i
}
