package services

import (
	"database/sql"
	"fmt"
	"math"
	"strings"
	"time"

	"monedero/backend/database"
	"monedero/backend/models"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// CreateTransactionRequest carries the recorder's input. Dates are
// YYYY-MM-DD strings as sent by the date pickers.
type CreateTransactionRequest struct {
	Type            string  `json:"type"`
	Amount          float64 `json:"amount"`
	Description     string  `json:"description"`
	CategoryName    string  `json:"categoryName"`
	SubcategoryID   string  `json:"subcategoryId,omitempty"`
	PaymentMethodID string  `json:"paymentMethodId,omitempty"`
	TransactionDate string  `json:"transactionDate"`
	Notes           string  `json:"notes,omitempty"`
	IsDebt          bool    `json:"isDebt"`
	Installments    int     `json:"installments,omitempty"`
	DueDate         string  `json:"dueDate,omitempty"`
}

// CreateTransaction records one financial event for the user: the category
// name is resolved (created from a template if absent), the transaction row
// is written with status paid and current installment 1, and a financed
// transaction additionally gets its installment schedule. Row and schedule
// are committed in a single store transaction, so either both exist or
// neither does.
func CreateTransaction(userID string, req CreateTransactionRequest) (*models.Transaction, error) {
	if req.Type != models.TypeExpense && req.Type != models.TypeIncome {
		return nil, fmt.Errorf("%w: type must be expense or income", ErrValidation)
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be greater than zero", ErrValidation)
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrValidation)
	}

	transactionDate, err := time.Parse(dateLayout, req.TransactionDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid transaction date %q", ErrValidation, req.TransactionDate)
	}

	var dueDate *time.Time
	if req.DueDate != "" {
		parsed, err := time.Parse(dateLayout, req.DueDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid due date %q", ErrValidation, req.DueDate)
		}
		dueDate = &parsed
	}

	categoryID, err := EnsureCategory(userID, req.CategoryName)
	if err != nil {
		return nil, err
	}

	installments := req.Installments
	if installments < 1 {
		installments = 1
	}

	now := time.Now()
	t := &models.Transaction{
		ID:                 uuid.NewString(),
		UserID:             userID,
		CategoryID:         categoryID,
		SubcategoryID:      req.SubcategoryID,
		PaymentMethodID:    req.PaymentMethodID,
		Type:               req.Type,
		Amount:             req.Amount,
		Currency:           models.DefaultCurrency,
		Description:        description,
		Notes:              strings.TrimSpace(req.Notes),
		TransactionDate:    transactionDate,
		DueDate:            dueDate,
		Status:             models.StatusPaid,
		IsDebt:             req.IsDebt,
		Installments:       installments,
		CurrentInstallment: 1,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	tx, err := database.DB.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO transactions (id, user_id, category_id, subcategory_id, payment_method_id,
			type, amount, currency, description, notes, transaction_date, due_date,
			status, is_debt, installments, current_installment, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.UserID, t.CategoryID, nullable(t.SubcategoryID), nullable(t.PaymentMethodID),
		t.Type, t.Amount, t.Currency, t.Description, nullable(t.Notes), t.TransactionDate, dueDate,
		t.Status, t.IsDebt, t.Installments, t.CurrentInstallment, now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to insert transaction: %w", err)
	}

	if req.IsDebt && installments > 1 && dueDate != nil {
		for _, inst := range ScheduleInstallments(t.ID, req.Amount, installments, *dueDate) {
			_, err = tx.Exec(`
				INSERT INTO debt_installments (id, transaction_id, installment_number, amount, due_date, status)
				VALUES (?, ?, ?, ?, ?, ?)
			`, inst.ID, inst.TransactionID, inst.Number, inst.Amount, inst.DueDate, inst.Status)
			if err != nil {
				return nil, fmt.Errorf("failed to insert installment %d: %w", inst.Number, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return t, nil
}

// TransactionFilter narrows and pages a transaction listing.
type TransactionFilter struct {
	Type            string
	CategoryID      string
	PaymentMethodID string
	StartDate       string
	EndDate         string
	Search          string
	Page            int
	Limit           int
}

// GetUserTransactions lists the user's transactions newest first with
// category and payment method names joined in, honoring the filter and
// returning pagination metadata.
func GetUserTransactions(userID string, filter TransactionFilter) (*models.TransactionPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	where := " WHERE t.user_id = ?"
	args := []interface{}{userID}

	if filter.Type != "" {
		where += " AND t.type = ?"
		args = append(args, filter.Type)
	}
	if filter.CategoryID != "" {
		where += " AND t.category_id = ?"
		args = append(args, filter.CategoryID)
	}
	if filter.PaymentMethodID != "" {
		where += " AND t.payment_method_id = ?"
		args = append(args, filter.PaymentMethodID)
	}
	// date() keeps both bounds inclusive at day granularity
	if filter.StartDate != "" {
		where += " AND date(t.transaction_date) >= date(?)"
		args = append(args, filter.StartDate)
	}
	if filter.EndDate != "" {
		where += " AND date(t.transaction_date) <= date(?)"
		args = append(args, filter.EndDate)
	}
	if filter.Search != "" {
		where += " AND (t.description LIKE ? OR t.notes LIKE ?)"
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}

	var total int
	err := database.DB.QueryRow("SELECT COUNT(*) FROM transactions t"+where, args...).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}

	query := `
		SELECT t.id, t.user_id, t.category_id, t.subcategory_id, t.payment_method_id,
		       t.type, t.amount, t.currency, t.description, t.notes, t.transaction_date,
		       t.due_date, t.status, t.is_debt, t.installments, t.current_installment,
		       t.created_at, t.updated_at, c.name, pm.name
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		LEFT JOIN payment_methods pm ON pm.id = t.payment_method_id
	` + where + `
		ORDER BY t.transaction_date DESC, t.created_at DESC
		LIMIT ? OFFSET ?
	`
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := database.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}

	return &models.TransactionPage{
		Data: transactions,
		Pagination: models.Pagination{
			Page:       filter.Page,
			Limit:      filter.Limit,
			Total:      total,
			TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		},
	}, nil
}

// GetTransaction fetches one transaction scoped to the user.
func GetTransaction(userID, transactionID string) (*models.Transaction, error) {
	row := database.DB.QueryRow(`
		SELECT t.id, t.user_id, t.category_id, t.subcategory_id, t.payment_method_id,
		       t.type, t.amount, t.currency, t.description, t.notes, t.transaction_date,
		       t.due_date, t.status, t.is_debt, t.installments, t.current_installment,
		       t.created_at, t.updated_at, c.name, pm.name
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		LEFT JOIN payment_methods pm ON pm.id = t.payment_method_id
		WHERE t.id = ? AND t.user_id = ?
	`, transactionID, userID)

	t, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: transaction", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateTransactionRequest carries a partial update; nil fields are left
// unchanged.
type UpdateTransactionRequest struct {
	Type            *string  `json:"type,omitempty"`
	Amount          *float64 `json:"amount,omitempty"`
	Description     *string  `json:"description,omitempty"`
	CategoryName    *string  `json:"categoryName,omitempty"`
	SubcategoryID   *string  `json:"subcategoryId,omitempty"`
	PaymentMethodID *string  `json:"paymentMethodId,omitempty"`
	TransactionDate *string  `json:"transactionDate,omitempty"`
	Notes           *string  `json:"notes,omitempty"`
	DueDate         *string  `json:"dueDate,omitempty"`
	IsDebt          *bool    `json:"isDebt,omitempty"`
	Installments    *int     `json:"installments,omitempty"`
}

// UpdateTransaction applies a partial update to a user's transaction. A
// category name, when present, goes through the same get-or-create
// resolution as creation.
func UpdateTransaction(userID, transactionID string, req UpdateTransactionRequest) (*models.Transaction, error) {
	sets := []string{}
	args := []interface{}{}

	if req.Type != nil {
		if *req.Type != models.TypeExpense && *req.Type != models.TypeIncome {
			return nil, fmt.Errorf("%w: type must be expense or income", ErrValidation)
		}
		sets = append(sets, "type = ?")
		args = append(args, *req.Type)
	}
	if req.Amount != nil {
		if *req.Amount <= 0 {
			return nil, fmt.Errorf("%w: amount must be greater than zero", ErrValidation)
		}
		sets = append(sets, "amount = ?")
		args = append(args, *req.Amount)
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			return nil, fmt.Errorf("%w: description cannot be empty", ErrValidation)
		}
		sets = append(sets, "description = ?")
		args = append(args, description)
	}
	if req.CategoryName != nil {
		categoryID, err := EnsureCategory(userID, *req.CategoryName)
		if err != nil {
			return nil, err
		}
		sets = append(sets, "category_id = ?")
		args = append(args, categoryID)
	}
	if req.SubcategoryID != nil {
		sets = append(sets, "subcategory_id = ?")
		args = append(args, nullable(*req.SubcategoryID))
	}
	if req.PaymentMethodID != nil {
		sets = append(sets, "payment_method_id = ?")
		args = append(args, nullable(*req.PaymentMethodID))
	}
	if req.TransactionDate != nil {
		parsed, err := time.Parse(dateLayout, *req.TransactionDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid transaction date %q", ErrValidation, *req.TransactionDate)
		}
		sets = append(sets, "transaction_date = ?")
		args = append(args, parsed)
	}
	if req.Notes != nil {
		sets = append(sets, "notes = ?")
		args = append(args, nullable(strings.TrimSpace(*req.Notes)))
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			sets = append(sets, "due_date = NULL")
		} else {
			parsed, err := time.Parse(dateLayout, *req.DueDate)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid due date %q", ErrValidation, *req.DueDate)
			}
			sets = append(sets, "due_date = ?")
			args = append(args, parsed)
		}
	}
	if req.IsDebt != nil {
		sets = append(sets, "is_debt = ?")
		args = append(args, *req.IsDebt)
	}
	if req.Installments != nil {
		sets = append(sets, "installments = ?")
		args = append(args, *req.Installments)
	}

	if len(sets) == 0 {
		return nil, fmt.Errorf("%w: nothing to update", ErrValidation)
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now())
	args = append(args, transactionID, userID)

	result, err := database.DB.Exec(
		"UPDATE transactions SET "+strings.Join(sets, ", ")+" WHERE id = ? AND user_id = ?",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w: transaction", ErrNotFound)
	}

	return GetTransaction(userID, transactionID)
}

// DeleteTransaction removes a transaction together with its installment
// schedule in one store transaction. Installments are owned exclusively by
// their parent and never outlive it.
func DeleteTransaction(userID, transactionID string) error {
	tx, err := database.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRow(
		"SELECT COUNT(*) FROM transactions WHERE id = ? AND user_id = ?",
		transactionID, userID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to look up transaction: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("%w: transaction", ErrNotFound)
	}

	_, err = tx.Exec("DELETE FROM debt_installments WHERE transaction_id = ?", transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete installments: %w", err)
	}

	_, err = tx.Exec("DELETE FROM transactions WHERE id = ? AND user_id = ?", transactionID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	return tx.Commit()
}

// GetInstallments lists a transaction's installment schedule in number
// order.
func GetInstallments(userID, transactionID string) ([]models.Installment, error) {
	if _, err := GetTransaction(userID, transactionID); err != nil {
		return nil, err
	}

	rows, err := database.DB.Query(`
		SELECT id, transaction_id, installment_number, amount, due_date, status, paid_date, created_at
		FROM debt_installments
		WHERE transaction_id = ?
		ORDER BY installment_number
	`, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query installments: %w", err)
	}
	defer rows.Close()

	installments := []models.Installment{}
	for rows.Next() {
		var inst models.Installment
		var paidDate sql.NullTime
		err := rows.Scan(&inst.ID, &inst.TransactionID, &inst.Number, &inst.Amount,
			&inst.DueDate, &inst.Status, &paidDate, &inst.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan installment: %w", err)
		}
		if paidDate.Valid {
			inst.PaidDate = &paidDate.Time
		}
		installments = append(installments, inst)
	}

	return installments, rows.Err()
}

// PayInstallment marks one installment paid with today's date and advances
// the parent's current installment counter.
func PayInstallment(userID, transactionID string, number int) error {
	tx, err := database.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var owned int
	err = tx.QueryRow(
		"SELECT COUNT(*) FROM transactions WHERE id = ? AND user_id = ?",
		transactionID, userID,
	).Scan(&owned)
	if err != nil {
		return fmt.Errorf("failed to look up transaction: %w", err)
	}
	if owned == 0 {
		return fmt.Errorf("%w: transaction", ErrNotFound)
	}

	now := time.Now()
	result, err := tx.Exec(`
		UPDATE debt_installments
		SET status = ?, paid_date = ?
		WHERE transaction_id = ? AND installment_number = ? AND status != ?
	`, models.StatusPaid, now, transactionID, number, models.StatusPaid)
	if err != nil {
		return fmt.Errorf("failed to pay installment: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: unpaid installment %d", ErrNotFound, number)
	}

	_, err = tx.Exec(`
		UPDATE transactions
		SET current_installment = ?, updated_at = ?
		WHERE id = ? AND current_installment < ?
	`, number, now, transactionID, number)
	if err != nil {
		return fmt.Errorf("failed to advance current installment: %w", err)
	}

	return tx.Commit()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTransaction(row scanner) (*models.Transaction, error) {
	var t models.Transaction
	var subcategoryID, paymentMethodID, notes, paymentMethodName sql.NullString
	var dueDate sql.NullTime

	err := row.Scan(&t.ID, &t.UserID, &t.CategoryID, &subcategoryID, &paymentMethodID,
		&t.Type, &t.Amount, &t.Currency, &t.Description, &notes, &t.TransactionDate,
		&dueDate, &t.Status, &t.IsDebt, &t.Installments, &t.CurrentInstallment,
		&t.CreatedAt, &t.UpdatedAt, &t.CategoryName, &paymentMethodName)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan transaction: %w", err)
	}

	t.SubcategoryID = subcategoryID.String
	t.PaymentMethodID = paymentMethodID.String
	t.Notes = notes.String
	t.PaymentMethodName = paymentMethodName.String
	if dueDate.Valid {
		t.DueDate = &dueDate.Time
	}
	return &t, nil
}

// nullable maps empty strings to NULL so optional references stay unset in
// the store.
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
