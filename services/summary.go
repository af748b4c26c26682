package services

import (
	"fmt"

	"monedero/backend/database"
	"monedero/backend/models"
)

// GetTransactionSummary aggregates the user's income, expenses, and balance
// over an optional YYYY-MM-DD date range. Formatted display strings use the
// currency field conventions.
func GetTransactionSummary(userID, startDate, endDate string) (*models.Summary, error) {
	query := "SELECT type, amount FROM transactions WHERE user_id = ?"
	args := []interface{}{userID}

	if startDate != "" {
		query += " AND date(transaction_date) >= date(?)"
		args = append(args, startDate)
	}
	if endDate != "" {
		query += " AND date(transaction_date) <= date(?)"
		args = append(args, endDate)
	}

	rows, err := database.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query summary: %w", err)
	}
	defer rows.Close()

	summary := &models.Summary{}
	for rows.Next() {
		var transactionType string
		var amount float64
		if err := rows.Scan(&transactionType, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan summary row: %w", err)
		}

		if transactionType == models.TypeIncome {
			summary.TotalIncome += amount
		} else {
			summary.TotalExpenses += amount
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read summary rows: %w", err)
	}

	summary.Balance = summary.TotalIncome - summary.TotalExpenses
	summary.TotalIncomeFormatted = FormatCurrency(summary.TotalIncome)
	summary.TotalExpensesFormatted = FormatCurrency(summary.TotalExpenses)
	summary.BalanceFormatted = FormatCurrency(summary.Balance)

	return summary, nil
}
