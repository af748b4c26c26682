package models

// Summary aggregates a user's transactions over an optional date range.
type Summary struct {
	TotalIncome   float64 `json:"totalIncome"`
	TotalExpenses float64 `json:"totalExpenses"`
	Balance       float64 `json:"balance"`

	// Display strings in the user's currency convention.
	TotalIncomeFormatted   string `json:"totalIncomeFormatted"`
	TotalExpensesFormatted string `json:"totalExpensesFormatted"`
	BalanceFormatted       string `json:"balanceFormatted"`
}
