package models

import "time"

type Transaction struct {
	ID                 string     `json:"id"`
	UserID             string     `json:"userId"`
	CategoryID         string     `json:"categoryId"`
	SubcategoryID      string     `json:"subcategoryId,omitempty"`
	PaymentMethodID    string     `json:"paymentMethodId,omitempty"`
	Type               string     `json:"type"`
	Amount             float64    `json:"amount"`
	Currency           string     `json:"currency"`
	Description        string     `json:"description"`
	Notes              string     `json:"notes,omitempty"`
	TransactionDate    time.Time  `json:"transactionDate"`
	DueDate            *time.Time `json:"dueDate,omitempty"`
	Status             string     `json:"status"`
	IsDebt             bool       `json:"isDebt"`
	Installments       int        `json:"installments"`
	CurrentInstallment int        `json:"currentInstallment"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`

	// Joined names for list responses, not columns on the row.
	CategoryName      string `json:"categoryName,omitempty"`
	PaymentMethodName string `json:"paymentMethodName,omitempty"`
}

// Pagination describes one page of a transaction listing.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// TransactionPage is the list-endpoint response envelope.
type TransactionPage struct {
	Data       []Transaction `json:"data"`
	Pagination Pagination    `json:"pagination"`
}
