package models

import "time"

type PaymentMethod struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	BankID         string    `json:"bankId,omitempty"`
	Name           string    `json:"name"`
	Type           string    `json:"type"`
	Brand          string    `json:"brand,omitempty"`
	IsCredit       bool      `json:"isCredit"`
	CreditLimit    float64   `json:"creditLimit,omitempty"`
	LastFourDigits string    `json:"lastFourDigits,omitempty"`
	ExpiryMonth    int       `json:"expiryMonth,omitempty"`
	ExpiryYear     int       `json:"expiryYear,omitempty"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`

	// BankName is joined in for display formatting, not a column.
	BankName string `json:"bankName,omitempty"`
}
