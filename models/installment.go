package models

import "time"

// Installment is one scheduled partial payment of a financed transaction.
// Installment numbers are 1-based and contiguous per transaction.
type Installment struct {
	ID            string     `json:"id"`
	TransactionID string     `json:"transactionId"`
	Number        int        `json:"installmentNumber"`
	Amount        float64    `json:"amount"`
	DueDate       time.Time  `json:"dueDate"`
	Status        string     `json:"status"`
	PaidDate      *time.Time `json:"paidDate,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}
