package models

// Transaction kinds
const (
	TypeExpense = "expense"
	TypeIncome  = "income"
)

// Transaction and installment statuses
const (
	StatusPaid    = "paid"
	StatusPending = "pending"
	StatusOverdue = "overdue"
	StatusPartial = "partial"
)

// Payment method types
const (
	PaymentTypeCash          = "cash"
	PaymentTypeDebitCard     = "debit_card"
	PaymentTypeCreditCard    = "credit_card"
	PaymentTypeBankTransfer  = "bank_transfer"
	PaymentTypeDigitalWallet = "digital_wallet"
	PaymentTypeOther         = "other"
)

// Bank types
const (
	BankTypeTraditional       = "traditional_bank"
	BankTypeDigital           = "digital_bank"
	BankTypeFintech           = "fintech"
	BankTypeCreditCardCompany = "credit_card_company"
	BankTypeCustom            = "custom"
)

// DefaultCurrency is applied to new transactions and profiles.
const DefaultCurrency = "ARS"
