package models

import "github.com/shopspring/decimal"

// Debt means FromPersonID owes ToPersonID Amount.
// Debts are derived from a group's transactions and never persisted.
type Debt struct {
	FromPersonID string          `json:"fromPersonId"`
	ToPersonID   string          `json:"toPersonId"`
	Amount       decimal.Decimal `json:"amount"` // > 0, rounded to 2 places
}

// MemberBalance summarises one roster member's position in a group.
type MemberBalance struct {
	PersonID string
	Paid     decimal.Decimal // Total advanced for others and self
	Share    decimal.Decimal // Total of this person's shares across transactions
	Net      decimal.Decimal // Paid - Share. Positive = owed money, Negative = owes money
}
