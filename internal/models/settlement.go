package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// SettlementDescription prefixes the description of recorded settlements.
const SettlementDescription = "Settlement"

// Settlement represents a payment between group members to clear debts.
// It is stored as a Transaction paid by the debtor on behalf of the
// creditor, so the debt engine nets it against what the debtor owes.
type Settlement struct {
	// GroupID is the group this settlement belongs to.
	GroupID string

	// FromPersonID is the person who paid (debtor settling up).
	FromPersonID string

	// ToPersonID is the person who received payment (creditor being paid).
	ToPersonID string

	// Amount is the payment amount.
	Amount decimal.Decimal

	// Date is when the payment happened, formatted with DateLayout.
	Date string

	// Note is an optional description for the settlement.
	Note string
}

// Transaction returns the expense record equivalent to the settlement.
func (s Settlement) Transaction() Transaction {
	description := SettlementDescription
	if note := strings.TrimSpace(s.Note); note != "" {
		description += ": " + note
	}
	return Transaction{
		GroupID:      s.GroupID,
		Description:  description,
		Amount:       s.Amount,
		PaidByID:     s.FromPersonID,
		Participants: []string{s.ToPersonID},
		Date:         s.Date,
	}
}
