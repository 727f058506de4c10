package models

import "github.com/shopspring/decimal"

// DateLayout is the calendar-date format used for Transaction.Date.
const DateLayout = "2006-01-02"

// Transaction represents one expense event: PaidByID advanced Amount on
// behalf of everyone in Participants. The payer may or may not be a participant.
type Transaction struct {
	// ID is the unique identifier for the transaction (UUID format).
	ID string `json:"id"`

	// GroupID is the group this transaction belongs to.
	GroupID string `json:"groupId,omitempty"`

	// Description is what the expense was for (e.g., "Lunch").
	Description string `json:"description"`

	// Amount is the total paid. Never negative.
	Amount decimal.Decimal `json:"amount"`

	// PaidByID is the Person ID of the payer.
	PaidByID string `json:"paidById"`

	// Participants are the Person IDs sharing the expense equally.
	Participants []string `json:"participants"`

	// Date is when the expense happened, formatted with DateLayout.
	Date string `json:"date,omitempty"`

	// Location is an optional free-form place description.
	Location string `json:"location,omitempty"`

	// CreatedBy is the ID of the user who recorded the transaction, if known.
	CreatedBy string `json:"createdBy,omitempty"`

	// CreatedAt is the Unix timestamp when the transaction was recorded.
	CreatedAt int64 `json:"createdAt,omitempty"`
}
