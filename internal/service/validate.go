package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/pkg/api"
)

// buildTransaction validates user input against the group's roster and
// returns the transaction to record. today fills in a missing date.
func buildTransaction(group *models.Group, in api.TransactionInput, today time.Time) (*models.Transaction, error) {
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrInvalidTransaction)
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(in.Amount))
	if err != nil {
		return nil, fmt.Errorf("%w: amount %q is not a number", ErrInvalidTransaction, in.Amount)
	}
	if amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount must not be negative", ErrInvalidTransaction)
	}

	if _, ok := group.FindPerson(in.PaidByID); !ok {
		return nil, fmt.Errorf("%w: payer %q is not in the group", ErrInvalidTransaction, in.PaidByID)
	}

	participants := make([]string, 0, len(in.Participants))
	seen := make(map[string]bool, len(in.Participants))
	for _, id := range in.Participants {
		if seen[id] {
			continue
		}
		seen[id] = true
		if _, ok := group.FindPerson(id); !ok {
			return nil, fmt.Errorf("%w: participant %q is not in the group", ErrInvalidTransaction, id)
		}
		participants = append(participants, id)
	}
	if len(participants) == 0 {
		return nil, fmt.Errorf("%w: at least one participant is required", ErrInvalidTransaction)
	}

	date := strings.TrimSpace(in.Date)
	if date == "" {
		date = today.Format(models.DateLayout)
	} else if _, err := time.Parse(models.DateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrInvalidTransaction, in.Date)
	}

	return &models.Transaction{
		GroupID:      group.ID,
		Description:  description,
		Amount:       amount,
		PaidByID:     in.PaidByID,
		Participants: participants,
		Date:         date,
		Location:     strings.TrimSpace(in.Location),
	}, nil
}
