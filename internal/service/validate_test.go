package service

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/pkg/api"
)

func TestBuildTransaction(t *testing.T) {
	group := &models.Group{
		ID:     "g1",
		People: []models.Person{{ID: "a", Name: "Ann"}, {ID: "b", Name: "Ben"}},
	}
	today := time.Date(2025, 1, 31, 23, 59, 0, 0, time.UTC)

	tx, err := buildTransaction(group, api.TransactionInput{
		Description:  "Ferry",
		Amount:       " 12.345 ",
		PaidByID:     "b",
		Participants: []string{"b", "a", "b"},
	}, today)
	if err != nil {
		t.Fatalf("buildTransaction failed: %v", err)
	}

	if tx.GroupID != "g1" {
		t.Errorf("group: expected g1, got %q", tx.GroupID)
	}
	if !tx.Amount.Equal(decimal.RequireFromString("12.345")) {
		t.Errorf("amount: expected full precision 12.345, got %s", tx.Amount)
	}
	if len(tx.Participants) != 2 || tx.Participants[0] != "b" || tx.Participants[1] != "a" {
		t.Errorf("participants: expected [b a], got %v", tx.Participants)
	}
	if tx.Date != "2025-01-31" {
		t.Errorf("date: expected 2025-01-31, got %q", tx.Date)
	}

	_, err = buildTransaction(group, api.TransactionInput{Description: "x", Amount: "1", PaidByID: "a"}, today)
	if !errors.Is(err, ErrInvalidTransaction) {
		t.Errorf("expected ErrInvalidTransaction for no participants, got %v", err)
	}
}
