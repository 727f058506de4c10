package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSettlementTransaction(t *testing.T) {
	s := Settlement{
		GroupID:      "g1",
		FromPersonID: "bob",
		ToPersonID:   "alice",
		Amount:       decimal.NewFromInt(25),
		Date:         "2024-05-01",
	}

	tx := s.Transaction()
	if tx.Description != SettlementDescription {
		t.Errorf("description: expected %q, got %q", SettlementDescription, tx.Description)
	}
	if tx.PaidByID != "bob" || len(tx.Participants) != 1 || tx.Participants[0] != "alice" {
		t.Errorf("expected bob paying for alice, got %+v", tx)
	}
	if tx.GroupID != "g1" || tx.Date != "2024-05-01" || !tx.Amount.Equal(s.Amount) {
		t.Errorf("fields not carried over: %+v", tx)
	}

	s.Note = " cash "
	if got := s.Transaction().Description; got != "Settlement: cash" {
		t.Errorf("description with note: got %q", got)
	}
}
