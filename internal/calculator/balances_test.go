package calculator

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/tripsplit/internal/models"
)

func TestCalculateBalances(t *testing.T) {
	tests := []struct {
		name         string
		group        models.Group
		validateFunc func(t *testing.T, balances []models.MemberBalance)
	}{
		{
			name:  "no transactions gives zero balances in roster order",
			group: models.Group{People: people("C", "A", "B")},
			validateFunc: func(t *testing.T, balances []models.MemberBalance) {
				if len(balances) != 3 {
					t.Fatalf("got %d balances, want 3", len(balances))
				}
				for i, id := range []string{"C", "A", "B"} {
					if balances[i].PersonID != id {
						t.Errorf("balances[%d].PersonID = %s, want %s", i, balances[i].PersonID, id)
					}
					if !balances[i].Net.IsZero() {
						t.Errorf("%s net = %s, want 0", id, balances[i].Net)
					}
				}
			},
		},
		{
			name: "demo trip",
			group: models.Group{
				People: people("M", "A", "J"),
				Transactions: []models.Transaction{
					tx("120", "M", "M", "A"),
					tx("180", "J", "M", "A", "J"),
				},
			},
			validateFunc: func(t *testing.T, balances []models.MemberBalance) {
				// M: paid 120, share 60 + 60 = 120, net 0
				// A: paid 0, share 60 + 60 = 120, net -120
				// J: paid 180, share 60, net 120
				want := map[string][3]string{
					"M": {"120.00", "120.00", "0.00"},
					"A": {"0.00", "120.00", "-120.00"},
					"J": {"180.00", "60.00", "120.00"},
				}
				for _, b := range balances {
					w := want[b.PersonID]
					got := [3]string{b.Paid.StringFixed(2), b.Share.StringFixed(2), b.Net.StringFixed(2)}
					if got != w {
						t.Errorf("%s balance = %v, want %v", b.PersonID, got, w)
					}
				}
			},
		},
		{
			name: "nets sum to zero with uneven shares",
			group: models.Group{
				People: people("A", "B", "C"),
				Transactions: []models.Transaction{
					tx("100", "A", "A", "B", "C"),
					tx("10", "B", "A", "B", "C"),
					tx("10", "B", "A", "B", "C"),
					tx("10", "B", "A", "B", "C"),
				},
			},
			validateFunc: func(t *testing.T, balances []models.MemberBalance) {
				sum := decimal.Zero
				for _, b := range balances {
					sum = sum.Add(b.Net)
				}
				if sum.Abs().GreaterThan(decimal.RequireFromString("0.01")) {
					t.Errorf("nets sum to %s, want ~0", sum)
				}
				if got := balances[1].Paid.StringFixed(2); got != "30.00" {
					t.Errorf("B paid = %s, want 30.00", got)
				}
			},
		},
		{
			name: "unknown payer is never credited",
			group: models.Group{
				People:       people("A", "B"),
				Transactions: []models.Transaction{tx("50", "ghost", "A", "B")},
			},
			validateFunc: func(t *testing.T, balances []models.MemberBalance) {
				for _, b := range balances {
					if !b.Paid.IsZero() || !b.Share.IsZero() {
						t.Errorf("%s balance = %+v, want zero", b.PersonID, b)
					}
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validateFunc(t, CalculateBalances(tt.group))
		})
	}
}
