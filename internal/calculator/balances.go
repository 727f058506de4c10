package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/tripsplit/internal/models"
)

// CalculateBalances computes each roster member's totals across a group's
// transactions, in roster order.
//
// Algorithm:
// - For each transaction: payer paid +amount, each participant owes one share
// - Aggregate: net = paid - share
// - Amounts are accumulated at full precision and rounded to 2 places at output
//
// The same skip rules as CalculateDebts apply, so a payer missing from the
// roster is never credited and unknown participants are never charged.
func CalculateBalances(group models.Group) []models.MemberBalance {
	roster := rosterIDs(group.People)
	balances := make(map[string]*models.MemberBalance, len(roster))
	for _, id := range roster {
		balances[id] = &models.MemberBalance{
			PersonID: id,
			Paid:     decimal.Zero,
			Share:    decimal.Zero,
		}
	}

	for _, tx := range group.Transactions {
		share, participants := shareOf(tx)
		if share.IsZero() {
			continue
		}

		// Only the part advanced for people on the roster counts as paid
		payer, payerKnown := balances[tx.PaidByID]
		for _, p := range participants {
			bal, ok := balances[p]
			if !ok || !payerKnown {
				continue
			}
			bal.Share = bal.Share.Add(share)
			payer.Paid = payer.Paid.Add(share)
		}
	}

	out := make([]models.MemberBalance, 0, len(roster))
	for _, id := range roster {
		bal := balances[id]
		out = append(out, models.MemberBalance{
			PersonID: id,
			Paid:     bal.Paid.Round(outputPlaces),
			Share:    bal.Share.Round(outputPlaces),
			Net:      bal.Paid.Sub(bal.Share).Round(outputPlaces),
		})
	}
	return out
}
