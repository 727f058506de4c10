package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/tripsplit/internal/models"
)

// outputPlaces is the number of fraction digits on emitted amounts.
const outputPlaces = 2

// pair is an ordered (debtor, creditor) key into the obligation table.
type pair struct {
	from string
	to   string
}

// CalculateDebts computes who owes whom within a group.
// It never mutates the group and is safe to call concurrently.
//
// Algorithm:
// - Gross: for each transaction, share = amount / |participants|; every
//   participant other than the payer owes the payer one share
// - Netting: for each pair of people, opposite obligations cancel and only the
//   residual is kept (two-party only; cycles across 3+ people are left as is)
// - Output: every residual > 0, rounded half away from zero to 2 places
//
// Ids that are not on the roster are skipped, and transactions without
// participants or with a negative amount contribute nothing.
func CalculateDebts(group models.Group) []models.Debt {
	roster := rosterIDs(group.People)
	if len(roster) < 2 || len(group.Transactions) == 0 {
		return []models.Debt{}
	}

	gross := grossObligations(roster, group.Transactions)
	netPairs(roster, gross)

	var debts []models.Debt
	for _, from := range roster {
		for _, to := range roster {
			if from == to {
				continue
			}
			amount := gross[pair{from: from, to: to}].Round(outputPlaces)
			// A residual below half a cent rounds to zero and is not a debt
			if !amount.IsPositive() {
				continue
			}
			debts = append(debts, models.Debt{
				FromPersonID: from,
				ToPersonID:   to,
				Amount:       amount,
			})
		}
	}

	if debts == nil {
		return []models.Debt{}
	}
	return debts
}

// rosterIDs returns the distinct person IDs in roster order.
func rosterIDs(people []models.Person) []string {
	seen := make(map[string]bool, len(people))
	ids := make([]string, 0, len(people))
	for _, p := range people {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		ids = append(ids, p.ID)
	}
	return ids
}

// grossObligations builds the table of raw amounts owed per ordered pair.
// Every ordered pair of distinct roster members has an entry.
func grossObligations(roster []string, transactions []models.Transaction) map[pair]decimal.Decimal {
	gross := make(map[pair]decimal.Decimal, len(roster)*len(roster))
	for _, from := range roster {
		for _, to := range roster {
			if from != to {
				gross[pair{from: from, to: to}] = decimal.Zero
			}
		}
	}

	for _, tx := range transactions {
		share, participants := shareOf(tx)
		if share.IsZero() {
			continue
		}
		for _, p := range participants {
			if p == tx.PaidByID {
				continue
			}
			key := pair{from: p, to: tx.PaidByID}
			owed, ok := gross[key]
			if !ok {
				// Payer or participant not on the roster
				continue
			}
			gross[key] = owed.Add(share)
		}
	}

	return gross
}

// shareOf returns the per-participant share of a transaction and its distinct
// participants. The divisor counts every distinct participant, including ids
// missing from the roster.
func shareOf(tx models.Transaction) (decimal.Decimal, []string) {
	participants := distinct(tx.Participants)
	if len(participants) == 0 || !tx.Amount.IsPositive() {
		return decimal.Zero, nil
	}
	return tx.Amount.Div(decimal.NewFromInt(int64(len(participants)))), participants
}

// netPairs offsets opposite obligations for every unordered pair in place.
func netPairs(roster []string, gross map[pair]decimal.Decimal) {
	for i, a := range roster {
		for _, b := range roster[i+1:] {
			ab := pair{from: a, to: b}
			ba := pair{from: b, to: a}
			aOwesB, bOwesA := gross[ab], gross[ba]

			if !aOwesB.IsPositive() || !bOwesA.IsPositive() {
				continue
			}
			if aOwesB.GreaterThan(bOwesA) {
				gross[ab] = aOwesB.Sub(bOwesA)
				gross[ba] = decimal.Zero
			} else {
				gross[ba] = bOwesA.Sub(aOwesB)
				gross[ab] = decimal.Zero
			}
		}
	}
}

func distinct(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
