package service

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/tripsplit/internal/models"
)

// sanitizeGroups repairs an imported collection so it can be stored:
// missing IDs are generated, duplicate IDs and dangling participant
// references are dropped, and transactions that cannot be attributed
// (unknown payer, no participants left, negative amount) are removed.
// Every change is reported as a warning.
func sanitizeGroups(groups []models.Group) ([]models.Group, []string) {
	var warnings []string
	warn := func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	out := make([]models.Group, 0, len(groups))
	seenGroups := make(map[string]bool, len(groups))
	for _, g := range groups {
		if g.ID == "" {
			g.ID = uuid.New().String()
		}
		if seenGroups[g.ID] {
			warn("group %s (%q): duplicate id, dropped", g.ID, g.Name)
			continue
		}
		seenGroups[g.ID] = true

		people := make([]models.Person, 0, len(g.People))
		roster := make(map[string]bool, len(g.People))
		for _, p := range g.People {
			if p.ID == "" {
				p.ID = uuid.New().String()
			}
			if roster[p.ID] {
				warn("group %s: duplicate person id %s (%q), dropped", g.ID, p.ID, p.Name)
				continue
			}
			roster[p.ID] = true
			people = append(people, p)
		}
		g.People = people

		transactions := make([]models.Transaction, 0, len(g.Transactions))
		seenTx := make(map[string]bool, len(g.Transactions))
		for _, tx := range g.Transactions {
			if tx.ID == "" {
				tx.ID = uuid.New().String()
			}
			tx.GroupID = g.ID
			switch {
			case seenTx[tx.ID]:
				warn("group %s: duplicate transaction id %s, dropped", g.ID, tx.ID)
				continue
			case !roster[tx.PaidByID]:
				warn("group %s: transaction %s (%q) paid by unknown person %q, dropped", g.ID, tx.ID, tx.Description, tx.PaidByID)
				continue
			case tx.Amount.IsNegative():
				warn("group %s: transaction %s (%q) has negative amount %s, dropped", g.ID, tx.ID, tx.Description, tx.Amount)
				continue
			}

			participants := make([]string, 0, len(tx.Participants))
			seen := make(map[string]bool, len(tx.Participants))
			for _, id := range tx.Participants {
				if seen[id] {
					continue
				}
				seen[id] = true
				if !roster[id] {
					warn("group %s: transaction %s: unknown participant %q removed", g.ID, tx.ID, id)
					continue
				}
				participants = append(participants, id)
			}
			if len(participants) == 0 {
				warn("group %s: transaction %s (%q) has no participants, dropped", g.ID, tx.ID, tx.Description)
				continue
			}
			tx.Participants = participants

			seenTx[tx.ID] = true
			transactions = append(transactions, tx)
		}
		g.Transactions = transactions

		out = append(out, g)
	}
	return out, warnings
}
