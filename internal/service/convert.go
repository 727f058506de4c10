package service

import (
	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/pkg/api"
)

func groupToAPI(g *models.Group) *api.Group {
	out := &api.Group{
		ID:           g.ID,
		Name:         g.Name,
		People:       make([]api.Person, len(g.People)),
		Transactions: make([]api.Transaction, len(g.Transactions)),
		CreatedBy:    g.CreatedBy,
		CreatedAt:    g.CreatedAt,
	}
	for i, p := range g.People {
		out.People[i] = personToAPI(p)
	}
	for i := range g.Transactions {
		out.Transactions[i] = *transactionToAPI(&g.Transactions[i])
	}
	return out
}

func groupFromAPI(g api.Group) models.Group {
	out := models.Group{
		ID:           g.ID,
		Name:         g.Name,
		People:       make([]models.Person, len(g.People)),
		Transactions: make([]models.Transaction, len(g.Transactions)),
		CreatedBy:    g.CreatedBy,
		CreatedAt:    g.CreatedAt,
	}
	for i, p := range g.People {
		out.People[i] = models.Person{ID: p.ID, Name: p.Name, UserID: p.UserID}
	}
	for i, tx := range g.Transactions {
		out.Transactions[i] = models.Transaction{
			ID:           tx.ID,
			GroupID:      g.ID,
			Description:  tx.Description,
			Amount:       tx.Amount,
			PaidByID:     tx.PaidByID,
			Participants: append([]string(nil), tx.Participants...),
			Date:         tx.Date,
			Location:     tx.Location,
			CreatedBy:    tx.CreatedBy,
			CreatedAt:    tx.CreatedAt,
		}
	}
	return out
}

func personToAPI(p models.Person) api.Person {
	return api.Person{ID: p.ID, Name: p.Name, UserID: p.UserID}
}

func transactionToAPI(tx *models.Transaction) *api.Transaction {
	participants := tx.Participants
	if participants == nil {
		participants = []string{}
	}
	return &api.Transaction{
		ID:           tx.ID,
		GroupID:      tx.GroupID,
		Description:  tx.Description,
		Amount:       tx.Amount,
		PaidByID:     tx.PaidByID,
		Participants: participants,
		Date:         tx.Date,
		Location:     tx.Location,
		CreatedBy:    tx.CreatedBy,
		CreatedAt:    tx.CreatedAt,
	}
}
