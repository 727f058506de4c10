package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/tripsplit/internal/models"
)

func TestSanitizeGroups(t *testing.T) {
	in := []models.Group{
		{
			ID:   "g1",
			Name: "Trip",
			People: []models.Person{
				{ID: "a", Name: "Ann"},
				{Name: "No ID"},
				{ID: "a", Name: "Ann again"},
			},
			Transactions: []models.Transaction{
				{ID: "t1", Amount: decimal.NewFromInt(9), PaidByID: "a", Participants: []string{"a", "a", "ghost"}},
				{ID: "t1", Amount: decimal.NewFromInt(9), PaidByID: "a", Participants: []string{"a"}},
				{Amount: decimal.NewFromInt(3), PaidByID: "a", Participants: []string{"a"}},
			},
		},
		{ID: "g1", Name: "Duplicate group"},
		{Name: "No ID"},
	}

	out, warnings := sanitizeGroups(in)

	require.Len(t, out, 2)
	assert.Equal(t, "g1", out[0].ID)
	assert.NotEmpty(t, out[1].ID)

	people := out[0].People
	require.Len(t, people, 2)
	assert.Equal(t, "a", people[0].ID)
	assert.NotEmpty(t, people[1].ID)

	txs := out[0].Transactions
	require.Len(t, txs, 2)
	assert.Equal(t, []string{"a"}, txs[0].Participants)
	assert.Equal(t, "g1", txs[0].GroupID)
	assert.NotEmpty(t, txs[1].ID)

	// duplicate person, ghost participant, duplicate transaction, duplicate group
	assert.Len(t, warnings, 4)

	// input is left untouched
	assert.Equal(t, []string{"a", "a", "ghost"}, in[0].Transactions[0].Participants)
	assert.Len(t, in[0].People, 3)
}

func TestSanitizeGroups_Empty(t *testing.T) {
	out, warnings := sanitizeGroups(nil)
	assert.Empty(t, out)
	assert.Empty(t, warnings)
}
