// Package demo builds the sample group shown to first-time users.
package demo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
)

// GroupName is the name of the seeded group.
const GroupName = "Demo Trip"

// NewGroup returns the demo group: Michael, Andrew and James, a lunch
// Michael paid for himself and Andrew, and an activity James paid for all
// three. Transactions are dated from now.
func NewGroup(now time.Time) models.Group {
	michael := models.Person{ID: uuid.New().String(), Name: "Michael"}
	andrew := models.Person{ID: uuid.New().String(), Name: "Andrew"}
	james := models.Person{ID: uuid.New().String(), Name: "James"}

	date := now.Format(models.DateLayout)
	return models.Group{
		ID:     uuid.New().String(),
		Name:   GroupName,
		People: []models.Person{michael, andrew, james},
		Transactions: []models.Transaction{
			{
				ID:           uuid.New().String(),
				Description:  "Lunch",
				Amount:       decimal.NewFromInt(120),
				PaidByID:     michael.ID,
				Participants: []string{michael.ID, andrew.ID},
				Date:         date,
				CreatedAt:    now.Unix(),
			},
			{
				ID:           uuid.New().String(),
				Description:  "Activity",
				Amount:       decimal.NewFromInt(180),
				PaidByID:     james.ID,
				Participants: []string{michael.ID, andrew.ID, james.ID},
				Date:         date,
				CreatedAt:    now.Unix(),
			},
		},
		CreatedAt: now.Unix(),
	}
}

// Seed stores the demo group if the repository holds no groups yet.
// It reports whether anything was written.
func Seed(ctx context.Context, repo storage.GroupRepository, now time.Time) (bool, error) {
	groups, err := repo.LoadGroups(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check for existing groups: %w", err)
	}
	if len(groups) > 0 {
		return false, nil
	}

	if err := repo.SaveGroups(ctx, []models.Group{NewGroup(now)}); err != nil {
		return false, fmt.Errorf("failed to seed demo group: %w", err)
	}
	slog.Info("Demo group seeded", "name", GroupName)
	return true, nil
}
