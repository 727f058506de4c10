package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
)

// CreateGroup persists a new group and its initial roster.
func (s *Store) CreateGroup(ctx context.Context, group *models.Group) error {
	// Generate IDs if not set
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}
	for i := range group.People {
		if group.People[i].ID == "" {
			group.People[i].ID = uuid.New().String()
		}
	}

	return s.inTx(ctx, func(q querier) error {
		pos, err := s.nextPosition(ctx, q, "groups", "")
		if err != nil {
			return err
		}
		return s.insertGroup(ctx, q, group, pos)
	})
}

// insertGroup writes a group row and its roster. Transactions are not written.
func (s *Store) insertGroup(ctx context.Context, q querier, group *models.Group, pos int64) error {
	_, err := q.ExecContext(ctx, s.rebind(
		"INSERT INTO groups (id, name, created_by, created_at, position) VALUES (?, ?, ?, ?, ?)"),
		group.ID, group.Name, group.CreatedBy, group.CreatedAt, pos,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}

	for i, person := range group.People {
		_, err = q.ExecContext(ctx, s.rebind(
			"INSERT INTO people (group_id, id, name, user_id, position) VALUES (?, ?, ?, ?, ?)"),
			group.ID, person.ID, person.Name, person.UserID, i+1,
		)
		if err != nil {
			return fmt.Errorf("failed to insert person: %w", err)
		}
	}
	return nil
}

// GetGroup retrieves a group by ID, including its roster and transactions.
func (s *Store) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	return s.getGroup(ctx, s.db, groupID)
}

func (s *Store) getGroup(ctx context.Context, q querier, groupID string) (*models.Group, error) {
	group := &models.Group{}
	err := q.QueryRowContext(ctx, s.rebind(
		"SELECT id, name, created_by, created_at FROM groups WHERE id = ?"),
		groupID,
	).Scan(&group.ID, &group.Name, &group.CreatedBy, &group.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	if group.People, err = s.listPeople(ctx, q, groupID); err != nil {
		return nil, err
	}
	if group.Transactions, err = s.listTransactions(ctx, q, groupID); err != nil {
		return nil, err
	}

	return group, nil
}

// listPeople returns a group's roster in insertion order.
func (s *Store) listPeople(ctx context.Context, q querier, groupID string) ([]models.Person, error) {
	rows, err := q.QueryContext(ctx, s.rebind(
		"SELECT id, name, user_id FROM people WHERE group_id = ? ORDER BY position"),
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get people: %w", err)
	}
	defer rows.Close()

	people := []models.Person{}
	for rows.Next() {
		var p models.Person
		if err := rows.Scan(&p.ID, &p.Name, &p.UserID); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate people: %w", err)
	}

	return people, nil
}

// DeleteGroup removes a group and everything recorded in it.
func (s *Store) DeleteGroup(ctx context.Context, groupID string) error {
	return s.inTx(ctx, func(q querier) error {
		if err := s.requireGroup(ctx, q, groupID); err != nil {
			return err
		}
		return s.deleteGroupRows(ctx, q, "WHERE group_id = ?", "WHERE id = ?", groupID)
	})
}

// deleteGroupRows deletes child rows before parents so it works with or
// without foreign key enforcement.
func (s *Store) deleteGroupRows(ctx context.Context, q querier, childWhere, groupWhere string, args ...any) error {
	for _, table := range []string{"transaction_participants", "transactions", "people"} {
		if _, err := q.ExecContext(ctx, s.rebind("DELETE FROM "+table+" "+childWhere), args...); err != nil {
			return fmt.Errorf("failed to delete from %s: %w", table, err)
		}
	}
	if _, err := q.ExecContext(ctx, s.rebind("DELETE FROM groups "+groupWhere), args...); err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	return nil
}

// requireGroup returns a storage.ErrNotFound error if the group doesn't exist.
func (s *Store) requireGroup(ctx context.Context, q querier, groupID string) error {
	var exists int
	err := q.QueryRowContext(ctx, s.rebind("SELECT 1 FROM groups WHERE id = ?"), groupID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check group existence: %w", err)
	}
	return nil
}

// AddPerson appends a person to the end of a group's roster.
func (s *Store) AddPerson(ctx context.Context, groupID string, person *models.Person) error {
	if person.ID == "" {
		person.ID = uuid.New().String()
	}

	return s.inTx(ctx, func(q querier) error {
		if err := s.requireGroup(ctx, q, groupID); err != nil {
			return err
		}
		pos, err := s.nextPosition(ctx, q, "people", "group_id = ?", groupID)
		if err != nil {
			return err
		}
		_, err = q.ExecContext(ctx, s.rebind(
			"INSERT INTO people (group_id, id, name, user_id, position) VALUES (?, ?, ?, ?, ?)"),
			groupID, person.ID, person.Name, person.UserID, pos,
		)
		if err != nil {
			return fmt.Errorf("failed to insert person: %w", err)
		}
		return nil
	})
}

// LoadGroups returns every group, oldest first.
func (s *Store) LoadGroups(ctx context.Context) ([]models.Group, error) {
	ids, err := s.groupIDs(ctx)
	if err != nil {
		return nil, err
	}

	groups := make([]models.Group, 0, len(ids))
	for _, id := range ids {
		group, err := s.GetGroup(ctx, id)
		if err != nil {
			return nil, err
		}
		groups = append(groups, *group)
	}
	return groups, nil
}

func (s *Store) groupIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id FROM groups ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan group id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}
	return ids, nil
}

// SaveGroups replaces every stored group with the given collection in a
// single transaction. Missing IDs and timestamps are filled in.
func (s *Store) SaveGroups(ctx context.Context, groups []models.Group) error {
	now := time.Now().Unix()
	return s.inTx(ctx, func(q querier) error {
		if err := s.deleteGroupRows(ctx, q, "", ""); err != nil {
			return err
		}

		for i := range groups {
			group := &groups[i]
			if group.ID == "" {
				group.ID = uuid.New().String()
			}
			if group.CreatedAt == 0 {
				group.CreatedAt = now
			}
			for j := range group.People {
				if group.People[j].ID == "" {
					group.People[j].ID = uuid.New().String()
				}
			}
			if err := s.insertGroup(ctx, q, group, int64(i+1)); err != nil {
				return err
			}

			for j := range group.Transactions {
				tx := &group.Transactions[j]
				tx.GroupID = group.ID
				if tx.ID == "" {
					tx.ID = uuid.New().String()
				}
				if tx.CreatedAt == 0 {
					tx.CreatedAt = now
				}
				if err := s.insertTransaction(ctx, q, tx, int64(j+1)); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
