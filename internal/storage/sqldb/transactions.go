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

const transactionColumns = "id, group_id, description, amount, paid_by_id, date, location, created_by, created_at"

// CreateTransaction appends a transaction to its group.
func (s *Store) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	if tx.CreatedAt == 0 {
		tx.CreatedAt = time.Now().Unix()
	}

	return s.inTx(ctx, func(q querier) error {
		if err := s.requireGroup(ctx, q, tx.GroupID); err != nil {
			return err
		}
		pos, err := s.nextPosition(ctx, q, "transactions", "group_id = ?", tx.GroupID)
		if err != nil {
			return err
		}
		return s.insertTransaction(ctx, q, tx, pos)
	})
}

func (s *Store) insertTransaction(ctx context.Context, q querier, tx *models.Transaction, pos int64) error {
	_, err := q.ExecContext(ctx, s.rebind(
		`INSERT INTO transactions (`+transactionColumns+`, position)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		tx.ID, tx.GroupID, tx.Description, tx.Amount, tx.PaidByID,
		tx.Date, tx.Location, tx.CreatedBy, tx.CreatedAt, pos,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return s.insertParticipants(ctx, q, tx)
}

func (s *Store) insertParticipants(ctx context.Context, q querier, tx *models.Transaction) error {
	for i, personID := range tx.Participants {
		_, err := q.ExecContext(ctx, s.rebind(
			"INSERT INTO transaction_participants (group_id, transaction_id, person_id, position) VALUES (?, ?, ?, ?)"),
			tx.GroupID, tx.ID, personID, i+1,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}
	return nil
}

// GetTransaction retrieves a transaction within a group.
func (s *Store) GetTransaction(ctx context.Context, groupID, transactionID string) (*models.Transaction, error) {
	tx := &models.Transaction{}
	err := s.db.QueryRowContext(ctx, s.rebind(
		"SELECT "+transactionColumns+" FROM transactions WHERE group_id = ? AND id = ?"),
		groupID, transactionID,
	).Scan(&tx.ID, &tx.GroupID, &tx.Description, &tx.Amount, &tx.PaidByID,
		&tx.Date, &tx.Location, &tx.CreatedBy, &tx.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("transaction %s: %w", transactionID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	participants, err := s.listParticipants(ctx, s.db, groupID)
	if err != nil {
		return nil, err
	}
	tx.Participants = participants[tx.ID]
	if tx.Participants == nil {
		tx.Participants = []string{}
	}

	return tx, nil
}

// listTransactions returns a group's transactions in insertion order.
func (s *Store) listTransactions(ctx context.Context, q querier, groupID string) ([]models.Transaction, error) {
	rows, err := q.QueryContext(ctx, s.rebind(
		"SELECT "+transactionColumns+" FROM transactions WHERE group_id = ? ORDER BY position"),
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}

	transactions := []models.Transaction{}
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(&tx.ID, &tx.GroupID, &tx.Description, &tx.Amount, &tx.PaidByID,
			&tx.Date, &tx.Location, &tx.CreatedBy, &tx.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, tx)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	// Participants are read only after the transaction rows are closed; the
	// SQLite store runs on a single connection.
	participants, err := s.listParticipants(ctx, q, groupID)
	if err != nil {
		return nil, err
	}
	for i := range transactions {
		transactions[i].Participants = participants[transactions[i].ID]
		if transactions[i].Participants == nil {
			transactions[i].Participants = []string{}
		}
	}

	return transactions, nil
}

// listParticipants maps transaction IDs to their participant IDs in insertion order.
func (s *Store) listParticipants(ctx context.Context, q querier, groupID string) (map[string][]string, error) {
	rows, err := q.QueryContext(ctx, s.rebind(
		`SELECT transaction_id, person_id FROM transaction_participants
		 WHERE group_id = ? ORDER BY transaction_id, position`),
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	participants := make(map[string][]string)
	for rows.Next() {
		var txID, personID string
		if err := rows.Scan(&txID, &personID); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants[txID] = append(participants[txID], personID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}

	return participants, nil
}

// UpdateTransaction replaces description, amount, payer, participants, date
// and location. ID, group, creator and creation time are kept.
func (s *Store) UpdateTransaction(ctx context.Context, tx *models.Transaction) error {
	return s.inTx(ctx, func(q querier) error {
		result, err := q.ExecContext(ctx, s.rebind(
			`UPDATE transactions
			 SET description = ?, amount = ?, paid_by_id = ?, date = ?, location = ?
			 WHERE group_id = ? AND id = ?`),
			tx.Description, tx.Amount, tx.PaidByID, tx.Date, tx.Location,
			tx.GroupID, tx.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update transaction: %w", err)
		}
		if err := requireAffected(result, "transaction", tx.ID); err != nil {
			return err
		}

		_, err = q.ExecContext(ctx, s.rebind(
			"DELETE FROM transaction_participants WHERE group_id = ? AND transaction_id = ?"),
			tx.GroupID, tx.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to clear participants: %w", err)
		}
		return s.insertParticipants(ctx, q, tx)
	})
}

// DeleteTransaction removes a transaction and its participants.
func (s *Store) DeleteTransaction(ctx context.Context, groupID, transactionID string) error {
	return s.inTx(ctx, func(q querier) error {
		_, err := q.ExecContext(ctx, s.rebind(
			"DELETE FROM transaction_participants WHERE group_id = ? AND transaction_id = ?"),
			groupID, transactionID,
		)
		if err != nil {
			return fmt.Errorf("failed to delete participants: %w", err)
		}

		result, err := q.ExecContext(ctx, s.rebind(
			"DELETE FROM transactions WHERE group_id = ? AND id = ?"),
			groupID, transactionID,
		)
		if err != nil {
			return fmt.Errorf("failed to delete transaction: %w", err)
		}
		return requireAffected(result, "transaction", transactionID)
	})
}

func requireAffected(result sql.Result, kind, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, storage.ErrNotFound)
	}
	return nil
}
