// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/tripsplit/internal/eventlog"
	"github.com/mmynk/tripsplit/internal/models"
)

// ErrNotFound is wrapped by every lookup that finds no matching row.
var ErrNotFound = errors.New("not found")

// GroupRepository loads and saves the full collection of groups at once.
type GroupRepository interface {
	// LoadGroups returns every group with its roster and transactions,
	// oldest first.
	LoadGroups(ctx context.Context) ([]models.Group, error)

	// SaveGroups replaces the stored collection with the given groups.
	SaveGroups(ctx context.Context, groups []models.Group) error
}

// Store defines the interface for storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	GroupRepository

	// CreateGroup persists a new group including its initial roster.
	// Empty IDs and CreatedAt are populated by the store.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group with its roster and transactions.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// DeleteGroup removes a group and everything recorded in it.
	DeleteGroup(ctx context.Context, groupID string) error

	// AddPerson appends a person to a group's roster.
	// An empty person.ID is populated by the store.
	AddPerson(ctx context.Context, groupID string, person *models.Person) error

	// CreateTransaction appends a transaction to tx.GroupID.
	// Empty ID and CreatedAt are populated by the store.
	CreateTransaction(ctx context.Context, tx *models.Transaction) error

	// GetTransaction retrieves a transaction within a group.
	GetTransaction(ctx context.Context, groupID, transactionID string) (*models.Transaction, error)

	// UpdateTransaction replaces the editable fields of an existing transaction.
	UpdateTransaction(ctx context.Context, tx *models.Transaction) error

	// DeleteTransaction removes a transaction from a group.
	DeleteTransaction(ctx context.Context, groupID, transactionID string) error

	// CreateUser inserts a new user account.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail returns nil, nil when no user has the email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user account.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// SaveEvent appends an audit event.
	SaveEvent(ctx context.Context, event eventlog.Event) error

	// Close releases any resources held by the store.
	Close() error
}
