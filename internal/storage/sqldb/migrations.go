package sqldb

import (
	"context"
	"fmt"
)

// schema contains the SQL statements to set up the database schema.
// They run on startup to ensure tables exist, one statement at a time, and
// stay within the subset of SQL shared by SQLite and PostgreSQL.
// IMPORTANT: groups must be created BEFORE its child tables due to foreign key constraints.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS groups (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    created_by TEXT NOT NULL DEFAULT '',
    created_at BIGINT NOT NULL,
    position BIGINT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS people (
    group_id TEXT NOT NULL,
    id TEXT NOT NULL,
    name TEXT NOT NULL,
    user_id TEXT NOT NULL DEFAULT '',
    position BIGINT NOT NULL,
    PRIMARY KEY (group_id, id),
    FOREIGN KEY (group_id) REFERENCES groups(id) ON DELETE CASCADE
)`,
	`CREATE TABLE IF NOT EXISTS transactions (
    group_id TEXT NOT NULL,
    id TEXT NOT NULL,
    description TEXT NOT NULL,
    amount TEXT NOT NULL,
    paid_by_id TEXT NOT NULL,
    date TEXT NOT NULL DEFAULT '',
    location TEXT NOT NULL DEFAULT '',
    created_by TEXT NOT NULL DEFAULT '',
    created_at BIGINT NOT NULL,
    position BIGINT NOT NULL,
    PRIMARY KEY (group_id, id),
    FOREIGN KEY (group_id) REFERENCES groups(id) ON DELETE CASCADE
)`,
	`CREATE TABLE IF NOT EXISTS transaction_participants (
    group_id TEXT NOT NULL,
    transaction_id TEXT NOT NULL,
    person_id TEXT NOT NULL,
    position BIGINT NOT NULL,
    PRIMARY KEY (group_id, transaction_id, person_id),
    FOREIGN KEY (group_id, transaction_id) REFERENCES transactions(group_id, id) ON DELETE CASCADE
)`,
	`CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    display_name TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    created_at BIGINT NOT NULL,
    updated_at BIGINT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS events (
    id TEXT PRIMARY KEY,
    event_type TEXT NOT NULL,
    event_data TEXT NOT NULL,
    created_at BIGINT NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_people_group_id ON people(group_id)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_group_id ON transactions(group_id)`,
	`CREATE INDEX IF NOT EXISTS idx_participants_transaction ON transaction_participants(group_id, transaction_id)`,
	`CREATE INDEX IF NOT EXISTS idx_events_type ON events(event_type)`,
}

// runMigrations executes the schema setup.
func (s *Store) runMigrations(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}
