package sqldb

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/tripsplit/internal/eventlog"
)

// SaveEvent appends an audit event.
func (s *Store) SaveEvent(ctx context.Context, e eventlog.Event) error {
	data, err := json.Marshal(e.Data)
	if err != nil {
		return fmt.Errorf("failed to encode event data: %w", err)
	}

	_, err = s.db.ExecContext(ctx, s.rebind(
		"INSERT INTO events (id, event_type, event_data, created_at) VALUES (?, ?, ?, ?)"),
		e.ID.String(), e.Type, string(data), e.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

// EventsByType returns every stored event of the given type, oldest first.
func (s *Store) EventsByType(ctx context.Context, eventType string) ([]eventlog.Event, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(
		"SELECT id, event_type, event_data, created_at FROM events WHERE event_type = ? ORDER BY created_at"),
		eventType,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	events := make([]eventlog.Event, 0)
	for rows.Next() {
		var (
			event     eventlog.Event
			id        string
			data      string
			createdAt int64
		)
		if err := rows.Scan(&id, &event.Type, &data, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		if event.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("failed to parse event id: %w", err)
		}
		if err := json.Unmarshal([]byte(data), &event.Data); err != nil {
			return nil, fmt.Errorf("failed to decode event data: %w", err)
		}
		event.CreatedAt = time.UnixMilli(createdAt)
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}

	return events, nil
}
