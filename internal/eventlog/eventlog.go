// Package eventlog records domain audit events asynchronously.
package eventlog

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the services.
const (
	TypeGroupCreated       = "group.created"
	TypeGroupDeleted       = "group.deleted"
	TypeGroupsImported     = "groups.imported"
	TypePersonAdded        = "person.added"
	TypeTransactionAdded   = "transaction.added"
	TypeTransactionUpdated = "transaction.updated"
	TypeTransactionDeleted = "transaction.deleted"
	TypeSettlementRecorded = "settlement.recorded"
	TypeUserRegistered     = "user.registered"
)

type Event struct {
	ID        uuid.UUID         `json:"id"`
	Type      string            `json:"event_type"`
	Data      map[string]string `json:"event_data,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

type EventOption func(*Event)

func WithType(eventType string) EventOption {
	return func(e *Event) {
		e.Type = eventType
	}
}

func WithData(data map[string]string) EventOption {
	return func(e *Event) {
		for k, v := range data {
			e.Data[k] = v
		}
	}
}

// WithUser tags the event with the acting user, when there is one.
func WithUser(userID string) EventOption {
	return func(e *Event) {
		if userID != "" {
			e.Data["user_id"] = userID
		}
	}
}

func NewEvent(opts ...EventOption) Event {
	e := Event{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
		Data:      make(map[string]string),
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// Saver persists events.
type Saver interface {
	SaveEvent(ctx context.Context, e Event) error
}

// Sink accepts events without blocking the caller.
type Sink interface {
	Log(e Event)
}

type discard struct{}

func (discard) Log(Event) {}

// Discard is a Sink that drops every event.
var Discard Sink = discard{}
