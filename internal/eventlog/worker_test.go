package eventlog

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memorySaver struct {
	mu     sync.Mutex
	events []Event
	fail   bool
}

func (m *memorySaver) SaveEvent(_ context.Context, e Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("boom")
	}
	m.events = append(m.events, e)
	return nil
}

func (m *memorySaver) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.events)
}

func TestNewEvent(t *testing.T) {
	e := NewEvent(
		WithType(TypeTransactionAdded),
		WithData(map[string]string{"group_id": "g1"}),
		WithUser("u1"),
		WithUser(""),
	)

	assert.NotEmpty(t, e.ID)
	assert.False(t, e.CreatedAt.IsZero())
	assert.Equal(t, TypeTransactionAdded, e.Type)
	assert.Equal(t, map[string]string{"group_id": "g1", "user_id": "u1"}, e.Data)
}

func TestWorker_SavesAllEventsBeforeShutdown(t *testing.T) {
	saver := &memorySaver{}
	w := NewWorker(saver, 16)

	// Queue before Start so the drain path is exercised deterministically
	for i := 0; i < 10; i++ {
		w.Log(NewEvent(WithType(TypeGroupCreated)))
	}
	w.Start()
	w.Shutdown()

	require.Equal(t, 10, saver.count())
}

func TestWorker_DropsWhenFull(t *testing.T) {
	saver := &memorySaver{}
	w := NewWorker(saver, 2)

	for i := 0; i < 5; i++ {
		w.Log(NewEvent(WithType(TypePersonAdded)))
	}
	w.Start()
	w.Shutdown()

	assert.Equal(t, 2, saver.count())
}

func TestWorker_SaveErrorsDoNotStopTheWorker(t *testing.T) {
	saver := &memorySaver{fail: true}
	w := NewWorker(saver, 4)
	w.Log(NewEvent(WithType(TypeGroupDeleted)))
	w.Start()
	w.Shutdown()

	assert.Equal(t, 0, saver.count())
}

func TestDiscard(t *testing.T) {
	assert.NotPanics(t, func() { Discard.Log(NewEvent()) })
}
