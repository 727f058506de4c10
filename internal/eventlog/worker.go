package eventlog

import (
	"context"
	"log/slog"
	"sync"
)

type Worker struct {
	eventCh chan Event
	saver   Saver
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewWorker(saver Saver, bufferSize int) *Worker {
	ctx, cancel := context.WithCancel(context.Background())
	return &Worker{
		eventCh: make(chan Event, bufferSize),
		saver:   saver,
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (w *Worker) Start() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			select {
			case <-w.ctx.Done():
				slog.Info("draining events before shutdown", "remaining_events", len(w.eventCh))
				for len(w.eventCh) > 0 {
					event := <-w.eventCh
					if err := w.saver.SaveEvent(context.Background(), event); err != nil {
						slog.Error("failed to save event during shutdown", "error", err, "event_type", event.Type)
					}
				}
				return
			case event := <-w.eventCh:
				if err := w.saver.SaveEvent(w.ctx, event); err != nil {
					slog.Error("failed to save event", "error", err, "event_type", event.Type)
				}
			}
		}
	}()
}

// Log queues an event. It never blocks: when the buffer is full the event is dropped.
func (w *Worker) Log(event Event) {
	select {
	case w.eventCh <- event:
	default:
		slog.Warn("event channel full, dropping event", "event_type", event.Type)
	}
}

// Shutdown stops the worker after saving every queued event.
func (w *Worker) Shutdown() {
	w.cancel()
	w.wg.Wait()
}
