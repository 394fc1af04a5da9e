package workers

import (
	"context"
	"log/slog"
	"no-regret/contract"
	"no-regret/domain/event"
	"sync"
)

// EventFanout forwards each event to every registered sink, in registration order.
//
// It provides best-effort fan-out: a failing sink is logged and skipped, the
// others still receive the event. EventFanout is not a message broker.
//
// EventFanout is safe for concurrent use by multiple goroutines.
type EventFanout struct {
	mu    sync.RWMutex
	log   *slog.Logger
	sinks []contract.EventSink
}

func NewEventFanout(log *slog.Logger, sinks ...contract.EventSink) *EventFanout {
	return &EventFanout{log: log, sinks: sinks}
}

func (f *EventFanout) Add(sinks ...contract.EventSink) *EventFanout {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sinks = append(f.sinks, sinks...)
	return f
}

// Consume makes the fanout itself usable as a sink.
func (f *EventFanout) Consume(ctx context.Context, e event.DomainEvent) error {
	f.mu.RLock()
	sinks := append([]contract.EventSink(nil), f.sinks...)
	f.mu.RUnlock()

	for _, sink := range sinks {
		if err := sink.Consume(ctx, e); err != nil {
			f.log.Warn("Sink failed", "event", e.Name(), "error", err)
		}
	}
	return nil
}

// LogSink records every event at debug level.
type LogSink struct {
	Log *slog.Logger
}

func (s LogSink) Consume(_ context.Context, e event.DomainEvent) error {
	s.Log.Debug("Event", "name", e.Name())
	return nil
}
