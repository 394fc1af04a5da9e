package services

import (
	"context"
	"log/slog"
	"no-regret/contract"
	"no-regret/domain"
	"no-regret/domain/event"
	"no-regret/storage"
	"sync"
	"time"

	"github.com/samber/lo"
)

const DefaultMessageTTL = 10 * time.Minute

type MessageStoreConfig struct {
	TTL    time.Duration
	Limits domain.Limits
}

func DefaultMessageStoreConfig() MessageStoreConfig {
	return MessageStoreConfig{TTL: DefaultMessageTTL, Limits: domain.DefaultLimits()}
}

// MessageStore owns the ordered chat sequence of one context.
//
// Messages are kept newest last, in the order they entered the store.
// Surviving entries are never reordered nor mutated: the only removal is the
// TTL prune. Every change overwrites the whole snapshot in the durable store.
//
// Local input goes through Append, which also publishes to the relay.
// Relay input goes through ReceiveRemote, which never publishes back.
type MessageStore struct {
	// emitMu is held from a change until its events are delivered: sinks see
	// changes in sequence order. It is taken before mu. Sinks must not call
	// back into Append, ReceiveRemote or Prune.
	emitMu   sync.Mutex
	mu       sync.Mutex
	log      *slog.Logger
	kv       contract.KeyValueStore
	relay    contract.Relay
	sink     contract.EventSink
	config   MessageStoreConfig
	now      func() time.Time
	messages []domain.ChatMessage
}

type MessageStoreOption func(*MessageStore)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) MessageStoreOption {
	return func(s *MessageStore) { s.now = now }
}

// WithEventSink receives the events of the store once they are applied.
func WithEventSink(sink contract.EventSink) MessageStoreOption {
	return func(s *MessageStore) { s.sink = sink }
}

func NewMessageStore(log *slog.Logger, kv contract.KeyValueStore, relay contract.Relay, config MessageStoreConfig, opts ...MessageStoreOption) *MessageStore {
	s := &MessageStore{
		log:    log,
		kv:     kv,
		relay:  relay,
		config: config,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize loads the persisted sequence and drops what already expired.
// A missing or malformed snapshot yields an empty sequence. Entries breaking
// the size rules are sanitized, blank ones are dropped.
func (s *MessageStore) Initialize(ctx context.Context) {
	var loaded []domain.ChatMessage
	if !storage.LoadJSON(ctx, s.kv, s.log, storage.MessagesKey, &loaded) {
		loaded = nil
	}
	valid := lo.FilterMap(loaded, func(m domain.ChatMessage, _ int) (domain.ChatMessage, bool) {
		return domain.Sanitize(m, s.config.Limits)
	})
	if dropped := len(loaded) - len(valid); dropped > 0 {
		s.log.Warn("Dropping invalid persisted messages", "count", dropped)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = valid
	removed := s.prune(s.now())
	s.log.Debug("Message store initialized", "messages", len(s.messages), "expired", removed)
}

// Append builds a message from the local profile and text, stores it and
// publishes it to the other contexts. Blank text is ignored.
func (s *MessageStore) Append(ctx context.Context, profile domain.Profile, text string) (domain.ChatMessage, bool) {
	message, ok := domain.NewChatMessage(profile, text, s.now(), s.config.Limits)
	if !ok {
		return domain.ChatMessage{}, false
	}
	s.add(ctx, message, false)

	if s.relay != nil {
		if err := s.relay.Publish(ctx, message); err != nil {
			s.log.Warn("Relay publish failed", "error", err)
		}
	}
	return message, true
}

// ReceiveRemote stores a message authored in another context.
// It is never published again, which prevents echo loops.
func (s *MessageStore) ReceiveRemote(ctx context.Context, message domain.ChatMessage) bool {
	message, ok := domain.Sanitize(message, s.config.Limits)
	if !ok {
		s.log.Debug("Dropping blank remote message")
		return false
	}
	s.add(ctx, message, true)
	return true
}

func (s *MessageStore) add(ctx context.Context, message domain.ChatMessage, remote bool) {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()

	now := s.now()
	s.mu.Lock()
	s.messages = append(s.messages, message)
	removed := s.prune(now)
	err := s.persist(ctx)
	s.mu.Unlock()

	if err != nil {
		s.log.Error("Failed to persist messages", "error", err)
	}
	s.emit(ctx, event.MessagePosted{Message: message, Remote: remote})
	if removed > 0 {
		s.emit(ctx, s.pruned(removed, now))
	}
}

// Prune removes every message older than the TTL at now.
// It returns the number of removed messages and persists only on change.
func (s *MessageStore) Prune(ctx context.Context, now time.Time) int {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()

	s.mu.Lock()
	removed := s.prune(now)
	var err error
	if removed > 0 {
		err = s.persist(ctx)
	}
	s.mu.Unlock()

	if err != nil {
		s.log.Error("Failed to persist messages", "error", err)
	}
	if removed > 0 {
		s.log.Debug("Expired messages pruned", "count", removed)
		s.emit(ctx, s.pruned(removed, now))
	}
	return removed
}

// Persist overwrites the durable snapshot with the current sequence.
func (s *MessageStore) Persist(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist(ctx)
}

// Messages returns a copy of the sequence, oldest first.
func (s *MessageStore) Messages() []domain.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.ChatMessage(nil), s.messages...)
}

func (s *MessageStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

func (s *MessageStore) prune(now time.Time) int {
	before := len(s.messages)
	s.messages = lo.Filter(s.messages, func(m domain.ChatMessage, _ int) bool {
		return !m.Expired(now, s.config.TTL)
	})
	return before - len(s.messages)
}

// persist must be called with mu held.
func (s *MessageStore) persist(ctx context.Context) error {
	snapshot := s.messages
	if snapshot == nil {
		snapshot = []domain.ChatMessage{}
	}
	return storage.SaveJSON(ctx, s.kv, storage.MessagesKey, snapshot)
}

func (s *MessageStore) pruned(count int, now time.Time) event.MessagesPruned {
	return event.MessagesPruned{Count: count, At: now, Cutoff: now.Add(-s.config.TTL)}
}

func (s *MessageStore) emit(ctx context.Context, e event.DomainEvent) {
	if s.sink == nil {
		return
	}
	if err := s.sink.Consume(ctx, e); err != nil {
		s.log.Warn("Event sink failed", "event", e.Name(), "error", err)
	}
}
