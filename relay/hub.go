// Package relay mirrors chat messages between contexts of the same device.
//
// Delivery is best-effort: no acknowledgment, no retry and no ordering across
// publishers. It is not a network protocol.
package relay

import (
	"context"
	"encoding/json"
	"log/slog"
	"no-regret/domain"
	"no-regret/errors"
	"sync"
)

const DefaultBufferSize = 64

// Hub routes serialized messages between the endpoints opened on it.
// Endpoints only see messages published on the same channel name.
// Hub is safe for concurrent use by multiple goroutines.
type Hub struct {
	mu         sync.RWMutex
	log        *slog.Logger
	bufferSize int
	channels   map[string]map[*Endpoint]struct{}
}

func NewHub(log *slog.Logger, bufferSize int) *Hub {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &Hub{
		log:        log,
		bufferSize: bufferSize,
		channels:   make(map[string]map[*Endpoint]struct{}),
	}
}

// Open attaches a new endpoint to the named channel.
func (h *Hub) Open(name string) *Endpoint {
	h.mu.Lock()
	defer h.mu.Unlock()

	e := &Endpoint{
		hub:      h,
		name:     name,
		messages: make(chan domain.ChatMessage, h.bufferSize),
	}
	if _, ok := h.channels[name]; !ok {
		h.channels[name] = make(map[*Endpoint]struct{})
	}
	h.channels[name][e] = struct{}{}
	return e
}

// Endpoints returns how many endpoints are attached to the named channel.
func (h *Hub) Endpoints(name string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels[name])
}

func (h *Hub) broadcast(from *Endpoint, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for e := range h.channels[from.name] {
		if e == from {
			continue
		}
		e.deliver(payload)
	}
}

func (h *Hub) detach(e *Endpoint) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if members, ok := h.channels[e.name]; ok {
		delete(members, e)
		if len(members) == 0 {
			delete(h.channels, e.name)
		}
	}
}

// Endpoint is the relay of one context.
type Endpoint struct {
	hub      *Hub
	name     string
	mu       sync.Mutex
	closed   bool
	messages chan domain.ChatMessage
}

// Publish serializes message and hands it to every other endpoint of the channel.
func (e *Endpoint) Publish(_ context.Context, message domain.ChatMessage) error {
	e.mu.Lock()
	closed := e.closed
	e.mu.Unlock()
	if closed {
		return errors.ErrRelayClosed
	}
	payload, err := json.Marshal(message)
	if err != nil {
		return err
	}
	e.hub.broadcast(e, payload)
	return nil
}

func (e *Endpoint) Messages() <-chan domain.ChatMessage {
	return e.messages
}

// Close detaches the endpoint. Nothing is sent or received afterward.
func (e *Endpoint) Close() error {
	e.hub.detach(e)

	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.closed {
		e.closed = true
		close(e.messages)
	}
	return nil
}

func (e *Endpoint) deliver(payload []byte) {
	var message domain.ChatMessage
	if err := json.Unmarshal(payload, &message); err != nil {
		e.hub.log.Warn("Dropping malformed relay payload", "channel", e.name, "error", err)
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	select {
	case e.messages <- message:
	default:
		e.hub.log.Debug("Relay buffer full, message lost", "channel", e.name)
	}
}
