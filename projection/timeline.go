// Package projection builds local views from observed events.
// Handles ordering and expiry of what is displayed.
// Does not emit events or interact with storage directly.
package projection

import (
	"context"
	"no-regret/domain"
	"no-regret/domain/event"
	"sync"

	"github.com/samber/lo"
)

// Line is a message as shown in the chat tab.
// Own is true for messages authored by the timeline owner.
type Line struct {
	Message domain.ChatMessage
	Own     bool
}

// Timeline holds the chat view of one context
type Timeline struct {
	mu       sync.RWMutex
	Owner    string
	messages []domain.ChatMessage
}

func NewTimeline(owner string) *Timeline {
	return &Timeline{Owner: owner}
}

// Reset replaces the view, typically with the store content after loading.
func (t *Timeline) Reset(messages []domain.ChatMessage) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messages = append([]domain.ChatMessage(nil), messages...)
}

func (t *Timeline) SetOwner(owner string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Owner = owner
}

func (t *Timeline) Consume(_ context.Context, e event.DomainEvent) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch evt := e.(type) {
	case event.MessagePosted:
		t.messages = append(t.messages, evt.Message)
	case event.MessagesPruned:
		t.messages = lo.Reject(t.messages, func(m domain.ChatMessage, _ int) bool {
			return m.SentTime().Before(evt.Cutoff)
		})
	case event.ProfileChanged:
		t.Owner = evt.Profile.AuthorID
	}
	return nil
}

func (t *Timeline) Lines() []Line {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return lo.Map(t.messages, func(m domain.ChatMessage, _ int) Line {
		return Line{Message: m, Own: t.Owner != "" && m.AuthorID == t.Owner}
	})
}
