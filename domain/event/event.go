package event

import (
	"no-regret/domain"
	"time"
)

// DomainEvent is emitted after a state change has been applied and persisted.
type DomainEvent interface {
	Name() string
}

// MessagePosted is emitted for every message entering the chat sequence.
// Remote is true when the message came through the relay.
type MessagePosted struct {
	Message domain.ChatMessage
	Remote  bool
}

func (MessagePosted) Name() string { return "message_posted" }

// MessagesPruned is emitted when expired messages were removed.
// Every message sent before Cutoff is gone.
type MessagesPruned struct {
	Count  int
	At     time.Time
	Cutoff time.Time
}

func (MessagesPruned) Name() string { return "messages_pruned" }

type ProfileChanged struct {
	Profile domain.Profile
}

func (ProfileChanged) Name() string { return "profile_changed" }

type PlansChanged struct {
	Data domain.TodayData
}

func (PlansChanged) Name() string { return "plans_changed" }
