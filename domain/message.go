// Package domain contains core concepts of the application.
// This file defines chat messages and the rules that build them.
// Messages are immutable once built.
package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	DefaultMaxTextLength   = 200
	DefaultMaxNameLength   = 10
	DefaultNamePlaceholder = "guest"
)

// ChatMessage is a single chat line as it is persisted and relayed.
// SentAt is expressed in milliseconds since epoch and never mutated.
type ChatMessage struct {
	AuthorID    string `json:"authorId,omitempty"`
	DisplayName string `json:"displayName"`
	Text        string `json:"text"`
	SentAt      int64  `json:"sentAt"`
}

// Limits bounds the size of the fields of a ChatMessage.
type Limits struct {
	MaxTextLength   int
	MaxNameLength   int
	NamePlaceholder string
}

func DefaultLimits() Limits {
	return Limits{
		MaxTextLength:   DefaultMaxTextLength,
		MaxNameLength:   DefaultMaxNameLength,
		NamePlaceholder: DefaultNamePlaceholder,
	}
}

// NewChatMessage builds a message authored by profile.
// It returns false when text is blank: such a message is never built.
func NewChatMessage(profile Profile, text string, sentAt time.Time, limits Limits) (ChatMessage, bool) {
	return Sanitize(ChatMessage{
		AuthorID:    profile.AuthorID,
		DisplayName: profile.Name(),
		Text:        text,
		SentAt:      sentAt.UnixMilli(),
	}, limits)
}

// Sanitize applies the size rules to an already built message, typically one
// coming from another context or from a snapshot. SentAt is left untouched.
// The text is checked once truncated, so the stored text is never blank.
func Sanitize(m ChatMessage, limits Limits) (ChatMessage, bool) {
	m.Text = Truncate(m.Text, limits.MaxTextLength)
	if strings.TrimSpace(m.Text) == "" {
		return ChatMessage{}, false
	}
	name := Truncate(strings.TrimSpace(m.DisplayName), limits.MaxNameLength)
	if name == "" {
		name = Truncate(limits.NamePlaceholder, limits.MaxNameLength)
	}
	m.DisplayName = name
	return m, true
}

// Truncate keeps the first limit runes of s. A non-positive limit keeps s whole.
func Truncate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}

func (m ChatMessage) SentTime() time.Time {
	return time.UnixMilli(m.SentAt)
}

func (m ChatMessage) Age(now time.Time) time.Duration {
	return now.Sub(m.SentTime())
}

// Expired reports whether the message outlived ttl at now.
// A message exactly ttl old is still alive.
func (m ChatMessage) Expired(now time.Time, ttl time.Duration) bool {
	return m.Age(now) > ttl
}
