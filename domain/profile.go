// Package domain contains core concepts of the application.
// This file defines the Profile of the local user.
// No runtime, storage, or UI logic should be added here.
package domain

import "strings"

// Profile identifies the author of locally sent messages.
// Both fields are optional: a zero Profile means nobody joined yet.
type Profile struct {
	AuthorID    string `json:"authorId,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
}

func (p Profile) SignedIn() bool {
	return p.AuthorID != ""
}

// Name returns the name shown next to messages.
// It falls back to the local part of AuthorID when no display name was set.
func (p Profile) Name() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	local, _, _ := strings.Cut(p.AuthorID, "@")
	return local
}
