package services

import (
	"context"
	"fmt"
	"log/slog"
	"no-regret/contract"
	"no-regret/domain"
	"no-regret/domain/event"
	"no-regret/errors"
	"no-regret/storage"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type JoinRequest struct {
	Email string `validate:"required,email"`
}

// ProfileService loads and edits the local profile.
// The profile is persisted in full on every edit.
type ProfileService struct {
	mu            sync.RWMutex
	log           *slog.Logger
	kv            contract.KeyValueStore
	sink          contract.EventSink
	maxNameLength int
	profile       domain.Profile
}

func NewProfileService(log *slog.Logger, kv contract.KeyValueStore, sink contract.EventSink, maxNameLength int) *ProfileService {
	return &ProfileService{log: log, kv: kv, sink: sink, maxNameLength: maxNameLength}
}

// Load reads the stored profile. A missing or malformed snapshot means nobody joined.
func (p *ProfileService) Load(ctx context.Context) domain.Profile {
	var profile domain.Profile
	if !storage.LoadJSON(ctx, p.kv, p.log, storage.ProfileKey, &profile) {
		profile = domain.Profile{}
	}
	p.mu.Lock()
	p.profile = profile
	p.mu.Unlock()
	return profile
}

// Current returns the profile and whether a user joined.
func (p *ProfileService) Current() (domain.Profile, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.profile, p.profile.SignedIn()
}

// Join signs in with an email address.
func (p *ProfileService) Join(ctx context.Context, email string) (domain.Profile, error) {
	email = strings.TrimSpace(email)
	if err := validate.Struct(JoinRequest{Email: email}); err != nil {
		return domain.Profile{}, fmt.Errorf("invalid email %q: %w", email, err)
	}
	return p.edit(ctx, func(profile *domain.Profile) error {
		profile.AuthorID = email
		return nil
	})
}

// Rename changes the display name, truncated to the configured length.
func (p *ProfileService) Rename(ctx context.Context, displayName string) (domain.Profile, error) {
	return p.edit(ctx, func(profile *domain.Profile) error {
		if !profile.SignedIn() {
			return errors.ErrNotSignedIn
		}
		profile.DisplayName = domain.Truncate(strings.TrimSpace(displayName), p.maxNameLength)
		return nil
	})
}

// Logout forgets the profile.
func (p *ProfileService) Logout(ctx context.Context) error {
	p.mu.Lock()
	if err := p.kv.Delete(ctx, storage.ProfileKey); err != nil {
		p.mu.Unlock()
		return fmt.Errorf("logout failed: %w", err)
	}
	p.profile = domain.Profile{}
	p.mu.Unlock()

	p.emit(ctx, domain.Profile{})
	return nil
}

func (p *ProfileService) edit(ctx context.Context, apply func(*domain.Profile) error) (domain.Profile, error) {
	p.mu.Lock()
	profile := p.profile
	if err := apply(&profile); err != nil {
		p.mu.Unlock()
		return domain.Profile{}, err
	}
	if err := storage.SaveJSON(ctx, p.kv, storage.ProfileKey, profile); err != nil {
		p.mu.Unlock()
		return domain.Profile{}, err
	}
	p.profile = profile
	p.mu.Unlock()

	p.emit(ctx, profile)
	return profile, nil
}

func (p *ProfileService) emit(ctx context.Context, profile domain.Profile) {
	if p.sink == nil {
		return
	}
	if err := p.sink.Consume(ctx, event.ProfileChanged{Profile: profile}); err != nil {
		p.log.Warn("Event sink failed", "error", err)
	}
}
