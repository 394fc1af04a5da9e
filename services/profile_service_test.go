package services

import (
	"context"
	"encoding/json"
	"no-regret/domain"
	"no-regret/errors"
	"no-regret/storage"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProfileService_Join_Rename_Logout(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	profiles := NewProfileService(testLog, kv, nil, domain.DefaultMaxNameLength)

	// Given nobody joined
	profiles.Load(ctx)
	_, signedIn := profiles.Current()
	req.False(signedIn)

	// When kim joins and picks a long name
	_, err := profiles.Join(ctx, " kim@example.com ")
	req.NoError(err)
	profile, err := profiles.Rename(ctx, "Kim Minji the Great")
	req.NoError(err)

	// Then the name is truncated and the whole profile persisted
	req.Equal(domain.Profile{AuthorID: "kim@example.com", DisplayName: "Kim Minji "}, profile)
	raw, err := kv.Get(ctx, storage.ProfileKey)
	req.NoError(err)
	var stored domain.Profile
	req.NoError(json.Unmarshal(raw, &stored))
	req.Equal(profile, stored)

	// And a fresh load finds it back
	reloaded := NewProfileService(testLog, kv, nil, domain.DefaultMaxNameLength)
	req.Equal(profile, reloaded.Load(ctx))

	// When logging out
	req.NoError(profiles.Logout(ctx))
	_, signedIn = profiles.Current()
	req.False(signedIn)
	_, err = kv.Get(ctx, storage.ProfileKey)
	req.ErrorIs(err, errors.ErrKeyNotFound)
}

func TestProfileService_Join_Rejects_Invalid_Email(t *testing.T) {
	req := require.New(t)
	profiles := NewProfileService(testLog, storage.NewMemoryStore(), nil, domain.DefaultMaxNameLength)

	for _, email := range []string{"", "kim", "kim@"} {
		_, err := profiles.Join(context.Background(), email)
		req.Error(err, "email %q", email)
	}
	_, signedIn := profiles.Current()
	req.False(signedIn)
}

func TestProfileService_Rename_Requires_Join(t *testing.T) {
	req := require.New(t)
	profiles := NewProfileService(testLog, storage.NewMemoryStore(), nil, domain.DefaultMaxNameLength)

	_, err := profiles.Rename(context.Background(), "kim")

	req.ErrorIs(err, errors.ErrNotSignedIn)
}

func TestProfileService_Load_Malformed(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	req.NoError(kv.Set(ctx, storage.ProfileKey, []byte(`"just-a-string"`)))

	profile := NewProfileService(testLog, kv, nil, domain.DefaultMaxNameLength).Load(ctx)

	req.Equal(domain.Profile{}, profile)
}
