package storage

import (
	"context"
	"log/slog"
	"no-regret/errors"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *badger.DB {
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestBadgerStore_Set_Get_Delete(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store := NewBadgerStore(openTestDB(t), slog.Default())

	// Given an absent key
	_, err := store.Get(ctx, MessagesKey)
	req.ErrorIs(err, errors.ErrKeyNotFound)

	// When it is written twice
	req.NoError(store.Set(ctx, MessagesKey, []byte(`[1]`)))
	req.NoError(store.Set(ctx, MessagesKey, []byte(`[1,2]`)))

	// Then the last write wins
	value, err := store.Get(ctx, MessagesKey)
	req.NoError(err)
	req.Equal([]byte(`[1,2]`), value)

	// And deleting makes it absent again, twice in a row
	req.NoError(store.Delete(ctx, MessagesKey))
	req.NoError(store.Delete(ctx, MessagesKey))
	_, err = store.Get(ctx, MessagesKey)
	req.ErrorIs(err, errors.ErrKeyNotFound)
}

func TestBadgerStore_Scan(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store := NewBadgerStore(openTestDB(t), slog.Default())

	req.NoError(store.Set(ctx, ProfileKey, []byte(`{}`)))
	req.NoError(store.Set(ctx, TodayKey, []byte(`{}`)))
	req.NoError(store.Set(ctx, "other", []byte(`x`)))

	entries, err := store.Scan(ctx, "nr_")

	req.NoError(err)
	req.Len(entries, 2)
	req.Equal(TodayKey, entries[0].Key)
	req.Equal(ProfileKey, entries[1].Key)
}

func TestBadgerStore_Survives_Reopen(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	dir := t.TempDir()

	db, err := badger.Open(badger.DefaultOptions(dir).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	req.NoError(NewBadgerStore(db, slog.Default()).Set(ctx, ProfileKey, []byte(`{"authorId":"kim@example.com"}`)))
	req.NoError(db.Close())

	db, err = badger.Open(badger.DefaultOptions(dir).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	defer db.Close()
	value, err := NewBadgerStore(db, slog.Default()).Get(ctx, ProfileKey)
	req.NoError(err)
	req.JSONEq(`{"authorId":"kim@example.com"}`, string(value))
}
