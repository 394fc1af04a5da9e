package storage

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"no-regret/contract"
	"no-regret/errors"
)

// LoadJSON decodes the snapshot stored under key into v.
// It reports false when the key is absent, unreadable or malformed; v must then
// be treated as the empty default. Such failures are logged, never returned.
func LoadJSON(ctx context.Context, kv contract.KeyValueStore, log *slog.Logger, key string, v any) bool {
	raw, err := kv.Get(ctx, key)
	switch {
	case stdErrors.Is(err, errors.ErrKeyNotFound):
		log.Debug("No snapshot stored", "key", key)
		return false
	case err != nil:
		log.Warn("Snapshot unreadable, using default", "key", key, "error", err)
		return false
	}
	if err = json.Unmarshal(raw, v); err != nil {
		log.Warn("Malformed snapshot, using default", "key", key, "error", err)
		return false
	}
	return true
}

// SaveJSON overwrites the snapshot stored under key.
func SaveJSON(ctx context.Context, kv contract.KeyValueStore, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s failed: %w", key, err)
	}
	if err = kv.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("write %s failed: %w", key, err)
	}
	return nil
}
