package main

import (
	"context"
	"fmt"
	"log/slog"
	"no-regret/contract"
	"no-regret/errors"
	"no-regret/relay"
	"no-regret/storage"

	"github.com/dgraph-io/badger/v4"
	"github.com/redis/go-redis/v9"
)

// openStore returns the configured durable store and the function releasing it.
func openStore(config Config, log *slog.Logger, rdb func() *redis.Client) (contract.KeyValueStore, func(), error) {
	switch config.StorageBackend {
	case "badger":
		db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
			WithLoggingLevel(badger.WARNING))
		if err != nil {
			return nil, nil, fmt.Errorf("database opening failed: %w", err)
		}
		return storage.NewBadgerStore(db, log), func() {
			log.Info("Closing BadgerDB...")
			_ = db.Close()
		}, nil
	case "redis":
		return storage.NewRedisStore(rdb(), log, config.RedisNamespace), func() {}, nil
	case "memory":
		return storage.NewMemoryStore(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("%w: storage %q", errors.ErrUnknownBackend, config.StorageBackend)
	}
}

// openRelay returns the relay endpoint of this process. The local hub only
// connects contexts of the same process.
func openRelay(ctx context.Context, config Config, log *slog.Logger, rdb func() *redis.Client) (contract.Relay, error) {
	switch config.RelayBackend {
	case "local":
		return relay.NewHub(log, config.RelayBufferSize).Open(config.RelayChannel), nil
	case "redis":
		return relay.NewRedisRelay(ctx, rdb(), log, config.RelayChannel, config.RelayBufferSize)
	default:
		return nil, fmt.Errorf("%w: relay %q", errors.ErrUnknownBackend, config.RelayBackend)
	}
}
