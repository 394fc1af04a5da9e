package main

import "time"

type Config struct {
	LogLevel        string        `env:"LOG_LEVEL,default=INFO"`
	StorageBackend  string        `env:"STORAGE_BACKEND,default=badger"`
	BadgerFilepath  string        `env:"BADGER_FILEPATH,default=./data/no-regret"`
	RedisAddr       string        `env:"REDIS_ADDR,default=localhost:6379"`
	RedisNamespace  string        `env:"REDIS_NAMESPACE,default=no-regret"`
	RelayBackend    string        `env:"RELAY_BACKEND,default=local"`
	RelayChannel    string        `env:"RELAY_CHANNEL,default=nr_chat"`
	RelayBufferSize int           `env:"RELAY_BUFFER_SIZE,default=64"`
	ChatTTL         time.Duration `env:"CHAT_TTL,default=10m"`
	PruneInterval   time.Duration `env:"PRUNE_INTERVAL,default=15s"`
	MaxTextLength   int           `env:"MAX_TEXT_LENGTH,default=200"`
	MaxNameLength   int           `env:"MAX_NAME_LENGTH,default=10"`
	NamePlaceholder string        `env:"NAME_PLACEHOLDER,default=guest"`
	DefaultLocale   string        `env:"DEFAULT_LOCALE,default=ko"`
	HistoryWeeks    int           `env:"HISTORY_WEEKS,default=12"`
	HistorySeed     int64         `env:"HISTORY_SEED"`
	RestartInterval time.Duration `env:"RESTART_INTERVAL,default=200ms"`
}
