package main

import (
	"bufio"
	"context"
	"fmt"
	"no-regret/domain"
	"no-regret/i18n"
	"no-regret/projection"
	"no-regret/runtime/workers"
	"no-regret/services"
	"no-regret/ui"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/redis/go-redis/v9"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run wires every component and drives the console until quit or a signal.
// Errors are returned rather than exiting so deferred cleanups always run.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Durable store & relay
	var rdb *redis.Client
	redisClient := sync.OnceValue(func() *redis.Client {
		rdb = redis.NewClient(&redis.Options{Addr: config.RedisAddr})
		return rdb
	})
	defer func() {
		if rdb != nil {
			_ = rdb.Close()
		}
	}()

	kv, closeStore, err := openStore(config, log, redisClient)
	if err != nil {
		return err
	}
	defer closeStore()

	chatRelay, err := openRelay(ctx, config, log, redisClient)
	if err != nil {
		return fmt.Errorf("relay opening failed: %w", err)
	}
	defer func() { _ = chatRelay.Close() }()

	// 3. Services
	translator, err := i18n.NewTranslator(log, domain.ParseLocale(config.DefaultLocale))
	if err != nil {
		return fmt.Errorf("translations loading failed: %w", err)
	}
	fanout := workers.NewEventFanout(log, workers.LogSink{Log: log})
	timeline := projection.NewTimeline("")

	profiles := services.NewProfileService(log, kv, fanout, config.MaxNameLength)
	profile := profiles.Load(ctx)
	timeline.SetOwner(profile.AuthorID)

	store := services.NewMessageStore(log, kv, chatRelay, services.MessageStoreConfig{
		TTL: config.ChatTTL,
		Limits: domain.Limits{
			MaxTextLength:   config.MaxTextLength,
			MaxNameLength:   config.MaxNameLength,
			NamePlaceholder: config.NamePlaceholder,
		},
	}, services.WithEventSink(fanout))
	store.Initialize(ctx)
	timeline.Reset(store.Messages())

	today := services.NewTodayService(log, kv, fanout, time.Now)
	today.Load(ctx)

	seed := uint64(config.HistorySeed)
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	session := ui.NewSession(ui.Deps{
		Log:        log,
		Out:        os.Stdout,
		Translator: translator,
		Profile:    profiles,
		Messages:   store,
		Today:      today,
		History:    services.NewHistoryService(seed, config.HistoryWeeks),
		Timeline:   timeline,
	})
	fanout.Add(timeline, session)

	// 4. Background workers
	sup := workers.NewSupervisor(log, config.RestartInterval)
	sup.Add(
		workers.NewPruneWorker(log, store, config.PruneInterval, time.Now),
		workers.NewRelayWorker(log, chatRelay, store),
	)
	supCtx, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()
	supDone := make(chan struct{})
	go func() {
		sup.Run(supCtx)
		close(supDone)
	}()

	// 5. Console loop
	session.Start()
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for quit := false; !quit; {
		select {
		case <-ctx.Done():
			quit = true
		case line, ok := <-lines:
			quit = !ok || session.Handle(ctx, line)
		}
	}

	// 6. Final Cleanup
	log.Info("Shutting down gracefully...")
	_ = chatRelay.Close()
	stopWorkers()
	<-supDone
	if err = store.Persist(context.Background()); err != nil {
		log.Error("Final persist failed", "error", err)
	}
	log.Info("Program stopped cleanly")
	return nil
}
