package relay

import (
	"context"
	"encoding/json"
	"log/slog"
	"no-regret/domain"
	"no-regret/errors"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// envelope carries the origin of a payload so a publisher can drop its own echo:
// Redis delivers a PUBLISH to every subscriber, the publisher included.
type envelope struct {
	Origin  string             `json:"origin"`
	Message domain.ChatMessage `json:"message"`
}

// RedisRelay is a Relay shared by processes subscribed to the same Redis channel.
type RedisRelay struct {
	rdb      *redis.Client
	log      *slog.Logger
	channel  string
	origin   string
	pubsub   *redis.PubSub
	messages chan domain.ChatMessage
	done     chan struct{}
	once     sync.Once
}

// NewRedisRelay subscribes to channel and starts forwarding foreign messages.
func NewRedisRelay(ctx context.Context, rdb *redis.Client, log *slog.Logger, channel string, bufferSize int) (*RedisRelay, error) {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	pubsub := rdb.Subscribe(ctx, channel)
	// Wait for the subscription confirmation so no early publish is missed
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, err
	}
	r := &RedisRelay{
		rdb:      rdb,
		log:      log,
		channel:  channel,
		origin:   uuid.NewString(),
		pubsub:   pubsub,
		messages: make(chan domain.ChatMessage, bufferSize),
		done:     make(chan struct{}),
	}
	go r.forward()
	return r, nil
}

func (r *RedisRelay) Publish(ctx context.Context, message domain.ChatMessage) error {
	select {
	case <-r.done:
		return errors.ErrRelayClosed
	default:
	}
	payload, err := json.Marshal(envelope{Origin: r.origin, Message: message})
	if err != nil {
		return err
	}
	return r.rdb.Publish(ctx, r.channel, payload).Err()
}

func (r *RedisRelay) Messages() <-chan domain.ChatMessage {
	return r.messages
}

func (r *RedisRelay) Close() error {
	var err error
	r.once.Do(func() {
		close(r.done)
		err = r.pubsub.Close()
	})
	return err
}

func (r *RedisRelay) forward() {
	defer close(r.messages)
	incoming := r.pubsub.Channel()
	for {
		select {
		case <-r.done:
			return
		case msg, ok := <-incoming:
			if !ok {
				return
			}
			var env envelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				r.log.Warn("Dropping malformed relay payload", "channel", r.channel, "error", err)
				continue
			}
			if env.Origin == r.origin {
				continue
			}
			select {
			case r.messages <- env.Message:
			default:
				r.log.Debug("Relay buffer full, message lost", "channel", r.channel)
			}
		}
	}
}
