package workers

import (
	"context"
	"log/slog"
	"no-regret/contract"
	"no-regret/domain"
)

// RemoteReceiver stores messages authored in another context.
type RemoteReceiver interface {
	ReceiveRemote(ctx context.Context, message domain.ChatMessage) bool
}

// RelayWorker delivers what the relay receives into the local store.
// It stops when the relay is closed or the context is done.
type RelayWorker struct {
	log      *slog.Logger
	relay    contract.Relay
	receiver RemoteReceiver
}

func NewRelayWorker(log *slog.Logger, relay contract.Relay, receiver RemoteReceiver) *RelayWorker {
	return &RelayWorker{log: log, relay: relay, receiver: receiver}
}

func (w *RelayWorker) Run(ctx context.Context) error {
	messages := w.relay.Messages()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping relay delivery")
			return nil
		case message, ok := <-messages:
			if !ok {
				w.log.Debug("Relay closed")
				return nil
			}
			w.receiver.ReceiveRemote(ctx, message)
		}
	}
}
