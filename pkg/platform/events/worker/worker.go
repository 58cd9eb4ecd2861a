package worker

import (
	"context"
	"log/slog"

	"certledger/pkg/platform/events"
)

// Sink receives events drained from the publisher channel. Implementations
// include the Kafka producer; more can be added without touching the core.
type Sink interface {
	Publish(ctx context.Context, event events.Event) error
}

// Worker consumes registry events from a channel and forwards them to sinks.
// Sink failures are logged and skipped: the append-only log already holds
// the event, so fan-out is best-effort by contract.
type Worker struct {
	inbox  <-chan events.Event
	sinks  []Sink
	logger *slog.Logger
}

func New(inbox <-chan events.Event, logger *slog.Logger, sinks ...Sink) *Worker {
	return &Worker{inbox: inbox, sinks: sinks, logger: logger}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.inbox:
			if !ok {
				return nil
			}
			for _, sink := range w.sinks {
				if err := sink.Publish(ctx, event); err != nil {
					w.logger.ErrorContext(ctx, "event sink publish failed",
						"action", string(event.Action),
						"certificate_id", uint64(event.CertificateID),
						"error", err.Error(),
					)
				}
			}
		}
	}
}
