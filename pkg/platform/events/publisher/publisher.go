package publisher

import (
	"context"
	"time"

	"certledger/pkg/platform/events"
	"certledger/pkg/requestcontext"
)

// Publisher appends registry events to the log and fans them out to an
// optional subscriber channel. The append is synchronous with the caller's
// commit; the channel send never blocks, so a slow consumer drops events
// from the channel but never from the log.
type Publisher struct {
	store events.Store
	sink  chan events.Event
}

type Option func(p *Publisher)

// WithBuffer attaches a subscriber channel with the given capacity.
func WithBuffer(n int) Option {
	return func(p *Publisher) {
		p.sink = make(chan events.Event, n)
	}
}

func New(store events.Store, opts ...Option) *Publisher {
	p := &Publisher{store: store}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Emit appends the event to the log, stamping the request time and request
// metadata from the context when unset.
func (p *Publisher) Emit(ctx context.Context, event events.Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if event.ClientIP == "" {
		event.ClientIP = requestcontext.ClientIP(ctx)
	}
	if event.Device == "" {
		event.Device = requestcontext.Device(ctx)
	}

	if err := p.store.Append(ctx, event); err != nil {
		return err
	}

	if p.sink != nil {
		select {
		case p.sink <- event:
		default:
			// Subscriber is behind; the log remains the source of truth.
		}
	}
	return nil
}

// Events exposes the subscriber channel for a worker to drain. Returns nil
// when the publisher was built without a buffer.
func (p *Publisher) Events() <-chan events.Event {
	return p.sink
}
