package memory

import (
	"context"
	"sync"

	"certledger/pkg/domain"
	"certledger/pkg/platform/events"
)

// Store is an in-memory append-only event log. It favors clarity over
// performance and backs unit tests and single-node deployments.
type Store struct {
	mu     sync.RWMutex
	events []events.Event
}

func New() *Store {
	return &Store{}
}

func (s *Store) Append(_ context.Context, event events.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *Store) ListByCertificate(_ context.Context, id domain.CertificateID) ([]events.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []events.Event
	for _, e := range s.events {
		if e.CertificateID == id {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *Store) List(_ context.Context) ([]events.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]events.Event{}, s.events...), nil
}
