package web

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fwojciec/folio"
	"github.com/google/uuid"
)

// GatewayFactory builds the gateway for a new session.
type GatewayFactory func(ctx context.Context) (folio.Gateway, error)

// Sessions is a registry of live chat sessions keyed by ID. It is safe for
// concurrent use.
type Sessions struct {
	factory GatewayFactory

	mu   sync.Mutex
	byID map[string]*folio.Session
}

// NewSessions returns an empty registry that builds gateways with factory.
func NewSessions(factory GatewayFactory) *Sessions {
	return &Sessions{
		factory: factory,
		byID:    make(map[string]*folio.Session),
	}
}

// Get returns the live session with the given ID.
func (s *Sessions) Get(id string) (*folio.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("session %q: %w", id, folio.ErrSessionNotFound)
	}
	sess.Touch()
	return sess, nil
}

// Create starts a new session with a fresh gateway.
func (s *Sessions) Create(ctx context.Context) (*folio.Session, error) {
	gw, err := s.factory(ctx)
	if err != nil {
		return nil, fmt.Errorf("create gateway: %w", err)
	}
	sess := folio.NewSession(uuid.NewString(), gw)

	s.mu.Lock()
	s.byID[sess.ID()] = sess
	s.mu.Unlock()
	return sess, nil
}

// Delete discards the session with the given ID, if any.
func (s *Sessions) Delete(id string) {
	s.mu.Lock()
	delete(s.byID, id)
	s.mu.Unlock()
}

// Len returns the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

// Reap discards sessions inactive for at least idle and returns how many
// were removed.
func (s *Sessions) Reap(idle time.Duration) int {
	cutoff := time.Now().Add(-idle)
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, sess := range s.byID {
		if !sess.LastActive().After(cutoff) {
			delete(s.byID, id)
			n++
		}
	}
	return n
}

// janitor reaps idle sessions every interval until ctx is done.
func (s *Sessions) janitor(ctx context.Context, interval, idle time.Duration, onReap func(n int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Reap(idle); n > 0 && onReap != nil {
				onReap(n)
			}
		}
	}
}
