package folio

import (
	"context"
	"sync"
	"time"
)

// Session is one visitor's conversation: a Store and the Gateway chosen for
// it. Submissions on a session are serialized.
type Session struct {
	id        string
	gateway   Gateway
	store     *Store
	createdAt time.Time

	mu         sync.Mutex // serializes Submit
	activityMu sync.Mutex
	lastActive time.Time
}

// NewSession returns an empty session that sends user text to gw.
func NewSession(id string, gw Gateway) *Session {
	now := time.Now()
	return &Session{
		id:         id,
		gateway:    gw,
		store:      NewStore(),
		createdAt:  now,
		lastActive: now,
	}
}

// Submit records text as a user turn, asks the gateway for a reply and
// records the reply as an assistant turn. Failed replies are recorded too,
// so the transcript shows the diagnostic.
func (s *Session) Submit(ctx context.Context, text string) Reply {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Touch()
	s.store.Append(RoleUser, text)
	reply := s.gateway.GenerateResponse(ctx, text)
	t := reply.Turn()
	s.store.Append(t.Role, t.Text)
	s.Touch()
	return reply
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Store returns the session's conversation log.
func (s *Session) Store() *Store { return s.store }

// Messages returns a copy of the conversation so far.
func (s *Session) Messages() []Turn { return s.store.Turns() }

// CreatedAt returns when the session was created.
func (s *Session) CreatedAt() time.Time { return s.createdAt }

// Touch marks the session as active now.
func (s *Session) Touch() {
	s.activityMu.Lock()
	s.lastActive = time.Now()
	s.activityMu.Unlock()
}

// LastActive returns the time of the last Touch or Submit.
func (s *Session) LastActive() time.Time {
	s.activityMu.Lock()
	defer s.activityMu.Unlock()
	return s.lastActive
}

// IdleSince returns how long the session had been inactive at now.
func (s *Session) IdleSince(now time.Time) time.Duration {
	return now.Sub(s.LastActive())
}
