package folio

import (
	"iter"
	"slices"
	"sync"
	"time"
)

// DefaultHistoryWindow is the number of most recent turns sent as context to
// a backend that does not keep conversation state itself.
const DefaultHistoryWindow = 6

// Store is the ordered, append-only log of Turns for one session. Nothing is
// persisted. The zero value is an empty store ready for use, and a Store is
// safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	turns []Turn
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{}
}

// Append adds a turn at the end of the log. Text is stored as given: empty
// text and consecutive turns from the same role are allowed.
func (s *Store) Append(role Role, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, Turn{Role: role, Text: text, Time: time.Now()})
}

// Len returns the number of turns in the log.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.turns)
}

// Recent returns the last n turns (all of them if the log is shorter) in
// insertion order. n <= 0 yields nothing.
//
// The window is fixed when Recent is called; turns are read as the sequence
// is ranged over, and ranging again yields the same turns. Later appends
// are not part of the returned sequence.
func (s *Store) Recent(n int) iter.Seq[Turn] {
	s.mu.RLock()
	end := len(s.turns)
	start := max(end-max(n, 0), 0)
	// Capacity is clipped so the window never observes later appends.
	window := s.turns[start:end:end]
	s.mu.RUnlock()

	return func(yield func(Turn) bool) {
		for _, t := range window {
			if !yield(t) {
				return
			}
		}
	}
}

// All returns every turn in insertion order. It has the same laziness and
// restart semantics as Recent.
func (s *Store) All() iter.Seq[Turn] {
	return s.Recent(s.Len())
}

// Turns returns a copy of the full log.
func (s *Store) Turns() []Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.turns)
}
