package handlers

import "sync"

// sequencer orders overlapping generations per user. A result commits only if
// no later-started generation has committed first; losers are reported stale
// and stay out of history.
type sequencer struct {
	mu        sync.Mutex
	started   map[string]uint64
	committed map[string]uint64
}

func (s *sequencer) begin(userID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started == nil {
		s.started = make(map[string]uint64)
		s.committed = make(map[string]uint64)
	}
	s.started[userID]++
	return s.started[userID]
}

func (s *sequencer) commit(userID string, token uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.committed == nil {
		s.committed = make(map[string]uint64)
	}
	if token < s.committed[userID] {
		return false
	}
	s.committed[userID] = token
	return true
}
