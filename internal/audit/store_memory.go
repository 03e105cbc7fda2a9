package audit

import (
	"context"
	"sync"
	"time"

	"udcf/internal/policy"
)

// InMemoryStore keeps the decision log in an append-only slice. It backs
// tests and deployments without a configured database.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries []Entry
	seq     uint64
}

// NewInMemoryStore constructs an empty in-memory decision log.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// Append assigns the next sequence number and stores a copy of the entry.
// The sequence counter and the slice share one lock, so append order and
// sequence order cannot diverge.
func (s *InMemoryStore) Append(_ context.Context, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	entry.Seq = s.seq
	s.entries = append(s.entries, *entry)
	return nil
}

// List returns matching entries most recent first. The underlying slice is
// never reordered; the projection is built in reverse.
func (s *InMemoryStore) List(_ context.Context, filter Filter) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Entry, 0, len(s.entries))
	for i := len(s.entries) - 1; i >= 0; i-- {
		if filter.Matches(s.entries[i]) {
			result = append(result, s.entries[i])
		}
	}
	return result, nil
}

// Summarize counts decisions with Timestamp >= since by scanning the log.
func (s *InMemoryStore) Summarize(_ context.Context, since time.Time) (Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var summary Summary
	for _, entry := range s.entries {
		if entry.Timestamp.Before(since) {
			continue
		}
		summary.Total++
		if entry.Outcome == policy.OutcomeAllow {
			summary.Allowed++
		} else {
			summary.Blocked++
		}
	}
	return summary, nil
}
