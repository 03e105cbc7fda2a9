package store

import (
	"context"
	"sync"

	"udcf/internal/consent/models"
	"udcf/internal/sentinel"
	id "udcf/pkg/domain"
)

// InMemoryStore stores consent records in memory. It backs tests and
// deployments without a configured database.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[id.OwnerID]*models.Record
}

// New constructs an empty in-memory consent store.
func New() *InMemoryStore {
	return &InMemoryStore{records: make(map[id.OwnerID]*models.Record)}
}

// Replace swaps the owner's record wholesale under a single lock acquisition,
// so reads are linearizable with respect to writes.
func (s *InMemoryStore) Replace(_ context.Context, record *models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copyRecord := *record
	copyRecord.Categories = record.Categories.Clone()
	s.records[record.OwnerID] = &copyRecord
	return nil
}

func (s *InMemoryStore) FindByOwner(_ context.Context, ownerID id.OwnerID) (*models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[ownerID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copyRecord := *record
	copyRecord.Categories = record.Categories.Clone()
	return &copyRecord, nil
}
