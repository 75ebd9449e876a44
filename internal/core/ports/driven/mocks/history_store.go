package mocks

import (
	"context"
	"sync"

	"github.com/whiskeycoder/osg-search/internal/core/domain"
)

// MockHistoryStore is a mock implementation of HistoryStore for testing
type MockHistoryStore struct {
	mu      sync.RWMutex
	entries []*domain.HistoryEntry
	err     error
}

// NewMockHistoryStore creates a new MockHistoryStore
func NewMockHistoryStore() *MockHistoryStore {
	return &MockHistoryStore{}
}

// SetError makes Record and Recent fail with err
func (m *MockHistoryStore) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *MockHistoryStore) Record(ctx context.Context, entry *domain.HistoryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	// Newest first, matching the store's read order
	m.entries = append([]*domain.HistoryEntry{entry}, m.entries...)
	return nil
}

func (m *MockHistoryStore) Recent(ctx context.Context, limit int) ([]*domain.HistoryEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	if limit > len(m.entries) {
		limit = len(m.entries)
	}
	out := make([]*domain.HistoryEntry, limit)
	copy(out, m.entries[:limit])
	return out, nil
}
