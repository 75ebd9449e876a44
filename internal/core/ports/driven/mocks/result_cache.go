package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/whiskeycoder/osg-search/internal/core/domain"
)

// MockResultCache is a mock implementation of ResultCache for testing
type MockResultCache struct {
	mu      sync.RWMutex
	entries map[string]*domain.SearchResponse
	getErr  error
	setErr  error
}

// NewMockResultCache creates a new MockResultCache
func NewMockResultCache() *MockResultCache {
	return &MockResultCache{
		entries: make(map[string]*domain.SearchResponse),
	}
}

// SetErrors makes Get and Set fail with the given errors
func (m *MockResultCache) SetErrors(getErr, setErr error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getErr = getErr
	m.setErr = setErr
}

// Len returns the number of cached entries
func (m *MockResultCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func (m *MockResultCache) Get(ctx context.Context, key string) (*domain.SearchResponse, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	resp, ok := m.entries[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return resp, nil
}

func (m *MockResultCache) Set(ctx context.Context, key string, resp *domain.SearchResponse, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.entries[key] = resp
	return nil
}
