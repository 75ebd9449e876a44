package mocks

import (
	"context"
	"sync"

	"github.com/whiskeycoder/osg-search/internal/core/domain"
	"github.com/whiskeycoder/osg-search/internal/core/ports/driven"
)

// MockSearchEngine is a mock implementation of SearchEngine for testing
type MockSearchEngine struct {
	mu        sync.RWMutex
	documents map[string]map[string]driven.Hit // collection -> id -> hit
	page      *driven.HitPage
	searchErr error
	healthErr error

	// SearchHook, when set, runs before each Search and can mutate the
	// mock mid-call (used to simulate racing requests)
	SearchHook func(req domain.QueryRequest)

	// Requests records every query received, in order
	Requests []domain.QueryRequest
}

// NewMockSearchEngine creates a new MockSearchEngine
func NewMockSearchEngine() *MockSearchEngine {
	return &MockSearchEngine{
		documents: make(map[string]map[string]driven.Hit),
		page:      &driven.HitPage{},
	}
}

// SetPage sets the page every Search call returns
func (m *MockSearchEngine) SetPage(page *driven.HitPage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.page = page
}

// SetSearchError makes Search fail with err
func (m *MockSearchEngine) SetSearchError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searchErr = err
}

// SetHealthError makes HealthCheck and CheckCollection fail with err
func (m *MockSearchEngine) SetHealthError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.healthErr = err
}

// AddDocument registers a document for GetDocument
func (m *MockSearchEngine) AddDocument(collection string, hit driven.Hit) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.documents[collection] == nil {
		m.documents[collection] = make(map[string]driven.Hit)
	}
	m.documents[collection][hit.ID] = hit
}

func (m *MockSearchEngine) Search(ctx context.Context, req domain.QueryRequest) (*driven.HitPage, error) {
	if hook := m.searchHook(); hook != nil {
		hook(req)
	}

	m.mu.Lock()
	m.Requests = append(m.Requests, req)
	page, err := m.page, m.searchErr
	m.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return page, nil
}

func (m *MockSearchEngine) searchHook() func(domain.QueryRequest) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.SearchHook
}

func (m *MockSearchEngine) GetDocument(ctx context.Context, collection, id string) (*driven.Hit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	hit, ok := m.documents[collection][id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &hit, nil
}

func (m *MockSearchEngine) HealthCheck(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.healthErr
}

func (m *MockSearchEngine) CheckCollection(ctx context.Context, collection string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.healthErr
}
