package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/whiskeycoder/osg-search/internal/core/domain"
	"github.com/whiskeycoder/osg-search/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore implements driven.HistoryStore using PostgreSQL
type HistoryStore struct {
	db *DB
}

// NewHistoryStore creates a new HistoryStore
func NewHistoryStore(db *DB) *HistoryStore {
	return &HistoryStore{db: db}
}

// Record persists one executed search
func (s *HistoryStore) Record(ctx context.Context, entry *domain.HistoryEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO search_history (id, query, tab, total, took_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.db.ExecContext(ctx, query,
		entry.ID,
		entry.Query,
		string(entry.Tab),
		entry.Total,
		entry.TookMS,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record search: %w", err)
	}
	return nil
}

// Recent returns the most recent searches, newest first
func (s *HistoryStore) Recent(ctx context.Context, limit int) ([]*domain.HistoryEntry, error) {
	query := `
		SELECT id, query, tab, total, took_ms, created_at
		FROM search_history
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list search history: %w", err)
	}
	defer rows.Close()

	var entries []*domain.HistoryEntry
	for rows.Next() {
		var entry domain.HistoryEntry
		var tab string
		if err := rows.Scan(&entry.ID, &entry.Query, &tab, &entry.Total, &entry.TookMS, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan search history row: %w", err)
		}
		entry.Tab = domain.Tab(tab)
		entries = append(entries, &entry)
	}
	return entries, rows.Err()
}
