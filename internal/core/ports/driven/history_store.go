package driven

import (
	"context"

	"github.com/whiskeycoder/osg-search/internal/core/domain"
)

// HistoryStore persists executed searches
type HistoryStore interface {
	// Record stores one executed search
	Record(ctx context.Context, entry *domain.HistoryEntry) error

	// Recent returns the most recent entries, newest first
	Recent(ctx context.Context, limit int) ([]*domain.HistoryEntry, error)
}
