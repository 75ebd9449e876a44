package driven

import (
	"context"
	"encoding/json"

	"github.com/whiskeycoder/osg-search/internal/core/domain"
)

// Hit is one matched document as returned by the backend, prior to
// normalisation. Source is kept as raw bytes so the normaliser can read
// it schema-on-read.
type Hit struct {
	ID     string
	Score  float64
	Source json.RawMessage
}

// HitPage is one page of raw hits plus the engine-reported total
type HitPage struct {
	Hits  []Hit
	Total int
	Took  int // backend-reported latency in milliseconds
}

// SearchEngine issues queries against the backend document store
type SearchEngine interface {
	// Search executes one structured query and returns the raw hit page
	Search(ctx context.Context, req domain.QueryRequest) (*HitPage, error)

	// GetDocument fetches a single document by identifier.
	// Returns domain.ErrNotFound when the backend reports not-found.
	GetDocument(ctx context.Context, collection, id string) (*Hit, error)

	// HealthCheck verifies the backend cluster is reachable
	HealthCheck(ctx context.Context) error

	// CheckCollection verifies a collection exists on the backend
	CheckCollection(ctx context.Context, collection string) error
}
