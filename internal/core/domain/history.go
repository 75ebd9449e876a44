package domain

import "time"

// HistoryEntry records one executed search
type HistoryEntry struct {
	ID        string    `json:"id"`
	Query     string    `json:"query"`
	Tab       Tab       `json:"tab"`
	Total     int       `json:"total"`
	TookMS    int       `json:"took_ms"`
	CreatedAt time.Time `json:"created_at"`
}
