package models

import (
	"time"

	"github.com/benmeehan/climate-search/internal/render"
	"github.com/benmeehan/climate-search/pkg/geo"
)

// HistoryEntry represents one pushed page URL.
type HistoryEntry struct {
	URL       string    `json:"url"`       // Path and query, e.g. /?lat=39.952600&lng=-75.165200
	Latitude  string    `json:"latitude"`  // Normalized latitude
	Longitude string    `json:"longitude"` // Normalized longitude
	Timestamp time.Time `json:"timestamp"` // When the entry was pushed
}

// SearchResult is the outcome of one successful pipeline run.
type SearchResult struct {
	Input      string           // Text that was submitted
	Location   geo.GeoPoint     // Resolved coordinate at raw precision
	Confirmed  bool             // Whether the location came from a confirmed selection
	URL        string           // Shareable URL pushed to the history
	Indicators []render.Outcome // One outcome per rendered indicator
}

// Charted counts the indicators that were drawn.
func (r *SearchResult) Charted() int {
	n := 0
	for _, o := range r.Indicators {
		if o.Charted() {
			n++
		}
	}
	return n
}

// PublishedResult describes where a rendered page was written.
type PublishedResult struct {
	File         string `json:"file,omitempty"`          // Local output file
	ObjectName   string `json:"object_name,omitempty"`   // Object key in the bucket
	PresignedURL string `json:"presigned_url,omitempty"` // Time-limited download URL
	Size         int64  `json:"size"`                    // Bytes written
}
