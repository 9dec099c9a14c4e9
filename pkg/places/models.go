package places

import "github.com/benmeehan/climate-search/pkg/geo"

// Prediction is one candidate returned by the predictive place search.
type Prediction struct {
	PlaceID     string
	Description string
}

// Place is a structurally-confirmed place: the user picked it from the suggestions
// and its geometry has already been fetched.
type Place struct {
	PlaceID     string
	Description string
	Location    geo.GeoPoint
}

// ResolvedLocation is the outcome of one resolution.
type ResolvedLocation struct {
	Point     geo.GeoPoint
	Confirmed bool // true when the point came from a confirmed selection
}

// State is a step of the resolution state machine.
type State string

const (
	StateIdle     State = "idle"
	StateQuerying State = "querying"
	StateResolved State = "resolved"
	StateFailed   State = "failed"
)
