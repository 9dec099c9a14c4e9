package places

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/benmeehan/climate-search/pkg/geo"
	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/rs/zerolog"
	"googlemaps.github.io/maps"
)

// PlacesAPI is the subset of the Google Maps client used for place search.
// *maps.Client satisfies it.
type PlacesAPI interface {
	PlaceAutocomplete(ctx context.Context, r *maps.PlaceAutocompleteRequest) (maps.AutocompleteResponse, error)
	PlaceDetails(ctx context.Context, r *maps.PlaceDetailsRequest) (maps.PlaceDetailsResult, error)
}

// Autocomplete is a session-scoped place search. It plays the part of the
// suggestion widget (Predictions, Select) and resolves the submitted input
// into a single coordinate (Resolve).
type Autocomplete struct {
	api     PlacesAPI
	session *Session
	country string
	timeout time.Duration
	logger  zerolog.Logger

	cache cmap.ConcurrentMap[string, []Prediction]

	mu    sync.Mutex
	place *Place
	state State
}

// NewAutocomplete creates an Autocomplete restricted to one country (ISO 3166-1
// alpha-2, empty for no restriction). A zero timeout leaves request deadlines to ctx.
func NewAutocomplete(api PlacesAPI, session *Session, country string, timeout time.Duration, logger zerolog.Logger) *Autocomplete {
	return &Autocomplete{
		api:     api,
		session: session,
		country: strings.ToLower(country),
		timeout: timeout,
		logger:  logger,
		cache:   cmap.New[[]Prediction](),
		state:   StateIdle,
	}
}

// Session returns the session shared by every request of this autocomplete.
func (a *Autocomplete) Session() *Session {
	return a.session
}

// State returns the state reached by the last resolution.
func (a *Autocomplete) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Place returns the confirmed selection, or nil when the user has not picked a suggestion.
func (a *Autocomplete) Place() *Place {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.place
}

// Reset drops the confirmed selection.
func (a *Autocomplete) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.place = nil
	a.state = StateIdle
}

// Predictions returns the ranked suggestions for input. Results are cached for
// the lifetime of the current session token.
func (a *Autocomplete) Predictions(ctx context.Context, input string) ([]Prediction, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrEmptyInput
	}

	key := a.session.ID() + "|" + strings.ToLower(input)
	if cached, ok := a.cache.Get(key); ok {
		return cached, nil
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	req := &maps.PlaceAutocompleteRequest{
		Input:        input,
		SessionToken: a.session.Token(),
	}
	if a.country != "" {
		req.Components = map[maps.Component][]string{
			maps.ComponentCountry: {a.country},
		}
	}

	resp, err := a.api.PlaceAutocomplete(ctx, req)
	if err != nil {
		return nil, &StatusError{Op: "predictions", Status: StatusOf(err), Err: err}
	}
	if len(resp.Predictions) == 0 {
		return nil, &StatusError{Op: "predictions", Status: "ZERO_RESULTS"}
	}

	predictions := make([]Prediction, 0, len(resp.Predictions))
	for _, p := range resp.Predictions {
		predictions = append(predictions, Prediction{PlaceID: p.PlaceID, Description: p.Description})
	}
	a.cache.Set(key, predictions)

	return predictions, nil
}

// Select fetches the geometry of a suggestion and holds it as the confirmed place.
// The details request closes the autocomplete session.
func (a *Autocomplete) Select(ctx context.Context, prediction Prediction) (*Place, error) {
	place, err := a.details(ctx, prediction)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.place = place
	a.mu.Unlock()

	a.completeSession()
	return place, nil
}

// Resolve turns the submitted input into one coordinate. A confirmed place is
// used as is; otherwise the top prediction for input is looked up. No
// disambiguation is attempted.
func (a *Autocomplete) Resolve(ctx context.Context, input string) (ResolvedLocation, error) {
	if place := a.Place(); place != nil {
		a.setState(StateResolved)
		a.logger.Debug().
			Str("place_id", place.PlaceID).
			Msg("Using confirmed place selection")
		return ResolvedLocation{Point: place.Location, Confirmed: true}, nil
	}

	if strings.TrimSpace(input) == "" {
		a.setState(StateFailed)
		a.logger.Error().
			Err(ErrEmptyInput).
			Str("session", a.session.ID()).
			Msg("Could not resolve location: input is empty")
		return ResolvedLocation{}, ErrEmptyInput
	}

	a.setState(StateQuerying)

	predictions, err := a.Predictions(ctx, input)
	if err != nil {
		a.setState(StateFailed)
		a.logger.Error().
			Err(err).
			Str("session", a.session.ID()).
			Msgf("Could not get predictions: status is %s", StatusOf(err))
		return ResolvedLocation{}, err
	}

	place, err := a.details(ctx, predictions[0])
	if err != nil {
		a.setState(StateFailed)
		a.logger.Error().
			Err(err).
			Str("session", a.session.ID()).
			Str("place_id", predictions[0].PlaceID).
			Msgf("Could not get details: status is %s", StatusOf(err))
		return ResolvedLocation{}, err
	}

	a.completeSession()
	a.setState(StateResolved)
	a.logger.Info().
		Str("input", input).
		Str("place_id", place.PlaceID).
		Float64("lat", place.Location.Lat).
		Float64("lng", place.Location.Lng).
		Msg("Resolved location from top prediction")

	return ResolvedLocation{Point: place.Location}, nil
}

func (a *Autocomplete) details(ctx context.Context, prediction Prediction) (*Place, error) {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	req := &maps.PlaceDetailsRequest{
		PlaceID:      prediction.PlaceID,
		Fields:       []maps.PlaceDetailsFieldMask{maps.PlaceDetailsFieldMaskGeometryLocation},
		SessionToken: a.session.Token(),
	}

	result, err := a.api.PlaceDetails(ctx, req)
	if err != nil {
		return nil, &StatusError{Op: "details", Status: StatusOf(err), Err: err}
	}

	point := geo.GeoPoint{Lat: result.Geometry.Location.Lat, Lng: result.Geometry.Location.Lng}
	if err := point.Validate(); err != nil {
		return nil, fmt.Errorf("places: invalid geometry for %s: %w", prediction.PlaceID, err)
	}

	return &Place{
		PlaceID:     prediction.PlaceID,
		Description: prediction.Description,
		Location:    point,
	}, nil
}

func (a *Autocomplete) completeSession() {
	if a.session.Complete() {
		a.cache.Clear()
		a.logger.Debug().Str("session", a.session.ID()).Msg("Rotated autocomplete session token")
	}
}

func (a *Autocomplete) setState(s State) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state = s
}

func (a *Autocomplete) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.timeout)
}
