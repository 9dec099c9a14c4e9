package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sync"

	"github.com/benmeehan/climate-search/internal/constants"
	"github.com/benmeehan/climate-search/internal/models"
	"github.com/benmeehan/climate-search/internal/render"
	"github.com/benmeehan/climate-search/pkg/geo"
	"github.com/benmeehan/climate-search/pkg/page"
	"github.com/benmeehan/climate-search/pkg/places"
	"github.com/rs/zerolog"
)

// ErrSearchInProgress is returned when a search is submitted while another one is running.
var ErrSearchInProgress = errors.New("search is already in progress")

// LocationResolver resolves the submitted text into a coordinate.
type LocationResolver interface {
	Resolve(ctx context.Context, input string) (places.ResolvedLocation, error)
	Reset()
}

// FormSubmitter posts the search form to the backend and returns its HTML response.
type FormSubmitter interface {
	Submit(ctx context.Context, action string, values url.Values) (string, error)
}

// ResultRenderer injects the backend response into the page.
type ResultRenderer interface {
	Render(p *page.Page, fragment string) []render.Outcome
}

// HistoryManager records the page URL for a resolved coordinate.
type HistoryManager interface {
	PushState(c geo.Coordinates) (models.HistoryEntry, error)
}

// SearchService owns submission of the search form: it resolves the typed
// place, posts it to the backend, renders the response and then updates the
// page URL. Runs are serialized; a submit during a run is rejected.
type SearchService struct {
	page      *page.Page
	resolver  LocationResolver
	submitter FormSubmitter
	renderer  ResultRenderer
	history   HistoryManager
	logger    zerolog.Logger

	mu sync.Mutex
}

// NewSearchService creates a new SearchService bound to one page.
func NewSearchService(p *page.Page, resolver LocationResolver, submitter FormSubmitter,
	renderer ResultRenderer, history HistoryManager, logger zerolog.Logger) *SearchService {
	return &SearchService{
		page:      p,
		resolver:  resolver,
		submitter: submitter,
		renderer:  renderer,
		history:   history,
		logger:    logger,
	}
}

// Submit runs the pipeline once. Nothing on the page changes unless the
// backend answered successfully; the URL is pushed only after rendering.
func (s *SearchService) Submit(ctx context.Context) (*models.SearchResult, error) {
	if !s.mu.TryLock() {
		s.logger.Warn().Msg("Search submitted while another one is in progress")
		return nil, ErrSearchInProgress
	}
	defer s.mu.Unlock()

	input := s.page.InputValue()

	resolved, err := s.resolver.Resolve(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve location: %w", err)
	}
	if err := resolved.Point.Validate(); err != nil {
		s.logger.Error().Err(err).Msg("Resolved location is not a valid coordinate")
		return nil, fmt.Errorf("failed to resolve location: %w", err)
	}

	action, err := s.page.Action()
	if err != nil {
		s.logger.Error().Err(err).Msg("Search form cannot be submitted")
		return nil, err
	}

	location, err := json.Marshal(resolved.Point)
	if err != nil {
		return nil, fmt.Errorf("failed to encode location: %w", err)
	}
	values := s.page.FormValues()
	values.Set(constants.LocationField, string(location))

	body, err := s.submitter.Submit(ctx, action, values)
	if err != nil {
		s.logger.Error().Err(err).Str("action", action).Msgf("Error submitting form: %v", err)
		return nil, fmt.Errorf("error submitting form: %w", err)
	}

	outcomes := s.renderer.Render(s.page, body)

	entry, err := s.history.PushState(geo.Normalize(resolved.Point))
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to update page URL")
		return nil, fmt.Errorf("failed to update page url: %w", err)
	}

	s.page.SetInputValue("")
	s.resolver.Reset()

	result := &models.SearchResult{
		Input:      input,
		Location:   resolved.Point,
		Confirmed:  resolved.Confirmed,
		URL:        entry.URL,
		Indicators: outcomes,
	}

	s.logger.Info().
		Str("input", input).
		Str("url", result.URL).
		Bool("confirmed", result.Confirmed).
		Int("indicators", len(outcomes)).
		Int("charted", result.Charted()).
		Msg("Search completed")

	return result, nil
}
