package places

import (
	"sync"

	"github.com/google/uuid"
	"googlemaps.github.io/maps"
)

// Session owns the autocomplete session token shared by every predictions
// request and the terminal details request of a page session.
type Session struct {
	mu                 sync.RWMutex
	token              maps.PlaceAutocompleteSessionToken
	rotateAfterResolve bool
	generation         int
}

// NewSession creates a session with a fresh token. When rotateAfterResolve is false
// the token is held for the whole page session.
func NewSession(rotateAfterResolve bool) *Session {
	return &Session{
		token:              maps.NewPlaceAutocompleteSessionToken(),
		rotateAfterResolve: rotateAfterResolve,
	}
}

// Token returns the current session token.
func (s *Session) Token() maps.PlaceAutocompleteSessionToken {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// ID returns the current token in its string form, for logging.
func (s *Session) ID() string {
	return uuid.UUID(s.Token()).String()
}

// Generation counts how many tokens this session has issued after the first.
func (s *Session) Generation() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// Complete marks the end of a resolution. It mints a new token only if the
// session was created with rotateAfterResolve, and reports whether it did.
func (s *Session) Complete() bool {
	if !s.rotateAfterResolve {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = maps.NewPlaceAutocompleteSessionToken()
	s.generation++
	return true
}
