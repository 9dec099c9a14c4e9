package places

import (
	"googlemaps.github.io/maps"
)

// NewGoogleClient creates a Maps API client for the Places web services.
// baseURL is only set when talking to something other than Google (tests, proxies).
func NewGoogleClient(apiKey string, baseURL string) (*maps.Client, error) {
	options := []maps.ClientOption{maps.WithAPIKey(apiKey)}
	if baseURL != "" {
		options = append(options, maps.WithBaseURL(baseURL))
	}

	return maps.NewClient(options...)
}
