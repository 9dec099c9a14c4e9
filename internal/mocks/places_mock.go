package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"googlemaps.github.io/maps"
)

// MockPlacesAPI is a mock implementation of the places.PlacesAPI interface
type MockPlacesAPI struct {
	mock.Mock
}

func (m *MockPlacesAPI) PlaceAutocomplete(ctx context.Context, r *maps.PlaceAutocompleteRequest) (maps.AutocompleteResponse, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(maps.AutocompleteResponse), args.Error(1)
}

func (m *MockPlacesAPI) PlaceDetails(ctx context.Context, r *maps.PlaceDetailsRequest) (maps.PlaceDetailsResult, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(maps.PlaceDetailsResult), args.Error(1)
}

// Predictions builds an OK autocomplete response with one prediction per place ID.
func Predictions(placeIDs ...string) maps.AutocompleteResponse {
	resp := maps.AutocompleteResponse{}
	for _, id := range placeIDs {
		resp.Predictions = append(resp.Predictions, maps.AutocompletePrediction{
			PlaceID:     id,
			Description: "place " + id,
		})
	}
	return resp
}

// Details builds an OK details result located at lat, lng.
func Details(lat, lng float64) maps.PlaceDetailsResult {
	return maps.PlaceDetailsResult{
		Geometry: maps.AddressGeometry{
			Location: maps.LatLng{Lat: lat, Lng: lng},
		},
	}
}
