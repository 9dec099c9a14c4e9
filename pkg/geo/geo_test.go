package geo

import (
	"encoding/json"
	"math"
	"math/rand/v2"
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sixDecimals = regexp.MustCompile(`^-?\d+\.\d{6}$`)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		point    GeoPoint
		expected Coordinates
	}{
		{
			name:     "pads short values",
			point:    GeoPoint{Lat: 37.7749, Lng: -122.4194},
			expected: Coordinates{Latitude: "37.774900", Longitude: "-122.419400"},
		},
		{
			name:     "rounds long values",
			point:    GeoPoint{Lat: 39.95258891234, Lng: -75.16522249876},
			expected: Coordinates{Latitude: "39.952589", Longitude: "-75.165222"},
		},
		{
			name:     "integers",
			point:    GeoPoint{Lat: 0, Lng: 180},
			expected: Coordinates{Latitude: "0.000000", Longitude: "180.000000"},
		},
		{
			name:     "exact binary tie rounds half to even",
			point:    GeoPoint{Lat: 0.0078125, Lng: -0.0078125},
			expected: Coordinates{Latitude: "0.007812", Longitude: "-0.007812"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.point))
		})
	}
}

func TestNormalize_RoundTripBound(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 10000; i++ {
		p := GeoPoint{Lat: r.Float64()*180 - 90, Lng: r.Float64()*360 - 180}
		c := Normalize(p)

		require.Regexp(t, sixDecimals, c.Latitude)
		require.Regexp(t, sixDecimals, c.Longitude)

		lat, err := strconv.ParseFloat(c.Latitude, 64)
		require.NoError(t, err)
		lng, err := strconv.ParseFloat(c.Longitude, 64)
		require.NoError(t, err)

		assert.LessOrEqual(t, math.Abs(lat-p.Lat), 5e-7)
		assert.LessOrEqual(t, math.Abs(lng-p.Lng), 5e-7)
	}
}

func TestNormalize_PanicsOnNonFinite(t *testing.T) {
	assert.Panics(t, func() { Normalize(GeoPoint{Lat: math.NaN(), Lng: 0}) })
	assert.Panics(t, func() { Normalize(GeoPoint{Lat: 0, Lng: math.Inf(1)}) })
}

func TestCoordinates_URL(t *testing.T) {
	c := Normalize(GeoPoint{Lat: 37.7749, Lng: -122.4194})

	assert.Equal(t, "/?lat=37.774900&lng=-122.419400", c.URL("/"))
	assert.Equal(t, "/?lat=37.774900&lng=-122.419400", c.URL(""))
	assert.Equal(t, "/climate?lat=37.774900&lng=-122.419400", c.URL("/climate"))
}

func TestGeoPoint_JSON(t *testing.T) {
	p := GeoPoint{Lat: 37.77492951, Lng: -122.41941549}

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"lat":37.77492951,"lng":-122.41941549}`, string(data))

	var decoded GeoPoint
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, p, decoded)
}

func TestGeoPoint_Validate(t *testing.T) {
	assert.NoError(t, GeoPoint{Lat: 37.7749, Lng: -122.4194}.Validate())
	assert.Error(t, GeoPoint{Lat: math.NaN(), Lng: 0}.Validate())
	assert.Error(t, GeoPoint{Lat: 91, Lng: 0}.Validate())
	assert.Error(t, GeoPoint{Lat: 0, Lng: -180.5}.Validate())
}
