package geo

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
)

// Precision is the number of fractional digits kept by Normalize (~11cm).
const Precision = 6

// Query parameter names, matching the keys of the location payload.
const (
	LatitudeKey  = "lat"
	LongitudeKey = "lng"
)

// GeoPoint represents a geographic coordinate at raw precision.
type GeoPoint struct {
	Lat float64
	Lng float64
}

// Coordinates is a GeoPoint formatted with a fixed number of fractional digits.
type Coordinates struct {
	Latitude  string
	Longitude string
}

// Validate reports whether the point is finite and inside the WGS84 ranges.
func (p GeoPoint) Validate() error {
	if !isFinite(p.Lat) || !isFinite(p.Lng) {
		return errors.New("coordinates must be finite")
	}
	if p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("latitude %v out of range", p.Lat)
	}
	if p.Lng < -180 || p.Lng > 180 {
		return fmt.Errorf("longitude %v out of range", p.Lng)
	}
	return nil
}

// MarshalJSON encodes the point as {"lat":..,"lng":..} without truncation.
func (p GeoPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(latLng{Lat: p.Lat, Lng: p.Lng})
}

// UnmarshalJSON decodes {"lat":..,"lng":..}.
func (p *GeoPoint) UnmarshalJSON(data []byte) error {
	var v latLng
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	p.Lat, p.Lng = v.Lat, v.Lng
	return nil
}

func (p GeoPoint) String() string {
	return fmt.Sprintf("(%v, %v)", p.Lat, p.Lng)
}

type latLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Normalize formats both components with exactly Precision fractional digits.
// The result is the correctly rounded decimal form of the binary value, so exact
// binary ties (e.g. 0.0078125) round half to even.
//
// Passing a non-finite point is a programming error and panics.
func Normalize(p GeoPoint) Coordinates {
	if !isFinite(p.Lat) || !isFinite(p.Lng) {
		panic(fmt.Sprintf("geo: cannot normalize non-finite point %v", p))
	}
	return Coordinates{
		Latitude:  strconv.FormatFloat(p.Lat, 'f', Precision, 64),
		Longitude: strconv.FormatFloat(p.Lng, 'f', Precision, 64),
	}
}

// Query returns the coordinates as URL query parameters.
func (c Coordinates) Query() url.Values {
	return url.Values{
		LatitudeKey:  {c.Latitude},
		LongitudeKey: {c.Longitude},
	}
}

// URL returns basePath with the coordinates appended as its query string.
func (c Coordinates) URL(basePath string) string {
	if basePath == "" {
		basePath = "/"
	}
	return basePath + "?" + c.Query().Encode()
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
