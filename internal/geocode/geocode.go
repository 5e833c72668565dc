// Package geocode talks to a Google-compatible geocoding API. Lookups are rate limited, guarded by a
// circuit breaker and optionally cached.
package geocode

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/joshua-takyi/eventscape/internal/models"
)

const (
	DefaultBaseURL    = "https://maps.googleapis.com/maps/api/geocode/json"
	DirectionsBaseURL = "https://www.google.com/maps/dir/?api=1&destination="

	// DefaultZip is used when a reverse lookup has no postal code component.
	DefaultZip = "00000"
)

// ErrNoResults is returned when the provider answered but matched nothing.
var ErrNoResults = errors.New("no geocoding results")

// Result is the first match of a forward lookup.
type Result struct {
	Longitude        float64 `json:"longitude"`
	Latitude         float64 `json:"latitude"`
	FormattedAddress string  `json:"formatted_address"`
}

type Geocoder interface {
	Geocode(ctx context.Context, address string) (*Result, error)
	ReverseGeocode(ctx context.Context, lng, lat float64) (*models.Address, error)
}

// DirectionsURL builds a maps directions link to destination. No request is made.
func DirectionsURL(destination string) (string, error) {
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return "", fmt.Errorf("directions destination is empty")
	}
	return DirectionsBaseURL + url.QueryEscape(destination), nil
}

// CoordinatesDestination renders a point as the "lat,lng" destination the maps link expects.
func CoordinatesDestination(lng, lat float64) string {
	return strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lng, 'f', -1, 64)
}

type apiResponse struct {
	Status       string      `json:"status"`
	ErrorMessage string      `json:"error_message,omitempty"`
	Results      []apiResult `json:"results"`
}

type apiResult struct {
	FormattedAddress  string         `json:"formatted_address"`
	AddressComponents []apiComponent `json:"address_components"`
	Geometry          struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
}

type apiComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

func (c apiComponent) is(kind string) bool {
	for _, t := range c.Types {
		if t == kind {
			return true
		}
	}
	return false
}

// addressFromComponents classifies the components of a reverse lookup into a structured address.
// Street, city, state and country are mandatory; zip falls back to DefaultZip.
func addressFromComponents(components []apiComponent) (*models.Address, error) {
	var number, route string
	addr := &models.Address{Zip: DefaultZip}

	for _, c := range components {
		switch {
		case c.is("street_number"):
			number = c.LongName
		case c.is("route"):
			route = c.LongName
		case c.is("locality"):
			addr.City = c.LongName
		case c.is("administrative_area_level_1"):
			addr.State = c.ShortName
		case c.is("postal_code"):
			addr.Zip = c.LongName
		case c.is("country"):
			addr.Country = c.LongName
		}
	}
	addr.Street = strings.TrimSpace(number + " " + route)

	var missing []string
	if route == "" {
		missing = append(missing, "street")
	}
	if addr.City == "" {
		missing = append(missing, "city")
	}
	if addr.State == "" {
		missing = append(missing, "state")
	}
	if addr.Country == "" {
		missing = append(missing, "country")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("reverse geocoding result is missing %s", strings.Join(missing, ", "))
	}
	return addr, nil
}
