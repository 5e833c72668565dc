package models

import (
	"fmt"
	"math"
	"strings"

	"github.com/joshua-takyi/eventscape/internal/errdef"
)

const PointType = "Point"

// GeoPoint is a GeoJSON point as stored for 2dsphere indexing. Coordinates are [lng, lat].
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

func NewGeoPoint(lng, lat float64) (*GeoPoint, error) {
	p := &GeoPoint{Type: PointType, Coordinates: []float64{lng, lat}}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *GeoPoint) Longitude() float64 { return p.Coordinates[0] }

func (p *GeoPoint) Latitude() float64 { return p.Coordinates[1] }

// Validate checks the point shape and that longitude is within [-180, 180] and latitude within [-90, 90].
func (p *GeoPoint) Validate() error {
	if p.Type != PointType {
		return errdef.NewBadRequest("location type must be %q, got %q", PointType, p.Type)
	}
	if len(p.Coordinates) != 2 {
		return errdef.NewBadRequest("location must have exactly 2 coordinates [lng, lat], got %d", len(p.Coordinates))
	}
	return ValidateLngLat(p.Coordinates[0], p.Coordinates[1])
}

// ValidateLngLat rejects NaN and infinite coordinates along with out of range ones.
func ValidateLngLat(lng, lat float64) error {
	if math.IsNaN(lng) || math.IsNaN(lat) {
		return errdef.NewBadRequest("coordinates must be numbers")
	}
	if lng < -180 || lng > 180 {
		return errdef.NewBadRequest("longitude %v out of range [-180, 180]", lng)
	}
	if lat < -90 || lat > 90 {
		return errdef.NewBadRequest("latitude %v out of range [-90, 90]", lat)
	}
	return nil
}

type Address struct {
	Street  string `bson:"street" json:"street" validate:"required"`
	City    string `bson:"city" json:"city" validate:"required"`
	State   string `bson:"state" json:"state" validate:"required"`
	Zip     string `bson:"zip" json:"zip"`
	Country string `bson:"country" json:"country" validate:"required"`
}

// String renders the address as a single line: "street, city, state zip, country".
func (a Address) String() string {
	region := strings.TrimSpace(a.State + " " + a.Zip)
	return fmt.Sprintf("%s, %s, %s, %s", a.Street, a.City, region, a.Country)
}
