package models

import (
	"math"
	"time"
)

const (
	PaginationCursor = "cursor"
	PaginationOffset = "offset"

	FeatureCollectionType = "FeatureCollection"
	FeatureType           = "Feature"

	CompoundModeGeo       = "geo"
	CompoundModeDateRange = "date_range"
)

// GeoEvent is an event decoded from a $geoNear stage, with the distance in kilometres.
type GeoEvent struct {
	Event    `bson:",inline"`
	Distance float64 `bson:"distance" json:"distance"`
}

// EventPage is the listing response for both cursor and offset pagination.
//
// HasMore is true whenever the page is full. It does not look ahead, so a data set whose size is an
// exact multiple of the limit reports one extra, empty page.
type EventPage struct {
	Events         []*Event `json:"events"`
	NextCursor     *string  `json:"next_cursor"`
	HasMore        bool     `json:"has_more"`
	PaginationType string   `json:"pagination_type"`
	Offset         *int     `json:"offset,omitempty"`
}

type FeatureProperties struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	StartDate   string  `json:"start_date"`
	Organizer   string  `json:"organizer"`
	Distance    float64 `json:"distance"`
}

type Feature struct {
	Type       string            `json:"type"`
	Geometry   *GeoPoint         `json:"geometry"`
	Properties FeatureProperties `json:"properties"`
}

type FeatureCollection struct {
	Type     string     `json:"type"`
	Features []*Feature `json:"features"`
}

type WeekendFeatureProperties struct {
	FeatureProperties
	Tags    []string `json:"tags"`
	EndDate string   `json:"end_date"`
}

type WeekendFeature struct {
	Type       string                   `json:"type"`
	Geometry   *GeoPoint                `json:"geometry"`
	Properties WeekendFeatureProperties `json:"properties"`
}

type WeekendRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type WeekendFeatureCollection struct {
	Type         string            `json:"type"`
	Features     []*WeekendFeature `json:"features"`
	WeekendRange WeekendRange      `json:"weekend_range"`
	TotalEvents  int               `json:"total_events"`
}

// CompoundEvent is one compound search hit. Distance is set in geo mode only.
type CompoundEvent struct {
	*Event
	Distance *float64 `json:"distance,omitempty"`
}

type CompoundResult struct {
	Mode   string           `json:"mode"`
	Events []*CompoundEvent `json:"events"`
}

// RoundDistance rounds a distance to two decimal places.
func RoundDistance(d float64) float64 {
	return math.Round(d*100) / 100
}

func NewFeature(e *GeoEvent) *Feature {
	return &Feature{
		Type:       FeatureType,
		Geometry:   e.Location,
		Properties: featureProperties(e),
	}
}

func NewWeekendFeature(e *GeoEvent) *WeekendFeature {
	endDate := ""
	if e.EndDate != nil {
		endDate = e.EndDate.UTC().Format(time.RFC3339)
	}
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	return &WeekendFeature{
		Type:     FeatureType,
		Geometry: e.Location,
		Properties: WeekendFeatureProperties{
			FeatureProperties: featureProperties(e),
			Tags:              tags,
			EndDate:           endDate,
		},
	}
}

func featureProperties(e *GeoEvent) FeatureProperties {
	return FeatureProperties{
		ID:          e.ID.Hex(),
		Title:       e.Title,
		Description: e.Description,
		Category:    e.Category,
		StartDate:   e.StartDate.UTC().Format(time.RFC3339),
		Organizer:   e.Organizer,
		Distance:    RoundDistance(e.Distance),
	}
}
