package services

import (
	"context"
	"log/slog"

	"github.com/joshua-takyi/eventscape/internal/errdef"
	"github.com/joshua-takyi/eventscape/internal/geocode"
	"github.com/joshua-takyi/eventscape/internal/metrics"
	"github.com/joshua-takyi/eventscape/internal/models"
)

// EnrichmentOutcome records which best-effort steps succeeded. Warnings carry the reasons for the
// ones that did not; none of them stop a write.
type EnrichmentOutcome struct {
	Geocoded           bool     `json:"geocoded"`
	ReverseGeocoded    bool     `json:"reverse_geocoded"`
	DirectionsAttached bool     `json:"directions_attached"`
	Warnings           []string `json:"warnings,omitempty"`
}

func (o *EnrichmentOutcome) warn(msg string) {
	o.Warnings = append(o.Warnings, msg)
}

// Enrichment is the location state after filling in whatever could be derived.
type Enrichment struct {
	Location      *models.GeoPoint
	Address       *models.Address
	DirectionsURL string
	Outcome       EnrichmentOutcome
}

type Enricher struct {
	geocoder geocode.Geocoder
	logger   *slog.Logger
}

func NewEnricher(geocoder geocode.Geocoder, logger *slog.Logger) *Enricher {
	return &Enricher{geocoder: geocoder, logger: logger}
}

// Enrich fills in the missing half of a location. An address alone is forward geocoded, coordinates
// alone are reverse geocoded, and both together need no lookup. Whenever coordinates exist afterwards a
// directions link is attached. Only the absence of both inputs is an error.
func (en *Enricher) Enrich(ctx context.Context, loc *models.GeoPoint, addr *models.Address) (*Enrichment, error) {
	if loc == nil && addr == nil {
		return nil, errdef.NewBadRequest("either location or address is required")
	}

	out := &Enrichment{Location: loc, Address: addr}

	switch {
	case loc == nil:
		res, err := en.geocoder.Geocode(ctx, addr.String())
		if err == nil {
			out.Location, err = models.NewGeoPoint(res.Longitude, res.Latitude)
		}
		if err != nil {
			en.logger.Warn("forward geocoding failed, storing without coordinates", "address", addr.String(), "error", err)
			out.Outcome.warn("forward geocoding failed: " + err.Error())
		} else {
			out.Outcome.Geocoded = true
		}
		metrics.RecordEnrichmentStep("geocode", out.Outcome.Geocoded)

	case addr == nil:
		found, err := en.geocoder.ReverseGeocode(ctx, loc.Longitude(), loc.Latitude())
		if err != nil {
			en.logger.Warn("reverse geocoding failed, storing without address",
				"lng", loc.Longitude(), "lat", loc.Latitude(), "error", err)
			out.Outcome.warn("reverse geocoding failed: " + err.Error())
		} else {
			out.Address = found
			out.Outcome.ReverseGeocoded = true
		}
		metrics.RecordEnrichmentStep("reverse_geocode", out.Outcome.ReverseGeocoded)
	}

	if out.Location != nil {
		destination := geocode.CoordinatesDestination(out.Location.Longitude(), out.Location.Latitude())
		if out.Address != nil {
			destination = out.Address.String()
		}
		link, err := geocode.DirectionsURL(destination)
		if err != nil {
			en.logger.Warn("directions link not attached", "error", err)
			out.Outcome.warn("directions link failed: " + err.Error())
		} else {
			out.DirectionsURL = link
			out.Outcome.DirectionsAttached = true
		}
		metrics.RecordEnrichmentStep("directions", out.Outcome.DirectionsAttached)
	}

	return out, nil
}
