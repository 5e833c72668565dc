package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/joshua-takyi/eventscape/internal/errdef"
	"github.com/joshua-takyi/eventscape/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EventService struct {
	eventsRepo models.EventsRepo
	enricher   *Enricher
	now        func() time.Time
	logger     *slog.Logger
}

func NewEventService(eventsRepo models.EventsRepo, enricher *Enricher, logger *slog.Logger) *EventService {
	return &EventService{
		eventsRepo: eventsRepo,
		enricher:   enricher,
		now:        time.Now,
		logger:     logger,
	}
}

// CreateEvent validates the event, enriches its location and stores it. Enrichment failures are
// reported in the outcome and never block the insert.
func (es *EventService) CreateEvent(ctx context.Context, event *models.Event) (*models.Event, *EnrichmentOutcome, error) {
	if err := event.Validate(); err != nil {
		return nil, nil, err
	}

	enriched, err := es.enricher.Enrich(ctx, event.Location, event.Address)
	if err != nil {
		return nil, nil, err
	}
	event.Location = enriched.Location
	event.Address = enriched.Address
	event.DirectionsURL = enriched.DirectionsURL
	event.BeforeCreate(es.now().UTC())

	created, err := es.eventsRepo.CreateEvent(ctx, event)
	if err != nil {
		return nil, nil, err
	}

	es.logger.Info("event created",
		"event_id", created.ID.Hex(),
		"geocoded", enriched.Outcome.Geocoded,
		"reverse_geocoded", enriched.Outcome.ReverseGeocoded,
		"directions", enriched.Outcome.DirectionsAttached,
		"warnings", len(enriched.Outcome.Warnings),
	)
	return created, &enriched.Outcome, nil
}

func (es *EventService) GetEvent(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	return es.eventsRepo.GetEventByID(ctx, id)
}

// UpdateEvent applies a partial update. A changed location or address is enriched again, and the
// end-after-start rule is checked against the merged schedule.
//
// Stored location fields never describe two different places. When a new address cannot be geocoded
// the old location and directions link are removed. When new coordinates cannot be reverse geocoded
// the old address is removed.
func (es *EventService) UpdateEvent(ctx context.Context, id primitive.ObjectID, update *models.EventUpdate) (*models.Event, *EnrichmentOutcome, error) {
	if err := update.Validate(); err != nil {
		return nil, nil, err
	}
	if update.IsEmpty() {
		return nil, nil, errdef.NewBadRequest("no fields to update")
	}

	existing, err := es.eventsRepo.GetEventByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	start := existing.StartDate
	if update.StartDate != nil {
		start = *update.StartDate
	}
	end := existing.EndDate
	if update.EndDate != nil {
		end = update.EndDate
	}
	if end != nil && !end.After(start) {
		return nil, nil, errdef.NewBadRequest("end_date must be after start_date")
	}

	var outcome *EnrichmentOutcome
	var unset []string
	if update.Location != nil || update.Address != nil {
		enriched, err := es.enricher.Enrich(ctx, update.Location, update.Address)
		if err != nil {
			return nil, nil, err
		}
		if enriched.Location == nil {
			unset = append(unset, "location")
		}
		if enriched.Address == nil {
			unset = append(unset, "address")
		}
		if enriched.DirectionsURL == "" {
			unset = append(unset, "directions_url")
		} else {
			update.DirectionsURL = &enriched.DirectionsURL
		}
		update.Location = enriched.Location
		update.Address = enriched.Address
		outcome = &enriched.Outcome
	}

	set := update.SetFields()
	set["updated_at"] = es.now().UTC()

	updated, err := es.eventsRepo.UpdateEvent(ctx, id, set, unset)
	if err != nil {
		return nil, nil, err
	}
	return updated, outcome, nil
}

func (es *EventService) DeleteEvent(ctx context.Context, id primitive.ObjectID) error {
	if err := es.eventsRepo.DeleteEvent(ctx, id); err != nil {
		return err
	}
	es.logger.Info("event deleted", "event_id", id.Hex())
	return nil
}
