package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/joshua-takyi/eventscape/internal/errdef"
	"github.com/joshua-takyi/eventscape/internal/geocode"
	"github.com/joshua-takyi/eventscape/internal/mocks"
	"github.com/joshua-takyi/eventscape/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var testAddress = &models.Address{
	Street:  "350 5th Ave",
	City:    "New York",
	State:   "NY",
	Zip:     "10118",
	Country: "United States",
}

func TestEnrich(t *testing.T) {
	ctx := context.Background()

	t.Run("address only is forward geocoded", func(t *testing.T) {
		gc := new(mocks.Geocoder)
		gc.On("Geocode", ctx, testAddress.String()).Return(&geocode.Result{Longitude: -73.9857, Latitude: 40.7484}, nil)

		out, err := NewEnricher(gc, testLogger()).Enrich(ctx, nil, testAddress)
		require.NoError(t, err)
		require.NotNil(t, out.Location)
		assert.Equal(t, []float64{-73.9857, 40.7484}, out.Location.Coordinates)
		assert.True(t, out.Outcome.Geocoded)
		assert.True(t, out.Outcome.DirectionsAttached)
		assert.Contains(t, out.DirectionsURL, "destination=350+5th+Ave")
		assert.Empty(t, out.Outcome.Warnings)
		gc.AssertExpectations(t)
	})

	t.Run("forward failure keeps the address", func(t *testing.T) {
		gc := new(mocks.Geocoder)
		gc.On("Geocode", ctx, mock.Anything).Return(nil, errdef.NewGeocoding("provider down"))

		out, err := NewEnricher(gc, testLogger()).Enrich(ctx, nil, testAddress)
		require.NoError(t, err)
		assert.Nil(t, out.Location)
		assert.Equal(t, testAddress, out.Address)
		assert.False(t, out.Outcome.Geocoded)
		assert.False(t, out.Outcome.DirectionsAttached)
		assert.Empty(t, out.DirectionsURL)
		require.Len(t, out.Outcome.Warnings, 1)
	})

	t.Run("coordinates only are reverse geocoded", func(t *testing.T) {
		loc, _ := models.NewGeoPoint(-74.0060, 40.7128)
		gc := new(mocks.Geocoder)
		gc.On("ReverseGeocode", ctx, -74.0060, 40.7128).Return(testAddress, nil)

		out, err := NewEnricher(gc, testLogger()).Enrich(ctx, loc, nil)
		require.NoError(t, err)
		assert.Equal(t, testAddress, out.Address)
		assert.True(t, out.Outcome.ReverseGeocoded)
		assert.True(t, out.Outcome.DirectionsAttached)
	})

	t.Run("reverse failure still attaches coordinate directions", func(t *testing.T) {
		loc, _ := models.NewGeoPoint(-74.0060, 40.7128)
		gc := new(mocks.Geocoder)
		gc.On("ReverseGeocode", ctx, -74.0060, 40.7128).Return(nil, errors.New("forced failure"))

		out, err := NewEnricher(gc, testLogger()).Enrich(ctx, loc, nil)
		require.NoError(t, err)
		assert.Nil(t, out.Address)
		assert.False(t, out.Outcome.ReverseGeocoded)
		assert.True(t, out.Outcome.DirectionsAttached)
		assert.Equal(t, "https://www.google.com/maps/dir/?api=1&destination=40.7128%2C-74.006", out.DirectionsURL)
		assert.Len(t, out.Outcome.Warnings, 1)
	})

	t.Run("both present makes no provider call", func(t *testing.T) {
		loc, _ := models.NewGeoPoint(-74.0060, 40.7128)
		gc := new(mocks.Geocoder)

		out, err := NewEnricher(gc, testLogger()).Enrich(ctx, loc, testAddress)
		require.NoError(t, err)
		assert.False(t, out.Outcome.Geocoded)
		assert.False(t, out.Outcome.ReverseGeocoded)
		assert.True(t, out.Outcome.DirectionsAttached)
		gc.AssertNotCalled(t, "Geocode", mock.Anything, mock.Anything)
		gc.AssertNotCalled(t, "ReverseGeocode", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("neither is a validation error", func(t *testing.T) {
		_, err := NewEnricher(new(mocks.Geocoder), testLogger()).Enrich(ctx, nil, nil)
		assert.True(t, errdef.IsBadRequest(err))
	})
}

func newEventService(repo *mocks.EventsRepo, gc *mocks.Geocoder) *EventService {
	es := NewEventService(repo, NewEnricher(gc, testLogger()), testLogger())
	es.now = func() time.Time { return fixedNow }
	return es
}

func TestCreateEvent_PersistsDespiteGeocodingFailure(t *testing.T) {
	ctx := context.Background()
	gc := new(mocks.Geocoder)
	gc.On("Geocode", ctx, mock.Anything).Return(nil, errdef.NewGeocoding("timeout"))

	repo := new(mocks.EventsRepo)
	repo.On("CreateEvent", ctx, mock.MatchedBy(func(e *models.Event) bool {
		return e.Location == nil && e.Address != nil && !e.ID.IsZero() && e.CreatedAt.Equal(fixedNow)
	})).Return(&models.Event{ID: primitive.NewObjectID(), Title: "Jazz"}, nil)

	event := &models.Event{Title: "Jazz", Category: "music", StartDate: fixedNow.Add(24 * time.Hour), Address: testAddress}
	created, outcome, err := newEventService(repo, gc).CreateEvent(ctx, event)
	require.NoError(t, err)
	assert.NotNil(t, created)
	assert.False(t, outcome.Geocoded)
	assert.NotEmpty(t, outcome.Warnings)
	repo.AssertExpectations(t)
}

func TestCreateEvent_RejectsInvalid(t *testing.T) {
	repo := new(mocks.EventsRepo)
	es := newEventService(repo, new(mocks.Geocoder))

	_, _, err := es.CreateEvent(context.Background(), &models.Event{Title: "x", Category: "c", StartDate: fixedNow})
	assert.True(t, errdef.IsBadRequest(err), "neither location nor address")

	loc := &models.GeoPoint{Type: models.PointType, Coordinates: []float64{-200, 0}}
	_, _, err = es.CreateEvent(context.Background(), &models.Event{Title: "x", Category: "c", StartDate: fixedNow, Location: loc})
	assert.True(t, errdef.IsBadRequest(err))

	repo.AssertNotCalled(t, "CreateEvent", mock.Anything, mock.Anything)
}

func TestUpdateEvent(t *testing.T) {
	ctx := context.Background()
	id := primitive.NewObjectID()
	existingEnd := fixedNow.Add(3 * time.Hour)
	existing := &models.Event{ID: id, Title: "Old", Category: "music", StartDate: fixedNow, EndDate: &existingEnd}

	t.Run("merged schedule must stay ordered", func(t *testing.T) {
		repo := new(mocks.EventsRepo)
		repo.On("GetEventByID", ctx, id).Return(existing, nil)

		newStart := fixedNow.Add(5 * time.Hour)
		_, _, err := newEventService(repo, new(mocks.Geocoder)).UpdateEvent(ctx, id, &models.EventUpdate{StartDate: &newStart})
		assert.True(t, errdef.IsBadRequest(err))
		repo.AssertNotCalled(t, "UpdateEvent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("new address is geocoded again", func(t *testing.T) {
		repo := new(mocks.EventsRepo)
		repo.On("GetEventByID", ctx, id).Return(existing, nil)
		repo.On("UpdateEvent", ctx, id, mock.MatchedBy(func(set bson.M) bool {
			loc, ok := set["location"].(*models.GeoPoint)
			_, hasDirections := set["directions_url"]
			return ok && loc.Longitude() == -73.9857 && hasDirections && set["updated_at"] == fixedNow
		}), []string(nil)).Return(existing, nil)

		gc := new(mocks.Geocoder)
		gc.On("Geocode", ctx, testAddress.String()).Return(&geocode.Result{Longitude: -73.9857, Latitude: 40.7484}, nil)

		_, outcome, err := newEventService(repo, gc).UpdateEvent(ctx, id, &models.EventUpdate{Address: testAddress})
		require.NoError(t, err)
		require.NotNil(t, outcome)
		assert.True(t, outcome.Geocoded)
		repo.AssertExpectations(t)
	})

	t.Run("address that fails to geocode clears the old location", func(t *testing.T) {
		repo := new(mocks.EventsRepo)
		repo.On("GetEventByID", ctx, id).Return(existing, nil)
		repo.On("UpdateEvent", ctx, id, mock.MatchedBy(func(set bson.M) bool {
			_, hasLocation := set["location"]
			_, hasDirections := set["directions_url"]
			return set["address"] == testAddress && !hasLocation && !hasDirections
		}), []string{"location", "directions_url"}).Return(existing, nil)

		gc := new(mocks.Geocoder)
		gc.On("Geocode", ctx, testAddress.String()).Return(nil, errors.New("provider down"))

		_, outcome, err := newEventService(repo, gc).UpdateEvent(ctx, id, &models.EventUpdate{Address: testAddress})
		require.NoError(t, err)
		assert.False(t, outcome.Geocoded)
		assert.False(t, outcome.DirectionsAttached)
		require.Len(t, outcome.Warnings, 1)
		repo.AssertExpectations(t)
	})

	t.Run("coordinates that fail to reverse geocode clear the old address", func(t *testing.T) {
		loc, err := models.NewGeoPoint(2.3522, 48.8566)
		require.NoError(t, err)

		repo := new(mocks.EventsRepo)
		repo.On("GetEventByID", ctx, id).Return(existing, nil)
		repo.On("UpdateEvent", ctx, id, mock.MatchedBy(func(set bson.M) bool {
			_, hasAddress := set["address"]
			url, _ := set["directions_url"].(string)
			return set["location"] == loc && !hasAddress && url != ""
		}), []string{"address"}).Return(existing, nil)

		gc := new(mocks.Geocoder)
		gc.On("ReverseGeocode", ctx, 2.3522, 48.8566).Return(nil, geocode.ErrNoResults)

		_, outcome, err := newEventService(repo, gc).UpdateEvent(ctx, id, &models.EventUpdate{Location: loc})
		require.NoError(t, err)
		assert.False(t, outcome.ReverseGeocoded)
		assert.True(t, outcome.DirectionsAttached)
		repo.AssertExpectations(t)
	})

	t.Run("non-location update leaves location fields alone", func(t *testing.T) {
		repo := new(mocks.EventsRepo)
		repo.On("GetEventByID", ctx, id).Return(existing, nil)
		repo.On("UpdateEvent", ctx, id, mock.Anything, []string(nil)).Return(existing, nil)

		title := "Renamed"
		_, outcome, err := newEventService(repo, new(mocks.Geocoder)).UpdateEvent(ctx, id, &models.EventUpdate{Title: &title})
		require.NoError(t, err)
		assert.Nil(t, outcome)
		repo.AssertExpectations(t)
	})

	t.Run("empty update", func(t *testing.T) {
		_, _, err := newEventService(new(mocks.EventsRepo), new(mocks.Geocoder)).UpdateEvent(ctx, id, &models.EventUpdate{})
		assert.True(t, errdef.IsBadRequest(err))
	})

	t.Run("missing event", func(t *testing.T) {
		repo := new(mocks.EventsRepo)
		repo.On("GetEventByID", ctx, id).Return(nil, errdef.NewNotFound("event not found"))

		title := "New"
		_, _, err := newEventService(repo, new(mocks.Geocoder)).UpdateEvent(ctx, id, &models.EventUpdate{Title: &title})
		assert.True(t, errdef.IsNotFound(err))
	})
}

func TestDeleteEvent(t *testing.T) {
	ctx := context.Background()
	id := primitive.NewObjectID()
	repo := new(mocks.EventsRepo)
	repo.On("DeleteEvent", ctx, id).Return(nil)

	require.NoError(t, newEventService(repo, new(mocks.Geocoder)).DeleteEvent(ctx, id))
	repo.AssertExpectations(t)
}
