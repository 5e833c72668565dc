// Package mocks holds testify mocks of the repository and geocoder interfaces for service and
// handler tests.
package mocks

import (
	"context"

	"github.com/joshua-takyi/eventscape/internal/geocode"
	"github.com/joshua-takyi/eventscape/internal/models"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type EventsRepo struct {
	mock.Mock
}

func (m *EventsRepo) CreateEvent(ctx context.Context, event *models.Event) (*models.Event, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *EventsRepo) GetEventByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *EventsRepo) UpdateEvent(ctx context.Context, id primitive.ObjectID, set bson.M, unset []string) (*models.Event, error) {
	args := m.Called(ctx, id, set, unset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *EventsRepo) DeleteEvent(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *EventsRepo) FindEvents(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*models.Event, error) {
	args := m.Called(ctx, filter, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Event), args.Error(1)
}

func (m *EventsRepo) AggregateGeoEvents(ctx context.Context, pipeline mongo.Pipeline) ([]*models.GeoEvent, error) {
	args := m.Called(ctx, pipeline)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.GeoEvent), args.Error(1)
}

type CheckinsRepo struct {
	mock.Mock
}

func (m *CheckinsRepo) CreateCheckin(ctx context.Context, checkin *models.Checkin) (*models.Checkin, error) {
	args := m.Called(ctx, checkin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Checkin), args.Error(1)
}

func (m *CheckinsRepo) GetCheckinByID(ctx context.Context, id primitive.ObjectID) (*models.Checkin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Checkin), args.Error(1)
}

func (m *CheckinsRepo) ListCheckins(ctx context.Context, filter bson.M, limit int) ([]*models.Checkin, error) {
	args := m.Called(ctx, filter, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Checkin), args.Error(1)
}

func (m *CheckinsRepo) UpdateCheckin(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Checkin, error) {
	args := m.Called(ctx, id, set)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Checkin), args.Error(1)
}

func (m *CheckinsRepo) DeleteCheckin(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type ReviewsRepo struct {
	mock.Mock
}

func (m *ReviewsRepo) CreateReview(ctx context.Context, review *models.Review) (*models.Review, error) {
	args := m.Called(ctx, review)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *ReviewsRepo) GetReviewByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *ReviewsRepo) ListReviews(ctx context.Context, filter bson.M, limit int) ([]*models.Review, error) {
	args := m.Called(ctx, filter, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Review), args.Error(1)
}

func (m *ReviewsRepo) SearchReviews(ctx context.Context, query string, limit int) ([]*models.Review, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Review), args.Error(1)
}

func (m *ReviewsRepo) UpdateReview(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Review, error) {
	args := m.Called(ctx, id, set)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *ReviewsRepo) DeleteReview(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type VenuesRepo struct {
	mock.Mock
}

func (m *VenuesRepo) CreateVenue(ctx context.Context, venue *models.Venue) (*models.Venue, error) {
	args := m.Called(ctx, venue)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Venue), args.Error(1)
}

func (m *VenuesRepo) GetVenueByID(ctx context.Context, id primitive.ObjectID) (*models.Venue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Venue), args.Error(1)
}

func (m *VenuesRepo) ListVenues(ctx context.Context, offset, limit int) ([]*models.Venue, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.Venue), args.Int(1), args.Error(2)
}

func (m *VenuesRepo) DeleteVenue(ctx context.Context, hostID string, id primitive.ObjectID) error {
	args := m.Called(ctx, hostID, id)
	return args.Error(0)
}

type Geocoder struct {
	mock.Mock
}

func (m *Geocoder) Geocode(ctx context.Context, address string) (*geocode.Result, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*geocode.Result), args.Error(1)
}

func (m *Geocoder) ReverseGeocode(ctx context.Context, lng, lat float64) (*models.Address, error) {
	args := m.Called(ctx, lng, lat)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Address), args.Error(1)
}
