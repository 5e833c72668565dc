package services

import (
	"context"
	"testing"
	"time"

	"github.com/joshua-takyi/eventscape/internal/errdef"
	"github.com/joshua-takyi/eventscape/internal/mocks"
	"github.com/joshua-takyi/eventscape/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type reviewDeps struct {
	reviews *mocks.ReviewsRepo
	events  *mocks.EventsRepo
	venues  *mocks.VenuesRepo
}

func newReviewService() (*ReviewService, reviewDeps) {
	d := reviewDeps{new(mocks.ReviewsRepo), new(mocks.EventsRepo), new(mocks.VenuesRepo)}
	rs := NewReviewService(d.reviews, d.events, d.venues)
	rs.now = func() time.Time { return fixedNow }
	return rs, d
}

func TestCreateReview(t *testing.T) {
	ctx := context.Background()

	t.Run("event review", func(t *testing.T) {
		rs, d := newReviewService()
		eventID := primitive.NewObjectID()
		d.events.On("GetEventByID", ctx, eventID).Return(&models.Event{ID: eventID}, nil)
		d.reviews.On("CreateReview", ctx, mock.MatchedBy(func(r *models.Review) bool {
			return r.UserID == "u1" && r.CreatedAt.Equal(fixedNow) && r.Comment == "great"
		})).Return(&models.Review{}, nil)

		_, err := rs.CreateReview(ctx, "u1", &models.Review{EventID: &eventID, Rating: 5, Comment: " great "})
		require.NoError(t, err)
		d.reviews.AssertExpectations(t)
		d.venues.AssertNotCalled(t, "GetVenueByID", mock.Anything, mock.Anything)
	})

	t.Run("venue must exist", func(t *testing.T) {
		rs, d := newReviewService()
		venueID := primitive.NewObjectID()
		d.venues.On("GetVenueByID", ctx, venueID).Return(nil, errdef.NewNotFound("venue not found"))

		_, err := rs.CreateReview(ctx, "u1", &models.Review{VenueID: &venueID, Rating: 4})
		assert.True(t, errdef.IsNotFound(err))
	})

	t.Run("both subjects rejected", func(t *testing.T) {
		rs, d := newReviewService()
		a, b := primitive.NewObjectID(), primitive.NewObjectID()

		_, err := rs.CreateReview(ctx, "u1", &models.Review{EventID: &a, VenueID: &b, Rating: 4})
		assert.True(t, errdef.IsBadRequest(err))
		d.reviews.AssertNotCalled(t, "CreateReview", mock.Anything, mock.Anything)
	})
}

func TestListAndSearchReviews(t *testing.T) {
	ctx := context.Background()
	rs, d := newReviewService()
	venueID := primitive.NewObjectID()
	d.reviews.On("ListReviews", ctx, bson.M{"venue_id": venueID}, 25).Return([]*models.Review{}, nil)
	d.reviews.On("SearchReviews", ctx, "friendly staff", maxReviewList).Return([]*models.Review{}, nil)

	_, err := rs.ListReviews(ctx, nil, &venueID, 25)
	require.NoError(t, err)
	_, err = rs.SearchReviews(ctx, "  friendly staff ", 0)
	require.NoError(t, err)

	_, err = rs.ListReviews(ctx, nil, nil, 10)
	assert.True(t, errdef.IsBadRequest(err))
	_, err = rs.SearchReviews(ctx, "", 10)
	assert.True(t, errdef.IsBadRequest(err))
	d.reviews.AssertExpectations(t)
}

func TestReviewOwnership(t *testing.T) {
	ctx := context.Background()
	id := primitive.NewObjectID()

	rs, d := newReviewService()
	d.reviews.On("GetReviewByID", ctx, id).Return(&models.Review{ID: id, UserID: "author"}, nil)
	d.reviews.On("DeleteReview", ctx, id).Return(nil)

	rating := 2
	_, err := rs.UpdateReview(ctx, id, "someone-else", &models.ReviewUpdate{Rating: &rating})
	assert.True(t, errdef.IsForbidden(err))

	require.NoError(t, rs.DeleteReview(ctx, id, "author"))
	d.reviews.AssertCalled(t, "DeleteReview", ctx, id)
}
