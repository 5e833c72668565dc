package services

import (
	"context"
	"strings"
	"time"

	"github.com/joshua-takyi/eventscape/internal/errdef"
	"github.com/joshua-takyi/eventscape/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const maxReviewList = 100

type ReviewService struct {
	reviewsRepo models.ReviewsRepo
	eventsRepo  models.EventsRepo
	venuesRepo  models.VenuesRepo
	now         func() time.Time
}

func NewReviewService(reviewsRepo models.ReviewsRepo, eventsRepo models.EventsRepo, venuesRepo models.VenuesRepo) *ReviewService {
	return &ReviewService{
		reviewsRepo: reviewsRepo,
		eventsRepo:  eventsRepo,
		venuesRepo:  venuesRepo,
		now:         time.Now,
	}
}

// CreateReview stores a review of exactly one event or venue, which must exist.
func (rs *ReviewService) CreateReview(ctx context.Context, userID string, review *models.Review) (*models.Review, error) {
	review.UserID = userID
	if err := review.Validate(); err != nil {
		return nil, err
	}

	if review.EventID != nil {
		if _, err := rs.eventsRepo.GetEventByID(ctx, *review.EventID); err != nil {
			return nil, err
		}
	} else {
		if _, err := rs.venuesRepo.GetVenueByID(ctx, *review.VenueID); err != nil {
			return nil, err
		}
	}

	review.BeforeCreate(rs.now().UTC())
	return rs.reviewsRepo.CreateReview(ctx, review)
}

func (rs *ReviewService) GetReview(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	return rs.reviewsRepo.GetReviewByID(ctx, id)
}

// ListReviews lists the reviews of one subject. Exactly one of eventID and venueID must be set.
func (rs *ReviewService) ListReviews(ctx context.Context, eventID, venueID *primitive.ObjectID, limit int) ([]*models.Review, error) {
	if (eventID == nil) == (venueID == nil) {
		return nil, errdef.NewBadRequest("exactly one of event_id or venue_id is required")
	}
	filter := bson.M{}
	if eventID != nil {
		filter["event_id"] = *eventID
	} else {
		filter["venue_id"] = *venueID
	}
	return rs.reviewsRepo.ListReviews(ctx, filter, clampReviews(limit))
}

func (rs *ReviewService) SearchReviews(ctx context.Context, query string, limit int) ([]*models.Review, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errdef.NewBadRequest("search query is required")
	}
	return rs.reviewsRepo.SearchReviews(ctx, query, clampReviews(limit))
}

func (rs *ReviewService) UpdateReview(ctx context.Context, id primitive.ObjectID, userID string, update *models.ReviewUpdate) (*models.Review, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}
	if err := rs.authorize(ctx, id, userID); err != nil {
		return nil, err
	}
	return rs.reviewsRepo.UpdateReview(ctx, id, update.SetFields(rs.now().UTC()))
}

func (rs *ReviewService) DeleteReview(ctx context.Context, id primitive.ObjectID, userID string) error {
	if err := rs.authorize(ctx, id, userID); err != nil {
		return err
	}
	return rs.reviewsRepo.DeleteReview(ctx, id)
}

func (rs *ReviewService) authorize(ctx context.Context, id primitive.ObjectID, userID string) error {
	existing, err := rs.reviewsRepo.GetReviewByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return errdef.NewForbidden("review %s belongs to another user", id.Hex())
	}
	return nil
}

func clampReviews(limit int) int {
	if limit <= 0 || limit > maxReviewList {
		return maxReviewList
	}
	return limit
}
