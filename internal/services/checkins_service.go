package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/eventscape/internal/errdef"
	"github.com/joshua-takyi/eventscape/internal/metrics"
	"github.com/joshua-takyi/eventscape/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const maxCheckinList = 500

type CheckinService struct {
	checkinsRepo models.CheckinsRepo
	eventsRepo   models.EventsRepo
	now          func() time.Time
	logger       *slog.Logger
}

func NewCheckinService(checkinsRepo models.CheckinsRepo, eventsRepo models.EventsRepo, logger *slog.Logger) *CheckinService {
	return &CheckinService{
		checkinsRepo: checkinsRepo,
		eventsRepo:   eventsRepo,
		now:          time.Now,
		logger:       logger,
	}
}

// CheckIn records userID's attendance at eventID. A second check-in for the same pair, including a
// concurrent one, is rejected by the store with a Duplicated error.
func (cs *CheckinService) CheckIn(ctx context.Context, eventID primitive.ObjectID, userID string, checkin *models.Checkin) (*models.Checkin, error) {
	checkin.EventID = eventID
	checkin.UserID = userID
	if err := checkin.Validate(); err != nil {
		return nil, err
	}

	event, err := cs.eventsRepo.GetEventByID(ctx, eventID)
	if err != nil {
		if errdef.IsNotFound(err) {
			metrics.RecordCheckin("event_not_found")
		}
		return nil, err
	}

	now := cs.now().UTC()
	checkin.ID = primitive.NewObjectID()
	checkin.VenueID = event.VenueID
	checkin.CheckInTime = now
	checkin.CreatedAt = now
	checkin.UpdatedAt = nil
	if checkin.Code == "" {
		checkin.Code = uuid.NewString()
	}

	created, err := cs.checkinsRepo.CreateCheckin(ctx, checkin)
	if err != nil {
		if errdef.IsDuplicated(err) {
			metrics.RecordCheckin("duplicate")
			cs.logger.Info("duplicate check-in rejected", "event_id", eventID.Hex(), "user_id", userID)
		} else {
			metrics.RecordCheckin("error")
		}
		return nil, err
	}

	metrics.RecordCheckin("created")
	return created, nil
}

func (cs *CheckinService) GetCheckin(ctx context.Context, id primitive.ObjectID) (*models.Checkin, error) {
	return cs.checkinsRepo.GetCheckinByID(ctx, id)
}

func (cs *CheckinService) ListByEvent(ctx context.Context, eventID primitive.ObjectID, limit int) ([]*models.Checkin, error) {
	return cs.checkinsRepo.ListCheckins(ctx, bson.M{"event_id": eventID}, clampList(limit))
}

func (cs *CheckinService) ListByUser(ctx context.Context, userID string, limit int) ([]*models.Checkin, error) {
	if userID == "" {
		return nil, errdef.NewBadRequest("user id is required")
	}
	return cs.checkinsRepo.ListCheckins(ctx, bson.M{"user_id": userID}, clampList(limit))
}

// UpdateCheckin changes method, ticket tier or metadata. Only the user who checked in may change it.
func (cs *CheckinService) UpdateCheckin(ctx context.Context, id primitive.ObjectID, userID string, update *models.CheckinUpdate) (*models.Checkin, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}
	if err := cs.authorize(ctx, id, userID); err != nil {
		return nil, err
	}
	return cs.checkinsRepo.UpdateCheckin(ctx, id, update.SetFields(cs.now().UTC()))
}

func (cs *CheckinService) DeleteCheckin(ctx context.Context, id primitive.ObjectID, userID string) error {
	if err := cs.authorize(ctx, id, userID); err != nil {
		return err
	}
	return cs.checkinsRepo.DeleteCheckin(ctx, id)
}

func (cs *CheckinService) authorize(ctx context.Context, id primitive.ObjectID, userID string) error {
	existing, err := cs.checkinsRepo.GetCheckinByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return errdef.NewForbidden("check-in %s belongs to another user", id.Hex())
	}
	return nil
}

func clampList(limit int) int {
	if limit <= 0 || limit > maxCheckinList {
		return maxCheckinList
	}
	return limit
}
