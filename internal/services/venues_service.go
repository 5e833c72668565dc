package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/joshua-takyi/eventscape/internal/errdef"
	"github.com/joshua-takyi/eventscape/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type VenuesService struct {
	venuesRepo models.VenuesRepo
	now        func() time.Time
	logger     *slog.Logger
}

func NewVenuesService(venuesRepo models.VenuesRepo, logger *slog.Logger) *VenuesService {
	return &VenuesService{
		venuesRepo: venuesRepo,
		now:        time.Now,
		logger:     logger,
	}
}

func (vs *VenuesService) CreateVenue(ctx context.Context, hostID string, venue *models.Venue) (*models.Venue, error) {
	if err := venue.Validate(); err != nil {
		return nil, err
	}
	venue.BeforeCreate(hostID, vs.now().UTC())

	created, err := vs.venuesRepo.CreateVenue(ctx, venue)
	if err != nil {
		return nil, err
	}
	vs.logger.Info("venue created", "venue_id", created.ID.Hex(), "host_id", hostID)
	return created, nil
}

func (vs *VenuesService) GetVenue(ctx context.Context, id primitive.ObjectID) (*models.Venue, error) {
	return vs.venuesRepo.GetVenueByID(ctx, id)
}

func (vs *VenuesService) ListVenues(ctx context.Context, offset, limit int) ([]*models.Venue, int, error) {
	if offset < 0 || limit <= 0 || limit > DefaultMaxLimit {
		return nil, 0, errdef.NewBadRequest("invalid offset or limit")
	}
	return vs.venuesRepo.ListVenues(ctx, offset, limit)
}

func (vs *VenuesService) DeleteVenue(ctx context.Context, hostID string, id primitive.ObjectID) error {
	if hostID == "" {
		return errdef.NewUnauthorized("host id is required")
	}
	return vs.venuesRepo.DeleteVenue(ctx, hostID, id)
}
