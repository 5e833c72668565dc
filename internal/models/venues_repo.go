package models

import (
	"context"
	"errors"
	"fmt"

	"github.com/joshua-takyi/eventscape/internal/errdef"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type VenuesRepo interface {
	CreateVenue(ctx context.Context, venue *Venue) (*Venue, error)
	GetVenueByID(ctx context.Context, id primitive.ObjectID) (*Venue, error)
	// ListVenues returns one page of venues and the total number of venues.
	ListVenues(ctx context.Context, offset, limit int) ([]*Venue, int, error)
	DeleteVenue(ctx context.Context, hostID string, id primitive.ObjectID) error
}

func (mdb *MongodbRepo) CreateVenue(ctx context.Context, venue *Venue) (*Venue, error) {
	col, err := mdb.GetCollection(ctx, VenuesColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}
	if _, err := col.InsertOne(ctx, venue); err != nil {
		return nil, fmt.Errorf("failed to insert venue into database: %w", err)
	}
	return venue, nil
}

func (mdb *MongodbRepo) GetVenueByID(ctx context.Context, id primitive.ObjectID) (*Venue, error) {
	col, err := mdb.GetCollection(ctx, VenuesColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	var venue Venue
	err = col.FindOne(ctx, bson.M{"_id": id}).Decode(&venue)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errdef.NewNotFound("venue %s not found", id.Hex())
	}
	if err != nil {
		return nil, fmt.Errorf("error finding venue by ID: %w", err)
	}
	return &venue, nil
}

func (mdb *MongodbRepo) ListVenues(ctx context.Context, offset, limit int) ([]*Venue, int, error) {
	col, err := mdb.GetCollection(ctx, VenuesColName)
	if err != nil {
		return nil, 0, fmt.Errorf("error getting collection: %w", err)
	}

	total, err := col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("error counting venues: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("error finding venues: %w", err)
	}
	defer cursor.Close(ctx)

	venues := []*Venue{}
	if err := cursor.All(ctx, &venues); err != nil {
		return nil, 0, fmt.Errorf("error decoding venues: %w", err)
	}
	return venues, int(total), nil
}

// DeleteVenue removes the venue only when it belongs to hostID.
func (mdb *MongodbRepo) DeleteVenue(ctx context.Context, hostID string, id primitive.ObjectID) error {
	col, err := mdb.GetCollection(ctx, VenuesColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %w", err)
	}

	res, err := col.DeleteOne(ctx, bson.M{"_id": id, "host_id": hostID})
	if err != nil {
		return fmt.Errorf("error deleting venue: %w", err)
	}
	if res.DeletedCount == 0 {
		return errdef.NewNotFound("venue %s not found", id.Hex())
	}
	return nil
}
