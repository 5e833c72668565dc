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

type CheckinsRepo interface {
	CreateCheckin(ctx context.Context, checkin *Checkin) (*Checkin, error)
	GetCheckinByID(ctx context.Context, id primitive.ObjectID) (*Checkin, error)
	ListCheckins(ctx context.Context, filter bson.M, limit int) ([]*Checkin, error)
	UpdateCheckin(ctx context.Context, id primitive.ObjectID, set bson.M) (*Checkin, error)
	DeleteCheckin(ctx context.Context, id primitive.ObjectID) error
}

// CreateCheckin inserts the check-in. Uniqueness of (event_id, user_id) is enforced by the
// event_user_unique index, so a concurrent duplicate loses at the store instead of slipping past a lookup.
func (mdb *MongodbRepo) CreateCheckin(ctx context.Context, checkin *Checkin) (*Checkin, error) {
	col, err := mdb.GetCollection(ctx, CheckinsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}
	if checkin.ID.IsZero() {
		checkin.ID = primitive.NewObjectID()
	}

	_, err = col.InsertOne(ctx, checkin)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, errdef.NewDuplicated("user %s already checked in to event %s", checkin.UserID, checkin.EventID.Hex())
		}
		return nil, fmt.Errorf("error inserting check-in: %w", err)
	}
	return checkin, nil
}

func (mdb *MongodbRepo) GetCheckinByID(ctx context.Context, id primitive.ObjectID) (*Checkin, error) {
	col, err := mdb.GetCollection(ctx, CheckinsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	var checkin Checkin
	err = col.FindOne(ctx, bson.M{"_id": id}).Decode(&checkin)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errdef.NewNotFound("check-in %s not found", id.Hex())
	}
	if err != nil {
		return nil, fmt.Errorf("error finding check-in by ID: %w", err)
	}
	return &checkin, nil
}

func (mdb *MongodbRepo) ListCheckins(ctx context.Context, filter bson.M, limit int) ([]*Checkin, error) {
	col, err := mdb.GetCollection(ctx, CheckinsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "check_in_time", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding check-ins: %w", err)
	}
	defer cursor.Close(ctx)

	checkins := []*Checkin{}
	if err := cursor.All(ctx, &checkins); err != nil {
		return nil, fmt.Errorf("error decoding check-ins: %w", err)
	}
	return checkins, nil
}

func (mdb *MongodbRepo) UpdateCheckin(ctx context.Context, id primitive.ObjectID, set bson.M) (*Checkin, error) {
	col, err := mdb.GetCollection(ctx, CheckinsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var checkin Checkin
	err = col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&checkin)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errdef.NewNotFound("check-in %s not found", id.Hex())
	}
	if err != nil {
		return nil, fmt.Errorf("error updating check-in: %w", err)
	}
	return &checkin, nil
}

func (mdb *MongodbRepo) DeleteCheckin(ctx context.Context, id primitive.ObjectID) error {
	col, err := mdb.GetCollection(ctx, CheckinsColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %w", err)
	}

	res, err := col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("error deleting check-in: %w", err)
	}
	if res.DeletedCount == 0 {
		return errdef.NewNotFound("check-in %s not found", id.Hex())
	}
	return nil
}
