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

type EventsRepo interface {
	CreateEvent(ctx context.Context, event *Event) (*Event, error)
	GetEventByID(ctx context.Context, id primitive.ObjectID) (*Event, error)
	UpdateEvent(ctx context.Context, id primitive.ObjectID, set bson.M, unset []string) (*Event, error)
	DeleteEvent(ctx context.Context, id primitive.ObjectID) error
	FindEvents(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*Event, error)
	AggregateGeoEvents(ctx context.Context, pipeline mongo.Pipeline) ([]*GeoEvent, error)
}

func (mdb *MongodbRepo) CreateEvent(ctx context.Context, event *Event) (*Event, error) {
	col, err := mdb.GetCollection(ctx, EventsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}
	if _, err := col.InsertOne(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to insert event into database: %w", err)
	}
	return event, nil
}

func (mdb *MongodbRepo) GetEventByID(ctx context.Context, id primitive.ObjectID) (*Event, error) {
	col, err := mdb.GetCollection(ctx, EventsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	var event Event
	err = col.FindOne(ctx, bson.M{"_id": id}).Decode(&event)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errdef.NewNotFound("event %s not found", id.Hex())
	}
	if err != nil {
		return nil, fmt.Errorf("error finding event by ID: %w", err)
	}
	return &event, nil
}

// eventUpdateDoc builds the update document. Fields in unset are removed from the stored event.
func eventUpdateDoc(set bson.M, unset []string) bson.M {
	doc := bson.M{"$set": set}
	if len(unset) > 0 {
		fields := bson.M{}
		for _, f := range unset {
			fields[f] = ""
		}
		doc["$unset"] = fields
	}
	return doc
}

func (mdb *MongodbRepo) UpdateEvent(ctx context.Context, id primitive.ObjectID, set bson.M, unset []string) (*Event, error) {
	col, err := mdb.GetCollection(ctx, EventsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var event Event
	err = col.FindOneAndUpdate(ctx, bson.M{"_id": id}, eventUpdateDoc(set, unset), opts).Decode(&event)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errdef.NewNotFound("event %s not found", id.Hex())
	}
	if err != nil {
		return nil, fmt.Errorf("error updating event: %w", err)
	}
	return &event, nil
}

func (mdb *MongodbRepo) DeleteEvent(ctx context.Context, id primitive.ObjectID) error {
	col, err := mdb.GetCollection(ctx, EventsColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %w", err)
	}

	res, err := col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("error deleting event: %w", err)
	}
	if res.DeletedCount == 0 {
		return errdef.NewNotFound("event %s not found", id.Hex())
	}
	return nil
}

func (mdb *MongodbRepo) FindEvents(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*Event, error) {
	col, err := mdb.GetCollection(ctx, EventsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding events: %w", err)
	}
	defer cursor.Close(ctx)

	events := []*Event{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("error decoding events: %w", err)
	}
	return events, nil
}

func (mdb *MongodbRepo) AggregateGeoEvents(ctx context.Context, pipeline mongo.Pipeline) ([]*GeoEvent, error) {
	col, err := mdb.GetCollection(ctx, EventsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	cursor, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error aggregating events: %w", err)
	}
	defer cursor.Close(ctx)

	events := []*GeoEvent{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("error decoding events: %w", err)
	}
	return events, nil
}
