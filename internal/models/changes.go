package models

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ChangeEvent is a decoded change stream document. ID is the resume token.
type ChangeEvent struct {
	ID            bson.Raw `bson:"_id"`
	OperationType string   `bson:"operationType"`
	Namespace     struct {
		DB   string `bson:"db"`
		Coll string `bson:"coll"`
	} `bson:"ns"`
	DocumentKey struct {
		ID primitive.ObjectID `bson:"_id"`
	} `bson:"documentKey"`
	FullDocument bson.Raw  `bson:"fullDocument,omitempty"`
	WallTime     time.Time `bson:"wallTime,omitempty"`
}

// ChangeNotification is the client-facing form of a ChangeEvent.
type ChangeNotification struct {
	Operation  string         `json:"operation"`
	Collection string         `json:"collection"`
	DocumentID string         `json:"document_id"`
	Document   map[string]any `json:"document,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

type ChangeHandler func(ctx context.Context, ev *ChangeEvent) error

type ChangeWatcher interface {
	WatchChanges(ctx context.Context, resumeAfter bson.Raw, handle ChangeHandler) error
}

// Notification converts the event. now is used when the server did not report a wall time.
func (ev *ChangeEvent) Notification(now time.Time) (*ChangeNotification, error) {
	n := &ChangeNotification{
		Operation:  ev.OperationType,
		Collection: ev.Namespace.Coll,
		DocumentID: ev.DocumentKey.ID.Hex(),
		OccurredAt: ev.WallTime,
	}
	if n.OccurredAt.IsZero() {
		n.OccurredAt = now
	}
	if len(ev.FullDocument) > 0 {
		var doc bson.M
		if err := bson.Unmarshal(ev.FullDocument, &doc); err != nil {
			return nil, fmt.Errorf("error decoding changed document: %w", err)
		}
		n.Document = doc
	}
	return n, nil
}

// WatchChanges streams inserts, updates, replaces and deletes on the application collections until
// ctx is cancelled or the stream fails. handle is called in stream order; an error from it stops the watch.
func (mdb *MongodbRepo) WatchChanges(ctx context.Context, resumeAfter bson.Raw, handle ChangeHandler) error {
	if mdb.mongodbClient == nil {
		return fmt.Errorf("mongodb client is not initialized")
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: "operationType", Value: bson.D{{Key: "$in", Value: bson.A{"insert", "update", "replace", "delete"}}}},
			{Key: "ns.coll", Value: bson.D{{Key: "$in", Value: bson.A{EventsColName, CheckinsColName, ReviewsColName, VenuesColName}}}},
		}}},
	}
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)
	if len(resumeAfter) > 0 {
		opts.SetResumeAfter(resumeAfter)
	}

	stream, err := mdb.mongodbClient.Database(mdb.dbName).Watch(ctx, pipeline, opts)
	if err != nil {
		return fmt.Errorf("error opening change stream: %w", err)
	}
	defer stream.Close(context.Background())

	for stream.Next(ctx) {
		var ev ChangeEvent
		if err := stream.Decode(&ev); err != nil {
			return fmt.Errorf("error decoding change event: %w", err)
		}
		if err := handle(ctx, &ev); err != nil {
			return err
		}
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err := stream.Err(); err != nil {
		return fmt.Errorf("change stream failed: %w", err)
	}
	return nil
}
