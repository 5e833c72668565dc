package models

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CheckinUniqueIndexName = "event_user_unique"

// IndexManager creates the indexes the queries and the check-in guard depend on.
type IndexManager interface {
	EnsureIndexes(ctx context.Context) error
}

// CollectionIndexes lists the indexes every collection needs, keyed by collection name.
func CollectionIndexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		EventsColName: {
			{
				Keys:    bson.D{{Key: "location", Value: "2dsphere"}},
				Options: options.Index().SetName("location_2dsphere"),
			},
			{
				Keys: bson.D{
					{Key: "title", Value: "text"},
					{Key: "tags", Value: "text"},
					{Key: "description", Value: "text"},
				},
				Options: options.Index().
					SetName("event_text").
					SetWeights(bson.D{
						{Key: "title", Value: 10},
						{Key: "tags", Value: 5},
						{Key: "description", Value: 1},
					}),
			},
			{
				Keys:    bson.D{{Key: "start_date", Value: 1}, {Key: "_id", Value: 1}},
				Options: options.Index().SetName("start_date_idx"),
			},
			{
				Keys:    bson.D{{Key: "category", Value: 1}, {Key: "start_date", Value: 1}},
				Options: options.Index().SetName("category_start_date_idx"),
			},
		},
		// The unique pair is what keeps concurrent check-ins from producing a second record.
		CheckinsColName: {
			{
				Keys: bson.D{
					{Key: "event_id", Value: 1},
					{Key: "user_id", Value: 1},
				},
				Options: options.Index().
					SetUnique(true).
					SetName(CheckinUniqueIndexName),
			},
			{
				Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "check_in_time", Value: -1}},
				Options: options.Index().SetName("user_check_in_time_idx"),
			},
		},
		ReviewsColName: {
			{
				Keys:    bson.D{{Key: "comment", Value: "text"}},
				Options: options.Index().SetName("comment_text"),
			},
			{
				Keys:    bson.D{{Key: "event_id", Value: 1}, {Key: "created_at", Value: -1}},
				Options: options.Index().SetName("event_id_idx"),
			},
			{
				Keys:    bson.D{{Key: "venue_id", Value: 1}, {Key: "created_at", Value: -1}},
				Options: options.Index().SetName("venue_id_idx"),
			},
		},
		VenuesColName: {
			{
				Keys:    bson.D{{Key: "location", Value: "2dsphere"}},
				Options: options.Index().SetName("location_2dsphere"),
			},
			{
				Keys:    bson.D{{Key: "host_id", Value: 1}},
				Options: options.Index().SetName("host_id_idx"),
			},
		},
	}
}

// EnsureIndexes creates the indexes for all collections. Creating an index that already exists
// with the same definition is a no-op, so this runs on every startup.
func (mdb *MongodbRepo) EnsureIndexes(ctx context.Context) error {
	for colName, indexes := range CollectionIndexes() {
		col, err := mdb.GetCollection(ctx, colName)
		if err != nil {
			return fmt.Errorf("error getting collection: %w", err)
		}
		if _, err := col.Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("error creating indexes on %s: %w", colName, err)
		}
	}
	return nil
}
