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

type ReviewsRepo interface {
	CreateReview(ctx context.Context, review *Review) (*Review, error)
	GetReviewByID(ctx context.Context, id primitive.ObjectID) (*Review, error)
	ListReviews(ctx context.Context, filter bson.M, limit int) ([]*Review, error)
	SearchReviews(ctx context.Context, query string, limit int) ([]*Review, error)
	UpdateReview(ctx context.Context, id primitive.ObjectID, set bson.M) (*Review, error)
	DeleteReview(ctx context.Context, id primitive.ObjectID) error
}

func (mdb *MongodbRepo) CreateReview(ctx context.Context, review *Review) (*Review, error) {
	col, err := mdb.GetCollection(ctx, ReviewsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}
	if _, err := col.InsertOne(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to insert review into database: %w", err)
	}
	return review, nil
}

func (mdb *MongodbRepo) GetReviewByID(ctx context.Context, id primitive.ObjectID) (*Review, error) {
	col, err := mdb.GetCollection(ctx, ReviewsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	var review Review
	err = col.FindOne(ctx, bson.M{"_id": id}).Decode(&review)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errdef.NewNotFound("review %s not found", id.Hex())
	}
	if err != nil {
		return nil, fmt.Errorf("error finding review by ID: %w", err)
	}
	return &review, nil
}

func (mdb *MongodbRepo) ListReviews(ctx context.Context, filter bson.M, limit int) ([]*Review, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	return mdb.findReviews(ctx, filter, opts)
}

// SearchReviews runs a full-text query over review comments, best match first.
func (mdb *MongodbRepo) SearchReviews(ctx context.Context, query string, limit int) ([]*Review, error) {
	score := bson.M{"$meta": "textScore"}
	opts := options.Find().
		SetProjection(bson.M{"score": score}).
		SetSort(bson.D{{Key: "score", Value: score}, {Key: "_id", Value: 1}}).
		SetLimit(int64(limit))
	return mdb.findReviews(ctx, bson.M{"$text": bson.M{"$search": query}}, opts)
}

func (mdb *MongodbRepo) findReviews(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*Review, error) {
	col, err := mdb.GetCollection(ctx, ReviewsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding reviews: %w", err)
	}
	defer cursor.Close(ctx)

	reviews := []*Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("error decoding reviews: %w", err)
	}
	return reviews, nil
}

func (mdb *MongodbRepo) UpdateReview(ctx context.Context, id primitive.ObjectID, set bson.M) (*Review, error) {
	col, err := mdb.GetCollection(ctx, ReviewsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var review Review
	err = col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&review)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errdef.NewNotFound("review %s not found", id.Hex())
	}
	if err != nil {
		return nil, fmt.Errorf("error updating review: %w", err)
	}
	return &review, nil
}

func (mdb *MongodbRepo) DeleteReview(ctx context.Context, id primitive.ObjectID) error {
	col, err := mdb.GetCollection(ctx, ReviewsColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %w", err)
	}

	res, err := col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("error deleting review: %w", err)
	}
	if res.DeletedCount == 0 {
		return errdef.NewNotFound("review %s not found", id.Hex())
	}
	return nil
}
