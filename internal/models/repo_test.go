package models

import (
	"context"
	"testing"
	"time"

	"github.com/joshua-takyi/eventscape/internal/errdef"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const testDB = "eventscape_test"

func newMockRepo(mt *mtest.T) *MongodbRepo {
	return MongodbNewRepo(mt.Client, testDB)
}

func TestGetCollection_NilClient(t *testing.T) {
	repo := MongodbNewRepo(nil, testDB)
	_, err := repo.GetCollection(context.Background(), EventsColName)
	assert.Error(t, err)
}

func TestCreateCheckin(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("inserted", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		c := &Checkin{EventID: primitive.NewObjectID(), UserID: "u1"}
		got, err := newMockRepo(mt).CreateCheckin(context.Background(), c)
		require.NoError(mt, err)
		assert.False(mt, got.ID.IsZero())
	})

	mt.Run("duplicate pair becomes integrity error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: eventscape_test.checkins index: event_user_unique",
		}))

		eventID := primitive.NewObjectID()
		_, err := newMockRepo(mt).CreateCheckin(context.Background(), &Checkin{EventID: eventID, UserID: "u1"})
		require.Error(mt, err)
		assert.True(mt, errdef.IsDuplicated(err))
		assert.Contains(mt, err.Error(), "user u1 already checked in to event "+eventID.Hex())
	})

	mt.Run("other write errors are not integrity errors", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    121,
			Message: "document failed validation",
		}))

		_, err := newMockRepo(mt).CreateCheckin(context.Background(), &Checkin{EventID: primitive.NewObjectID(), UserID: "u1"})
		require.Error(mt, err)
		assert.False(mt, errdef.IsDuplicated(err))
	})
}

func TestGetEventByID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("found", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(1, testDB+"."+EventsColName, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "title", Value: "Jazz Night"},
			{Key: "category", Value: "music"},
		}))

		got, err := newMockRepo(mt).GetEventByID(context.Background(), id)
		require.NoError(mt, err)
		assert.Equal(mt, id, got.ID)
		assert.Equal(mt, "Jazz Night", got.Title)
	})

	mt.Run("not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testDB+"."+EventsColName, mtest.FirstBatch))

		_, err := newMockRepo(mt).GetEventByID(context.Background(), primitive.NewObjectID())
		assert.True(mt, errdef.IsNotFound(err))
	})
}

func TestEventUpdateDoc(t *testing.T) {
	set := bson.M{"address": "x"}
	assert.Equal(t, bson.M{"$set": set}, eventUpdateDoc(set, nil))
	assert.Equal(t, bson.M{
		"$set":   set,
		"$unset": bson.M{"location": "", "directions_url": ""},
	}, eventUpdateDoc(set, []string{"location", "directions_url"}))
}

func TestUpdateEvent_NotFound(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("missing document", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		_, err := newMockRepo(mt).UpdateEvent(context.Background(), primitive.NewObjectID(), bson.M{"title": "x"}, nil)
		assert.True(mt, errdef.IsNotFound(err))
	})
}

func TestDeleteEvent(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("deleted", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))
		assert.NoError(mt, newMockRepo(mt).DeleteEvent(context.Background(), primitive.NewObjectID()))
	})

	mt.Run("nothing deleted", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))
		err := newMockRepo(mt).DeleteEvent(context.Background(), primitive.NewObjectID())
		assert.True(mt, errdef.IsNotFound(err))
	})
}

func TestFindEvents_EmptyIsNotNil(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("empty", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testDB+"."+EventsColName, mtest.FirstBatch))

		got, err := newMockRepo(mt).FindEvents(context.Background(), bson.M{}, options.Find().SetLimit(10))
		require.NoError(mt, err)
		assert.NotNil(mt, got)
		assert.Empty(mt, got)
	})
}

func TestAggregateGeoEvents_DecodesDistance(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("decodes", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		start := time.Date(2026, 10, 17, 20, 0, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testDB+"."+EventsColName, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "title", Value: "Food Fair"},
			{Key: "start_date", Value: start},
			{Key: "location", Value: bson.D{{Key: "type", Value: "Point"}, {Key: "coordinates", Value: bson.A{-74.0, 40.71}}}},
			{Key: "distance", Value: 0.8123},
		}))

		got, err := newMockRepo(mt).AggregateGeoEvents(context.Background(), mongo.Pipeline{})
		require.NoError(mt, err)
		require.Len(mt, got, 1)
		assert.Equal(mt, id, got[0].ID)
		assert.Equal(mt, 0.8123, got[0].Distance)
		assert.Equal(mt, start, got[0].StartDate.UTC())
		assert.Equal(mt, -74.0, got[0].Location.Longitude())
	})
}

func TestListVenues_ReturnsTotal(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("page with total", func(mt *mtest.T) {
		ns := testDB + "." + VenuesColName
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "n", Value: 7}}),
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
				bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "name", Value: "A"}},
				bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "name", Value: "B"}},
			),
		)

		venues, total, err := newMockRepo(mt).ListVenues(context.Background(), 0, 2)
		require.NoError(mt, err)
		assert.Equal(mt, 7, total)
		assert.Len(mt, venues, 2)
	})
}

func TestEnsureIndexes(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("creates every collection's indexes", func(mt *mtest.T) {
		for range CollectionIndexes() {
			mt.AddMockResponses(mtest.CreateSuccessResponse())
		}
		require.NoError(mt, newMockRepo(mt).EnsureIndexes(context.Background()))
	})

	mt.Run("surfaces failures", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    85,
			Name:    "IndexOptionsConflict",
			Message: "index already exists with different options",
		}))
		assert.Error(mt, newMockRepo(mt).EnsureIndexes(context.Background()))
	})
}

func TestCollectionIndexes_CheckinPairIsUnique(t *testing.T) {
	var found bool
	for _, idx := range CollectionIndexes()[CheckinsColName] {
		if idx.Options.Name != nil && *idx.Options.Name == CheckinUniqueIndexName {
			found = true
			require.NotNil(t, idx.Options.Unique)
			assert.True(t, *idx.Options.Unique)
			assert.Equal(t, bson.D{{Key: "event_id", Value: 1}, {Key: "user_id", Value: 1}}, idx.Keys)
		}
	}
	assert.True(t, found)
}
