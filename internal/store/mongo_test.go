package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoStoreInsertOne(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("assigns object id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		s := NewMongoStore(mt.DB, time.Second)

		id, err := s.InsertOne(context.Background(), "product", bson.D{{Key: "title", Value: "Wooden Blocks"}})
		require.NoError(mt, err)
		assert.False(mt, id.IsZero())
	})

	mt.Run("duplicate key surfaces as store error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))
		s := NewMongoStore(mt.DB, time.Second)

		_, err := s.InsertOne(context.Background(), "product", bson.D{{Key: "title", Value: "Wooden Blocks"}})
		require.Error(mt, err)

		var storeErr *StoreError
		require.True(mt, errors.As(err, &storeErr))
		assert.Equal(mt, "insert", storeErr.Op)
		assert.Equal(mt, "product", storeErr.Collection)
		assert.True(mt, mongo.IsDuplicateKeyError(err))
	})
}

func TestMongoStoreFind(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns matching documents", func(mt *mtest.T) {
		first, second := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "kidstore.product", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: first}, {Key: "title", Value: "Felt Dino"}, {Key: "category", Value: "plush"}},
			bson.D{{Key: "_id", Value: second}, {Key: "title", Value: "Sock Bunny"}, {Key: "category", Value: "plush"}},
		))
		s := NewMongoStore(mt.DB, time.Second)

		docs, err := s.Find(context.Background(), "product", bson.D{{Key: "category", Value: "plush"}}, 2)
		require.NoError(mt, err)
		require.Len(mt, docs, 2)
		assert.Equal(mt, first, docs[0]["_id"])
		assert.Equal(mt, "Sock Bunny", docs[1]["title"])
	})

	mt.Run("no match is an empty slice", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "kidstore.product", mtest.FirstBatch))
		s := NewMongoStore(mt.DB, time.Second)

		docs, err := s.Find(context.Background(), "product", nil, 1)
		require.NoError(mt, err)
		assert.NotNil(mt, docs)
		assert.Empty(mt, docs)
	})

	mt.Run("sends limit to the server", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "kidstore.product", mtest.FirstBatch))
		s := NewMongoStore(mt.DB, time.Second)

		_, err := s.Find(context.Background(), "product", bson.D{{Key: "featured", Value: true}}, DefaultSearchLimit)
		require.NoError(mt, err)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "find", started.CommandName)
		limit, ok := started.Command.Lookup("limit").AsInt64OK()
		require.True(mt, ok)
		assert.Equal(mt, DefaultSearchLimit, limit)
	})

	mt.Run("zero limit is not sent", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "kidstore.product", mtest.FirstBatch))
		s := NewMongoStore(mt.DB, time.Second)

		_, err := s.Find(context.Background(), "product", bson.D{}, 0)
		require.NoError(mt, err)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		_, err = started.Command.LookupErr("limit")
		assert.Error(mt, err)
	})

	mt.Run("command error surfaces as store error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "unknown operator",
		}))
		s := NewMongoStore(mt.DB, time.Second)

		_, err := s.Find(context.Background(), "product", bson.D{}, 20)
		var storeErr *StoreError
		require.True(mt, errors.As(err, &storeErr))
		assert.Contains(mt, err.Error(), "unknown operator")
	})
}

func TestMongoStoreListCollectionNames(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("lists names", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "kidstore.$cmd.listCollections", mtest.FirstBatch,
			bson.D{{Key: "name", Value: "product"}, {Key: "type", Value: "collection"}},
			bson.D{{Key: "name", Value: "order"}, {Key: "type", Value: "collection"}},
		))
		s := NewMongoStore(mt.DB, 0)

		names, err := s.ListCollectionNames(context.Background())
		require.NoError(mt, err)
		assert.ElementsMatch(mt, []string{"product", "order"}, names)
		assert.True(mt, s.Connected())
		assert.Equal(mt, mt.DB.Name(), s.Name())
	})
}

func TestMongoStoreWithoutDatabase(t *testing.T) {
	s := NewMongoStore(nil, time.Second)
	ctx := context.Background()

	assert.False(t, s.Connected())
	assert.Equal(t, "", s.Name())

	_, err := s.InsertOne(ctx, "order", bson.D{})
	assert.True(t, errors.Is(err, ErrNotInitialized))

	_, err = s.Find(ctx, "product", bson.D{}, 1)
	assert.True(t, errors.Is(err, ErrNotInitialized))

	_, err = s.ListCollectionNames(ctx)
	assert.True(t, errors.Is(err, ErrNotInitialized))
}
