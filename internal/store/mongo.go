package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DocumentStore is the generic low-level access to named collections. The
// typed repositories are built on it.
type DocumentStore interface {
	InsertOne(ctx context.Context, collection string, document interface{}) (primitive.ObjectID, error)
	Find(ctx context.Context, collection string, filter bson.D, limit int64) ([]bson.M, error)
	ListCollectionNames(ctx context.Context) ([]string, error)
	Name() string
	Connected() bool
}

// MongoStore implements DocumentStore on a *mongo.Database. A nil database is
// allowed: every operation then fails with ErrNotInitialized.
type MongoStore struct {
	db      *mongo.Database
	timeout time.Duration
}

func NewMongoStore(db *mongo.Database, timeout time.Duration) *MongoStore {
	return &MongoStore{db: db, timeout: timeout}
}

func (s *MongoStore) Connected() bool {
	return s.db != nil
}

func (s *MongoStore) Name() string {
	if s.db == nil {
		return ""
	}
	return s.db.Name()
}

func (s *MongoStore) InsertOne(ctx context.Context, collection string, document interface{}) (primitive.ObjectID, error) {
	if s.db == nil {
		return primitive.NilObjectID, wrapErr("insert", collection, ErrNotInitialized)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := s.db.Collection(collection).InsertOne(ctx, document)
	if err != nil {
		return primitive.NilObjectID, wrapErr("insert", collection, err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, wrapErr("insert", collection, fmt.Errorf("unexpected _id type %T", res.InsertedID))
	}
	return id, nil
}

// Find returns at most limit documents matching filter in natural order. A
// limit of zero or less means no cap. No match is an empty slice.
func (s *MongoStore) Find(ctx context.Context, collection string, filter bson.D, limit int64) ([]bson.M, error) {
	if s.db == nil {
		return nil, wrapErr("find", collection, ErrNotInitialized)
	}
	if filter == nil {
		filter = bson.D{}
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	findOptions := options.Find()
	if limit > 0 {
		findOptions.SetLimit(limit)
	}

	cursor, err := s.db.Collection(collection).Find(ctx, filter, findOptions)
	if err != nil {
		return nil, wrapErr("find", collection, err)
	}
	defer cursor.Close(ctx)

	docs := make([]bson.M, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, wrapErr("find", collection, err)
	}
	if docs == nil {
		docs = make([]bson.M, 0)
	}
	return docs, nil
}

func (s *MongoStore) ListCollectionNames(ctx context.Context) ([]string, error) {
	if s.db == nil {
		return nil, wrapErr("listCollections", "", ErrNotInitialized)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	names, err := s.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, wrapErr("listCollections", "", err)
	}
	return names, nil
}

func (s *MongoStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}
