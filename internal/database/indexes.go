package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"kidstore/internal/models"
)

// ProductIndexes back the category and featured search filters.
func ProductIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "category", Value: 1}},
			Options: options.Index().SetName("category_index"),
		},
		{
			Keys:    bson.D{{Key: "featured", Value: 1}},
			Options: options.Index().SetName("featured_index"),
		},
	}
}

func OrderIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index().SetName("status_index"),
		},
		{
			Keys:    bson.D{{Key: "customer.email", Value: 1}},
			Options: options.Index().SetName("customer_email_index"),
		},
	}
}

func EnsureProductIndexes(db *mongo.Database) error {
	return ensureIndexes(db, models.ProductCollection, ProductIndexes())
}

func EnsureOrderIndexes(db *mongo.Database) error {
	return ensureIndexes(db, models.OrderCollection, OrderIndexes())
}

func ensureIndexes(db *mongo.Database, collection string, indexes []mongo.IndexModel) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	log := zap.L().With(zap.String("collection", collection))

	log.Debug("creating indexes", zap.Int("count", len(indexes)))
	names, err := db.Collection(collection).Indexes().CreateMany(ctx, indexes)
	if err != nil {
		log.Warn("index creation failed", zap.Error(err))
		return err
	}
	log.Info("indexes ready", zap.Strings("names", names))
	return nil
}
