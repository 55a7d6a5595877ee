// Package mongodb connects to MongoDB and prepares the collections.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect dials uri and verifies the connection with a ping.
func Connect(ctx context.Context, uri, dbName string) (*mongo.Client, *mongo.Database, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(timeoutCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(timeoutCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, client.Database(dbName), nil
}

// Indexes lists the indexes each collection needs. orderNo uniqueness backs
// duplicate detection on order insert.
func Indexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		"orders": {
			{Keys: bson.D{{Key: "orderNo", Value: 1}}, Options: options.Index().SetUnique(true).SetName("orderNo_unique")},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}, Options: options.Index().SetName("status_createdAt")},
		},
		"products": {
			{Keys: bson.D{{Key: "isActive", Value: 1}, {Key: "anime", Value: 1}}, Options: options.Index().SetName("isActive_anime")},
		},
		"sliders": {
			{Keys: bson.D{{Key: "order", Value: 1}}, Options: options.Index().SetName("order")},
		},
	}
}

func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for coll, models := range Indexes() {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create %s indexes: %w", coll, err)
		}
	}
	return nil
}

func Disconnect(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return client.Disconnect(ctx)
}
