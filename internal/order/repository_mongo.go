package order

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepository relies on a unique index on orderNo, created by the
// mongodb infrastructure package at startup.
type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{collection: db.Collection("orders")}
}

func (r *MongoRepository) Create(ctx context.Context, ord Order) error {
	_, err := r.collection.InsertOne(ctx, ord)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateOrderNo
	}
	return err
}

func (r *MongoRepository) GetByOrderNo(ctx context.Context, orderNo string) (Order, error) {
	var ord Order
	err := r.collection.FindOne(ctx, bson.M{"orderNo": orderNo}).Decode(&ord)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Order{}, ErrNotFound
	}
	return ord, err
}

func (r *MongoRepository) List(ctx context.Context, f ListFilter) ([]Order, error) {
	f = f.normalized()
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Search != "" {
		re := bson.M{"$regex": regexp.QuoteMeta(f.Search), "$options": "i"}
		filter["$or"] = bson.A{
			bson.M{"orderNo": re},
			bson.M{"customer.fullName": re},
			bson.M{"customer.phone": re},
		}
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(f.Limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := make([]Order, 0)
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *MongoRepository) CountByStatus(ctx context.Context) (map[Status]int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Status string `bson:"_id"`
		Count  int    `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	counts := map[Status]int{}
	for _, row := range rows {
		counts[Status(row.Status)] = row.Count
	}
	return counts, nil
}

func (r *MongoRepository) UpdateStatus(ctx context.Context, orderNo string, expectedVersion int, status Status, at time.Time) (Order, error) {
	filter := bson.M{"orderNo": orderNo, "version": expectedVersion}
	update := bson.M{
		"$set": bson.M{"status": status, "updatedAt": at},
		"$inc": bson.M{"version": 1},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var ord Order
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&ord)
	if errors.Is(err, mongo.ErrNoDocuments) {
		if _, getErr := r.GetByOrderNo(ctx, orderNo); getErr != nil {
			return Order{}, getErr
		}
		return Order{}, ErrVersionConflict
	}
	return ord, err
}
