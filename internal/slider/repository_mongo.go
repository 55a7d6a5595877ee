package slider

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{collection: db.Collection("sliders")}
}

func (r *MongoRepository) List(ctx context.Context, activeOnly bool) ([]Slider, error) {
	filter := bson.M{}
	if activeOnly {
		filter["isActive"] = true
	}
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "createdAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := make([]Slider, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (Slider, error) {
	var s Slider
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Slider{}, ErrNotFound
	}
	return s, err
}

func (r *MongoRepository) Create(ctx context.Context, s Slider) (Slider, error) {
	if _, err := r.collection.InsertOne(ctx, s); err != nil {
		return Slider{}, err
	}
	return s, nil
}

func (r *MongoRepository) Update(ctx context.Context, s Slider) (Slider, error) {
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": s.ID}, s)
	if err != nil {
		return Slider{}, err
	}
	if res.MatchedCount == 0 {
		return Slider{}, ErrNotFound
	}
	return s, nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) SetOrder(ctx context.Context, id string, order int, at time.Time) (Slider, error) {
	var s Slider
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"order": order, "updatedAt": at}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Slider{}, ErrNotFound
	}
	return s, err
}
