package product

import (
	"context"
	"errors"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{collection: db.Collection("products")}
}

var mongoSort = map[string]bson.D{
	SortPriceLow:  {{Key: "price", Value: 1}},
	SortPriceHigh: {{Key: "price", Value: -1}},
	SortName:      {{Key: "name", Value: 1}},
	SortAnime:     {{Key: "anime", Value: 1}},
}

// mongoFilter mirrors Matches as a query document.
func mongoFilter(f Filter) bson.M {
	filter := bson.M{"isActive": true}
	and := bson.A{}
	if f.Search != "" {
		re := bson.M{"$regex": regexp.QuoteMeta(f.Search), "$options": "i"}
		and = append(and, bson.M{"$or": bson.A{
			bson.M{"name": re},
			bson.M{"anime": re},
			bson.M{"category": re},
		}})
	}
	if f.Anime != "" {
		filter["anime"] = f.Anime
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.IsNew {
		filter["isNew"] = true
	}
	if f.OnSale {
		and = append(and, bson.M{"$or": bson.A{
			bson.M{"discount": bson.M{"$gt": 0}},
			bson.M{"$expr": bson.M{"$gt": bson.A{"$originalPrice", "$price"}}},
		}})
	}
	if len(and) > 0 {
		filter["$and"] = and
	}
	return filter
}

func (r *MongoRepository) List(ctx context.Context, f Filter) ([]Product, error) {
	limit := f.Limit
	if limit <= 0 || limit > MaxListLimit {
		limit = MaxListLimit
	}
	opts := options.Find().SetLimit(int64(limit))
	if s, ok := mongoSort[f.Sort]; ok {
		opts.SetSort(s)
	}
	cursor, err := r.collection.Find(ctx, mongoFilter(f), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := make([]Product, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (Product, error) {
	var p Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Product{}, ErrNotFound
	}
	return p, err
}

func (r *MongoRepository) Create(ctx context.Context, p Product) (Product, error) {
	if _, err := r.collection.InsertOne(ctx, p); err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *MongoRepository) Update(ctx context.Context, p Product) (Product, error) {
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return Product{}, err
	}
	if res.MatchedCount == 0 {
		return Product{}, ErrNotFound
	}
	return p, nil
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

func (r *MongoRepository) Reset(ctx context.Context, products []Product) error {
	if _, err := r.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}
	if len(products) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(products))
	for _, p := range products {
		docs = append(docs, p)
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}
