package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/huyvng/storedash/app/models"
)

// NamedRepository is the shared persistence layer for the three
// name+description catalog collections (brands, categories, payment
// methods). T is the concrete model type.
type NamedRepository[T any] struct {
	coll *mongo.Collection
}

func NewBrandRepository(db *mongo.Database) *NamedRepository[models.Brand] {
	return &NamedRepository[models.Brand]{coll: db.Collection("brands")}
}

func NewCategoryRepository(db *mongo.Database) *NamedRepository[models.Category] {
	return &NamedRepository[models.Category]{coll: db.Collection("categories")}
}

func NewPaymentMethodRepository(db *mongo.Database) *NamedRepository[models.PaymentMethod] {
	return &NamedRepository[models.PaymentMethod]{coll: db.Collection("payment_methods")}
}

// List returns one page matching the optional case-insensitive name filter.
func (r *NamedRepository[T]) List(ctx context.Context, name string, skip, limit int64) ([]T, int64, error) {
	q := bson.M{}
	if name != "" {
		q["name"] = regexFilter(name)
	}

	total, err := r.coll.CountDocuments(ctx, q)
	if err != nil {
		return nil, 0, err
	}

	cursor, err := r.coll.Find(ctx, q, findPage(skip, limit))
	if err != nil {
		return nil, 0, err
	}
	var items []T
	if err := cursor.All(ctx, &items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *NamedRepository[T]) FindByID(ctx context.Context, id primitive.ObjectID) (*T, error) {
	var item T
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&item); err != nil {
		return nil, err
	}
	return &item, nil
}

// NameExists reports whether the exact name is already taken.
func (r *NamedRepository[T]) NameExists(ctx context.Context, name string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"name": name})
	return n > 0, err
}

// Create inserts a name+description document and returns its new id.
func (r *NamedRepository[T]) Create(ctx context.Context, name, description string) (primitive.ObjectID, error) {
	now := time.Now()
	res, err := r.coll.InsertOne(ctx, bson.M{
		"name":        name,
		"description": description,
		"createdAt":   now,
		"updatedAt":   now,
	})
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (r *NamedRepository[T]) Update(ctx context.Context, id primitive.ObjectID, patch NamedPatch) error {
	set := bson.M{"updatedAt": time.Now()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *NamedRepository[T]) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
