package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/huyvng/storedash/app/models"
)

// ShippingRepository handles database operations for Shipping.
type ShippingRepository struct {
	coll *mongo.Collection
}

func NewShippingRepository(db *mongo.Database) *ShippingRepository {
	return &ShippingRepository{coll: db.Collection("shippings")}
}

func (f ShippingFilter) query() bson.M {
	q := bson.M{}
	if f.ReceiverName != "" {
		q["receiverName"] = regexFilter(f.ReceiverName)
	}
	if f.Address != "" {
		q["address"] = regexFilter(f.Address)
	}
	if f.Status != "" {
		q["status"] = f.Status
	}
	return q
}

func (r *ShippingRepository) List(ctx context.Context, filter ShippingFilter, skip, limit int64) ([]models.Shipping, int64, error) {
	q := filter.query()

	total, err := r.coll.CountDocuments(ctx, q)
	if err != nil {
		return nil, 0, err
	}

	cursor, err := r.coll.Find(ctx, q, findPage(skip, limit))
	if err != nil {
		return nil, 0, err
	}
	var shippings []models.Shipping
	if err := cursor.All(ctx, &shippings); err != nil {
		return nil, 0, err
	}
	return shippings, total, nil
}

func (r *ShippingRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Shipping, error) {
	var shipping models.Shipping
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&shipping); err != nil {
		return nil, err
	}
	return &shipping, nil
}

func (r *ShippingRepository) Create(ctx context.Context, shipping *models.Shipping) error {
	now := time.Now()
	shipping.CreatedAt = now
	shipping.UpdatedAt = now
	res, err := r.coll.InsertOne(ctx, shipping)
	if err != nil {
		return err
	}
	shipping.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *ShippingRepository) Update(ctx context.Context, id primitive.ObjectID, patch ShippingPatch) error {
	set := bson.M{"updatedAt": time.Now()}
	if patch.Order != nil {
		set["order"] = *patch.Order
	}
	if patch.ReceiverName != nil {
		set["receiverName"] = *patch.ReceiverName
	}
	if patch.Address != nil {
		set["address"] = *patch.Address
	}
	if patch.City != nil {
		set["city"] = *patch.City
	}
	if patch.PostalCode != nil {
		set["postalCode"] = *patch.PostalCode
	}
	if patch.Country != nil {
		set["country"] = *patch.Country
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
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

func (r *ShippingRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
