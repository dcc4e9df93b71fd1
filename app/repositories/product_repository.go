package repositories

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/huyvng/storedash/app/models"
)

// regexFilter builds a case-insensitive substring matcher.
func regexFilter(value string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(value), Options: "i"}
}

// ProductRepository handles database operations for Product.
type ProductRepository struct {
	coll *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{coll: db.Collection("products")}
}

func (f ProductFilter) query() bson.M {
	q := bson.M{}
	if f.Name != "" {
		q["name"] = regexFilter(f.Name)
	}
	if f.CategoryName != "" {
		q["categoryName"] = regexFilter(f.CategoryName)
	}
	if f.BrandName != "" {
		q["brandName"] = regexFilter(f.BrandName)
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		price := bson.M{}
		if f.MinPrice != nil {
			price["$gte"] = *f.MinPrice
		}
		if f.MaxPrice != nil {
			price["$lte"] = *f.MaxPrice
		}
		q["price"] = price
	}
	return q
}

// List returns one page of products matching the filter, plus the total
// match count.
func (r *ProductRepository) List(ctx context.Context, filter ProductFilter, skip, limit int64) ([]models.Product, int64, error) {
	q := filter.query()

	total, err := r.coll.CountDocuments(ctx, q)
	if err != nil {
		return nil, 0, err
	}

	cursor, err := r.coll.Find(ctx, q, findPage(skip, limit))
	if err != nil {
		return nil, 0, err
	}
	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	res, err := r.coll.InsertOne(ctx, product)
	if err != nil {
		return err
	}
	product.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, id primitive.ObjectID, patch ProductPatch) error {
	set := bson.M{"updatedAt": time.Now()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Image != nil {
		set["image"] = *patch.Image
	}
	if patch.CountInStock != nil {
		set["countInStock"] = *patch.CountInStock
	}
	if patch.CategoryName != nil {
		set["categoryName"] = *patch.CategoryName
	}
	if patch.BrandName != nil {
		set["brandName"] = *patch.BrandName
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

func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// AdjustStock increments countInStock by delta (negative to decrement).
// No floor check is performed here; callers validate availability first.
func (r *ProductRepository) AdjustStock(ctx context.Context, id primitive.ObjectID, delta int) error {
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$inc": bson.M{"countInStock": delta},
		"$set": bson.M{"updatedAt": time.Now()},
	})
	return err
}
