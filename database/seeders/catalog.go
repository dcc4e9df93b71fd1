package seeders

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func init() {
	Register("catalog", SeedCatalog)
}

// SeedCatalog inserts starter brands, categories and payment methods.
// Each name is inserted only if absent, so reruns are safe.
func SeedCatalog(ctx context.Context, db *mongo.Database) error {
	seed := map[string][]bson.M{
		"brands": {
			{"name": "Acme", "description": "House brand"},
			{"name": "Globex", "description": "Imported electronics"},
		},
		"categories": {
			{"name": "Electronics", "description": "Phones, laptops, accessories"},
			{"name": "Apparel", "description": "Clothing and footwear"},
		},
		"payment_methods": {
			{"name": "Cash on delivery", "description": "Pay the courier on arrival"},
			{"name": "Bank transfer", "description": "Direct transfer before shipment"},
		},
	}

	for collName, docs := range seed {
		coll := db.Collection(collName)
		for _, doc := range docs {
			n, err := coll.CountDocuments(ctx, bson.M{"name": doc["name"]})
			if err != nil {
				return err
			}
			if n > 0 {
				continue
			}
			now := time.Now()
			doc["createdAt"] = now
			doc["updatedAt"] = now
			if _, err := coll.InsertOne(ctx, doc); err != nil {
				return err
			}
		}
	}
	return nil
}
