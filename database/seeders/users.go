package seeders

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/huyvng/storedash/app/models"
	"github.com/huyvng/storedash/pkg/auth"
)

func init() {
	Register("users", SeedUsers)
}

// SeedUsers inserts the bootstrap admin account. Running twice is a no-op.
func SeedUsers(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection("users")

	n, err := coll.CountDocuments(ctx, bson.M{"email": "admin@storedash.local"})
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	hash, err := auth.HashPassword("admin123")
	if err != nil {
		return err
	}

	now := time.Now()
	_, err = coll.InsertOne(ctx, models.User{
		Name:      "Administrator",
		Email:     "admin@storedash.local",
		Password:  hash,
		Role:      models.RoleAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	})
	return err
}
