// Package database manages the MongoDB connection and schema-level indexes.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/huyvng/storedash/config"
)

// Connect dials MongoDB using MONGO_URI and returns a handle to MONGO_DB.
func Connect(ctx context.Context) (*mongo.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.MongoURI()))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client.Database(config.MongoDB()), nil
}

// Disconnect closes the underlying client.
func Disconnect(ctx context.Context, db *mongo.Database) error {
	return db.Client().Disconnect(ctx)
}

// EnsureIndexes creates the unique indexes the application relies on.
// Safe to call on every boot; existing indexes are left alone.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)
	for coll, field := range map[string]string{
		"users":           "email",
		"brands":          "name",
		"categories":      "name",
		"payment_methods": "name",
	} {
		_, err := db.Collection(coll).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: unique,
		})
		if err != nil {
			return fmt.Errorf("ensure index %s.%s: %w", coll, field, err)
		}
	}
	return nil
}
