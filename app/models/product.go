package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalog entry. Category and brand are denormalized name
// strings, not references; renaming a Brand or Category does not propagate
// to existing products.
type Product struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Price        float64            `bson:"price" json:"price"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	Image        string             `bson:"image,omitempty" json:"image,omitempty"`
	CountInStock int                `bson:"countInStock" json:"countInStock"`
	CategoryName string             `bson:"categoryName" json:"categoryName"`
	BrandName    string             `bson:"brandName" json:"brandName"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
