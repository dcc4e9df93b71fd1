package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Shipping status values.
const (
	ShippingStatusPending   = "Pending"
	ShippingStatusShipping  = "Shipping"
	ShippingStatusDelivered = "Delivered"
)

// Shipping tracks delivery of one order. Its lifecycle is independent of
// the order's: it is not created automatically when an order is placed.
type Shipping struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Order        primitive.ObjectID `bson:"order" json:"order"`
	ReceiverName string             `bson:"receiverName,omitempty" json:"receiverName,omitempty"`
	Address      string             `bson:"address,omitempty" json:"address,omitempty"`
	City         string             `bson:"city,omitempty" json:"city,omitempty"`
	PostalCode   string             `bson:"postalCode,omitempty" json:"postalCode,omitempty"`
	Country      string             `bson:"country,omitempty" json:"country,omitempty"`
	Status       string             `bson:"status" json:"status"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
