package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order status values. The completed state's display name is configurable
// (config.OrderCompletedStatus); Processing and Cancelled are fixed.
const (
	OrderStatusProcessing = "Processing"
	OrderStatusCancelled  = "Cancelled"
)

// OrderItem is a line item: a product reference plus a name/price snapshot
// taken at order time. Later product edits never touch these snapshots.
type OrderItem struct {
	Product primitive.ObjectID `bson:"product" json:"product"`
	Name    string             `bson:"name" json:"name"`
	Qty     int                `bson:"qty" json:"qty"`
	Price   float64            `bson:"price" json:"price"`
}

// Order embeds its line items in one document. UserName is a denormalized
// snapshot of the owning user's display name.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User          primitive.ObjectID `bson:"user" json:"user"`
	UserName      string             `bson:"userName" json:"userName"`
	OrderItems    []OrderItem        `bson:"orderItems" json:"orderItems"`
	TotalPrice    float64            `bson:"totalPrice" json:"totalPrice"`
	PaymentMethod string             `bson:"paymentMethod" json:"paymentMethod"`
	Status        string             `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
