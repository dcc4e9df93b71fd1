package repositories

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/huyvng/storedash/app/models"
)

// Patch types carry partial updates: only non-nil fields are written.

type UserPatch struct {
	Name     *string
	Email    *string
	Password *string
	Phone    *string
	Role     *string
}

type ProductPatch struct {
	Name         *string
	Price        *float64
	Description  *string
	Image        *string
	CountInStock *int
	CategoryName *string
	BrandName    *string
}

type NamedPatch struct {
	Name        *string
	Description *string
}

type OrderPatch struct {
	User          *primitive.ObjectID
	UserName      *string
	OrderItems    []models.OrderItem
	TotalPrice    *float64
	PaymentMethod *string
	Status        *string
}

type ShippingPatch struct {
	Order        *primitive.ObjectID
	ReceiverName *string
	Address      *string
	City         *string
	PostalCode   *string
	Country      *string
	Status       *string
}

// Filter types express list-endpoint query parameters.

type ProductFilter struct {
	Name         string
	CategoryName string
	BrandName    string
	MinPrice     *float64
	MaxPrice     *float64
}

// OrderFilter constrains the order list. UserIDs is a resolved userName
// filter: nil means unconstrained, an empty non-nil slice matches nothing.
type OrderFilter struct {
	PaymentMethod string
	Status        string
	UserIDs       []primitive.ObjectID
	StartDate     *time.Time
	EndDate       *time.Time
}

type ShippingFilter struct {
	ReceiverName string
	Address      string
	Status       string
}
