package services

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// Sentinel errors translated by controllers into the HTTP error taxonomy.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrShippingNotFound   = errors.New("shipping not found")
	ErrNotFound           = errors.New("not found")
	ErrEmailTaken         = errors.New("email already in use")
	ErrDuplicateName      = errors.New("name already exists")
)

// ProductNotFoundError names the missing product so order creation can
// report which line item failed.
type ProductNotFoundError struct {
	ID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product not found: %s", e.ID)
}

// InsufficientStockError rejects an order whose requested quantity exceeds
// the product's current stock.
type InsufficientStockError struct {
	ProductName string
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough stock for %s. Only %d left", e.ProductName, e.Available)
}

// mapNotFound turns the driver's missing-document error into the domain
// sentinel. Anything else (connection resets, timeouts) passes through so
// controllers answer 500, not 404.
func mapNotFound(err, sentinel error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return sentinel
	}
	return err
}

func mapProductNotFound(err error, id string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return &ProductNotFoundError{ID: id}
	}
	return err
}
