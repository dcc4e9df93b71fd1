package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/huyvng/storedash/app/models"
	"github.com/huyvng/storedash/app/repositories"
)

// ShippingStore is what the shipping service needs from persistence.
type ShippingStore interface {
	List(ctx context.Context, filter repositories.ShippingFilter, skip, limit int64) ([]models.Shipping, int64, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Shipping, error)
	Create(ctx context.Context, shipping *models.Shipping) error
	Update(ctx context.Context, id primitive.ObjectID, patch repositories.ShippingPatch) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type ShippingService struct {
	shippings ShippingStore
}

func NewShippingService(shippings ShippingStore) *ShippingService {
	return &ShippingService{shippings: shippings}
}

func (s *ShippingService) List(ctx context.Context, filter repositories.ShippingFilter, skip, limit int64) ([]models.Shipping, int64, error) {
	return s.shippings.List(ctx, filter, skip, limit)
}

func (s *ShippingService) Get(ctx context.Context, id string) (*models.Shipping, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrShippingNotFound
	}
	shipping, err := s.shippings.FindByID(ctx, oid)
	if err != nil {
		return nil, mapNotFound(err, ErrShippingNotFound)
	}
	return shipping, nil
}

// CreateShippingInput is the new-shipping payload. Status defaults to
// Pending. The order reference is stored as-is; shippings live
// independently of the order lifecycle.
type CreateShippingInput struct {
	OrderID      string
	ReceiverName string
	Address      string
	City         string
	PostalCode   string
	Country      string
	Status       string
}

func (s *ShippingService) Create(ctx context.Context, in CreateShippingInput) (*models.Shipping, error) {
	orderID, err := primitive.ObjectIDFromHex(in.OrderID)
	if err != nil {
		return nil, ErrOrderNotFound
	}

	status := in.Status
	if status == "" {
		status = models.ShippingStatusPending
	}

	shipping := &models.Shipping{
		Order:        orderID,
		ReceiverName: in.ReceiverName,
		Address:      in.Address,
		City:         in.City,
		PostalCode:   in.PostalCode,
		Country:      in.Country,
		Status:       status,
	}
	if err := s.shippings.Create(ctx, shipping); err != nil {
		return nil, err
	}
	return shipping, nil
}

// UpdateShippingInput carries a partial update; nil fields stay untouched.
type UpdateShippingInput struct {
	ReceiverName *string
	Address      *string
	City         *string
	PostalCode   *string
	Country      *string
	Status       *string
}

func (s *ShippingService) Update(ctx context.Context, id string, in UpdateShippingInput) (*models.Shipping, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrShippingNotFound
	}
	patch := repositories.ShippingPatch{
		ReceiverName: in.ReceiverName,
		Address:      in.Address,
		City:         in.City,
		PostalCode:   in.PostalCode,
		Country:      in.Country,
		Status:       in.Status,
	}
	if err := s.shippings.Update(ctx, oid, patch); err != nil {
		return nil, mapNotFound(err, ErrShippingNotFound)
	}
	updated, err := s.shippings.FindByID(ctx, oid)
	if err != nil {
		return nil, mapNotFound(err, ErrShippingNotFound)
	}
	return updated, nil
}

func (s *ShippingService) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrShippingNotFound
	}
	if err := s.shippings.Delete(ctx, oid); err != nil {
		return mapNotFound(err, ErrShippingNotFound)
	}
	return nil
}
