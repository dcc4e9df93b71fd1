package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/huyvng/storedash/app/repositories"
)

// CatalogStore is the persistence surface shared by the name+description
// resources (brands, categories, payment methods).
type CatalogStore[T any] interface {
	List(ctx context.Context, name string, skip, limit int64) ([]T, int64, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*T, error)
	NameExists(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, name, description string) (primitive.ObjectID, error)
	Update(ctx context.Context, id primitive.ObjectID, patch repositories.NamedPatch) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// CatalogService implements the shared behavior of the three catalog
// resources. Name uniqueness is enforced at create time only.
type CatalogService[T any] struct {
	store CatalogStore[T]
}

func NewCatalogService[T any](store CatalogStore[T]) *CatalogService[T] {
	return &CatalogService[T]{store: store}
}

func (s *CatalogService[T]) List(ctx context.Context, name string, skip, limit int64) ([]T, int64, error) {
	return s.store.List(ctx, name, skip, limit)
}

func (s *CatalogService[T]) Get(ctx context.Context, id string) (*T, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	item, err := s.store.FindByID(ctx, oid)
	if err != nil {
		return nil, mapNotFound(err, ErrNotFound)
	}
	return item, nil
}

func (s *CatalogService[T]) Create(ctx context.Context, name, description string) (*T, error) {
	taken, err := s.store.NameExists(ctx, name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateName
	}

	id, err := s.store.Create(ctx, name, description)
	if err != nil {
		return nil, err
	}
	created, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrNotFound)
	}
	return created, nil
}

func (s *CatalogService[T]) Update(ctx context.Context, id string, name, description *string) (*T, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	patch := repositories.NamedPatch{Name: name, Description: description}
	if err := s.store.Update(ctx, oid, patch); err != nil {
		return nil, mapNotFound(err, ErrNotFound)
	}
	updated, err := s.store.FindByID(ctx, oid)
	if err != nil {
		return nil, mapNotFound(err, ErrNotFound)
	}
	return updated, nil
}

func (s *CatalogService[T]) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	if err := s.store.Delete(ctx, oid); err != nil {
		return mapNotFound(err, ErrNotFound)
	}
	return nil
}
