package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/huyvng/storedash/app/models"
	"github.com/huyvng/storedash/app/repositories"
	"github.com/huyvng/storedash/app/services"
)

type fakeBrandStore struct {
	brands map[primitive.ObjectID]*models.Brand
}

func newFakeBrandStore() *fakeBrandStore {
	return &fakeBrandStore{brands: map[primitive.ObjectID]*models.Brand{}}
}

func (f *fakeBrandStore) List(_ context.Context, _ string, _, _ int64) ([]models.Brand, int64, error) {
	var out []models.Brand
	for _, b := range f.brands {
		out = append(out, *b)
	}
	return out, int64(len(out)), nil
}

func (f *fakeBrandStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Brand, error) {
	b, ok := f.brands[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBrandStore) NameExists(_ context.Context, name string) (bool, error) {
	for _, b := range f.brands {
		if b.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBrandStore) Create(_ context.Context, name, description string) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	f.brands[id] = &models.Brand{ID: id, Name: name, Description: description}
	return id, nil
}

func (f *fakeBrandStore) Update(_ context.Context, id primitive.ObjectID, patch repositories.NamedPatch) error {
	b, ok := f.brands[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	if patch.Name != nil {
		b.Name = *patch.Name
	}
	if patch.Description != nil {
		b.Description = *patch.Description
	}
	return nil
}

func (f *fakeBrandStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.brands[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(f.brands, id)
	return nil
}

func TestCatalogCreateRejectsDuplicateName(t *testing.T) {
	store := newFakeBrandStore()
	svc := services.NewCatalogService[models.Brand](store)

	first, err := svc.Create(context.Background(), "Acme", "house brand")
	require.NoError(t, err)
	assert.Equal(t, "Acme", first.Name)

	_, err = svc.Create(context.Background(), "Acme", "copycat")
	assert.ErrorIs(t, err, services.ErrDuplicateName)
	assert.Len(t, store.brands, 1)

	// Exact match only: different case is a different name.
	_, err = svc.Create(context.Background(), "acme", "lowercase")
	require.NoError(t, err)
	assert.Len(t, store.brands, 2)
}

func TestCatalogUpdateAndDelete(t *testing.T) {
	store := newFakeBrandStore()
	svc := services.NewCatalogService[models.Brand](store)

	brand, err := svc.Create(context.Background(), "Globex", "")
	require.NoError(t, err)

	desc := "imported"
	updated, err := svc.Update(context.Background(), brand.ID.Hex(), nil, &desc)
	require.NoError(t, err)
	assert.Equal(t, "Globex", updated.Name)
	assert.Equal(t, "imported", updated.Description)

	require.NoError(t, svc.Delete(context.Background(), brand.ID.Hex()))
	assert.ErrorIs(t, svc.Delete(context.Background(), brand.ID.Hex()), services.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), "bogus"), services.ErrNotFound)
}

func TestCatalogGetNotFound(t *testing.T) {
	svc := services.NewCatalogService[models.Brand](newFakeBrandStore())
	_, err := svc.Get(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, services.ErrNotFound)
}

type erroringBrandStore struct {
	*fakeBrandStore
	err error
}

func (s *erroringBrandStore) FindByID(_ context.Context, _ primitive.ObjectID) (*models.Brand, error) {
	return nil, s.err
}

func TestCatalogGetPropagatesStoreFailure(t *testing.T) {
	infra := errors.New("server selection timeout")
	svc := services.NewCatalogService[models.Brand](&erroringBrandStore{
		fakeBrandStore: newFakeBrandStore(),
		err:            infra,
	})

	_, err := svc.Get(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, infra)
	assert.NotErrorIs(t, err, services.ErrNotFound)
}
