package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/huyvng/storedash/app/models"
	"github.com/huyvng/storedash/app/services"
	"github.com/huyvng/storedash/pkg/auth"
)

type fakeAuthStore struct {
	user *models.User
}

func (f *fakeAuthStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if f.user != nil && f.user.Email == email {
		cp := *f.user
		return &cp, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeAuthStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	if f.user != nil && f.user.ID == id {
		cp := *f.user
		return &cp, nil
	}
	return nil, mongo.ErrNoDocuments
}

func newFakeAuthStore(t *testing.T, password string) *fakeAuthStore {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return &fakeAuthStore{user: &models.User{
		ID:       primitive.NewObjectID(),
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: hash,
		Role:     models.RoleAdmin,
	}}
}

func TestLoginIssuesToken(t *testing.T) {
	store := newFakeAuthStore(t, "hunter22")
	svc := services.NewAuthService(store)

	res, err := svc.Login(context.Background(), "alice@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", res.User.Email)

	claims, err := auth.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, store.user.ID.Hex(), claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := services.NewAuthService(newFakeAuthStore(t, "hunter22"))

	// Wrong password and unknown email come back as the same error.
	_, err := svc.Login(context.Background(), "alice@example.com", "wrong")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestResolveIdentity(t *testing.T) {
	store := newFakeAuthStore(t, "hunter22")
	svc := services.NewAuthService(store)

	identity, err := svc.Resolve(context.Background(), store.user.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Alice", identity.Name)
	assert.Equal(t, models.RoleAdmin, identity.Role)

	_, err = svc.Resolve(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, services.ErrUserNotFound)

	_, err = svc.Resolve(context.Background(), "not-a-hex-id")
	assert.ErrorIs(t, err, services.ErrUserNotFound)
}
