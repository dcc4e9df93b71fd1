package controllers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/huyvng/storedash/app/controllers"
	"github.com/huyvng/storedash/app/models"
	"github.com/huyvng/storedash/app/repositories"
	"github.com/huyvng/storedash/app/services"
)

type memoryUserStore struct {
	users []models.User
}

func (m *memoryUserStore) All(_ context.Context) ([]models.User, error) {
	out := make([]models.User, len(m.users))
	copy(out, m.users)
	return out, nil
}

func (m *memoryUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	for i := range m.users {
		if m.users[i].ID == id {
			cp := m.users[i]
			return &cp, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *memoryUserStore) EmailExists(_ context.Context, email string) (bool, error) {
	for _, u := range m.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryUserStore) Create(_ context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	m.users = append(m.users, *user)
	return nil
}

func (m *memoryUserStore) Update(_ context.Context, _ primitive.ObjectID, _ repositories.UserPatch) error {
	return nil
}

func (m *memoryUserStore) Delete(_ context.Context, _ primitive.ObjectID) error {
	return nil
}

func TestUserListResponseShape(t *testing.T) {
	store := &memoryUserStore{}
	for i := 0; i < 12; i++ {
		store.users = append(store.users, models.User{
			ID:    primitive.NewObjectID(),
			Name:  "User",
			Email: "user@example.com",
			Role:  models.RoleUser,
		})
	}
	ctl := controllers.NewUserController(services.NewUserService(store))

	req := httptest.NewRequest("GET", "/api/users?page=2&limit=5", nil)
	rec := httptest.NewRecorder()
	ctl.List(rec, req)

	require.Equal(t, 200, rec.Code)
	var body struct {
		Total      int64             `json:"total"`
		Page       int               `json:"page"`
		Limit      int               `json:"limit"`
		TotalPages int               `json:"totalPages"`
		Users      []json.RawMessage `json:"users"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(12), body.Total)
	assert.Equal(t, 2, body.Page)
	assert.Equal(t, 5, body.Limit)
	assert.Equal(t, 3, body.TotalPages)
	assert.Len(t, body.Users, 5)

	// The stored password hash never reaches the wire.
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestUserListDisallowedLimitFallsBack(t *testing.T) {
	ctl := controllers.NewUserController(services.NewUserService(&memoryUserStore{}))

	req := httptest.NewRequest("GET", "/api/users?limit=50", nil)
	rec := httptest.NewRecorder()
	ctl.List(rec, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(10), body["limit"])
	assert.Equal(t, float64(0), body["total"])
	assert.Equal(t, float64(0), body["totalPages"])
}

type erroringMemoryUserStore struct {
	*memoryUserStore
	err error
}

func (s *erroringMemoryUserStore) FindByID(_ context.Context, _ primitive.ObjectID) (*models.User, error) {
	return nil, s.err
}

func TestUserUpdateStoreFailureAnswers500(t *testing.T) {
	store := &erroringMemoryUserStore{
		memoryUserStore: &memoryUserStore{},
		err:             errors.New("connection reset by peer"),
	}
	ctl := controllers.NewUserController(services.NewUserService(store))

	r := chi.NewRouter()
	r.Put("/api/users/{id}", ctl.Update)

	req := httptest.NewRequest("PUT", "/api/users/"+primitive.NewObjectID().Hex(),
		strings.NewReader(`{"name":"X"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, 500, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Internal server error", body["message"])
	assert.Contains(t, body["error"], "connection reset")
}

func TestUserCreateValidation(t *testing.T) {
	ctl := controllers.NewUserController(services.NewUserService(&memoryUserStore{}))

	req := httptest.NewRequest("POST", "/api/users", strings.NewReader(`{"name":"X"}`))
	rec := httptest.NewRecorder()
	ctl.Create(rec, req)
	assert.Equal(t, 400, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body["message"])
}
