// Package services holds the application's business logic. Services depend
// on small store interfaces satisfied by the repositories package and are
// wired together at boot.
package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/huyvng/storedash/app/models"
	"github.com/huyvng/storedash/pkg/auth"
	"github.com/huyvng/storedash/pkg/middleware"
)

// AuthUserStore is what the auth service needs from user persistence.
type AuthUserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

type AuthService struct {
	users AuthUserStore
}

func NewAuthService(users AuthUserStore) *AuthService {
	return &AuthService{users: users}
}

// LoginResult is the successful login payload.
type LoginResult struct {
	User  *models.User
	Token string
}

// Login verifies the password and issues a signed token. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, mapNotFound(err, ErrInvalidCredentials)
	}
	if !auth.CheckPassword(user.Password, password) {
		return nil, ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID.Hex(), user.Role)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user, Token: token}, nil
}

// Resolve implements middleware.IdentityResolver: token claims are only
// trusted after the user record still resolves.
func (s *AuthService) Resolve(ctx context.Context, userID string) (*middleware.Identity, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return &middleware.Identity{
		ID:    user.ID.Hex(),
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}, nil
}
