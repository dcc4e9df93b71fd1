package services

import (
	"context"
	"strings"
	"unicode"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/huyvng/storedash/app/models"
	"github.com/huyvng/storedash/app/repositories"
	"github.com/huyvng/storedash/pkg/auth"
	"github.com/huyvng/storedash/pkg/collection"
	"github.com/huyvng/storedash/pkg/paginate"
)

// UserStore is what the user service needs from user persistence.
type UserStore interface {
	All(ctx context.Context) ([]models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, id primitive.ObjectID, patch repositories.UserPatch) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// foldAccents strips combining marks so "Nguyễn" matches "nguyen".
var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func fold(s string) string {
	out, _, err := transform.String(foldAccents, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// foldContains reports whether needle occurs in haystack ignoring case
// and accents.
func foldContains(haystack, needle string) bool {
	return strings.Contains(fold(haystack), fold(needle))
}

// List filters users by accent-insensitive name/email substring and pages
// the result in memory. Filtering happens after the full fetch, so the
// reported total reflects the filtered set.
func (s *UserService) List(ctx context.Context, name, email string, page paginate.Params) ([]models.User, int64, error) {
	users, err := s.users.All(ctx)
	if err != nil {
		return nil, 0, err
	}

	filtered := collection.Filter(users, func(u models.User) bool {
		if name != "" && !foldContains(u.Name, name) {
			return false
		}
		if email != "" && !foldContains(u.Email, email) {
			return false
		}
		return true
	})

	pageItems := collection.Paginate(filtered, page.Page, page.Limit)
	if pageItems == nil {
		pageItems = []models.User{}
	}
	return pageItems, int64(len(filtered)), nil
}

// CreateUserInput is the new-user payload. Role defaults to "user".
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Role     string
}

func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*models.User, error) {
	taken, err := s.users.EmailExists(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = models.RoleUser
	}

	user := &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: hash,
		Phone:    in.Phone,
		Role:     role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUserInput carries a partial update; nil fields are left untouched.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
	Phone    *string
	Role     *string
}

func (s *UserService) Update(ctx context.Context, id string, in UpdateUserInput) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	current, err := s.users.FindByID(ctx, oid)
	if err != nil {
		return nil, mapNotFound(err, ErrUserNotFound)
	}

	if in.Email != nil && *in.Email != current.Email {
		taken, err := s.users.EmailExists(ctx, *in.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrEmailTaken
		}
	}

	patch := repositories.UserPatch{
		Name:  in.Name,
		Email: in.Email,
		Phone: in.Phone,
		Role:  in.Role,
	}
	if in.Password != nil {
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		patch.Password = &hash
	}

	if err := s.users.Update(ctx, oid, patch); err != nil {
		return nil, mapNotFound(err, ErrUserNotFound)
	}
	updated, err := s.users.FindByID(ctx, oid)
	if err != nil {
		return nil, mapNotFound(err, ErrUserNotFound)
	}
	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrUserNotFound
	}
	if err := s.users.Delete(ctx, oid); err != nil {
		return mapNotFound(err, ErrUserNotFound)
	}
	return nil
}
