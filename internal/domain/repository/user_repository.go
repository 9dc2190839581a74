package repository

import (
	"context"
	"errors"

	"github.com/karanshah229/taskapp/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no row/document matches.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned when the unique email constraint is violated.
	ErrDuplicateEmail = errors.New("duplicate email")
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// GetByIDAndToken returns the user only if token is in its current token list.
	GetByIDAndToken(ctx context.Context, id, token string) (*entity.User, error)
	// Update persists name, age, email and password.
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id string) error

	AddToken(ctx context.Context, id, token string) error
	RemoveToken(ctx context.Context, id, token string) error
	ClearTokens(ctx context.Context, id string) error
}

// AvatarStore keeps the normalized PNG avatar of a user.
// Get returns ErrNotFound when the user has no avatar.
type AvatarStore interface {
	PutAvatar(ctx context.Context, userID string, png []byte) error
	GetAvatar(ctx context.Context, userID string) ([]byte, error)
	DeleteAvatar(ctx context.Context, userID string) error
}
