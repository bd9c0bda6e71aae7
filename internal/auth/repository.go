package auth

import (
	"context"
	"errors"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the data-access contract.
// Service depends ONLY on this interface.
type UserRepository interface {
	Save(ctx context.Context, user *User) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByID fills IsSubscribed for viewerID, which may be empty.
	FindByID(ctx context.Context, id, viewerID string) (*User, error)
	List(ctx context.Context, viewerID string, limit, offset int) ([]User, int, error)

	UpdatePassword(ctx context.Context, id, hash string) error
}
