package contract

import (
	"context"

	"github.com/mikiasgoitom/yamdb/internal/domain/entity"
)

// UserFilterOptions narrows a user listing.
type UserFilterOptions struct {
	Search     string // username substring
	Pagination Pagination
}

type IUserRepository interface {
	// CreateUser returns entity.ErrConflict when username or email is taken.
	CreateUser(ctx context.Context, user *entity.User) error
	GetUserByID(ctx context.Context, id string) (*entity.User, error)
	GetUserByUsername(ctx context.Context, username string) (*entity.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	// GetUserByEmailAndUsername matches only when both fields belong to the same user.
	GetUserByEmailAndUsername(ctx context.Context, email, username string) (*entity.User, error)
	ListUsers(ctx context.Context, opts UserFilterOptions) ([]*entity.User, int64, error)
	// UpdateUser replaces the stored user and returns entity.ErrConflict on a unique clash.
	UpdateUser(ctx context.Context, user *entity.User) (*entity.User, error)
	DeleteUser(ctx context.Context, id string) error
}
