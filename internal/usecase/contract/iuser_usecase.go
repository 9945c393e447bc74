package usecasecontract

import (
	"context"

	"github.com/mikiasgoitom/yamdb/internal/domain/entity"
)

// UserInput carries user fields; nil means "leave unchanged" on update.
type UserInput struct {
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
	Bio       *string
	Role      *entity.UserRole
}

// IUserUseCase defines the interface for user-related operations.
type IUserUseCase interface {
	ListUsers(ctx context.Context, search string, page int) ([]*entity.User, int64, error)
	CreateUser(ctx context.Context, in UserInput) (*entity.User, error)
	GetUserByUsername(ctx context.Context, username string) (*entity.User, error)
	UpdateUser(ctx context.Context, username string, in UserInput) (*entity.User, error)
	DeleteUser(ctx context.Context, username string) error
	// UpdateProfile lets a user edit themselves; role changes are ignored.
	UpdateProfile(ctx context.Context, userID string, in UserInput) (*entity.User, error)
}
