package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mikiasgoitom/yamdb/internal/domain/contract"
	"github.com/mikiasgoitom/yamdb/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/yamdb/internal/usecase/contract"
)

// UserUsecase implements the IUserUseCase interface.
type UserUsecase struct {
	userRepo      contract.IUserRepository
	reviewRepo    contract.IReviewRepository
	commentRepo   contract.ICommentRepository
	titleCache    contract.ITitleCache
	validator     usecasecontract.IValidator
	uuidGenerator contract.IUUIDGenerator
	logger        usecasecontract.IAppLogger
	config        usecasecontract.IConfigProvider
}

// NewUserUsecase creates a new UserUsecase instance.
func NewUserUsecase(
	userRepo contract.IUserRepository,
	reviewRepo contract.IReviewRepository,
	commentRepo contract.ICommentRepository,
	validator usecasecontract.IValidator,
	uuidGenerator contract.IUUIDGenerator,
	logger usecasecontract.IAppLogger,
	cfg usecasecontract.IConfigProvider,
) *UserUsecase {
	return &UserUsecase{
		userRepo:      userRepo,
		reviewRepo:    reviewRepo,
		commentRepo:   commentRepo,
		validator:     validator,
		uuidGenerator: uuidGenerator,
		logger:        logger,
		config:        cfg,
	}
}

// check if UserUsecase implements the IUserUseCase
var _ usecasecontract.IUserUseCase = (*UserUsecase)(nil)

// SetTitleCache lets user deletion drop cached ratings the user contributed to.
func (uc *UserUsecase) SetTitleCache(cache contract.ITitleCache) {
	uc.titleCache = cache
}

func (uc *UserUsecase) ListUsers(ctx context.Context, search string, page int) ([]*entity.User, int64, error) {
	users, total, err := uc.userRepo.ListUsers(ctx, contract.UserFilterOptions{
		Search:     search,
		Pagination: contract.Pagination{Page: page, PageSize: uc.config.GetPageSize()},
	})
	if err != nil {
		uc.logger.Errorf("failed to list users: %v", err)
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	return users, total, nil
}

// CreateUser is the admin path; the account is active straight away.
func (uc *UserUsecase) CreateUser(ctx context.Context, in usecasecontract.UserInput) (*entity.User, error) {
	if in.Username == nil {
		return nil, entity.NewFieldError("username", "this field is required")
	}
	if in.Email == nil {
		return nil, entity.NewFieldError("email", "this field is required")
	}
	if err := uc.validator.ValidateUsername(*in.Username); err != nil {
		return nil, entity.NewFieldError("username", err.Error())
	}
	if err := uc.validator.ValidateEmail(*in.Email); err != nil {
		return nil, entity.NewFieldError("email", "enter a valid email address")
	}
	now := time.Now().UTC()
	user := &entity.User{
		ID:        uc.uuidGenerator.NewUUID(),
		Role:      entity.DefaultRole(),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.applyInput(ctx, user, in); err != nil {
		return nil, err
	}
	if err := uc.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, entity.ErrConflict) {
			return nil, entity.Detail(entity.ErrConflict, errOccupiedCredentials)
		}
		uc.logger.Errorf("failed to create user: %v", err)
		return nil, fmt.Errorf("create user: %w", err)
	}
	uc.logger.Infof("user %s created by admin with role %s", user.Username, user.Role)
	return user, nil
}

func (uc *UserUsecase) GetUserByUsername(ctx context.Context, username string) (*entity.User, error) {
	user, err := uc.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, entity.ErrUserNotFound
		}
		uc.logger.Errorf("failed to retrieve user by username: %v", err)
		return nil, fmt.Errorf("look up user: %w", err)
	}
	return user, nil
}

func (uc *UserUsecase) UpdateUser(ctx context.Context, username string, in usecasecontract.UserInput) (*entity.User, error) {
	user, err := uc.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return uc.save(ctx, user, in)
}

// UpdateProfile allows a registered user to update their own profile details.
func (uc *UserUsecase) UpdateProfile(ctx context.Context, userID string, in usecasecontract.UserInput) (*entity.User, error) {
	user, err := uc.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, entity.ErrUserNotFound
		}
		uc.logger.Errorf("failed to retrieve user for profile update: %v", err)
		return nil, fmt.Errorf("look up user: %w", err)
	}
	// role is read-only for self
	in.Role = nil
	return uc.save(ctx, user, in)
}

func (uc *UserUsecase) save(ctx context.Context, user *entity.User, in usecasecontract.UserInput) (*entity.User, error) {
	if err := uc.applyInput(ctx, user, in); err != nil {
		return nil, err
	}
	user.UpdatedAt = time.Now().UTC()
	updated, err := uc.userRepo.UpdateUser(ctx, user)
	if err != nil {
		if errors.Is(err, entity.ErrConflict) {
			return nil, entity.Detail(entity.ErrConflict, errOccupiedCredentials)
		}
		uc.logger.Errorf("failed to update user %s: %v", user.ID, err)
		return nil, fmt.Errorf("update user: %w", err)
	}
	return updated, nil
}

// DeleteUser removes the user with everything they wrote.
func (uc *UserUsecase) DeleteUser(ctx context.Context, username string) error {
	user, err := uc.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}

	reviewIDs, err := uc.reviewRepo.IDsByAuthor(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("collect reviews of %s: %w", user.ID, err)
	}
	if err := uc.commentRepo.DeleteByReviewIDs(ctx, reviewIDs); err != nil {
		return fmt.Errorf("delete comments on reviews of %s: %w", user.ID, err)
	}
	if err := uc.reviewRepo.DeleteByIDs(ctx, reviewIDs); err != nil {
		return fmt.Errorf("delete reviews of %s: %w", user.ID, err)
	}
	if err := uc.commentRepo.DeleteByAuthor(ctx, user.ID); err != nil {
		return fmt.Errorf("delete comments of %s: %w", user.ID, err)
	}
	if err := uc.userRepo.DeleteUser(ctx, user.ID); err != nil {
		uc.logger.Errorf("failed to delete user %s: %v", user.ID, err)
		return fmt.Errorf("delete user: %w", err)
	}
	if uc.titleCache != nil && len(reviewIDs) > 0 {
		if err := uc.titleCache.InvalidateAllTitles(ctx); err != nil {
			uc.logger.Warnf("cache error: invalidate titles after user delete: %v", err)
		}
	}
	uc.logger.Infof("user %s deleted with %d reviews", user.Username, len(reviewIDs))
	return nil
}

// applyInput validates and copies the non-nil fields of in onto user.
func (uc *UserUsecase) applyInput(ctx context.Context, user *entity.User, in usecasecontract.UserInput) error {
	if in.Username != nil && *in.Username != user.Username {
		if err := uc.validator.ValidateUsername(*in.Username); err != nil {
			return entity.NewFieldError("username", err.Error())
		}
		if err := uc.ensureFree(ctx, user.ID, "username", *in.Username, uc.userRepo.GetUserByUsername); err != nil {
			return err
		}
		user.Username = *in.Username
	}
	if in.Email != nil && *in.Email != user.Email {
		if err := uc.validator.ValidateEmail(*in.Email); err != nil {
			return entity.NewFieldError("email", "enter a valid email address")
		}
		if err := uc.ensureFree(ctx, user.ID, "email", *in.Email, uc.userRepo.GetUserByEmail); err != nil {
			return err
		}
		user.Email = *in.Email
	}
	if in.Role != nil {
		if !in.Role.Valid() {
			return entity.NewFieldError("role", fmt.Sprintf("%q is not a valid choice", *in.Role))
		}
		user.Role = *in.Role
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Bio != nil {
		user.Bio = *in.Bio
	}
	return nil
}

func (uc *UserUsecase) ensureFree(ctx context.Context, selfID, field, value string, lookup func(context.Context, string) (*entity.User, error)) error {
	existing, err := lookup(ctx, value)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("check %s: %w", field, err)
	}
	if existing.ID != selfID {
		return entity.NewFieldError(field, fmt.Sprintf("%s '%s' is already taken", field, value))
	}
	return nil
}
