package mocks

import (
	"context"
	"errors"

	"github.com/mikiasgoitom/yamdb/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/yamdb/internal/usecase/contract"
)

// MockUserUsecase is a mock implementation of the UserUsecase interface
type MockUserUsecase struct {
	// Control mock behavior
	ShouldFailList          bool
	ShouldFailCreateUser    bool
	ShouldFailGetByUsername bool
	ShouldFailUpdateUser    bool
	ShouldFailDeleteUser    bool
	ShouldFailUpdateProfile bool

	// Return values
	MockUser  entity.User
	MockTotal int64

	// Recorded arguments
	LastSearch string
	LastPage   int
	LastInput  usecasecontract.UserInput
}

// Ensure MockUserUsecase implements the correct interface for handler.NewUserHandler
var _ usecasecontract.IUserUseCase = (*MockUserUsecase)(nil)

func NewMockUserUsecase() *MockUserUsecase {
	return &MockUserUsecase{
		MockUser: entity.User{
			ID:       "mock-user-id",
			Username: "testuser",
			Email:    "test@example.com",
			Role:     entity.UserRoleUser,
			IsActive: true,
		},
		MockTotal: 1,
	}
}

func (m *MockUserUsecase) ListUsers(ctx context.Context, search string, page int) ([]*entity.User, int64, error) {
	m.LastSearch, m.LastPage = search, page
	if m.ShouldFailList {
		return nil, 0, errors.New("list users failed")
	}
	u := m.MockUser
	return []*entity.User{&u}, m.MockTotal, nil
}

func (m *MockUserUsecase) CreateUser(ctx context.Context, in usecasecontract.UserInput) (*entity.User, error) {
	m.LastInput = in
	if m.ShouldFailCreateUser {
		return nil, entity.Detail(entity.ErrConflict, "email or username is already taken")
	}
	return m.applied(in), nil
}

func (m *MockUserUsecase) GetUserByUsername(ctx context.Context, username string) (*entity.User, error) {
	if m.ShouldFailGetByUsername {
		return nil, entity.ErrUserNotFound
	}
	u := m.MockUser
	return &u, nil
}

func (m *MockUserUsecase) UpdateUser(ctx context.Context, username string, in usecasecontract.UserInput) (*entity.User, error) {
	m.LastInput = in
	if m.ShouldFailUpdateUser {
		return nil, entity.ErrUserNotFound
	}
	return m.applied(in), nil
}

func (m *MockUserUsecase) DeleteUser(ctx context.Context, username string) error {
	if m.ShouldFailDeleteUser {
		return entity.ErrUserNotFound
	}
	return nil
}

func (m *MockUserUsecase) UpdateProfile(ctx context.Context, userID string, in usecasecontract.UserInput) (*entity.User, error) {
	m.LastInput = in
	if m.ShouldFailUpdateProfile {
		return nil, entity.NewFieldError("username", "username 'taken' is already taken")
	}
	return m.applied(in), nil
}

func (m *MockUserUsecase) applied(in usecasecontract.UserInput) *entity.User {
	u := m.MockUser
	if in.Username != nil {
		u.Username = *in.Username
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
	if in.Bio != nil {
		u.Bio = *in.Bio
	}
	if in.Role != nil {
		u.Role = *in.Role
	}
	return &u
}
