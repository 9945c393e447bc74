package mocks

import (
	"context"
	"errors"
	"strings"

	"github.com/mikiasgoitom/yamdb/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/yamdb/internal/usecase/contract"
)

// MockAuthUsecase resolves bearer tokens of the form "<role>-token" to a user
// with that role.
type MockAuthUsecase struct {
	ShouldFailSignUp      bool
	ShouldFailObtainToken bool
	UnknownUser           bool

	MockToken string
	SignUps   int
}

var _ usecasecontract.IAuthUseCase = (*MockAuthUsecase)(nil)

func NewMockAuthUsecase() *MockAuthUsecase {
	return &MockAuthUsecase{MockToken: "mock_access_token"}
}

// TokenFor returns a bearer token that Authenticate maps to a user with role.
func TokenFor(role entity.UserRole) string {
	return string(role) + "-token"
}

// UserFor is the user Authenticate returns for TokenFor(role).
func UserFor(role entity.UserRole) *entity.User {
	return &entity.User{
		ID:       string(role) + "-id",
		Username: string(role) + "_name",
		Email:    string(role) + "@example.com",
		Role:     role,
		IsActive: true,
	}
}

func (m *MockAuthUsecase) SignUp(ctx context.Context, email, username string) (*entity.User, error) {
	if m.ShouldFailSignUp {
		return nil, entity.Detail(entity.ErrConflict, "email or username is already taken")
	}
	m.SignUps++
	return &entity.User{ID: "new-user-id", Email: email, Username: username, Role: entity.UserRoleUser}, nil
}

func (m *MockAuthUsecase) ObtainToken(ctx context.Context, username, confirmationCode string) (string, error) {
	if m.UnknownUser {
		return "", entity.ErrUserNotFound
	}
	if m.ShouldFailObtainToken {
		return "", entity.ErrInvalidConfirmationCode
	}
	return m.MockToken, nil
}

func (m *MockAuthUsecase) Authenticate(ctx context.Context, accessToken string) (*entity.User, error) {
	role, ok := strings.CutSuffix(accessToken, "-token")
	if !ok || !entity.UserRole(role).Valid() {
		return nil, errors.New("invalid access token")
	}
	return UserFor(entity.UserRole(role)), nil
}
