package jwt

import (
	"errors"
	"fmt"

	"github.com/mikiasgoitom/yamdb/internal/domain/entity"
	"github.com/mikiasgoitom/yamdb/internal/usecase"
)

// JWTServiceAdapter adapts JWTManager to the usecase.JWTService interface.
type JWTServiceAdapter struct {
	mgr *JWTManager
}

// NewJWTService creates a new usecase.JWTService from JWTManager
func NewJWTService(mgr *JWTManager) usecase.JWTService {
	return &JWTServiceAdapter{mgr: mgr}
}

func (a *JWTServiceAdapter) GenerateAccessToken(userID string, role entity.UserRole) (string, error) {
	if !role.Valid() {
		return "", fmt.Errorf("issue token for %s: unknown role %q", userID, role)
	}
	return a.mgr.GenerateAccessToken(userID, string(role))
}

// ParseAccessToken validates an access token and returns Claims. The role
// claim is informational; callers reload the user for the current role.
func (a *JWTServiceAdapter) ParseAccessToken(tokenStr string) (*entity.Claims, error) {
	customClaims, err := a.mgr.VerifyToken(tokenStr)
	if err != nil {
		return nil, err
	}
	role := entity.UserRole(customClaims.Role)
	if !role.Valid() {
		return nil, fmt.Errorf("token carries unknown role %q", customClaims.Role)
	}
	if customClaims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return &entity.Claims{
		UserID:           customClaims.Subject,
		Role:             role,
		RegisteredClaims: customClaims.RegisteredClaims,
	}, nil
}
