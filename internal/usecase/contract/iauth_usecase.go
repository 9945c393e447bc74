package usecasecontract

import (
	"context"

	"github.com/mikiasgoitom/yamdb/internal/domain/entity"
)

type IAuthUseCase interface {
	// SignUp registers (or reuses) the pair and mails a confirmation code.
	SignUp(ctx context.Context, email, username string) (*entity.User, error)
	// ObtainToken exchanges a confirmation code for an access token.
	ObtainToken(ctx context.Context, username, confirmationCode string) (string, error)
	// Authenticate resolves a bearer token to an active user.
	Authenticate(ctx context.Context, accessToken string) (*entity.User, error)
}
