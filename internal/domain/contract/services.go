package contract

import (
	"context"

	"github.com/mikiasgoitom/yamdb/internal/domain/entity"
)

type IEmailService interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

type IUUIDGenerator interface {
	NewUUID() string
}

// IConfirmationCodeGenerator issues codes bound to the user's current state.
// A code stops validating as soon as that state changes.
type IConfirmationCodeGenerator interface {
	MakeCode(user *entity.User) (string, error)
	CheckCode(user *entity.User, code string) bool
}
