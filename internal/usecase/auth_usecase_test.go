package usecase

import (
	"context"
	"testing"

	"github.com/mikiasgoitom/yamdb/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignUp_CreatesInactiveUserAndMailsCode(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	user, err := f.auth.SignUp(ctx, "alice@example.com", "alice")
	require.NoError(t, err)
	assert.False(t, user.IsActive)
	assert.Equal(t, entity.UserRoleUser, user.Role)

	require.Len(t, f.mailer.sent, 1)
	code, _ := stateCodes{}.MakeCode(user)
	assert.Equal(t, "alice@example.com", f.mailer.sent[0].to)
	assert.Contains(t, f.mailer.sent[0].body, code)
}

func TestSignUp_SamePairIsIdempotent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, err := f.auth.SignUp(ctx, "alice@example.com", "alice")
	require.NoError(t, err)
	second, err := f.auth.SignUp(ctx, "alice@example.com", "alice")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, f.store.users, 1)
	assert.Len(t, f.mailer.sent, 2)
}

func TestSignUp_RejectsCrossBoundCredentials(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.auth.SignUp(ctx, "alice@example.com", "alice")
	require.NoError(t, err)

	_, err = f.auth.SignUp(ctx, "alice@example.com", "bob")
	assert.ErrorIs(t, err, entity.ErrConflict)
	assert.EqualError(t, err, "email or username is already taken")

	_, err = f.auth.SignUp(ctx, "bob@example.com", "alice")
	assert.ErrorIs(t, err, entity.ErrConflict)
	assert.Len(t, f.store.users, 1)
}

func TestSignUp_RejectsReservedUsername(t *testing.T) {
	f := newFixture()

	_, err := f.auth.SignUp(context.Background(), "me@example.com", "me")

	fe, ok := entity.AsFieldError(err)
	require.True(t, ok)
	assert.Equal(t, "username", fe.Field)
	assert.Empty(t, f.store.users)
	assert.Empty(t, f.mailer.sent)
}

func TestSignUp_MailFailure(t *testing.T) {
	f := newFixture()
	f.mailer.fail = true

	_, err := f.auth.SignUp(context.Background(), "alice@example.com", "alice")
	assert.Error(t, err)
}

func TestObtainToken_UnknownUser(t *testing.T) {
	f := newFixture()

	_, err := f.auth.ObtainToken(context.Background(), "ghost", "whatever")
	assert.ErrorIs(t, err, entity.ErrUserNotFound)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestObtainToken_ActivatesOnCurrentCodeOnly(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	user, err := f.auth.SignUp(ctx, "alice@example.com", "alice")
	require.NoError(t, err)
	code, _ := stateCodes{}.MakeCode(user)

	_, err = f.auth.ObtainToken(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, entity.ErrInvalidConfirmationCode)
	assert.False(t, f.store.users[user.ID].IsActive)

	token, err := f.auth.ObtainToken(ctx, "alice", code)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	stored := f.store.users[user.ID]
	assert.True(t, stored.IsActive)
	assert.NotNil(t, stored.LastLogin)

	// the exchange changed the user's state, so the old code is spent
	_, err = f.auth.ObtainToken(ctx, "alice", code)
	assert.ErrorIs(t, err, entity.ErrInvalidConfirmationCode)
}

func TestAuthenticate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	user, err := f.auth.SignUp(ctx, "alice@example.com", "alice")
	require.NoError(t, err)

	_, err = f.auth.Authenticate(ctx, "token:"+user.ID+":user")
	assert.ErrorIs(t, err, entity.ErrInactiveUser)

	code, _ := stateCodes{}.MakeCode(user)
	token, err := f.auth.ObtainToken(ctx, "alice", code)
	require.NoError(t, err)

	got, err := f.auth.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = f.auth.Authenticate(ctx, "garbage")
	assert.Error(t, err)

	_, err = f.auth.Authenticate(ctx, "token:missing:user")
	assert.ErrorIs(t, err, entity.ErrUserNotFound)
}
