package validator

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUsername(t *testing.T) {
	v := NewValidator()

	for _, ok := range []string{"alice", "a.b@c+d-e_f", strings.Repeat("x", MaxUsernameLength), "mee"} {
		assert.NoError(t, v.ValidateUsername(ok), ok)
	}
	for _, bad := range []string{"", "me", "with space", "semi;colon", strings.Repeat("x", MaxUsernameLength+1)} {
		assert.Error(t, v.ValidateUsername(bad), bad)
	}
	assert.EqualError(t, v.ValidateUsername("me"), "username 'me' is reserved")
}

func TestValidateSlug(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.ValidateSlug("sci-fi_2"))
	assert.Error(t, v.ValidateSlug(""))
	assert.Error(t, v.ValidateSlug("sci fi"))
	assert.Error(t, v.ValidateSlug("ужасы"))
	assert.Error(t, v.ValidateSlug(strings.Repeat("s", MaxSlugLength+1)))
}

func TestValidateEmail(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.ValidateEmail("alice@example.com"))
	assert.Error(t, v.ValidateEmail("alice"))
	assert.Error(t, v.ValidateEmail(""))
}

type payload struct {
	Username string `json:"username" validate:"required,username"`
	Slug     string `json:"slug" validate:"required,slug"`
	Year     int    `json:"year" validate:"notfutureyear"`
}

func TestStructRules_ReportJSONNames(t *testing.T) {
	v := validator.New()
	registerRules(v)

	err := v.Struct(payload{Username: "me", Slug: "bad slug", Year: time.Now().Year() + 1})
	var errs validator.ValidationErrors
	require.True(t, errors.As(err, &errs))

	got := map[string]string{}
	for _, fe := range errs {
		got[fe.Field()] = Message(fe)
	}
	assert.Equal(t, "username 'me' is reserved", got["username"])
	assert.Contains(t, got["slug"], "valid slug")
	assert.Contains(t, got["year"], "current year")

	assert.NoError(t, v.Struct(payload{Username: "alice", Slug: "drama", Year: time.Now().Year()}))
}
