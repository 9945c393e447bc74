package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/mikiasgoitom/yamdb/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/yamdb/internal/usecase/contract"
)

const (
	MaxUsernameLength = 150
	MaxEmailLength    = 254
	MaxSlugLength     = 50
)

var (
	usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)
	slugPattern     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

// AppValidator implements the usecase.Validator interface.
type AppValidator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator that implements the usecase.Validator interface.
func NewValidator() usecasecontract.IValidator {
	v := validator.New()
	registerRules(v)
	return &AppValidator{validate: v}
}

// ValidateEmail checks if the email format is valid.
func (av *AppValidator) ValidateEmail(email string) error {
	return av.validate.Var(email, fmt.Sprintf("required,max=%d,email", MaxEmailLength))
}

// ValidateUsername returns a human-readable reason when username is unusable.
func (av *AppValidator) ValidateUsername(username string) error {
	switch {
	case username == "":
		return errors.New("this field is required")
	case len(username) > MaxUsernameLength:
		return fmt.Errorf("ensure this field has no more than %d characters", MaxUsernameLength)
	case username == entity.ReservedUsername:
		return fmt.Errorf("username '%s' is reserved", entity.ReservedUsername)
	case !usernamePattern.MatchString(username):
		return errors.New("enter a valid username: letters, digits and @/./+/-/_ only")
	}
	return nil
}

func (av *AppValidator) ValidateSlug(slug string) error {
	switch {
	case slug == "":
		return errors.New("this field is required")
	case len(slug) > MaxSlugLength:
		return fmt.Errorf("ensure this field has no more than %d characters", MaxSlugLength)
	case !slugPattern.MatchString(slug):
		return errors.New("enter a valid slug consisting of letters, numbers, underscores or hyphens")
	}
	return nil
}

// RegisterCustomValidators registers custom validation functions with the Gin validator.
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		registerRules(v)
	}
}

func registerRules(v *validator.Validate) {
	v.RegisterTagNameFunc(jsonFieldName)
	_ = v.RegisterValidation("username", usernameFL)
	_ = v.RegisterValidation("slug", slugFL)
	_ = v.RegisterValidation("notfutureyear", notFutureYearFL)
}

// jsonFieldName reports fields by their JSON name so errors match the payload.
func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}

func usernameFL(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s != entity.ReservedUsername && usernamePattern.MatchString(s)
}

func slugFL(fl validator.FieldLevel) bool {
	return slugPattern.MatchString(fl.Field().String())
}

func notFutureYearFL(fl validator.FieldLevel) bool {
	return fl.Field().Int() <= int64(time.Now().Year())
}

// Message renders a validation failure the way API clients see it.
func Message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "enter a valid email address"
	case "max":
		return fmt.Sprintf("ensure this field has no more than %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("ensure this value is greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("ensure this value is less than or equal to %s", fe.Param())
	case "gte":
		return fmt.Sprintf("ensure this value is greater than or equal to %s", fe.Param())
	case "username":
		if fe.Value() == entity.ReservedUsername {
			return fmt.Sprintf("username '%s' is reserved", entity.ReservedUsername)
		}
		return "enter a valid username: letters, digits and @/./+/-/_ only"
	case "slug":
		return "enter a valid slug consisting of letters, numbers, underscores or hyphens"
	case "notfutureyear":
		return "year cannot be greater than the current year"
	case "oneof":
		return fmt.Sprintf("%q is not a valid choice", fmt.Sprint(fe.Value()))
	}
	return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
}
