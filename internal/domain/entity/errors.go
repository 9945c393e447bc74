package entity

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrUserNotFound     = fmt.Errorf("user %w", ErrNotFound)
	ErrTitleNotFound    = fmt.Errorf("title %w", ErrNotFound)
	ErrReviewNotFound   = fmt.Errorf("review %w", ErrNotFound)
	ErrCommentNotFound  = fmt.Errorf("comment %w", ErrNotFound)
	ErrCategoryNotFound = fmt.Errorf("category %w", ErrNotFound)
	ErrGenreNotFound    = fmt.Errorf("genre %w", ErrNotFound)

	// ErrConflict means a unique field is already bound to another record.
	ErrConflict = errors.New("already exists")

	ErrDuplicateReview         = errors.New("you have already reviewed this title")
	ErrInvalidConfirmationCode = errors.New("invalid confirmation code")
	ErrPermissionDenied        = errors.New("you do not have permission to perform this action")
	ErrUnauthenticated         = errors.New("authentication credentials were not provided")
	ErrInactiveUser            = errors.New("user is inactive")
)

// FieldError is a validation failure scoped to one input field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// NewFieldError returns a *FieldError for field.
func NewFieldError(field, message string) error {
	return &FieldError{Field: field, Message: message}
}

// AsFieldError unwraps err into a *FieldError when possible.
func AsFieldError(err error) (*FieldError, bool) {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// FieldErrors holds failures for several fields at once, keyed by field.
type FieldErrors map[string][]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "invalid fields: " + strings.Join(fields, ", ")
}

// RequiredFields marks each named field as required. It returns nil for no fields.
func RequiredFields(fields ...string) error {
	if len(fields) == 0 {
		return nil
	}
	errs := make(FieldErrors, len(fields))
	for _, f := range fields {
		errs[f] = []string{"this field is required"}
	}
	return errs
}

type detailError struct {
	kind error
	msg  string
}

func (e *detailError) Error() string { return e.msg }
func (e *detailError) Unwrap() error { return e.kind }

// Detail returns an error that reads as msg and matches kind under errors.Is.
func Detail(kind error, msg string) error {
	return &detailError{kind: kind, msg: msg}
}
