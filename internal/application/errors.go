package application

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/karanshah229/taskapp/pkg/validation"
)

// Error kinds. Every error returned by this package that is not a storage
// failure matches exactly one of them with errors.Is.
var (
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")
	ErrAuth       = errors.New("authentication error")
	ErrNotFound   = errors.New("not found")
)

var (
	ErrUnableToLogin   = &kindError{kind: ErrAuth, msg: "Unable to login"}
	ErrUnauthenticated = &kindError{kind: ErrAuth, msg: "Please authenticate"}
	ErrEmailTaken      = &kindError{kind: ErrConflict, msg: "Email is already registered"}
	ErrUserNotFound    = &kindError{kind: ErrNotFound, msg: "No user for that id"}
	ErrTaskNotFound    = &kindError{kind: ErrNotFound, msg: "No task for that id"}
	ErrAvatarNotFound  = &kindError{kind: ErrNotFound, msg: "No avatar for this user"}
)

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

// ValidationError names the offending field and why it was rejected.
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string { return e.Field + " " + e.Reason }
func (e *ValidationError) Unwrap() error { return ErrValidation }

// InvalidUpdate reports a patch key outside the allowed set.
func InvalidUpdate(key string) *ValidationError {
	return &ValidationError{Field: key, Reason: "is not an allowed update"}
}

// check runs the shared validator over rules and converts the first failure.
func check(rules any) error {
	err := validation.Struct(rules)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &ValidationError{Field: verrs[0].Field(), Reason: validation.Message(verrs[0])}
	}
	return err
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
