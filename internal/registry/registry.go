// Package registry is the capability contract every academy registry
// implementation must satisfy: the mandatory operation set, the error
// kinds those operations report, and the input rules they enforce.
//
// The shared vocabulary (Role, User) lives in package types and the
// NewStudent notification in package events.
package registry

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/academy-registry/internal/types"
)

// Error kinds. Check them with errors.Is.
var (
	ErrNotFound        = errors.New("participant not found")
	ErrInvalidArgument = errors.New("invalid argument")
)

// Registry is the mandatory operation set.
//
// AddUser registers or fully overwrites the record stored under id and,
// when role is RoleStudent, must emit exactly one NewStudent notification.
// ChangeUserName replaces the name of an existing record and reports
// ErrNotFound for identifiers that were never registered.
type Registry interface {
	AddUser(id string, name string, role types.Role) error
	ChangeUserName(id string, newName string) error
}

// MaxIdentifierLen bounds participant identifiers.
const MaxIdentifierLen = 128

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// participant: printable, no whitespace anywhere.
	_ = v.RegisterValidation("participant", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return strings.IndexFunc(s, func(r rune) bool {
			return unicode.IsSpace(r) || !unicode.IsPrint(r)
		}) < 0
	})

	// role: one of the declared roles.
	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return types.Role(fl.Field().Uint()).Valid()
	})

	return v
}

type identifierInput struct {
	ID string `validate:"required,max=128,participant"`
}

type userInput struct {
	ID   string `validate:"required,max=128,participant"`
	User types.User
}

// ValidateIdentifier checks a participant identifier.
func ValidateIdentifier(id string) error {
	return check(identifierInput{ID: id})
}

// ValidateUser checks an identifier together with the record to store.
func ValidateUser(id string, user types.User) error {
	return check(userInput{ID: id, User: user})
}

// ValidateName checks a display name on its own.
func ValidateName(name string) error {
	return check(types.User{Name: name, Role: types.RoleTeacher})
}

// check wraps validator failures so that both errors.Is(err,
// ErrInvalidArgument) and errors.As(err, &validator.ValidationErrors{})
// hold for the caller.
func check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, verrs)
	}
	return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
}
