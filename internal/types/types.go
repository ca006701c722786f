// Package types holds the shared vocabulary of the academy registry.
// Keeping it in one place prevents import cycles: the ledgers, the
// storage backends, the aggregate and the CLI all import types without
// depending on each other.
package types

import (
	"fmt"
	"strings"
)

// Role is the closed set of participant roles.
//
// The zero value is RoleTeacher. Callers that need "no role" must track
// that separately; the registry never stores a roleless record.
type Role uint8

const (
	RoleTeacher Role = iota
	RoleStudent
)

// String returns the lowercase name used in logs, JSON and CLI input.
func (r Role) String() string {
	switch r {
	case RoleTeacher:
		return "teacher"
	case RoleStudent:
		return "student"
	default:
		return fmt.Sprintf("role(%d)", uint8(r))
	}
}

// Valid reports whether r is one of the declared roles.
func (r Role) Valid() bool {
	return r == RoleTeacher || r == RoleStudent
}

// ParseRole converts "teacher" / "student" (case-insensitive) into a Role.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "teacher":
		return RoleTeacher, nil
	case "student":
		return RoleStudent, nil
	default:
		return 0, fmt.Errorf("unknown role %q: want teacher or student", s)
	}
}

// MarshalText lets encoding/json render roles by name.
func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("cannot marshal %s", r)
	}
	return []byte(r.String()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// User is a registry record. The participant identifier is the key the
// record is stored under and is deliberately not part of the value.
//
// validate:"..." tags are checked by go-playground/validator; "role" is
// a custom rule registered by the registry package.
type User struct {
	Name string `json:"name" validate:"required,max=128"`
	Role Role   `json:"role" validate:"role"`
}
