// Package response provides helpers for writing consistent JSON responses
// from the command front end. Every command answers with exactly one JSON
// line, so scripts driving the CLI can decode the output line by line.
package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Response is the envelope for every command result:
//
//	{ "status": "ok", "data": 3 }
//	{ "status": "error", "error": "field Name is required" }
type Response struct {
	Status string `json:"status"`
	Data   any    `json:"data,omitempty"`
	Error  string `json:"error,omitempty"`
}

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// WriteJSON encodes data as a single line on w.
func WriteJSON(w io.Writer, data any) error {
	return json.NewEncoder(w).Encode(data)
}

// OK wraps a successful result. data may be nil.
func OK(data any) Response {
	return Response{Status: StatusOK, Data: data}
}

// GeneralError wraps any Go error into the standard shape.
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// ValidationError turns validator field errors into one readable message:
//
//	{ "status": "error", "error": "field ID is required, field Name is invalid" }
func ValidationError(errs validator.ValidationErrors) Response {
	var errMessages []string

	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is required", e.Field()))
		case "max":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must be at most %s characters", e.Field(), e.Param()))
		case "participant":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must not contain whitespace or control characters", e.Field()))
		default:
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}

	return Response{
		Status: StatusError,
		Error:  strings.Join(errMessages, ", "),
	}
}

// FromError picks ValidationError when err carries validator field
// errors and GeneralError otherwise.
func FromError(err error) Response {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return ValidationError(verrs)
	}
	return GeneralError(err)
}
