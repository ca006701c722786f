// Package participant contains the command handlers for the academy
// registry.
//
// HANDLER PATTERN USED HERE — THE CLOSURE / FACTORY PATTERN:
// ────────────────────────────────────────────────────────────
// cli.Mux expects handlers with the signature
//
//	func(w io.Writer, args []string)
//
// which has no room for the registry. Each factory below accepts the
// registry once, at startup, and returns a closure that uses it on every
// command:
//
//	mux.HandleFunc("add-user", participant.AddUser(academy))
package participant

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aanand-mishra/academy-registry/internal/cli"
	"github.com/aanand-mishra/academy-registry/internal/ledger"
	"github.com/aanand-mishra/academy-registry/internal/registry"
	"github.com/aanand-mishra/academy-registry/internal/types"
	"github.com/aanand-mishra/academy-registry/internal/utils/response"
)

// Academy is the operation set the handlers drive. *academy.Academy
// satisfies it.
type Academy interface {
	registry.Registry
	ledger.TeacherRater
	ledger.StudentRater

	AddRatTeacher(id string) error
	AddRatStudent(id string) error
	StudentCount() uint64
	User(id string) (types.User, error)
	Users() (map[string]types.User, error)
}

// Register wires every participant command onto mux.
func Register(mux *cli.Mux, academy Academy) {
	mux.HandleFunc("add-user", AddUser(academy))
	mux.HandleFunc("change-name", ChangeName(academy))
	mux.HandleFunc("rate-teacher", RateTeacher(academy))
	mux.HandleFunc("rate-student", RateStudent(academy))
	mux.HandleFunc("teacher-rating", TeacherRating(academy))
	mux.HandleFunc("student-rating", StudentRating(academy))
	mux.HandleFunc("user", GetUser(academy))
	mux.HandleFunc("users", ListUsers(academy))
	mux.HandleFunc("student-count", StudentCount(academy))
}

func usage(w io.Writer, format string) {
	response.WriteJSON(w, response.GeneralError(fmt.Errorf("usage: %s", format)))
}

// ─────────────────────────────────────────────────────────────────────────────
// AddUser handles: add-user <id> <name...> <teacher|student>
//
// The name may contain spaces; the last word is always the role.
//
// Success: { "status": "ok", "data": { "id": "alice", "name": "Alice", "role": "student" } }
// ─────────────────────────────────────────────────────────────────────────────
func AddUser(academy Academy) cli.HandlerFunc {
	return func(w io.Writer, args []string) {
		if len(args) < 3 {
			usage(w, "add-user <id> <name...> <teacher|student>")
			return
		}

		id, name, rawRole := args[0], strings.Join(args[1:len(args)-1], " "), args[len(args)-1]
		role, err := types.ParseRole(rawRole)
		if err != nil {
			response.WriteJSON(w, response.GeneralError(err))
			return
		}

		if err := academy.AddUser(id, name, role); err != nil {
			slog.Error("error adding user", slog.String("id", id), slog.String("error", err.Error()))
			response.WriteJSON(w, response.FromError(err))
			return
		}

		response.WriteJSON(w, response.OK(map[string]any{"id": id, "name": name, "role": role}))
	}
}

// ChangeName handles: change-name <id> <name...>
func ChangeName(academy Academy) cli.HandlerFunc {
	return func(w io.Writer, args []string) {
		if len(args) < 2 {
			usage(w, "change-name <id> <name...>")
			return
		}

		id, name := args[0], strings.Join(args[1:], " ")
		if err := academy.ChangeUserName(id, name); err != nil {
			slog.Error("error renaming user", slog.String("id", id), slog.String("error", err.Error()))
			response.WriteJSON(w, response.FromError(err))
			return
		}

		response.WriteJSON(w, response.OK(map[string]string{"id": id, "name": name}))
	}
}

// single adapts a one-identifier operation into a handler.
func single(command string, op func(id string) (any, error)) cli.HandlerFunc {
	return func(w io.Writer, args []string) {
		if len(args) != 1 {
			usage(w, command+" <id>")
			return
		}

		data, err := op(args[0])
		if err != nil {
			response.WriteJSON(w, response.FromError(err))
			return
		}
		response.WriteJSON(w, response.OK(data))
	}
}

// RateTeacher handles: rate-teacher <id>. Answers with the new rating.
func RateTeacher(academy Academy) cli.HandlerFunc {
	return single("rate-teacher", func(id string) (any, error) {
		if err := academy.AddRatTeacher(id); err != nil {
			return nil, err
		}
		return academy.RatingTeacher(id)
	})
}

// RateStudent handles: rate-student <id>. Answers with the new rating.
func RateStudent(academy Academy) cli.HandlerFunc {
	return single("rate-student", func(id string) (any, error) {
		if err := academy.AddRatStudent(id); err != nil {
			return nil, err
		}
		return academy.RatingStudent(id)
	})
}

func TeacherRating(academy Academy) cli.HandlerFunc {
	return single("teacher-rating", func(id string) (any, error) {
		return academy.RatingTeacher(id)
	})
}

func StudentRating(academy Academy) cli.HandlerFunc {
	return single("student-rating", func(id string) (any, error) {
		return academy.RatingStudent(id)
	})
}

func GetUser(academy Academy) cli.HandlerFunc {
	return single("user", func(id string) (any, error) {
		return academy.User(id)
	})
}

// ListUsers handles: users
func ListUsers(academy Academy) cli.HandlerFunc {
	return func(w io.Writer, args []string) {
		users, err := academy.Users()
		if err != nil {
			slog.Error("error listing users", slog.String("error", err.Error()))
			response.WriteJSON(w, response.FromError(err))
			return
		}
		response.WriteJSON(w, response.OK(users))
	}
}

// StudentCount handles: student-count
func StudentCount(academy Academy) cli.HandlerFunc {
	return func(w io.Writer, args []string) {
		response.WriteJSON(w, response.OK(academy.StudentCount()))
	}
}
