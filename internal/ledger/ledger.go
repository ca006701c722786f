// Package ledger holds the two reputation ledgers.
//
// A ledger owns a counter space and the only operation allowed to mutate
// it. It does not surface ratings itself: the read accessor is declared
// here (TeacherRater, StudentRater) and supplied by whichever aggregate
// composes the ledger, so the ledger stays reusable without fixing the
// shape of the read API.
package ledger

import (
	"fmt"
	"log/slog"

	"github.com/aanand-mishra/academy-registry/internal/registry"
	"github.com/aanand-mishra/academy-registry/internal/storage"
)

// TeacherRater is the read accessor a composing aggregate must provide
// for a TeacherLedger. Unseen identifiers rate 0.
type TeacherRater interface {
	RatingTeacher(id string) (uint64, error)
}

// StudentRater is the StudentLedger counterpart of TeacherRater.
type StudentRater interface {
	RatingStudent(id string) (uint64, error)
}

// TeacherLedger keeps teacher reputation counters.
type TeacherLedger struct {
	ratings storage.CounterStore
	logger  *slog.Logger
}

// NewTeacherLedger wraps ratings. The store must not be shared with a
// StudentLedger.
func NewTeacherLedger(ratings storage.CounterStore, logger *slog.Logger) *TeacherLedger {
	if logger == nil {
		logger = slog.Default()
	}
	return &TeacherLedger{ratings: ratings, logger: logger}
}

// AddToTeacher adds one to id's teacher rating.
func (l *TeacherLedger) AddToTeacher(id string) error {
	if err := registry.ValidateIdentifier(id); err != nil {
		return fmt.Errorf("AddToTeacher: %w", err)
	}

	n, err := l.ratings.Increment(id)
	if err != nil {
		return fmt.Errorf("AddToTeacher: %w", err)
	}

	l.logger.Debug("teacher rated", slog.String("id", id), slog.Uint64("rating", n))
	return nil
}

// LookupTeacher is the direct lookup an aggregate builds RatingTeacher on.
func (l *TeacherLedger) LookupTeacher(id string) (uint64, error) {
	n, err := l.ratings.Get(id)
	if err != nil {
		return 0, fmt.Errorf("LookupTeacher: %w", err)
	}
	return n, nil
}

// StudentLedger keeps student reputation counters, disjoint from any
// TeacherLedger even for the same identifier.
type StudentLedger struct {
	ratings storage.CounterStore
	logger  *slog.Logger
}

func NewStudentLedger(ratings storage.CounterStore, logger *slog.Logger) *StudentLedger {
	if logger == nil {
		logger = slog.Default()
	}
	return &StudentLedger{ratings: ratings, logger: logger}
}

// AddToStudent adds one to id's student rating.
func (l *StudentLedger) AddToStudent(id string) error {
	if err := registry.ValidateIdentifier(id); err != nil {
		return fmt.Errorf("AddToStudent: %w", err)
	}

	n, err := l.ratings.Increment(id)
	if err != nil {
		return fmt.Errorf("AddToStudent: %w", err)
	}

	l.logger.Debug("student rated", slog.String("id", id), slog.Uint64("rating", n))
	return nil
}

func (l *StudentLedger) LookupStudent(id string) (uint64, error) {
	n, err := l.ratings.Get(id)
	if err != nil {
		return 0, fmt.Errorf("LookupStudent: %w", err)
	}
	return n, nil
}
