// Package storage defines the contracts the registry state is kept behind.
//
// WHY INTERFACES?
// ───────────────
// The ledgers and the academy aggregate should not know whether their
// maps live in plain Go maps or in an in-memory SQLite database. Both
// backends satisfy these interfaces; main.go picks one from config.
//
// Every implementation must make each single call atomic: an Increment
// racing with another Increment on the same key must never lose an update.
package storage

import (
	"errors"

	"github.com/aanand-mishra/academy-registry/internal/types"
)

// ErrNotFound is returned when a lookup references an unknown identifier.
var ErrNotFound = errors.New("storage: not found")

// UserStore is the participant registry: identifier -> User.
type UserStore interface {
	// Put inserts or fully overwrites the record stored under id.
	Put(id string, user types.User) error

	// Get returns the record stored under id, or ErrNotFound.
	Get(id string) (types.User, error)

	// Rename replaces only the name of an existing record.
	// Returns ErrNotFound if id was never registered.
	Rename(id string, name string) error

	// List returns a copy of every record keyed by identifier.
	List() (map[string]types.User, error)
}

// CounterStore is a keyed, non-negative counter space.
type CounterStore interface {
	// Increment adds exactly one to the counter for id, creating it at 1
	// when absent, and returns the new value.
	Increment(id string) (uint64, error)

	// Get returns the current value, 0 for ids never incremented.
	Get(id string) (uint64, error)
}
