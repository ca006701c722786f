// Package memory implements the storage contracts on plain Go maps.
// It is the default backend: nothing outlives the process.
package memory

import (
	"fmt"
	"sync"

	"github.com/aanand-mishra/academy-registry/internal/storage"
	"github.com/aanand-mishra/academy-registry/internal/types"
)

// Users is a map-backed storage.UserStore.
type Users struct {
	mu    sync.RWMutex
	users map[string]types.User
}

// NewUsers returns an empty registry.
func NewUsers() *Users {
	return &Users{users: make(map[string]types.User)}
}

func (u *Users) Put(id string, user types.User) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.users[id] = user
	return nil
}

func (u *Users) Get(id string) (types.User, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	user, ok := u.users[id]
	if !ok {
		return types.User{}, fmt.Errorf("Get %q: %w", id, storage.ErrNotFound)
	}
	return user, nil
}

func (u *Users) Rename(id string, name string) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	user, ok := u.users[id]
	if !ok {
		return fmt.Errorf("Rename %q: %w", id, storage.ErrNotFound)
	}
	user.Name = name
	u.users[id] = user
	return nil
}

func (u *Users) List() (map[string]types.User, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	out := make(map[string]types.User, len(u.users))
	for id, user := range u.users {
		out[id] = user
	}
	return out, nil
}

// Counters is a map-backed storage.CounterStore. Each instance is its own
// counter space; two instances never share keys.
type Counters struct {
	mu     sync.Mutex
	counts map[string]uint64
}

// NewCounters returns an empty counter space.
func NewCounters() *Counters {
	return &Counters{counts: make(map[string]uint64)}
}

func (c *Counters) Increment(id string) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.counts[id]++
	return c.counts[id], nil
}

func (c *Counters) Get(id string) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.counts[id], nil
}

var (
	_ storage.UserStore    = (*Users)(nil)
	_ storage.CounterStore = (*Counters)(nil)
)
