// Package academy is the aggregate: it composes the registry contract
// and both reputation ledgers into one registry of teachers and students.
//
// External callers only talk to *Academy. Rating mutations are
// delegated to the embedded ledgers; the aggregate supplies the read
// accessors the ledgers leave open and owns the participant registry and
// the running student count.
package academy

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aanand-mishra/academy-registry/internal/events"
	"github.com/aanand-mishra/academy-registry/internal/ledger"
	"github.com/aanand-mishra/academy-registry/internal/registry"
	"github.com/aanand-mishra/academy-registry/internal/storage"
	"github.com/aanand-mishra/academy-registry/internal/storage/memory"
	"github.com/aanand-mishra/academy-registry/internal/types"
)

// Stores groups the state backends. TeacherRatings and StudentRatings
// must be distinct counter spaces.
type Stores struct {
	Users          storage.UserStore
	TeacherRatings storage.CounterStore
	StudentRatings storage.CounterStore
}

// MemoryStores returns fresh map-backed stores.
func MemoryStores() Stores {
	return Stores{
		Users:          memory.NewUsers(),
		TeacherRatings: memory.NewCounters(),
		StudentRatings: memory.NewCounters(),
	}
}

// Academy is safe for concurrent use.
type Academy struct {
	*ledger.TeacherLedger
	*ledger.StudentLedger

	// mu serialises registry writes with studentCount so a registration
	// and its count bump are observed together.
	mu           sync.Mutex
	users        storage.UserStore
	studentCount uint64

	bus    events.Publisher
	logger *slog.Logger
}

var (
	_ registry.Registry   = (*Academy)(nil)
	_ ledger.TeacherRater = (*Academy)(nil)
	_ ledger.StudentRater = (*Academy)(nil)
)

// New builds an empty academy over stores. A nil bus gets a private
// events.Bus with no subscribers; a nil logger falls back to slog.Default().
func New(stores Stores, bus events.Publisher, logger *slog.Logger) *Academy {
	if logger == nil {
		logger = slog.Default()
	}
	if bus == nil {
		bus = events.NewBus(logger)
	}

	return &Academy{
		TeacherLedger: ledger.NewTeacherLedger(stores.TeacherRatings, logger),
		StudentLedger: ledger.NewStudentLedger(stores.StudentRatings, logger),
		users:         stores.Users,
		bus:           bus,
		logger:        logger,
	}
}

// AddUser registers id, overwriting any previous record. Every call with
// RoleStudent bumps the student count and publishes NewStudent, even
// when id was already registered as a student.
func (a *Academy) AddUser(id string, name string, role types.Role) error {
	user := types.User{Name: name, Role: role}
	if err := registry.ValidateUser(id, user); err != nil {
		return fmt.Errorf("AddUser: %w", err)
	}

	a.mu.Lock()
	if err := a.users.Put(id, user); err != nil {
		a.mu.Unlock()
		return fmt.Errorf("AddUser: %w", err)
	}
	if role == types.RoleStudent {
		a.addCount()
	}
	a.mu.Unlock()

	a.logger.Info("user registered",
		slog.String("id", id),
		slog.String("role", role.String()),
	)

	// Published outside the lock so handlers may call back in.
	if role == types.RoleStudent {
		a.bus.Publish(events.NewStudentFor(id))
	}
	return nil
}

// addCount must be called with a.mu held.
func (a *Academy) addCount() {
	a.studentCount++
}

// ChangeUserName renames an existing participant, keeping its role.
// Unknown identifiers yield registry.ErrNotFound; no partial record is
// created.
func (a *Academy) ChangeUserName(id string, newName string) error {
	if err := registry.ValidateIdentifier(id); err != nil {
		return fmt.Errorf("ChangeUserName: %w", err)
	}
	if err := registry.ValidateName(newName); err != nil {
		return fmt.Errorf("ChangeUserName: %w", err)
	}

	a.mu.Lock()
	err := a.users.Rename(id, newName)
	a.mu.Unlock()

	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("ChangeUserName %q: %w", id, registry.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("ChangeUserName: %w", err)
	}

	a.logger.Info("user renamed", slog.String("id", id))
	return nil
}

// RatingTeacher returns id's teacher rating, 0 if never rated.
func (a *Academy) RatingTeacher(id string) (uint64, error) {
	if err := registry.ValidateIdentifier(id); err != nil {
		return 0, fmt.Errorf("RatingTeacher: %w", err)
	}
	return a.LookupTeacher(id)
}

// RatingStudent returns id's student rating, 0 if never rated.
func (a *Academy) RatingStudent(id string) (uint64, error) {
	if err := registry.ValidateIdentifier(id); err != nil {
		return 0, fmt.Errorf("RatingStudent: %w", err)
	}
	return a.LookupStudent(id)
}

// AddRatTeacher adds one to id's teacher rating.
func (a *Academy) AddRatTeacher(id string) error {
	return a.AddToTeacher(id)
}

// AddRatStudent adds one to id's student rating.
func (a *Academy) AddRatStudent(id string) error {
	return a.AddToStudent(id)
}

// StudentCount is the number of student registrations so far.
func (a *Academy) StudentCount() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.studentCount
}

// User returns the record registered under id.
func (a *Academy) User(id string) (types.User, error) {
	user, err := a.users.Get(id)
	if errors.Is(err, storage.ErrNotFound) {
		return types.User{}, fmt.Errorf("User %q: %w", id, registry.ErrNotFound)
	}
	if err != nil {
		return types.User{}, fmt.Errorf("User: %w", err)
	}
	return user, nil
}

// Users returns a snapshot of the whole registry.
func (a *Academy) Users() (map[string]types.User, error) {
	users, err := a.users.List()
	if err != nil {
		return nil, fmt.Errorf("Users: %w", err)
	}
	return users, nil
}
