package ledger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/academy-registry/internal/registry"
	"github.com/aanand-mishra/academy-registry/internal/storage/memory"
)

type failingCounters struct{}

func (failingCounters) Increment(string) (uint64, error) { return 0, errors.New("disk on fire") }
func (failingCounters) Get(string) (uint64, error)       { return 0, errors.New("disk on fire") }

func TestTeacherLedger(t *testing.T) {
	l := NewTeacherLedger(memory.NewCounters(), nil)

	n, err := l.LookupTeacher("bob")
	require.NoError(t, err)
	assert.Zero(t, n)

	for i := 0; i < 3; i++ {
		require.NoError(t, l.AddToTeacher("bob"))
	}

	n, err = l.LookupTeacher("bob")
	require.NoError(t, err)
	assert.Equal(t, uint64(3), n)
}

func TestStudentLedger(t *testing.T) {
	l := NewStudentLedger(memory.NewCounters(), nil)

	require.NoError(t, l.AddToStudent("alice"))

	n, err := l.LookupStudent("alice")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), n)

	n, err = l.LookupStudent("bob")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestLedgersRejectBadIdentifiers(t *testing.T) {
	teachers := NewTeacherLedger(memory.NewCounters(), nil)
	students := NewStudentLedger(memory.NewCounters(), nil)

	assert.ErrorIs(t, teachers.AddToTeacher(""), registry.ErrInvalidArgument)
	assert.ErrorIs(t, students.AddToStudent("a b"), registry.ErrInvalidArgument)
}

func TestLedgersSurfaceStoreErrors(t *testing.T) {
	teachers := NewTeacherLedger(failingCounters{}, nil)

	assert.ErrorContains(t, teachers.AddToTeacher("bob"), "disk on fire")
	_, err := teachers.LookupTeacher("bob")
	assert.ErrorContains(t, err, "LookupTeacher")
}
