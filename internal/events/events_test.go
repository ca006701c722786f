package events

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishDeliversInOrder(t *testing.T) {
	bus := NewBus(nil)

	var got []string
	require.NoError(t, bus.Subscribe(func(e NewStudent) error {
		got = append(got, "first:"+e.Participant)
		return nil
	}))
	require.NoError(t, bus.Subscribe(func(e NewStudent) error {
		got = append(got, "second:"+e.Participant)
		return nil
	}))

	bus.Publish(NewStudentFor("alice"))

	assert.Equal(t, []string{"first:alice", "second:alice"}, got)
}

func TestHandlerErrorDoesNotStopDelivery(t *testing.T) {
	bus := NewBus(nil)

	calls := 0
	require.NoError(t, bus.Subscribe(func(NewStudent) error {
		calls++
		return errors.New("boom")
	}))
	require.NoError(t, bus.Subscribe(func(NewStudent) error {
		calls++
		return nil
	}))

	bus.Publish(NewStudentFor("bob"))
	assert.Equal(t, 2, calls)
}

func TestSubscribeRejectsNil(t *testing.T) {
	assert.ErrorIs(t, NewBus(nil).Subscribe(nil), ErrNilHandler)
}

func TestNewStudentFor(t *testing.T) {
	a, b := NewStudentFor("alice"), NewStudentFor("alice")

	assert.Equal(t, "alice", a.Participant)
	assert.NotEqual(t, uuid.Nil, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.OccurredAt.IsZero())
}

func TestPublishWithoutHandlers(t *testing.T) {
	assert.NotPanics(t, func() { NewBus(nil).Publish(NewStudentFor("carol")) })
}
