package rsvp

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"volunteerhub/pkg/platform/sentinel"
)

func seedEvent(t *testing.T, store *InMemoryStore, eventID string, capacity int) {
	t.Helper()
	_, err := store.EnsureEvent(context.Background(), eventID, capacity, nil)
	require.NoError(t, err)
}

func reg(eventID, attendeeID, owner string) Registration {
	now := time.Now().UTC()
	return Registration{
		EventID:      eventID,
		AttendeeID:   attendeeID,
		AttendeeType: AttendeeSelf,
		FirstName:    "Test",
		LastName:     "Person",
		OwnerEmail:   owner,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestCreateAllIncrementsAttendance(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	seedEvent(t, store, "evt-1", 10)

	err := store.CreateAll(ctx, "evt-1", []Registration{
		reg("evt-1", "a@example.org", "a@example.org"),
		reg("evt-1", "dep-1", "a@example.org"),
	})
	require.NoError(t, err)

	event, err := store.GetEvent(ctx, "evt-1")
	require.NoError(t, err)
	assert.Equal(t, 2, event.Attendance)
}

func TestCreateAllRejectsOverCapacity(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	seedEvent(t, store, "evt-1", 1)

	err := store.CreateAll(ctx, "evt-1", []Registration{
		reg("evt-1", "a@example.org", "a@example.org"),
		reg("evt-1", "dep-1", "a@example.org"),
	})
	var capErr *CapacityExceededError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, 1, capErr.Remaining)

	// The batch must not be partially applied.
	event, err := store.GetEvent(ctx, "evt-1")
	require.NoError(t, err)
	assert.Equal(t, 0, event.Attendance)
	_, err = store.FindRegistration(ctx, "evt-1", "a@example.org")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestCreateAllRejectsExistingAttendee(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	seedEvent(t, store, "evt-1", 10)

	require.NoError(t, store.CreateAll(ctx, "evt-1", []Registration{reg("evt-1", "dep-1", "a@example.org")}))

	err := store.CreateAll(ctx, "evt-1", []Registration{
		reg("evt-1", "a@example.org", "a@example.org"),
		reg("evt-1", "dep-1", "a@example.org"),
	})
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, []string{"dep-1"}, conflict.AttendeeIDs)

	// All-or-nothing: the new attendee was not written either.
	_, err = store.FindRegistration(ctx, "evt-1", "a@example.org")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
	event, err := store.GetEvent(ctx, "evt-1")
	require.NoError(t, err)
	assert.Equal(t, 1, event.Attendance)
}

func TestConcurrentCreateAllNeverOverbooks(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	seedEvent(t, store, "evt-1", 5)

	const writers = 20
	var wg sync.WaitGroup
	errs := make([]error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := string(rune('a'+i)) + "@example.org"
			errs[i] = store.CreateAll(ctx, "evt-1", []Registration{reg("evt-1", id, id)})
		}(i)
	}
	wg.Wait()

	var succeeded int
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		var capErr *CapacityExceededError
		require.ErrorAs(t, err, &capErr)
	}
	assert.Equal(t, 5, succeeded)

	event, err := store.GetEvent(ctx, "evt-1")
	require.NoError(t, err)
	assert.Equal(t, 5, event.Attendance)
}

func TestDeleteRegistrationDecrementsAttendance(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	seedEvent(t, store, "evt-1", 10)
	require.NoError(t, store.CreateAll(ctx, "evt-1", []Registration{reg("evt-1", "dep-1", "a@example.org")}))

	require.NoError(t, store.DeleteRegistration(ctx, "evt-1", "dep-1"))

	event, err := store.GetEvent(ctx, "evt-1")
	require.NoError(t, err)
	assert.Equal(t, 0, event.Attendance)

	err = store.DeleteRegistration(ctx, "evt-1", "dep-1")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestLegacyRowsReadAsSelfRegistrations(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	seedEvent(t, store, "evt-1", 10)
	created := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	store.SeedLegacy("evt-1", "old@example.org", "Old", "Timer", created)

	found, err := store.FindRegistration(ctx, "evt-1", "old@example.org")
	require.NoError(t, err)
	assert.Equal(t, "old@example.org", found.AttendeeID)
	assert.Equal(t, AttendeeSelf, found.AttendeeType)

	ids, err := store.LiveAttendeeIDs(ctx, "evt-1")
	require.NoError(t, err)
	_, ok := ids["old@example.org"]
	assert.True(t, ok)

	owned, err := store.ListByOwner(ctx, "evt-1", "old@example.org")
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, AttendeeSelf, owned[0].AttendeeType)
}

func TestListByOwnerSortedAndScoped(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	seedEvent(t, store, "evt-1", 10)

	older := reg("evt-1", "dep-1", "a@example.org")
	older.CreatedAt = time.Now().UTC().Add(-time.Hour)
	newer := reg("evt-1", "a@example.org", "a@example.org")
	other := reg("evt-1", "b@example.org", "b@example.org")
	require.NoError(t, store.CreateAll(ctx, "evt-1", []Registration{older, newer, other}))

	owned, err := store.ListByOwner(ctx, "evt-1", "a@example.org")
	require.NoError(t, err)
	require.Len(t, owned, 2)
	assert.Equal(t, "dep-1", owned[0].AttendeeID)
	assert.Equal(t, "a@example.org", owned[1].AttendeeID)
}

func TestListByOwnerIndexUnavailable(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	seedEvent(t, store, "evt-1", 10)
	store.SetIndexUnavailable(true)

	_, err := store.ListByOwner(ctx, "evt-1", "a@example.org")
	assert.True(t, errors.Is(err, sentinel.ErrIndexUnavailable))
}

func TestCreateAllUnknownEvent(t *testing.T) {
	store := NewInMemoryStore()
	err := store.CreateAll(context.Background(), "missing", []Registration{reg("missing", "a", "a")})
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}
