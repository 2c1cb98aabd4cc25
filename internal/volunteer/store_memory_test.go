package volunteer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"volunteerhub/pkg/platform/sentinel"
)

func TestVolunteerRoundTrip(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	_, err := store.GetVolunteer(ctx, "jane@example.org")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)

	require.NoError(t, store.PutVolunteer(ctx, &Volunteer{
		Email:     "jane@example.org",
		FirstName: "Jane",
		LastName:  "Doe",
	}))

	got, err := store.GetVolunteer(ctx, "jane@example.org")
	require.NoError(t, err)
	assert.Equal(t, "Jane", got.FirstName)

	// Returned value is a copy; mutating it must not leak into the store.
	got.FirstName = "changed"
	again, err := store.GetVolunteer(ctx, "jane@example.org")
	require.NoError(t, err)
	assert.Equal(t, "Jane", again.FirstName)
}

func TestDependentLifecycle(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.PutVolunteer(ctx, &Volunteer{Email: "jane@example.org"}))

	deps, err := store.ListDependents(ctx, "jane@example.org")
	require.NoError(t, err)
	assert.Empty(t, deps)

	require.NoError(t, store.AddDependent(ctx, &Dependent{
		ID:             "dep-1",
		VolunteerEmail: "jane@example.org",
		FirstName:      "Sam",
		Age:            12,
	}))
	require.NoError(t, store.AddDependent(ctx, &Dependent{
		ID:             "dep-2",
		VolunteerEmail: "jane@example.org",
		FirstName:      "Alex",
		Age:            9,
	}))

	deps, err = store.ListDependents(ctx, "jane@example.org")
	require.NoError(t, err)
	require.Len(t, deps, 2)
	assert.Equal(t, "dep-1", deps[0].ID)
	assert.Equal(t, "dep-2", deps[1].ID)

	require.NoError(t, store.DeleteDependent(ctx, "jane@example.org", "dep-1"))
	deps, err = store.ListDependents(ctx, "jane@example.org")
	require.NoError(t, err)
	require.Len(t, deps, 1)
	assert.Equal(t, "dep-2", deps[0].ID)

	err = store.DeleteDependent(ctx, "jane@example.org", "dep-1")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestDeleteVolunteerDropsDependents(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.PutVolunteer(ctx, &Volunteer{Email: "jane@example.org"}))
	require.NoError(t, store.AddDependent(ctx, &Dependent{
		ID:             "dep-1",
		VolunteerEmail: "jane@example.org",
	}))

	require.NoError(t, store.DeleteVolunteer(ctx, "jane@example.org"))

	_, err := store.GetVolunteer(ctx, "jane@example.org")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)

	deps, err := store.ListDependents(ctx, "jane@example.org")
	require.NoError(t, err)
	assert.Empty(t, deps)

	assert.ErrorIs(t, store.DeleteVolunteer(ctx, "jane@example.org"), sentinel.ErrNotFound)
}
