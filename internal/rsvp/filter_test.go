package rsvp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartitionAttendeesPreservesOrder(t *testing.T) {
	attendees := []Attendee{
		{ID: "a@example.org", Type: AttendeeSelf},
		{ID: "dep-1", Type: AttendeeDependent},
		{ID: "dep-2", Type: AttendeeDependent},
	}
	existing := map[string]struct{}{"dep-1": {}}

	toRegister, already := partitionAttendees(attendees, existing)
	require.Len(t, toRegister, 2)
	require.Len(t, already, 1)
	assert.Equal(t, "a@example.org", toRegister[0].ID)
	assert.Equal(t, "dep-2", toRegister[1].ID)
	assert.Equal(t, "dep-1", already[0].ID)
}

func TestPartitionAttendeesExactStringMatch(t *testing.T) {
	// Matching is exact: normalization already happened upstream, so a
	// differently-cased ID is a different attendee here.
	attendees := []Attendee{{ID: "A@example.org", Type: AttendeeSelf}}
	existing := map[string]struct{}{"a@example.org": {}}

	toRegister, already := partitionAttendees(attendees, existing)
	assert.Len(t, toRegister, 1)
	assert.Empty(t, already)
}

func TestPartitionAttendeesAllNew(t *testing.T) {
	attendees := []Attendee{{ID: "x"}, {ID: "y"}}

	toRegister, already := partitionAttendees(attendees, map[string]struct{}{})
	assert.Len(t, toRegister, 2)
	assert.Empty(t, already)
}

func TestAttendeeIDs(t *testing.T) {
	ids := attendeeIDs([]Attendee{{ID: "a"}, {ID: "b"}})
	assert.Equal(t, []string{"a", "b"}, ids)
}
