package rsvp

import (
	"context"
	"fmt"
	"time"
)

// Store is the persistence boundary of the registration core.
//
// CreateAll and DeleteRegistration are the only mutation paths and both are
// transactional: CreateAll re-validates capacity and per-record uniqueness at
// commit time and either writes every record (bumping attendance by the batch
// size) or none; DeleteRegistration removes exactly one record and decrements
// attendance in the same transaction.
//
// ListByOwner is served by the owner-identity index; when that index is
// unreachable it returns sentinel.ErrIndexUnavailable (possibly wrapped) so
// callers can degrade to the volunteer's own registration instead of failing.
type Store interface {
	EnsureEvent(ctx context.Context, eventID string, capacity int, startsAt *time.Time) (*Event, error)
	GetEvent(ctx context.Context, eventID string) (*Event, error)

	LiveAttendeeIDs(ctx context.Context, eventID string) (map[string]struct{}, error)
	CreateAll(ctx context.Context, eventID string, regs []Registration) error
	FindRegistration(ctx context.Context, eventID, attendeeID string) (*Registration, error)
	ListByOwner(ctx context.Context, eventID, ownerEmail string) ([]Registration, error)
	DeleteRegistration(ctx context.Context, eventID, attendeeID string) error
}

// CapacityExceededError is returned by CreateAll when the commit-time
// re-validation finds the batch no longer fits. This is the race-closing
// check; the service's pre-check exists only to fail fast.
type CapacityExceededError struct {
	Remaining int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("capacity exceeded at commit, %d remaining", e.Remaining)
}

// ConflictError is returned by CreateAll when one of the batch's attendees
// was concurrently registered between the duplicate-filter read and the
// commit. The whole batch is rejected; re-running the submission re-derives
// the batch from fresh state.
type ConflictError struct {
	AttendeeIDs []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("attendees concurrently registered: %v", e.AttendeeIDs)
}
