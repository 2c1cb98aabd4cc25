package rsvp

import (
	"context"
	"sort"
	"sync"
	"time"

	"volunteerhub/pkg/platform/sentinel"
)

// InMemoryStore implements Store with a single mutex guarding the whole
// capacity-check-and-write sequence, which satisfies the same atomicity
// contract the Postgres implementation gets from row locking.
type InMemoryStore struct {
	mu            sync.RWMutex
	events        map[string]Event
	registrations map[string]map[string]Registration // eventID -> attendeeID -> record
	indexDown     bool
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		events:        make(map[string]Event),
		registrations: make(map[string]map[string]Registration),
	}
}

// SetIndexUnavailable simulates the owner-identity index being down, for
// degradation tests.
func (s *InMemoryStore) SetIndexUnavailable(down bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.indexDown = down
}

func (s *InMemoryStore) EnsureEvent(_ context.Context, eventID string, capacity int, startsAt *time.Time) (*Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.events[eventID]; ok {
		return &e, nil
	}
	e := Event{
		ID:        eventID,
		Capacity:  capacity,
		StartsAt:  startsAt,
		CreatedAt: time.Now().UTC(),
	}
	s.events[eventID] = e
	return &e, nil
}

func (s *InMemoryStore) GetEvent(_ context.Context, eventID string) (*Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.events[eventID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &e, nil
}

func (s *InMemoryStore) LiveAttendeeIDs(_ context.Context, eventID string) (map[string]struct{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make(map[string]struct{}, len(s.registrations[eventID]))
	for _, reg := range s.registrations[eventID] {
		ids[reg.WithLegacyDefaults().AttendeeID] = struct{}{}
	}
	return ids, nil
}

func (s *InMemoryStore) CreateAll(_ context.Context, eventID string, regs []Registration) error {
	if len(regs) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	event, ok := s.events[eventID]
	if !ok {
		return sentinel.ErrNotFound
	}

	// Existence condition per record, evaluated under the same lock as the
	// capacity check and the writes.
	var conflicts []string
	for _, reg := range regs {
		if _, exists := s.registrations[eventID][reg.AttendeeID]; exists {
			conflicts = append(conflicts, reg.AttendeeID)
		}
	}
	if len(conflicts) > 0 {
		return &ConflictError{AttendeeIDs: conflicts}
	}

	if event.Attendance+len(regs) > event.Capacity {
		return &CapacityExceededError{Remaining: event.Remaining()}
	}

	if s.registrations[eventID] == nil {
		s.registrations[eventID] = make(map[string]Registration)
	}
	for _, reg := range regs {
		s.registrations[eventID][reg.AttendeeID] = reg
	}
	event.Attendance += len(regs)
	s.events[eventID] = event
	return nil
}

func (s *InMemoryStore) FindRegistration(_ context.Context, eventID, attendeeID string) (*Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	reg, ok := s.registrations[eventID][attendeeID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	normalized := reg.WithLegacyDefaults()
	return &normalized, nil
}

func (s *InMemoryStore) ListByOwner(_ context.Context, eventID, ownerEmail string) ([]Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.indexDown {
		return nil, sentinel.ErrIndexUnavailable
	}
	var out []Registration
	for _, reg := range s.registrations[eventID] {
		if reg.OwnerEmail == ownerEmail {
			out = append(out, reg.WithLegacyDefaults())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *InMemoryStore) DeleteRegistration(_ context.Context, eventID, attendeeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.registrations[eventID][attendeeID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.registrations[eventID], attendeeID)
	event := s.events[eventID]
	if event.Attendance > 0 {
		event.Attendance--
	}
	s.events[eventID] = event
	return nil
}

// SeedLegacy inserts a record in the pre-dependents storage shape (no
// attendee_id, no attendee_type) and bumps attendance, for tests of the
// read-time interpretation rule.
func (s *InMemoryStore) SeedLegacy(eventID, ownerEmail, firstName, lastName string, createdAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.registrations[eventID] == nil {
		s.registrations[eventID] = make(map[string]Registration)
	}
	s.registrations[eventID][ownerEmail] = Registration{
		EventID:    eventID,
		FirstName:  firstName,
		LastName:   lastName,
		OwnerEmail: ownerEmail,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}
	event := s.events[eventID]
	event.Attendance++
	s.events[eventID] = event
}
