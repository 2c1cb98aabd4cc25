package volunteer

import (
	"context"
	"sync"

	"volunteerhub/pkg/platform/sentinel"
)

// InMemoryStore is the test and single-process implementation of Store.
type InMemoryStore struct {
	mu         sync.RWMutex
	volunteers map[string]Volunteer
	dependents map[string][]Dependent
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		volunteers: make(map[string]Volunteer),
		dependents: make(map[string][]Dependent),
	}
}

func (s *InMemoryStore) GetVolunteer(_ context.Context, email string) (*Volunteer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.volunteers[email]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &v, nil
}

func (s *InMemoryStore) PutVolunteer(_ context.Context, v *Volunteer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.volunteers[v.Email] = *v
	return nil
}

func (s *InMemoryStore) DeleteVolunteer(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.volunteers[email]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.volunteers, email)
	delete(s.dependents, email)
	return nil
}

func (s *InMemoryStore) ListDependents(_ context.Context, volunteerEmail string) ([]Dependent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Dependent{}, s.dependents[volunteerEmail]...), nil
}

func (s *InMemoryStore) AddDependent(_ context.Context, d *Dependent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dependents[d.VolunteerEmail] = append(s.dependents[d.VolunteerEmail], *d)
	return nil
}

func (s *InMemoryStore) DeleteDependent(_ context.Context, volunteerEmail, dependentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	deps := s.dependents[volunteerEmail]
	for i := range deps {
		if deps[i].ID == dependentID {
			s.dependents[volunteerEmail] = append(deps[:i], deps[i+1:]...)
			return nil
		}
	}
	return sentinel.ErrNotFound
}
