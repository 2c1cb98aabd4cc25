package volunteer

import "context"

// Store persists volunteers and their dependents.
//
// Deleting a volunteer or dependent must never touch registration records;
// registrations carry denormalized name/age snapshots precisely so history
// survives account deletion.
type Store interface {
	GetVolunteer(ctx context.Context, email string) (*Volunteer, error)
	PutVolunteer(ctx context.Context, v *Volunteer) error
	DeleteVolunteer(ctx context.Context, email string) error

	ListDependents(ctx context.Context, volunteerEmail string) ([]Dependent, error)
	AddDependent(ctx context.Context, d *Dependent) error
	DeleteDependent(ctx context.Context, volunteerEmail, dependentID string) error
}
