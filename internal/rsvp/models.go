// Package rsvp is the registration core: attendee normalization, duplicate
// filtering, capacity-bounded atomic registration, guardian-scoped status
// queries, and cancellation with attendance decrement.
package rsvp

import (
	"time"

	"volunteerhub/internal/volunteer"
)

// AttendeeType distinguishes a volunteer registering themselves from a
// dependent registered by their guardian.
type AttendeeType string

const (
	AttendeeSelf      AttendeeType = "self"
	AttendeeDependent AttendeeType = "dependent"
)

// Registration statuses reported per attendee in a submit response.
const (
	StatusRegistered        = "registered"
	StatusAlreadyRegistered = "already_registered"
)

// Attendee is the canonical descriptor produced by the normalizer. Exactly
// one per person per submission; the ID is a volunteer email for self and a
// dependent ID for dependents (disjoint identity spaces).
type Attendee struct {
	ID        string
	Type      AttendeeType
	FirstName string
	LastName  string
	Age       int // dependents only
}

// Registration is the unit of truth. Name and age are denormalized snapshots
// taken at registration time; they must stay readable after the source person
// record is deleted.
type Registration struct {
	EventID           string       `json:"event_id"`
	AttendeeID        string       `json:"attendee_id"`
	AttendeeType      AttendeeType `json:"attendee_type"`
	FirstName         string       `json:"first_name"`
	LastName          string       `json:"last_name"`
	OwnerEmail        string       `json:"owner_email"`
	AgeAtRegistration *int         `json:"age_at_registration,omitempty"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

// WithLegacyDefaults applies the read-time interpretation rule for records
// created before attendee_type/attendee_id existed: such records are self
// registrations keyed by the owner's email. Stored rows are never migrated;
// every store read path runs through this.
func (r Registration) WithLegacyDefaults() Registration {
	if r.AttendeeID == "" {
		r.AttendeeID = r.OwnerEmail
	}
	if r.AttendeeType == "" {
		r.AttendeeType = AttendeeSelf
	}
	return r
}

// Event is the capacity-bounded thing people register for. Attendance is the
// live counter; every mutation of it happens inside the same transaction as
// the registration write it accounts for.
type Event struct {
	ID         string     `json:"id"`
	Capacity   int        `json:"capacity"`
	Attendance int        `json:"attendance"`
	StartsAt   *time.Time `json:"starts_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Remaining returns the number of open slots.
func (e *Event) Remaining() int {
	if r := e.Capacity - e.Attendance; r > 0 {
		return r
	}
	return 0
}

// Identity is the verified volunteer context a request runs under. The
// session layer proves the email; the volunteer store supplies the
// dependents. The core treats both as trusted input.
type Identity struct {
	Email      string
	Dependents []volunteer.Dependent
}

// AttendeeInput is one entry of the modern submit shape.
type AttendeeInput struct {
	Type      string `json:"type"`
	ID        string `json:"id,omitempty"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Age       *int   `json:"age,omitempty"`
}

// SubmitRequest accepts both wire shapes: the modern attendees array and the
// legacy bare first/last name pair. The normalizer resolves which one applies
// exactly once; nothing downstream re-inspects the shape.
type SubmitRequest struct {
	SessionToken  string          `json:"session_token"`
	EventID       string          `json:"event_id"`
	Attendees     []AttendeeInput `json:"attendees,omitempty"`
	FirstName     string          `json:"first_name,omitempty"`
	LastName      string          `json:"last_name,omitempty"`
	AttendanceCap int             `json:"attendance_cap,omitempty"`
	EventStartsAt *time.Time      `json:"event_starts_at,omitempty"`
}

// Legacy reports whether the request uses the pre-dependents wire shape. An
// explicitly empty attendees array is the modern shape with nobody selected,
// which the normalizer rejects; only an absent array means legacy.
func (r *SubmitRequest) Legacy() bool {
	return r.Attendees == nil
}

// AttendeeResult is one per originally-requested attendee, preserving request
// order.
type AttendeeResult struct {
	AttendeeID   string       `json:"attendee_id"`
	Status       string       `json:"status"`
	AttendeeType AttendeeType `json:"attendee_type"`
}

// SubmitResponse is the submit envelope. Email is set only for legacy-shape
// requests, for backward compatibility.
type SubmitResponse struct {
	Success           bool             `json:"success"`
	Message           string           `json:"message"`
	Results           []AttendeeResult `json:"results"`
	CurrentAttendance int              `json:"current_attendance"`
	AttendanceCap     int              `json:"attendance_cap"`
	Email             string           `json:"email,omitempty"`
}

// RegistrationView is one row of a check response.
type RegistrationView struct {
	AttendeeID   string       `json:"attendee_id"`
	AttendeeType AttendeeType `json:"attendee_type"`
	FirstName    string       `json:"first_name"`
	LastName     string       `json:"last_name"`
	Age          *int         `json:"age,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

// CheckResponse is the status envelope. UserRSVPs is present only when the
// caller supplied an email.
type CheckResponse struct {
	Success        bool               `json:"success"`
	RSVPCount      int                `json:"rsvp_count"`
	UserRegistered bool               `json:"user_registered"`
	UserRSVPs      []RegistrationView `json:"user_rsvps,omitempty"`
}

// CancelRequest identifies exactly one registration to remove.
type CancelRequest struct {
	SessionToken string       `json:"session_token"`
	EventID      string       `json:"event_id"`
	AttendeeID   string       `json:"attendee_id"`
	AttendeeType AttendeeType `json:"attendee_type"`
}

// CancelResponse confirms the removal. HoursBeforeEvent is set only when the
// event start time is known.
type CancelResponse struct {
	Success          bool         `json:"success"`
	Message          string       `json:"message"`
	AttendeeID       string       `json:"attendee_id"`
	AttendeeType     AttendeeType `json:"attendee_type"`
	HoursBeforeEvent *float64     `json:"hours_before_event,omitempty"`
}
