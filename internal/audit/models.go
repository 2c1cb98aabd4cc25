// Package audit emits registration activity to the retained-history boundary.
// The primary store hard-deletes cancelled registrations, so this stream is
// the only place cancellations leave a trace.
package audit

import "time"

// Actions emitted by the registration core.
const (
	ActionSubmit = "rsvp.submit"
	ActionCancel = "rsvp.cancel"
)

// Outcomes attached to events.
const (
	OutcomeRegistered       = "registered"
	OutcomeDuplicate        = "duplicate"
	OutcomeCapacityRejected = "capacity_rejected"
	OutcomeConflict         = "conflict"
	OutcomeCancelled        = "cancelled"
	OutcomeDenied           = "denied"
)

// Event captures one registration-affecting action. Transport-agnostic so
// sinks can fan out.
type Event struct {
	Timestamp      time.Time `json:"timestamp"`
	RequestID      string    `json:"request_id,omitempty"`
	Action         string    `json:"action"`
	Outcome        string    `json:"outcome"`
	VolunteerEmail string    `json:"volunteer_email"`
	EventID        string    `json:"event_id"`
	AttendeeIDs    []string  `json:"attendee_ids,omitempty"`
	Reason         string    `json:"reason,omitempty"`
	ClientIP       string    `json:"client_ip,omitempty"`
	UserAgent      string    `json:"user_agent,omitempty"`
}
