// Package volunteer manages volunteer accounts and the minors linked to them.
// It supplies the verified-identity context the registration core consumes:
// a volunteer email and the dependents that email is guardian of.
package volunteer

import "time"

// Volunteer is a registered adult account, keyed by normalized email.
type Volunteer struct {
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
}

// Dependent is a minor linked to a volunteer account. Dependents cannot
// authenticate on their own; the guardian acts for them. Dependent IDs live in
// a separate identity space from volunteer emails (uuid-shaped, no '@'), so
// the two can never collide in a registration record.
type Dependent struct {
	ID             string    `json:"id"`
	VolunteerEmail string    `json:"volunteer_email"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Age            int       `json:"age"`
	CreatedAt      time.Time `json:"created_at"`
}
