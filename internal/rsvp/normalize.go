package rsvp

import (
	"fmt"
	"strings"

	dErrors "volunteerhub/pkg/domain-errors"
	"volunteerhub/pkg/email"
)

// NormalizeAttendees converts either accepted wire shape into the canonical
// ordered attendee list. The legacy shape always yields exactly one self
// attendee. Dependent descriptors are resolved against the caller's verified
// dependents; anything unresolvable is a validation failure, not a lookup.
//
// Identifier normalization happens here and only here: emails are lowercased
// and trimmed, dependent IDs are trimmed, and exact repeats of the same
// attendee within one submission collapse to the first occurrence. Downstream
// layers compare IDs with exact string equality.
func NormalizeAttendees(req *SubmitRequest, identity Identity) ([]Attendee, error) {
	if req.Legacy() {
		first := strings.TrimSpace(req.FirstName)
		last := strings.TrimSpace(req.LastName)
		if first == "" && last == "" {
			derivedFirst, derivedLast := email.DeriveNameFromEmail(identity.Email)
			first, last = derivedFirst, derivedLast
		}
		return []Attendee{{
			ID:        email.Normalize(identity.Email),
			Type:      AttendeeSelf,
			FirstName: first,
			LastName:  last,
		}}, nil
	}

	dependentsByID := make(map[string]int, len(identity.Dependents))
	for i, d := range identity.Dependents {
		dependentsByID[d.ID] = i
	}

	var (
		out  []Attendee
		seen = make(map[string]struct{}, len(req.Attendees))
	)
	for i, in := range req.Attendees {
		var a Attendee
		switch AttendeeType(strings.ToLower(strings.TrimSpace(in.Type))) {
		case AttendeeSelf:
			selfID := email.Normalize(identity.Email)
			if in.ID != "" && email.Normalize(in.ID) != selfID {
				return nil, dErrors.New(dErrors.CodeValidation,
					fmt.Sprintf("attendee %d: self id does not match the authenticated volunteer", i))
			}
			a = Attendee{
				ID:        selfID,
				Type:      AttendeeSelf,
				FirstName: strings.TrimSpace(in.FirstName),
				LastName:  strings.TrimSpace(in.LastName),
			}
			if a.FirstName == "" && a.LastName == "" {
				a.FirstName, a.LastName = email.DeriveNameFromEmail(selfID)
			}
		case AttendeeDependent:
			depID := strings.TrimSpace(in.ID)
			idx, ok := dependentsByID[depID]
			if !ok {
				return nil, dErrors.New(dErrors.CodeValidation,
					fmt.Sprintf("attendee %d: dependent is not linked to this account", i))
			}
			dep := identity.Dependents[idx]
			age := dep.Age
			if in.Age != nil {
				age = *in.Age
			}
			if age <= 0 {
				return nil, dErrors.New(dErrors.CodeValidation,
					fmt.Sprintf("attendee %d: dependent age is required", i))
			}
			a = Attendee{
				ID:        depID,
				Type:      AttendeeDependent,
				FirstName: strings.TrimSpace(in.FirstName),
				LastName:  strings.TrimSpace(in.LastName),
				Age:       age,
			}
			if a.FirstName == "" && a.LastName == "" {
				a.FirstName, a.LastName = dep.FirstName, dep.LastName
			}
		default:
			return nil, dErrors.New(dErrors.CodeValidation,
				fmt.Sprintf("attendee %d: type must be %q or %q", i, AttendeeSelf, AttendeeDependent))
		}

		if _, dup := seen[a.ID]; dup {
			continue
		}
		seen[a.ID] = struct{}{}
		out = append(out, a)
	}

	if len(out) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "no attendees selected")
	}
	return out, nil
}
