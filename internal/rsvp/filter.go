package rsvp

// partitionAttendees splits a canonical attendee list against the set of
// attendee IDs already live-registered for the event. Order is preserved in
// both halves. Comparison is exact-string; the normalizer already did any
// canonicalization.
func partitionAttendees(attendees []Attendee, existing map[string]struct{}) (toRegister, alreadyRegistered []Attendee) {
	for _, a := range attendees {
		if _, ok := existing[a.ID]; ok {
			alreadyRegistered = append(alreadyRegistered, a)
			continue
		}
		toRegister = append(toRegister, a)
	}
	return toRegister, alreadyRegistered
}

func attendeeIDs(attendees []Attendee) []string {
	ids := make([]string, len(attendees))
	for i, a := range attendees {
		ids[i] = a.ID
	}
	return ids
}
