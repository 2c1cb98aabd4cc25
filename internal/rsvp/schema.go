package rsvp

import (
	"context"
	"errors"
	"fmt"

	"volunteerhub/pkg/platform/sentinel"
)

// Legacy rows have NULL attendee_id and attendee_type; the read paths apply
// WithLegacyDefaults instead of migrating them. The partial unique index only
// covers modern rows, matching the read-time identity rule.
const registrationDDL = `
CREATE TABLE IF NOT EXISTS events (
	id         TEXT PRIMARY KEY,
	capacity   INTEGER NOT NULL,
	attendance INTEGER NOT NULL DEFAULT 0,
	starts_at  TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS registrations (
	id                  BIGSERIAL PRIMARY KEY,
	event_id            TEXT NOT NULL REFERENCES events(id),
	attendee_id         TEXT,
	attendee_type       TEXT,
	first_name          TEXT NOT NULL DEFAULT '',
	last_name           TEXT NOT NULL DEFAULT '',
	owner_email         TEXT NOT NULL,
	age_at_registration INTEGER,
	created_at          TIMESTAMPTZ NOT NULL,
	updated_at          TIMESTAMPTZ NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS registrations_event_attendee_idx
	ON registrations (event_id, attendee_id);

CREATE INDEX IF NOT EXISTS registrations_owner_idx
	ON registrations (event_id, owner_email);
`

// EnsureSchema creates the registration tables if they do not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, registrationDDL); err != nil {
		return fmt.Errorf("ensure registration schema: %w", errors.Join(sentinel.ErrUnavailable, err))
	}
	return nil
}
