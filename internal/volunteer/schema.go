package volunteer

import (
	"context"
	"fmt"
)

// Dependents are not cascaded to registrations: deleting a person never
// touches registration rows, which keep their own name and age snapshots.
const volunteerDDL = `
CREATE TABLE IF NOT EXISTS volunteers (
	email      TEXT PRIMARY KEY,
	first_name TEXT NOT NULL DEFAULT '',
	last_name  TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS dependents (
	id              TEXT PRIMARY KEY,
	volunteer_email TEXT NOT NULL,
	first_name      TEXT NOT NULL DEFAULT '',
	last_name       TEXT NOT NULL DEFAULT '',
	age             INTEGER NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS dependents_volunteer_idx
	ON dependents (volunteer_email);
`

// EnsureSchema creates the volunteer tables if they do not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, volunteerDDL); err != nil {
		return fmt.Errorf("ensure volunteer schema: %w", err)
	}
	return nil
}
