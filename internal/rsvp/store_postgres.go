package rsvp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"volunteerhub/pkg/platform/sentinel"
)

// PostgresStore implements Store on PostgreSQL via pgx.
//
// Concurrency contract: every registration mutation runs inside a transaction
// that first takes a row-level lock on the event (SELECT ... FOR UPDATE).
// Concurrent submissions for the same event serialize on that lock, so the
// capacity re-check, the per-attendee uniqueness checks, the inserts, and the
// attendance update are indivisible from any other writer's perspective.
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) EnsureEvent(ctx context.Context, eventID string, capacity int, startsAt *time.Time) (*Event, error) {
	_, err := s.db.Exec(ctx,
		`INSERT INTO events (id, capacity, attendance, starts_at, created_at)
		 VALUES ($1, $2, 0, $3, $4)
		 ON CONFLICT (id) DO NOTHING`,
		eventID, capacity, startsAt, time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("ensure event: %w", errors.Join(sentinel.ErrUnavailable, err))
	}
	return s.GetEvent(ctx, eventID)
}

func (s *PostgresStore) GetEvent(ctx context.Context, eventID string) (*Event, error) {
	var e Event
	err := s.db.QueryRow(ctx,
		`SELECT id, capacity, attendance, starts_at, created_at
		 FROM events WHERE id = $1`,
		eventID,
	).Scan(&e.ID, &e.Capacity, &e.Attendance, &e.StartsAt, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", errors.Join(sentinel.ErrUnavailable, err))
	}
	return &e, nil
}

func (s *PostgresStore) LiveAttendeeIDs(ctx context.Context, eventID string) (map[string]struct{}, error) {
	rows, err := s.db.Query(ctx,
		`SELECT COALESCE(NULLIF(attendee_id, ''), owner_email)
		 FROM registrations WHERE event_id = $1`,
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("list live attendees: %w", errors.Join(sentinel.ErrUnavailable, err))
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan attendee id: %w", err)
		}
		ids[id] = struct{}{}
	}
	return ids, rows.Err()
}

func (s *PostgresStore) CreateAll(ctx context.Context, eventID string, regs []Registration) error {
	if len(regs) == 0 {
		return nil
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", errors.Join(sentinel.ErrUnavailable, err))
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	// Lock the event row. Everything below happens under this lock.
	var capacity, attendance int
	err = tx.QueryRow(ctx,
		`SELECT capacity, attendance FROM events WHERE id = $1 FOR UPDATE`,
		eventID,
	).Scan(&capacity, &attendance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return sentinel.ErrNotFound
		}
		return fmt.Errorf("lock event row: %w", errors.Join(sentinel.ErrUnavailable, err))
	}

	// Commit-time capacity re-validation. The service already pre-checked, but
	// only this check, made under the row lock, closes the race.
	if attendance+len(regs) > capacity {
		remaining := capacity - attendance
		if remaining < 0 {
			remaining = 0
		}
		return &CapacityExceededError{Remaining: remaining}
	}

	// Per-record existence condition: ON CONFLICT DO NOTHING plus a rows
	// affected check detects attendees registered since the duplicate filter
	// ran. Any conflict rejects the whole batch.
	var conflicts []string
	for _, reg := range regs {
		tag, err := tx.Exec(ctx,
			`INSERT INTO registrations
			   (event_id, attendee_id, attendee_type, first_name, last_name,
			    owner_email, age_at_registration, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			 ON CONFLICT (event_id, attendee_id) DO NOTHING`,
			reg.EventID, reg.AttendeeID, string(reg.AttendeeType), reg.FirstName, reg.LastName,
			reg.OwnerEmail, reg.AgeAtRegistration, reg.CreatedAt, reg.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert registration: %w", errors.Join(sentinel.ErrUnavailable, err))
		}
		if tag.RowsAffected() == 0 {
			conflicts = append(conflicts, reg.AttendeeID)
		}
	}
	if len(conflicts) > 0 {
		return &ConflictError{AttendeeIDs: conflicts}
	}

	if _, err := tx.Exec(ctx,
		`UPDATE events SET attendance = attendance + $2 WHERE id = $1`,
		eventID, len(regs),
	); err != nil {
		return fmt.Errorf("increment attendance: %w", errors.Join(sentinel.ErrUnavailable, err))
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit registration batch: %w", errors.Join(sentinel.ErrUnavailable, err))
	}
	return nil
}

func (s *PostgresStore) FindRegistration(ctx context.Context, eventID, attendeeID string) (*Registration, error) {
	var (
		r            Registration
		attendeeType *string
		storedID     *string
	)
	// Legacy rows predate the attendee columns; they match on owner_email.
	err := s.db.QueryRow(ctx,
		`SELECT event_id, attendee_id, attendee_type, first_name, last_name,
		        owner_email, age_at_registration, created_at, updated_at
		 FROM registrations
		 WHERE event_id = $1
		   AND (attendee_id = $2 OR (COALESCE(attendee_id, '') = '' AND owner_email = $2))`,
		eventID, attendeeID,
	).Scan(&r.EventID, &storedID, &attendeeType, &r.FirstName, &r.LastName,
		&r.OwnerEmail, &r.AgeAtRegistration, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find registration: %w", errors.Join(sentinel.ErrUnavailable, err))
	}
	if storedID != nil {
		r.AttendeeID = *storedID
	}
	if attendeeType != nil {
		r.AttendeeType = AttendeeType(*attendeeType)
	}
	normalized := r.WithLegacyDefaults()
	return &normalized, nil
}

func (s *PostgresStore) ListByOwner(ctx context.Context, eventID, ownerEmail string) ([]Registration, error) {
	rows, err := s.db.Query(ctx,
		`SELECT event_id, attendee_id, attendee_type, first_name, last_name,
		        owner_email, age_at_registration, created_at, updated_at
		 FROM registrations
		 WHERE event_id = $1 AND owner_email = $2
		 ORDER BY created_at ASC`,
		eventID, ownerEmail,
	)
	if err != nil {
		// The owner lookup is index-backed and explicitly degradable: callers
		// fall back to the volunteer's own registration.
		return nil, fmt.Errorf("list by owner: %w", errors.Join(sentinel.ErrIndexUnavailable, err))
	}
	defer rows.Close()

	var out []Registration
	for rows.Next() {
		var (
			r            Registration
			attendeeType *string
			storedID     *string
		)
		if err := rows.Scan(&r.EventID, &storedID, &attendeeType, &r.FirstName, &r.LastName,
			&r.OwnerEmail, &r.AgeAtRegistration, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		if storedID != nil {
			r.AttendeeID = *storedID
		}
		if attendeeType != nil {
			r.AttendeeType = AttendeeType(*attendeeType)
		}
		out = append(out, r.WithLegacyDefaults())
	}
	return out, rows.Err()
}

func (s *PostgresStore) DeleteRegistration(ctx context.Context, eventID, attendeeID string) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", errors.Join(sentinel.ErrUnavailable, err))
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	// Same lock as CreateAll so delete+decrement serializes with submissions.
	var attendance int
	err = tx.QueryRow(ctx,
		`SELECT attendance FROM events WHERE id = $1 FOR UPDATE`,
		eventID,
	).Scan(&attendance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return sentinel.ErrNotFound
		}
		return fmt.Errorf("lock event row: %w", errors.Join(sentinel.ErrUnavailable, err))
	}

	tag, err := tx.Exec(ctx,
		`DELETE FROM registrations
		 WHERE event_id = $1
		   AND (attendee_id = $2 OR (COALESCE(attendee_id, '') = '' AND owner_email = $2))`,
		eventID, attendeeID,
	)
	if err != nil {
		return fmt.Errorf("delete registration: %w", errors.Join(sentinel.ErrUnavailable, err))
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}

	if _, err := tx.Exec(ctx,
		`UPDATE events SET attendance = GREATEST(attendance - 1, 0) WHERE id = $1`,
		eventID,
	); err != nil {
		return fmt.Errorf("decrement attendance: %w", errors.Join(sentinel.ErrUnavailable, err))
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit cancellation: %w", errors.Join(sentinel.ErrUnavailable, err))
	}
	return nil
}
