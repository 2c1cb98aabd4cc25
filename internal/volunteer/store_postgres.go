package volunteer

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"volunteerhub/pkg/platform/sentinel"
)

// PostgresStore persists volunteers and dependents in PostgreSQL.
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) GetVolunteer(ctx context.Context, email string) (*Volunteer, error) {
	var v Volunteer
	err := s.db.QueryRow(ctx,
		`SELECT email, first_name, last_name, created_at
		 FROM volunteers WHERE email = $1`,
		email,
	).Scan(&v.Email, &v.FirstName, &v.LastName, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get volunteer: %w", err)
	}
	return &v, nil
}

func (s *PostgresStore) PutVolunteer(ctx context.Context, v *Volunteer) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO volunteers (email, first_name, last_name, created_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (email) DO UPDATE
		 SET first_name = EXCLUDED.first_name, last_name = EXCLUDED.last_name`,
		v.Email, v.FirstName, v.LastName, v.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("put volunteer: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteVolunteer(ctx context.Context, email string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM volunteers WHERE email = $1`, email)
	if err != nil {
		return fmt.Errorf("delete volunteer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListDependents(ctx context.Context, volunteerEmail string) ([]Dependent, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, volunteer_email, first_name, last_name, age, created_at
		 FROM dependents
		 WHERE volunteer_email = $1
		 ORDER BY created_at ASC`,
		volunteerEmail,
	)
	if err != nil {
		return nil, fmt.Errorf("list dependents: %w", err)
	}
	defer rows.Close()

	var deps []Dependent
	for rows.Next() {
		var d Dependent
		if err := rows.Scan(&d.ID, &d.VolunteerEmail, &d.FirstName, &d.LastName, &d.Age, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan dependent: %w", err)
		}
		deps = append(deps, d)
	}
	return deps, rows.Err()
}

func (s *PostgresStore) AddDependent(ctx context.Context, d *Dependent) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO dependents (id, volunteer_email, first_name, last_name, age, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		d.ID, d.VolunteerEmail, d.FirstName, d.LastName, d.Age, d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("add dependent: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteDependent(ctx context.Context, volunteerEmail, dependentID string) error {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM dependents WHERE volunteer_email = $1 AND id = $2`,
		volunteerEmail, dependentID,
	)
	if err != nil {
		return fmt.Errorf("delete dependent: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
