package registration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"messhall/pkg/domain"
	"messhall/pkg/platform/sentinel"
)

// PostgresStore persists the ledger in the meal_registrations table. The
// registered-triple uniqueness is a partial unique index, so the duplicate
// check rides on the insert itself and concurrent inserts cannot both win.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const registrationColumns = `id, actor_id, meal_id, date, status, notes, created_at, cancelled_at`

func (s *PostgresStore) Insert(ctx context.Context, r *Registration) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO meal_registrations (id, actor_id, meal_id, date, status, notes, created_at, cancelled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		uuid.UUID(r.ID), uuid.UUID(r.ActorID), uuid.UUID(r.MealID),
		r.Date.Time(time.UTC), string(r.Status), r.Notes, r.CreatedAt, r.CancelledAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert registration: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id domain.RegistrationID) (*Registration, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+registrationColumns+` FROM meal_registrations WHERE id = $1`, uuid.UUID(id))
	r, err := scanRegistration(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find registration: %w", err)
	}
	return r, nil
}

func (s *PostgresStore) FindRegisteredTriple(ctx context.Context, actorID domain.UserID, mealID domain.MealID, date domain.Date) (*Registration, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+registrationColumns+`
		FROM meal_registrations
		WHERE actor_id = $1 AND meal_id = $2 AND date = $3 AND status = 'registered'
	`, uuid.UUID(actorID), uuid.UUID(mealID), date.Time(time.UTC))
	r, err := scanRegistration(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find registered triple: %w", err)
	}
	return r, nil
}

func (s *PostgresStore) CancelIfRegistered(ctx context.Context, id domain.RegistrationID, at time.Time) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE meal_registrations
		SET status = 'cancelled', cancelled_at = $2
		WHERE id = $1 AND status = 'registered'
	`, uuid.UUID(id), at)
	if err != nil {
		return false, fmt.Errorf("cancel registration: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("cancel registration: %w", err)
	}
	return affected == 1, nil
}

func (s *PostgresStore) UpdateNotes(ctx context.Context, id domain.RegistrationID, notes string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE meal_registrations SET notes = $2 WHERE id = $1
	`, uuid.UUID(id), notes)
	if err != nil {
		return false, fmt.Errorf("update notes: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update notes: %w", err)
	}
	return affected == 1, nil
}

func (s *PostgresStore) ListRegisteredByActorDate(ctx context.Context, actorID domain.UserID, date domain.Date) ([]*Registration, error) {
	return s.query(ctx, `
		SELECT `+registrationColumns+`
		FROM meal_registrations
		WHERE actor_id = $1 AND date = $2 AND status = 'registered'
	`, uuid.UUID(actorID), date.Time(time.UTC))
}

func (s *PostgresStore) ListRegisteredByDate(ctx context.Context, date domain.Date) ([]*Registration, error) {
	return s.query(ctx, `
		SELECT `+registrationColumns+`
		FROM meal_registrations
		WHERE date = $1 AND status = 'registered'
	`, date.Time(time.UTC))
}

func (s *PostgresStore) ListRegisteredInRange(ctx context.Context, actorID *domain.UserID, start, end domain.Date) ([]*Registration, error) {
	if actorID != nil {
		return s.query(ctx, `
			SELECT `+registrationColumns+`
			FROM meal_registrations
			WHERE actor_id = $1 AND date BETWEEN $2 AND $3 AND status = 'registered'
		`, uuid.UUID(*actorID), start.Time(time.UTC), end.Time(time.UTC))
	}
	return s.query(ctx, `
		SELECT `+registrationColumns+`
		FROM meal_registrations
		WHERE date BETWEEN $1 AND $2 AND status = 'registered'
	`, start.Time(time.UTC), end.Time(time.UTC))
}

func (s *PostgresStore) ListByActor(ctx context.Context, actorID domain.UserID, limit, offset int) ([]*Registration, error) {
	return s.query(ctx, `
		SELECT `+registrationColumns+`
		FROM meal_registrations
		WHERE actor_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, uuid.UUID(actorID), limit, offset)
}

func (s *PostgresStore) query(ctx context.Context, q string, args ...any) ([]*Registration, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query registrations: %w", err)
	}
	defer rows.Close()

	var out []*Registration
	for rows.Next() {
		r, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query registrations: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRegistration(row rowScanner) (*Registration, error) {
	var (
		r         Registration
		rawID     uuid.UUID
		rawActor  uuid.UUID
		rawMeal   uuid.UUID
		rawDate   time.Time
		rawStatus string
		cancelled sql.NullTime
	)
	if err := row.Scan(&rawID, &rawActor, &rawMeal, &rawDate, &rawStatus, &r.Notes, &r.CreatedAt, &cancelled); err != nil {
		return nil, err
	}
	r.ID = domain.RegistrationID(rawID)
	r.ActorID = domain.UserID(rawActor)
	r.MealID = domain.MealID(rawMeal)
	r.Date = domain.DateOf(rawDate, time.UTC)
	r.Status = Status(rawStatus)
	if cancelled.Valid {
		t := cancelled.Time
		r.CancelledAt = &t
	}
	return &r, nil
}
