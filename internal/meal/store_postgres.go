package meal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"messhall/pkg/domain"
	"messhall/pkg/platform/sentinel"
)

// PostgresStore persists meal definitions in the meals table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const mealColumns = `id, meal_type, name, description, start_time, end_time, active, created_at`

func (s *PostgresStore) Insert(ctx context.Context, m *Meal) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO meals (id, meal_type, name, description, start_time, end_time, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		uuid.UUID(m.ID), m.Type.String(), m.Name, m.Description,
		m.StartTime.String(), m.EndTime.String(), m.Active, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert meal: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, m *Meal) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE meals
		SET meal_type = $2, name = $3, description = $4, start_time = $5, end_time = $6, active = $7
		WHERE id = $1
	`,
		uuid.UUID(m.ID), m.Type.String(), m.Name, m.Description,
		m.StartTime.String(), m.EndTime.String(), m.Active,
	)
	if err != nil {
		return fmt.Errorf("update meal: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update meal: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, mealID domain.MealID) (*Meal, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+mealColumns+` FROM meals WHERE id = $1`, uuid.UUID(mealID))
	m, err := scanMeal(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find meal: %w", err)
	}
	return m, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*Meal, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+mealColumns+` FROM meals`)
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	defer rows.Close()

	var out []*Meal
	for rows.Next() {
		m, err := scanMeal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan meal: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMeal(row rowScanner) (*Meal, error) {
	var (
		m        Meal
		rawID    uuid.UUID
		rawType  string
		rawStart string
		rawEnd   string
	)
	if err := row.Scan(&rawID, &rawType, &m.Name, &m.Description, &rawStart, &rawEnd, &m.Active, &m.CreatedAt); err != nil {
		return nil, err
	}
	m.ID = domain.MealID(rawID)
	m.Type = domain.MealType(rawType)
	if rawStart != "" {
		if t, err := domain.ParseTimeOfDay(rawStart); err == nil {
			m.StartTime = t
		}
	}
	if rawEnd != "" {
		if t, err := domain.ParseTimeOfDay(rawEnd); err == nil {
			m.EndTime = t
		}
	}
	return &m, nil
}
