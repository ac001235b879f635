package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"messhall/pkg/domain"
)

// PostgresStore persists audit events in the audit_events table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Insert(ctx context.Context, e *Event) error {
	var actor any
	if !e.ActorID.IsNil() {
		actor = uuid.UUID(e.ActorID)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_events (id, ts, actor_id, action, detail, request_id)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, e.ID, e.Timestamp, actor, e.Action, e.Detail, e.RequestID)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByActor(ctx context.Context, actorID domain.UserID, limit int) ([]*Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, ts, actor_id, action, detail, request_id
		FROM audit_events
		WHERE actor_id = $1
		ORDER BY ts DESC
		LIMIT $2
	`, uuid.UUID(actorID), limit)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	var out []*Event
	for rows.Next() {
		var (
			e        Event
			rawActor uuid.NullUUID
			ts       time.Time
		)
		if err := rows.Scan(&e.ID, &ts, &rawActor, &e.Action, &e.Detail, &e.RequestID); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		e.Timestamp = ts
		if rawActor.Valid {
			e.ActorID = domain.UserID(rawActor.UUID)
		}
		out = append(out, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	return out, nil
}
