package audit

import (
	"context"

	"messhall/pkg/domain"
)

// Store is the persistence boundary for audit events.
type Store interface {
	Insert(ctx context.Context, e *Event) error
	// ListByActor returns events for an actor, newest first.
	ListByActor(ctx context.Context, actorID domain.UserID, limit int) ([]*Event, error)
}
