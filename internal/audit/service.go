package audit

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"messhall/pkg/domain"
	dErrors "messhall/pkg/domain-errors"
	"messhall/pkg/requestcontext"
)

type Service struct {
	store  Store
	logger *slog.Logger
}

func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Emit records an audit event. Failures are logged and swallowed so the
// operation that triggered the event still succeeds.
func (s *Service) Emit(ctx context.Context, actorID domain.UserID, action, detail string) {
	e := &Event{
		ID:        uuid.New(),
		Timestamp: requestcontext.Now(ctx),
		ActorID:   actorID,
		Action:    action,
		Detail:    detail,
		RequestID: requestcontext.RequestID(ctx),
	}
	if err := s.store.Insert(ctx, e); err != nil {
		s.logger.ErrorContext(ctx, "failed to record audit event",
			"action", action, "actor_id", actorID.String(), "error", err)
	}
}

// ListByActor returns the most recent events for one actor.
func (s *Service) ListByActor(ctx context.Context, actorID domain.UserID, limit int) ([]*Event, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	events, err := s.store.ListByActor(ctx, actorID, limit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list audit events")
	}
	return events, nil
}
