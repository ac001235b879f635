package registration

import (
	"context"
	"time"

	"messhall/pkg/domain"
)

// Store is the persistence boundary for the ledger. Pure I/O: temporal and
// ownership rules live in the Service. Two operations carry the concurrency
// contract the rules depend on:
//
//   - Insert returns sentinel.ErrConflict when a registered record already
//     exists for the (actor, meal, date) triple, enforced atomically by the
//     store so two concurrent inserts yield exactly one success.
//   - CancelIfRegistered is a single conditional transition; it reports false
//     when the record is missing or already cancelled, so a losing racer
//     observes a no-op rather than a double cancellation.
type Store interface {
	Insert(ctx context.Context, r *Registration) error
	FindByID(ctx context.Context, id domain.RegistrationID) (*Registration, error)
	// FindRegisteredTriple returns the registered record for the triple, or
	// sentinel.ErrNotFound. Cancelled records never match.
	FindRegisteredTriple(ctx context.Context, actorID domain.UserID, mealID domain.MealID, date domain.Date) (*Registration, error)
	CancelIfRegistered(ctx context.Context, id domain.RegistrationID, at time.Time) (bool, error)
	// UpdateNotes rewrites the notes regardless of status. Reports whether a
	// record was matched.
	UpdateNotes(ctx context.Context, id domain.RegistrationID, notes string) (bool, error)
	ListRegisteredByActorDate(ctx context.Context, actorID domain.UserID, date domain.Date) ([]*Registration, error)
	ListRegisteredByDate(ctx context.Context, date domain.Date) ([]*Registration, error)
	// ListRegisteredInRange returns registered records with start <= date <= end,
	// optionally restricted to one actor.
	ListRegisteredInRange(ctx context.Context, actorID *domain.UserID, start, end domain.Date) ([]*Registration, error)
	// ListByActor returns an actor's records regardless of status, newest
	// first, paginated.
	ListByActor(ctx context.Context, actorID domain.UserID, limit, offset int) ([]*Registration, error)
}
