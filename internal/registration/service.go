package registration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"messhall/internal/audit"
	"messhall/internal/meal"
	"messhall/internal/platform/metrics"
	"messhall/pkg/domain"
	dErrors "messhall/pkg/domain-errors"
	"messhall/pkg/platform/sentinel"
	"messhall/pkg/requestcontext"
)

// Catalog is the read-only view of meal definitions the ledger consults.
type Catalog interface {
	FindActiveByID(ctx context.Context, mealID domain.MealID) (*meal.Meal, error)
}

// Settings is the read-only policy surface the ledger consults. Reads never
// fail; unset values report defaults.
type Settings interface {
	RegistrationDeadline(ctx context.Context) domain.TimeOfDay
	AllowSameDayCancel(ctx context.Context) bool
}

// Auditor records ledger mutations. Best-effort: Emit never fails the caller.
type Auditor interface {
	Emit(ctx context.Context, actorID domain.UserID, action, detail string)
}

// Service enforces the temporal and ownership rules over the ledger. All
// "today" and deadline decisions use the request-scoped clock interpreted in
// the deployment's reference time zone.
type Service struct {
	store    Store
	catalog  Catalog
	settings Settings
	auditor  Auditor
	metrics  *metrics.Metrics
	logger   *slog.Logger
	loc      *time.Location
}

func NewService(store Store, catalog Catalog, settings Settings, auditor Auditor, m *metrics.Metrics, logger *slog.Logger, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		store:    store,
		catalog:  catalog,
		settings: settings,
		auditor:  auditor,
		metrics:  m,
		logger:   logger,
		loc:      loc,
	}
}

// Register creates a registered record for (actor, meal, date). Checks run in
// a fixed order and the first failure wins: past date, unknown meal,
// duplicate, deadline. The duplicate pre-check gives that ordering; the
// store's uniqueness constraint closes the check-then-act window, so a
// concurrent racer surfaces as a duplicate too.
func (s *Service) Register(ctx context.Context, actor Actor, mealID domain.MealID, date domain.Date, notes string) (*Registration, error) {
	now := requestcontext.Now(ctx)
	today := domain.DateOf(now, s.loc)

	if date.Before(today) {
		return nil, s.reject(dErrors.New(dErrors.CodePastDate, "cannot register for a past date"))
	}

	m, err := s.catalog.FindActiveByID(ctx, mealID)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeUnknownMeal) {
			return nil, s.reject(err)
		}
		return nil, err
	}

	if _, err := s.store.FindRegisteredTriple(ctx, actor.ID, mealID, date); err == nil {
		return nil, s.reject(dErrors.New(dErrors.CodeDuplicateRegistration, "already registered for this meal on this date"))
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check existing registration")
	}

	if date == today {
		deadline := s.settings.RegistrationDeadline(ctx)
		if domain.TimeOfDayOf(now, s.loc).After(deadline) {
			return nil, s.reject(dErrors.Newf(dErrors.CodeDeadlinePassed,
				"registration for today closed at %s", deadline))
		}
	}

	r := &Registration{
		ID:        domain.NewRegistrationID(),
		ActorID:   actor.ID,
		MealID:    mealID,
		Date:      date,
		Status:    StatusRegistered,
		Notes:     notes,
		CreatedAt: now,
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if err := s.store.Insert(ctx, r); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, s.reject(dErrors.New(dErrors.CodeDuplicateRegistration, "already registered for this meal on this date"))
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create registration")
	}

	s.auditor.Emit(ctx, actor.ID, audit.ActionMealRegister,
		fmt.Sprintf("meal=%s date=%s", m.Name, date))
	s.metrics.RegistrationCreated()
	s.logger.InfoContext(ctx, "registration created",
		"registration_id", r.ID.String(), "meal_id", mealID.String(), "date", date.String())
	return r, nil
}

// Cancel transitions a record to cancelled. Missing records and records
// already cancelled both report not found; the lifecycle detail is not leaked
// to callers who lost the record's id race. The transition itself is a single
// conditional update, so cancelling twice succeeds exactly once.
func (s *Service) Cancel(ctx context.Context, actor Actor, id domain.RegistrationID) (*Registration, error) {
	now := requestcontext.Now(ctx)
	today := domain.DateOf(now, s.loc)

	r, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !r.CanCancel() {
		return nil, dErrors.New(dErrors.CodeNotFound, "registration not found")
	}
	if !r.OwnedBy(actor) {
		return nil, dErrors.New(dErrors.CodeForbidden, "cannot cancel another person's registration")
	}
	if r.Date.Before(today) {
		return nil, s.reject(dErrors.New(dErrors.CodePastDate, "cannot cancel a lapsed registration"))
	}
	if r.Date == today && !s.settings.AllowSameDayCancel(ctx) {
		return nil, s.reject(dErrors.New(dErrors.CodeSameDayCancel, "same-day cancellation is not allowed"))
	}

	matched, err := s.store.CancelIfRegistered(ctx, id, now)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to cancel registration")
	}
	if !matched {
		// A concurrent cancel won the conditional update.
		return nil, dErrors.New(dErrors.CodeNotFound, "registration not found")
	}
	if err := r.ApplyCancellation(now); err != nil {
		return nil, err
	}

	s.auditor.Emit(ctx, actor.ID, audit.ActionMealCancel,
		fmt.Sprintf("registration=%s date=%s", id, r.Date))
	s.metrics.RegistrationCancelled()
	s.logger.InfoContext(ctx, "registration cancelled",
		"registration_id", id.String(), "date", r.Date.String())
	return r, nil
}

// UpdateNotes rewrites a record's notes. Ownership rules match Cancel, but
// notes stay editable after cancellation and carry no deadline checks.
func (s *Service) UpdateNotes(ctx context.Context, actor Actor, id domain.RegistrationID, notes string) (*Registration, error) {
	r, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !r.OwnedBy(actor) {
		return nil, dErrors.New(dErrors.CodeForbidden, "cannot edit another person's registration")
	}

	matched, err := s.store.UpdateNotes(ctx, id, notes)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update notes")
	}
	if !matched {
		return nil, dErrors.New(dErrors.CodeNotFound, "registration not found")
	}
	r.Notes = notes

	s.auditor.Emit(ctx, actor.ID, audit.ActionUpdateNotes,
		fmt.Sprintf("registration=%s", id))
	return r, nil
}

// Get returns one record, subject to the same ownership rule as Cancel.
func (s *Service) Get(ctx context.Context, actor Actor, id domain.RegistrationID) (*Registration, error) {
	r, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !r.OwnedBy(actor) {
		return nil, dErrors.New(dErrors.CodeForbidden, "cannot view another person's registration")
	}
	return r, nil
}

// History returns an actor's records, newest first.
func (s *Service) History(ctx context.Context, actorID domain.UserID, limit, offset int) ([]*Registration, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	records, err := s.store.ListByActor(ctx, actorID, limit, offset)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list registrations")
	}
	return records, nil
}

func (s *Service) findByID(ctx context.Context, id domain.RegistrationID) (*Registration, error) {
	r, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "registration not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up registration")
	}
	return r, nil
}

// reject counts a rule rejection before returning it.
func (s *Service) reject(err error) error {
	s.metrics.RejectRegistration(string(dErrors.CodeOf(err)))
	return err
}
