package status

import (
	"context"

	"golang.org/x/sync/errgroup"

	"messhall/internal/meal"
	"messhall/internal/registration"
	"messhall/pkg/domain"
	dErrors "messhall/pkg/domain-errors"
)

// Ledger is the read surface of the registration store the engine consumes.
// Only registered records flow through these; cancelled records are invisible
// to every report.
type Ledger interface {
	ListRegisteredByActorDate(ctx context.Context, actorID domain.UserID, date domain.Date) ([]*registration.Registration, error)
	ListRegisteredByDate(ctx context.Context, date domain.Date) ([]*registration.Registration, error)
	ListRegisteredInRange(ctx context.Context, actorID *domain.UserID, start, end domain.Date) ([]*registration.Registration, error)
}

// Catalog is the meal catalog view the engine consumes.
type Catalog interface {
	ListActive(ctx context.Context) ([]*meal.Meal, error)
	List(ctx context.Context) ([]*meal.Meal, error)
}

type Service struct {
	ledger  Ledger
	catalog Catalog
}

func NewService(ledger Ledger, catalog Catalog) *Service {
	return &Service{ledger: ledger, catalog: catalog}
}

// ForDate reports, for every active meal in canonical order, whether the
// actor holds a registered record on the date. Meals without one are listed
// as not_registered rather than omitted.
func (s *Service) ForDate(ctx context.Context, actorID domain.UserID, date domain.Date) ([]MealStatus, error) {
	var (
		meals   []*meal.Meal
		records []*registration.Registration
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		meals, err = s.catalog.ListActive(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		records, err = s.ledger.ListRegisteredByActorDate(gctx, actorID, date)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to build status report")
	}

	byMeal := make(map[domain.MealID]*registration.Registration, len(records))
	for _, r := range records {
		byMeal[r.MealID] = r
	}

	out := make([]MealStatus, 0, len(meals))
	for _, m := range meals {
		row := MealStatus{
			MealID:   m.ID,
			MealType: m.Type,
			MealName: m.Name,
			Status:   StatusNotRegistered,
		}
		if r, ok := byMeal[m.ID]; ok {
			id := r.ID
			row.RegistrationID = &id
			row.Status = StatusRegistered
			row.IsRegistered = true
			row.Notes = r.Notes
		}
		out = append(out, row)
	}
	return out, nil
}

// SummaryForDate aggregates registered records on one date per meal type.
// Every meal type appears in the result, zero-filled, in canonical order.
func (s *Service) SummaryForDate(ctx context.Context, date domain.Date) (*Summary, error) {
	counts, total, err := s.countByType(ctx, func(ctx context.Context) ([]*registration.Registration, error) {
		return s.ledger.ListRegisteredByDate(ctx, date)
	})
	if err != nil {
		return nil, err
	}
	return &Summary{Date: date, Counts: counts, Total: total}, nil
}

// RangeStats aggregates registered records over an inclusive date range,
// optionally restricted to one actor. An empty or reversed range yields zero
// counts, not an error.
func (s *Service) RangeStats(ctx context.Context, actorID *domain.UserID, start, end domain.Date) (*RangeSummary, error) {
	counts, total, err := s.countByType(ctx, func(ctx context.Context) ([]*registration.Registration, error) {
		return s.ledger.ListRegisteredInRange(ctx, actorID, start, end)
	})
	if err != nil {
		return nil, err
	}
	return &RangeSummary{Start: start, End: end, Counts: counts, Total: total}, nil
}

// countByType resolves each record's meal type through the catalog and
// zero-fills the result over all meal types. Deactivated meals still resolve,
// so historical aggregates stay complete.
func (s *Service) countByType(ctx context.Context, fetch func(context.Context) ([]*registration.Registration, error)) ([]TypeCount, int, error) {
	var (
		meals   []*meal.Meal
		records []*registration.Registration
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		meals, err = s.catalog.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		records, err = fetch(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to aggregate registrations")
	}

	typeOf := make(map[domain.MealID]domain.MealType, len(meals))
	for _, m := range meals {
		typeOf[m.ID] = m.Type
	}

	byType := make(map[domain.MealType]int)
	total := 0
	for _, r := range records {
		t, ok := typeOf[r.MealID]
		if !ok {
			continue
		}
		byType[t]++
		total++
	}

	counts := make([]TypeCount, 0, len(domain.MealTypes()))
	for _, t := range domain.MealTypes() {
		counts = append(counts, TypeCount{MealType: t, Count: byType[t]})
	}
	return counts, total, nil
}
