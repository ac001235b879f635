package meal

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"messhall/pkg/domain"
	dErrors "messhall/pkg/domain-errors"
	"messhall/pkg/platform/sentinel"
	"messhall/pkg/requestcontext"
)

// Service is the read surface the ledger and query engine consume, plus the
// administrative catalog operations. Reads never mutate.
type Service struct {
	store  Store
	logger *slog.Logger
}

func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// FindActiveByID resolves a meal id to an active definition. Unknown ids and
// deactivated meals both report CodeUnknownMeal: neither can receive new
// registrations.
func (s *Service) FindActiveByID(ctx context.Context, mealID domain.MealID) (*Meal, error) {
	m, err := s.store.FindByID(ctx, mealID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeUnknownMeal, "meal does not exist or is not active")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up meal")
	}
	if !m.Active {
		return nil, dErrors.New(dErrors.CodeUnknownMeal, "meal does not exist or is not active")
	}
	return m, nil
}

// FindByID resolves a meal id regardless of activity, for historical queries
// over registrations referencing deactivated meals.
func (s *Service) FindByID(ctx context.Context, mealID domain.MealID) (*Meal, error) {
	m, err := s.store.FindByID(ctx, mealID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "meal not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up meal")
	}
	return m, nil
}

// ListActive returns active meals in canonical type order (breakfast, lunch,
// dinner) regardless of storage order.
func (s *Service) ListActive(ctx context.Context) ([]*Meal, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	active := all[:0]
	for _, m := range all {
		if m.Active {
			active = append(active, m)
		}
	}
	return active, nil
}

// List returns every meal, active or not, in canonical type order.
func (s *Service) List(ctx context.Context) ([]*Meal, error) {
	all, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list meals")
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Type.Order() != all[j].Type.Order() {
			return all[i].Type.Order() < all[j].Type.Order()
		}
		return all[i].Name < all[j].Name
	})
	return all, nil
}

// Create adds a meal definition. Administrative callers only.
func (s *Service) Create(ctx context.Context, mealType domain.MealType, name, description string, start, end domain.TimeOfDay) (*Meal, error) {
	if !mealType.IsValid() {
		return nil, dErrors.Newf(dErrors.CodeInvalidInput, "unknown meal type: %q", mealType)
	}
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "meal name is required")
	}

	m := &Meal{
		ID:          domain.NewMealID(),
		Type:        mealType,
		Name:        name,
		Description: description,
		StartTime:   start,
		EndTime:     end,
		Active:      true,
		CreatedAt:   requestcontext.Now(ctx),
	}
	if err := s.store.Insert(ctx, m); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create meal")
	}
	return m, nil
}

// UpdateMeal is a partial update; nil fields are left unchanged.
type UpdateMeal struct {
	Name        *string
	Description *string
	StartTime   *domain.TimeOfDay
	EndTime     *domain.TimeOfDay
}

// Update edits a meal definition in place. Administrative callers only.
func (s *Service) Update(ctx context.Context, mealID domain.MealID, patch UpdateMeal) (*Meal, error) {
	m, err := s.FindByID(ctx, mealID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		if *patch.Name == "" {
			return nil, dErrors.New(dErrors.CodeInvalidInput, "meal name cannot be empty")
		}
		m.Name = *patch.Name
	}
	if patch.Description != nil {
		m.Description = *patch.Description
	}
	if patch.StartTime != nil {
		m.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		m.EndTime = *patch.EndTime
	}

	if err := s.store.Update(ctx, m); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "meal not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update meal")
	}
	return m, nil
}

// Deactivate soft-deletes a meal. The definition stays resolvable for
// historical registrations; it only leaves the active catalog. Idempotent.
func (s *Service) Deactivate(ctx context.Context, mealID domain.MealID) error {
	m, err := s.FindByID(ctx, mealID)
	if err != nil {
		return err
	}
	if !m.Active {
		return nil
	}
	m.Active = false
	if err := s.store.Update(ctx, m); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to deactivate meal")
	}
	s.logger.InfoContext(ctx, "meal deactivated", "meal_id", mealID.String(), "name", m.Name)
	return nil
}
