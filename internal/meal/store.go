package meal

import (
	"context"

	"messhall/pkg/domain"
)

// Store is the persistence boundary for meal definitions. Pure I/O: activity
// filtering and canonical ordering belong to the Service. FindByID returns
// sentinel.ErrNotFound for unknown ids and resolves inactive meals too.
type Store interface {
	Insert(ctx context.Context, m *Meal) error
	Update(ctx context.Context, m *Meal) error
	FindByID(ctx context.Context, mealID domain.MealID) (*Meal, error)
	List(ctx context.Context) ([]*Meal, error)
}
