// Package meal is the catalog of meal definitions. Registrations reference
// catalog entries; entries are soft-deactivated so historical registrations
// stay resolvable.
package meal

import (
	"time"

	"messhall/pkg/domain"
)

// Meal is one serving definition. Inactive meals are excluded from catalog
// listings and cannot receive new registrations, but existing registrations
// referencing them remain valid for historical queries.
type Meal struct {
	ID          domain.MealID
	Type        domain.MealType
	Name        string
	Description string
	StartTime   domain.TimeOfDay
	EndTime     domain.TimeOfDay
	Active      bool
	CreatedAt   time.Time
}
