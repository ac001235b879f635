// Package status is the read-only query engine over the ledger. It never
// raises business-rule errors; absent data yields empty or zero-valued
// results.
package status

import (
	"messhall/pkg/domain"
)

// Registration status values reported per meal.
const (
	StatusRegistered    = "registered"
	StatusNotRegistered = "not_registered"
)

// MealStatus is one row of a per-date status report: one active meal and
// whether the actor holds a registered record for it. Unregistered meals are
// reported explicitly rather than omitted.
type MealStatus struct {
	MealID         domain.MealID
	MealType       domain.MealType
	MealName       string
	RegistrationID *domain.RegistrationID
	Status         string
	IsRegistered   bool
	Notes          string
}

// TypeCount is a per-meal-type aggregate. Reports include every meal type,
// zero-filled, in canonical order.
type TypeCount struct {
	MealType domain.MealType
	Count    int
}

// Summary is the aggregate for a single date.
type Summary struct {
	Date   domain.Date
	Counts []TypeCount
	Total  int
}

// RangeSummary is the aggregate over an inclusive date range, optionally
// restricted to one actor.
type RangeSummary struct {
	Start  domain.Date
	End    domain.Date
	Counts []TypeCount
	Total  int
}
