package domain

import dErrors "messhall/pkg/domain-errors"

// MealType is the closed set of serving windows a meal definition can belong
// to. The deployment is fixed to three types; the canonical order below is the
// order every listing and report uses regardless of storage order.
type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
)

// mealTypeOrder is the single source of truth for valid types and their
// canonical ordering.
var mealTypeOrder = map[MealType]int{
	MealTypeBreakfast: 1,
	MealTypeLunch:     2,
	MealTypeDinner:    3,
}

// ParseMealType constructs a MealType from external input.
func ParseMealType(s string) (MealType, error) {
	t := MealType(s)
	if !t.IsValid() {
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "unknown meal type: %q", s)
	}
	return t, nil
}

func (t MealType) IsValid() bool {
	_, ok := mealTypeOrder[t]
	return ok
}

func (t MealType) String() string {
	return string(t)
}

// Order returns the canonical sort position. Unknown types sort last.
func (t MealType) Order() int {
	if o, ok := mealTypeOrder[t]; ok {
		return o
	}
	return len(mealTypeOrder) + 1
}

// MealTypes returns all meal types in canonical order.
func MealTypes() []MealType {
	return []MealType{MealTypeBreakfast, MealTypeLunch, MealTypeDinner}
}
