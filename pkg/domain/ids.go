package domain

import (
	"github.com/google/uuid"

	dErrors "messhall/pkg/domain-errors"
)

// Typed identifiers keep actor, meal, and registration references from being
// mixed up at compile time. Construct from external input via the Parse
// functions; direct casting bypasses validation.

// UserID identifies the person an operation is performed for.
type UserID uuid.UUID

// NewUserID returns a fresh random UserID.
func NewUserID() UserID {
	return UserID(uuid.New())
}

// ParseUserID validates and converts an external string into a UserID.
// Rejects empty, malformed, and nil UUIDs with CodeInvalidInput.
func ParseUserID(s string) (UserID, error) {
	u, err := parseID(s, "user id")
	if err != nil {
		return UserID{}, err
	}
	return UserID(u), nil
}

func (id UserID) String() string {
	return uuid.UUID(id).String()
}

// IsNil reports whether the id is the zero value.
func (id UserID) IsNil() bool {
	return uuid.UUID(id) == uuid.Nil
}

// MealID identifies a meal definition in the catalog.
type MealID uuid.UUID

func NewMealID() MealID {
	return MealID(uuid.New())
}

func ParseMealID(s string) (MealID, error) {
	u, err := parseID(s, "meal id")
	if err != nil {
		return MealID{}, err
	}
	return MealID(u), nil
}

func (id MealID) String() string {
	return uuid.UUID(id).String()
}

func (id MealID) IsNil() bool {
	return uuid.UUID(id) == uuid.Nil
}

// RegistrationID identifies a single registration record in the ledger.
type RegistrationID uuid.UUID

func NewRegistrationID() RegistrationID {
	return RegistrationID(uuid.New())
}

func ParseRegistrationID(s string) (RegistrationID, error) {
	u, err := parseID(s, "registration id")
	if err != nil {
		return RegistrationID{}, err
	}
	return RegistrationID(u), nil
}

func (id RegistrationID) String() string {
	return uuid.UUID(id).String()
}

func (id RegistrationID) IsNil() bool {
	return uuid.UUID(id) == uuid.Nil
}

func parseID(s, what string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s cannot be empty", what)
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s is not a valid UUID", what)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s cannot be the nil UUID", what)
	}
	return u, nil
}
