// Package audit records who did what and when. Emission is best-effort:
// a failed audit write never fails the operation that produced it.
package audit

import (
	"time"

	"github.com/google/uuid"

	"messhall/pkg/domain"
)

// Actions recorded by the service.
const (
	ActionMealRegister = "MEAL_REGISTER"
	ActionMealCancel   = "MEAL_CANCEL"
	ActionUpdateNotes  = "UPDATE_NOTES"
	ActionConfigUpdate = "CONFIG_UPDATE"
	ActionMealConfig   = "MEAL_CONFIG"
)

// Event is one audit record. ActorID is nil for system-originated events.
type Event struct {
	ID        uuid.UUID
	Timestamp time.Time
	ActorID   domain.UserID
	Action    string
	Detail    string
	RequestID string
}
