// Package registration is the ledger of meal registrations and the rules
// governing them. A registration is registered or cancelled; creation is the
// only way in, cancellation the only transition, and cancelled is terminal.
package registration

import (
	"time"

	"messhall/pkg/domain"
	dErrors "messhall/pkg/domain-errors"
)

// Status is the lifecycle state of a registration.
type Status string

const (
	StatusRegistered Status = "registered"
	StatusCancelled  Status = "cancelled"
)

// Actor is the authenticated caller of a ledger operation. Administrators are
// exempt from ownership checks; everyone else may only touch their own
// records.
type Actor struct {
	ID   domain.UserID
	Role domain.Role
}

// Registration is one ledger record. Status and CancelledAt move together:
// cancelled records carry the cancellation instant, registered records carry
// none. ApplyCancellation is the only way to flip them.
type Registration struct {
	ID          domain.RegistrationID
	ActorID     domain.UserID
	MealID      domain.MealID
	Date        domain.Date
	Status      Status
	Notes       string
	CreatedAt   time.Time
	CancelledAt *time.Time
}

// CanCancel reports whether the record is in a cancellable state.
func (r *Registration) CanCancel() bool {
	return r.Status == StatusRegistered
}

// ApplyCancellation transitions the record to cancelled at the given instant.
func (r *Registration) ApplyCancellation(now time.Time) error {
	if !r.CanCancel() {
		return dErrors.New(dErrors.CodeNotFound, "registration not found")
	}
	r.Status = StatusCancelled
	r.CancelledAt = &now
	return nil
}

// Validate rejects impossible status and timestamp combinations: cancelled
// records carry CancelledAt, registered records do not.
func (r *Registration) Validate() error {
	switch r.Status {
	case StatusRegistered:
		if r.CancelledAt != nil {
			return dErrors.New(dErrors.CodeInternal, "registered record carries a cancellation timestamp")
		}
	case StatusCancelled:
		if r.CancelledAt == nil {
			return dErrors.New(dErrors.CodeInternal, "cancelled record is missing its cancellation timestamp")
		}
	default:
		return dErrors.Newf(dErrors.CodeInternal, "unknown registration status %q", r.Status)
	}
	if r.ID.IsNil() || r.ActorID.IsNil() || r.MealID.IsNil() || r.Date.IsZero() {
		return dErrors.New(dErrors.CodeInternal, "registration record is missing required fields")
	}
	return nil
}

// OwnedBy reports whether the actor owns the record or holds a role exempt
// from ownership checks.
func (r *Registration) OwnedBy(actor Actor) bool {
	return actor.Role.IsAdmin() || r.ActorID == actor.ID
}
