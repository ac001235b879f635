// Package config is the system settings provider: the registration deadline,
// the same-day-cancellation policy, and related administrative knobs. It is
// read on every ledger operation that depends on "now" and mutated only by
// administrators.
package config

import "time"

// Setting keys. The store is a flat key-value table; these are the keys the
// typed getters understand.
const (
	KeyRegistrationDeadline = "registration_deadline"
	KeyAllowSameDayCancel   = "allow_same_day_cancel"
	KeyCancelDeadlineDays   = "cancel_deadline_days"
	KeySystemTitle          = "system_title"
)

// Defaults applied when a key is unset. Missing configuration is never an
// error.
const (
	DefaultRegistrationDeadline = "18:00"
	DefaultAllowSameDayCancel   = false
	DefaultCancelDeadlineDays   = 1
	DefaultSystemTitle          = "Mess Hall Registration"
)

// Setting is one stored configuration entry.
type Setting struct {
	Key         string
	Value       string
	Description string
	UpdatedAt   time.Time
}
