package config

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"messhall/pkg/domain"
	dErrors "messhall/pkg/domain-errors"
	"messhall/pkg/platform/sentinel"
	"messhall/pkg/requestcontext"
)

// Service exposes typed settings with defaults. Unset or unparseable values
// fall back to the conservative default; reads never fail for missing
// configuration.
type Service struct {
	store  Store
	logger *slog.Logger
}

func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// RegistrationDeadline returns the time-of-day after which same-day
// registrations are rejected. Defaults to 18:00.
func (s *Service) RegistrationDeadline(ctx context.Context) domain.TimeOfDay {
	raw, ok := s.lookup(ctx, KeyRegistrationDeadline)
	if !ok {
		raw = DefaultRegistrationDeadline
	}
	deadline, err := domain.ParseTimeOfDay(raw)
	if err != nil {
		s.logger.WarnContext(ctx, "invalid registration_deadline setting, using default",
			"value", raw)
		deadline, _ = domain.ParseTimeOfDay(DefaultRegistrationDeadline)
	}
	return deadline
}

// AllowSameDayCancel reports whether registrations dated today may be
// cancelled. Defaults to false (conservative).
func (s *Service) AllowSameDayCancel(ctx context.Context) bool {
	raw, ok := s.lookup(ctx, KeyAllowSameDayCancel)
	if !ok {
		return DefaultAllowSameDayCancel
	}
	return raw == "true"
}

// CancelDeadlineDays returns the reserved future-cancellation window knob.
// It is administrable but not consulted by any current cancellation rule.
func (s *Service) CancelDeadlineDays(ctx context.Context) int {
	raw, ok := s.lookup(ctx, KeyCancelDeadlineDays)
	if !ok {
		return DefaultCancelDeadlineDays
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return DefaultCancelDeadlineDays
	}
	return n
}

// SystemTitle returns the display title for the deployment.
func (s *Service) SystemTitle(ctx context.Context) string {
	raw, ok := s.lookup(ctx, KeySystemTitle)
	if !ok {
		return DefaultSystemTitle
	}
	return raw
}

// knownKeys guards admin writes so a typoed key cannot silently shadow a
// policy that then falls back to its default forever.
var knownKeys = map[string]bool{
	KeyRegistrationDeadline: true,
	KeyAllowSameDayCancel:   true,
	KeyCancelDeadlineDays:   true,
	KeySystemTitle:          true,
}

// Set updates one setting. Administrative callers only; values are validated
// per key before storage.
func (s *Service) Set(ctx context.Context, key, value, description string) error {
	if !knownKeys[key] {
		return dErrors.Newf(dErrors.CodeInvalidInput, "unknown setting key: %q", key)
	}
	if err := validateValue(key, value); err != nil {
		return err
	}

	setting := Setting{
		Key:         key,
		Value:       value,
		Description: description,
		UpdatedAt:   requestcontext.Now(ctx),
	}
	if err := s.store.Set(ctx, setting); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store setting")
	}
	return nil
}

// List returns all stored settings for the admin surface.
func (s *Service) List(ctx context.Context) ([]Setting, error) {
	settings, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list settings")
	}
	return settings, nil
}

func (s *Service) lookup(ctx context.Context, key string) (string, bool) {
	value, err := s.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			s.logger.ErrorContext(ctx, "settings store read failed, using default",
				"key", key, "error", err)
		}
		return "", false
	}
	return value, true
}

func validateValue(key, value string) error {
	switch key {
	case KeyRegistrationDeadline:
		if _, err := domain.ParseTimeOfDay(value); err != nil {
			return dErrors.Newf(dErrors.CodeInvalidInput, "registration_deadline must be HH:MM, got %q", value)
		}
	case KeyAllowSameDayCancel:
		if value != "true" && value != "false" {
			return dErrors.Newf(dErrors.CodeInvalidInput, "allow_same_day_cancel must be true or false, got %q", value)
		}
	case KeyCancelDeadlineDays:
		if n, err := strconv.Atoi(value); err != nil || n < 0 {
			return dErrors.Newf(dErrors.CodeInvalidInput, "cancel_deadline_days must be a non-negative integer, got %q", value)
		}
	}
	return nil
}
