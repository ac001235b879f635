package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"messhall/internal/platform/logger"
	"messhall/pkg/domain"
	dErrors "messhall/pkg/domain-errors"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
	store   *InMemoryStore
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.service = NewService(s.store, logger.New())
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestDefaults() {
	s.Run("registration deadline defaults to 18:00", func() {
		s.Equal(domain.TimeOfDay{Hour: 18}, s.service.RegistrationDeadline(s.ctx))
	})

	s.Run("same-day cancel defaults to disallowed", func() {
		s.False(s.service.AllowSameDayCancel(s.ctx))
	})

	s.Run("cancel deadline days defaults to 1", func() {
		s.Equal(1, s.service.CancelDeadlineDays(s.ctx))
	})

	s.Run("system title has a default", func() {
		s.Equal(DefaultSystemTitle, s.service.SystemTitle(s.ctx))
	})
}

func (s *ServiceSuite) TestConfiguredValues() {
	s.Require().NoError(s.service.Set(s.ctx, KeyRegistrationDeadline, "20:30", ""))
	s.Require().NoError(s.service.Set(s.ctx, KeyAllowSameDayCancel, "true", ""))
	s.Require().NoError(s.service.Set(s.ctx, KeyCancelDeadlineDays, "3", ""))

	s.Equal(domain.TimeOfDay{Hour: 20, Minute: 30}, s.service.RegistrationDeadline(s.ctx))
	s.True(s.service.AllowSameDayCancel(s.ctx))
	s.Equal(3, s.service.CancelDeadlineDays(s.ctx))
}

func (s *ServiceSuite) TestUnparseableValueFallsBackToDefault() {
	// Write directly to the store to bypass Set validation, simulating bad
	// data from an older deployment.
	s.Require().NoError(s.store.Set(s.ctx, Setting{Key: KeyRegistrationDeadline, Value: "soonish"}))
	s.Equal(domain.TimeOfDay{Hour: 18}, s.service.RegistrationDeadline(s.ctx))
}

func (s *ServiceSuite) TestSetValidation() {
	s.Run("rejects unknown key", func() {
		err := s.service.Set(s.ctx, "no_such_knob", "1", "")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("rejects malformed deadline", func() {
		err := s.service.Set(s.ctx, KeyRegistrationDeadline, "25:99", "")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("rejects non-boolean policy", func() {
		err := s.service.Set(s.ctx, KeyAllowSameDayCancel, "yes", "")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("rejects negative day count", func() {
		err := s.service.Set(s.ctx, KeyCancelDeadlineDays, "-1", "")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func (s *ServiceSuite) TestList() {
	s.Require().NoError(s.service.Set(s.ctx, KeySystemTitle, "Unit 7 Mess", "display title"))
	s.Require().NoError(s.service.Set(s.ctx, KeyAllowSameDayCancel, "true", ""))

	settings, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Len(settings, 2)
	// Stored order is by key.
	s.Equal(KeyAllowSameDayCancel, settings[0].Key)
	s.Equal(KeySystemTitle, settings[1].Key)
}
