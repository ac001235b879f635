package status

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"messhall/internal/audit"
	"messhall/internal/config"
	"messhall/internal/meal"
	"messhall/internal/platform/logger"
	"messhall/internal/registration"
	"messhall/pkg/domain"
	"messhall/pkg/requestcontext"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
	ledger  *registration.Service
	meals   *meal.Service

	breakfast *meal.Meal
	lunch     *meal.Meal
	dinner    *meal.Meal
	soldier   registration.Actor
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

var noon = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func (s *ServiceSuite) SetupTest() {
	log := logger.New()
	store := registration.NewInMemoryStore()
	s.meals = meal.NewService(meal.NewInMemoryStore(), log)
	settings := config.NewService(config.NewInMemoryStore(), log)
	auditor := audit.NewService(audit.NewInMemoryStore(), log)
	s.ledger = registration.NewService(store, s.meals, settings, auditor, nil, log, time.UTC)
	s.service = NewService(store, s.meals)

	ctx := context.Background()
	var err error
	s.breakfast, err = s.meals.Create(ctx, domain.MealTypeBreakfast, "Breakfast", "", domain.TimeOfDay{}, domain.TimeOfDay{})
	s.Require().NoError(err)
	s.lunch, err = s.meals.Create(ctx, domain.MealTypeLunch, "Lunch", "", domain.TimeOfDay{}, domain.TimeOfDay{})
	s.Require().NoError(err)
	s.dinner, err = s.meals.Create(ctx, domain.MealTypeDinner, "Dinner", "", domain.TimeOfDay{}, domain.TimeOfDay{})
	s.Require().NoError(err)

	s.soldier = registration.Actor{ID: domain.NewUserID(), Role: domain.RoleSoldier}
}

func (s *ServiceSuite) at(t time.Time) context.Context {
	return requestcontext.WithTime(context.Background(), t)
}

func (s *ServiceSuite) today() domain.Date {
	return domain.DateOf(noon, time.UTC)
}

func (s *ServiceSuite) register(mealID domain.MealID, date domain.Date) *registration.Registration {
	r, err := s.ledger.Register(s.at(noon), s.soldier, mealID, date, "")
	s.Require().NoError(err)
	return r
}

func (s *ServiceSuite) TestForDate() {
	date := s.today().AddDays(1)
	reg := s.register(s.lunch.ID, date)

	rows, err := s.service.ForDate(context.Background(), s.soldier.ID, date)
	s.Require().NoError(err)
	s.Require().Len(rows, 3)

	s.Run("rows follow canonical meal order", func() {
		s.Equal(domain.MealTypeBreakfast, rows[0].MealType)
		s.Equal(domain.MealTypeLunch, rows[1].MealType)
		s.Equal(domain.MealTypeDinner, rows[2].MealType)
	})

	s.Run("registered meal carries the registration id", func() {
		s.True(rows[1].IsRegistered)
		s.Equal(StatusRegistered, rows[1].Status)
		s.Require().NotNil(rows[1].RegistrationID)
		s.Equal(reg.ID, *rows[1].RegistrationID)
	})

	s.Run("unregistered meals are reported explicitly", func() {
		for _, i := range []int{0, 2} {
			s.False(rows[i].IsRegistered)
			s.Equal(StatusNotRegistered, rows[i].Status)
			s.Nil(rows[i].RegistrationID)
		}
	})
}

func (s *ServiceSuite) TestForDateIgnoresCancelled() {
	date := s.today().AddDays(1)
	reg := s.register(s.lunch.ID, date)
	_, err := s.ledger.Cancel(s.at(noon), s.soldier, reg.ID)
	s.Require().NoError(err)

	rows, err := s.service.ForDate(context.Background(), s.soldier.ID, date)
	s.Require().NoError(err)
	for _, row := range rows {
		s.False(row.IsRegistered)
		s.Equal(StatusNotRegistered, row.Status)
	}
}

func (s *ServiceSuite) TestForDateOmitsDeactivatedMeals() {
	s.Require().NoError(s.meals.Deactivate(context.Background(), s.dinner.ID))

	rows, err := s.service.ForDate(context.Background(), s.soldier.ID, s.today())
	s.Require().NoError(err)
	s.Require().Len(rows, 2)
	s.Equal(domain.MealTypeBreakfast, rows[0].MealType)
	s.Equal(domain.MealTypeLunch, rows[1].MealType)
}

func (s *ServiceSuite) TestSummaryForDate() {
	date := s.today().AddDays(1)
	s.register(s.lunch.ID, date)
	other := registration.Actor{ID: domain.NewUserID(), Role: domain.RoleSoldier}
	_, err := s.ledger.Register(s.at(noon), other, s.lunch.ID, date, "")
	s.Require().NoError(err)
	_, err = s.ledger.Register(s.at(noon), other, s.breakfast.ID, date, "")
	s.Require().NoError(err)

	summary, err := s.service.SummaryForDate(context.Background(), date)
	s.Require().NoError(err)
	s.Equal(3, summary.Total)
	s.Require().Len(summary.Counts, 3)
	s.Equal(TypeCount{MealType: domain.MealTypeBreakfast, Count: 1}, summary.Counts[0])
	s.Equal(TypeCount{MealType: domain.MealTypeLunch, Count: 2}, summary.Counts[1])

	s.Run("types with no matches are zero-filled, never omitted", func() {
		s.Equal(TypeCount{MealType: domain.MealTypeDinner, Count: 0}, summary.Counts[2])
	})
}

func (s *ServiceSuite) TestSummaryForEmptyDateIsZeroNotError() {
	summary, err := s.service.SummaryForDate(context.Background(), s.today().AddDays(30))
	s.Require().NoError(err)
	s.Equal(0, summary.Total)
	s.Require().Len(summary.Counts, 3)
	for _, c := range summary.Counts {
		s.Zero(c.Count)
	}
}

func (s *ServiceSuite) TestRangeStats() {
	start := s.today().AddDays(1)
	s.register(s.lunch.ID, start)
	s.register(s.lunch.ID, start.AddDays(1))
	s.register(s.dinner.ID, start.AddDays(2))
	// Outside the queried range.
	s.register(s.breakfast.ID, start.AddDays(5))

	other := registration.Actor{ID: domain.NewUserID(), Role: domain.RoleSoldier}
	_, err := s.ledger.Register(s.at(noon), other, s.lunch.ID, start, "")
	s.Require().NoError(err)

	s.Run("actor-scoped counts", func() {
		stats, err := s.service.RangeStats(context.Background(), &s.soldier.ID, start, start.AddDays(2))
		s.Require().NoError(err)
		s.Equal(3, stats.Total)
		s.Equal(TypeCount{MealType: domain.MealTypeBreakfast, Count: 0}, stats.Counts[0])
		s.Equal(TypeCount{MealType: domain.MealTypeLunch, Count: 2}, stats.Counts[1])
		s.Equal(TypeCount{MealType: domain.MealTypeDinner, Count: 1}, stats.Counts[2])
	})

	s.Run("system-wide counts", func() {
		stats, err := s.service.RangeStats(context.Background(), nil, start, start.AddDays(2))
		s.Require().NoError(err)
		s.Equal(4, stats.Total)
		s.Equal(3, stats.Counts[1].Count)
	})

	s.Run("reversed range yields zero counts", func() {
		stats, err := s.service.RangeStats(context.Background(), nil, start.AddDays(2), start)
		s.Require().NoError(err)
		s.Zero(stats.Total)
	})
}

func (s *ServiceSuite) TestRangeStatsCountsDeactivatedMeals() {
	date := s.today().AddDays(1)
	s.register(s.dinner.ID, date)
	s.Require().NoError(s.meals.Deactivate(context.Background(), s.dinner.ID))

	stats, err := s.service.RangeStats(context.Background(), &s.soldier.ID, date, date)
	s.Require().NoError(err)
	s.Equal(1, stats.Total)
	s.Equal(1, stats.Counts[2].Count)
}
