package http

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"messhall/internal/audit"
	"messhall/internal/config"
	"messhall/internal/meal"
	"messhall/internal/platform/logger"
	"messhall/internal/registration"
	"messhall/internal/status"
	"messhall/pkg/domain"
	"messhall/pkg/testutil"
)

// HandlerSuite exercises the handlers over in-memory services. Routes are
// mounted without the auth middleware; the actor is injected per request the
// way the middleware would set it.
type HandlerSuite struct {
	suite.Suite
	router   chi.Router
	handlers *Handlers
	meals    *meal.Service

	lunch     *meal.Meal
	soldierID domain.UserID
	adminID   domain.UserID
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

var noon = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func (s *HandlerSuite) SetupTest() {
	log := logger.New()
	regStore := registration.NewInMemoryStore()
	s.meals = meal.NewService(meal.NewInMemoryStore(), log)
	settings := config.NewService(config.NewInMemoryStore(), log)
	auditor := audit.NewService(audit.NewInMemoryStore(), log)
	regs := registration.NewService(regStore, s.meals, settings, auditor, nil, log, time.UTC)
	statusSvc := status.NewService(regStore, s.meals)

	s.handlers = NewHandlers(regs, statusSvc, s.meals, settings, auditor, log, time.UTC)

	r := chi.NewRouter()
	r.Post("/api/registrations", s.handlers.CreateRegistration)
	r.Get("/api/registrations/status", s.handlers.StatusForDate)
	r.Get("/api/registrations/history", s.handlers.History)
	r.Delete("/api/registrations/{registrationID}", s.handlers.CancelRegistration)
	r.Patch("/api/registrations/{registrationID}/notes", s.handlers.UpdateNotes)
	r.Get("/api/stats/daily", s.handlers.DailyStats)
	r.Get("/api/stats/range", s.handlers.RangeStats)
	r.Get("/api/meals", s.handlers.ListMeals)
	r.Get("/api/system", s.handlers.SystemInfo)
	r.Post("/api/admin/meals", s.handlers.CreateMeal)
	r.Delete("/api/admin/meals/{mealID}", s.handlers.DeactivateMeal)
	r.Get("/api/admin/settings", s.handlers.ListSettings)
	r.Put("/api/admin/settings", s.handlers.PutSetting)
	r.Get("/api/admin/audit", s.handlers.ListAuditEvents)
	s.router = r

	ctx := context.Background()
	var err error
	s.lunch, err = s.meals.Create(ctx, domain.MealTypeLunch, "Lunch", "", domain.TimeOfDay{}, domain.TimeOfDay{})
	s.Require().NoError(err)
	_, err = s.meals.Create(ctx, domain.MealTypeBreakfast, "Breakfast", "", domain.TimeOfDay{}, domain.TimeOfDay{})
	s.Require().NoError(err)

	s.soldierID = domain.NewUserID()
	s.adminID = domain.NewUserID()
}

func (s *HandlerSuite) asSoldier(req *http.Request) *http.Request {
	req = testutil.WithActor(req, s.soldierID, domain.RoleSoldier)
	return testutil.WithTime(req, noon)
}

func (s *HandlerSuite) asAdmin(req *http.Request) *http.Request {
	req = testutil.WithActor(req, s.adminID, domain.RoleAdmin)
	return testutil.WithTime(req, noon)
}

func (s *HandlerSuite) register(date string) registrationResponse {
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/registrations", createRegistrationRequest{
		MealID: s.lunch.ID.String(),
		Date:   date,
	})
	rr := testutil.DoRequest(s.router, s.asSoldier(req))
	s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())

	var resp registrationResponse
	testutil.DecodeJSON(s.T(), rr, &resp)
	return resp
}

func (s *HandlerSuite) TestCreateRegistration() {
	s.Run("creates and returns the record", func() {
		resp := s.register("2026-03-11")
		s.Equal("registered", resp.Status)
		s.Equal(s.soldierID.String(), resp.ActorID)
		s.Equal("2026-03-11", resp.Date)
	})

	s.Run("duplicate renders 400 with a stable code", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/registrations", createRegistrationRequest{
			MealID: s.lunch.ID.String(),
			Date:   "2026-03-11",
		})
		rr := testutil.DoRequest(s.router, s.asSoldier(req))
		s.Equal(http.StatusBadRequest, rr.Code)

		var body map[string]string
		testutil.DecodeJSON(s.T(), rr, &body)
		s.Equal("duplicate_registration", body["error"])
	})

	s.Run("malformed meal id renders 400", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/registrations", createRegistrationRequest{
			MealID: "not-a-uuid",
			Date:   "2026-03-11",
		})
		rr := testutil.DoRequest(s.router, s.asSoldier(req))
		s.Equal(http.StatusBadRequest, rr.Code)
	})

	s.Run("malformed body renders 400", func() {
		req := testutil.NewRequest(s.T(), http.MethodPost, "/api/registrations")
		rr := testutil.DoRequest(s.router, s.asSoldier(req))
		s.Equal(http.StatusBadRequest, rr.Code)
	})
}

func (s *HandlerSuite) TestCancelRegistration() {
	created := s.register("2026-03-12")

	s.Run("owner cancels", func() {
		req := testutil.NewRequest(s.T(), http.MethodDelete, "/api/registrations/"+created.ID)
		rr := testutil.DoRequest(s.router, s.asSoldier(req))
		s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())

		var resp registrationResponse
		testutil.DecodeJSON(s.T(), rr, &resp)
		s.Equal("cancelled", resp.Status)
		s.NotNil(resp.CancelledAt)
	})

	s.Run("second cancel renders 404", func() {
		req := testutil.NewRequest(s.T(), http.MethodDelete, "/api/registrations/"+created.ID)
		rr := testutil.DoRequest(s.router, s.asSoldier(req))
		s.Equal(http.StatusNotFound, rr.Code)
	})

	s.Run("unknown id renders 404", func() {
		req := testutil.NewRequest(s.T(), http.MethodDelete, "/api/registrations/"+domain.NewRegistrationID().String())
		rr := testutil.DoRequest(s.router, s.asSoldier(req))
		s.Equal(http.StatusNotFound, rr.Code)
	})

	s.Run("foreign record renders 403 for non-admins", func() {
		other := s.register("2026-03-13")
		req := testutil.NewRequest(s.T(), http.MethodDelete, "/api/registrations/"+other.ID)
		req = testutil.WithActor(req, domain.NewUserID(), domain.RoleSoldier)
		rr := testutil.DoRequest(s.router, testutil.WithTime(req, noon))
		s.Equal(http.StatusForbidden, rr.Code)
	})
}

func (s *HandlerSuite) TestUpdateNotes() {
	created := s.register("2026-03-12")

	req := testutil.NewJSONRequest(s.T(), http.MethodPatch,
		"/api/registrations/"+created.ID+"/notes", updateNotesRequest{Notes: "vegetarian"})
	rr := testutil.DoRequest(s.router, s.asSoldier(req))
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())

	var resp registrationResponse
	testutil.DecodeJSON(s.T(), rr, &resp)
	s.Equal("vegetarian", resp.Notes)
}

func (s *HandlerSuite) TestStatusForDate() {
	created := s.register("2026-03-11")

	req := testutil.NewRequest(s.T(), http.MethodGet, "/api/registrations/status?date=2026-03-11")
	rr := testutil.DoRequest(s.router, s.asSoldier(req))
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())

	var resp statusResponse
	testutil.DecodeJSON(s.T(), rr, &resp)
	s.Equal("2026-03-11", resp.Date)
	s.Require().Len(resp.Meals, 2)

	s.Run("rows follow canonical order", func() {
		s.Equal("breakfast", resp.Meals[0].MealType)
		s.Equal("lunch", resp.Meals[1].MealType)
	})

	s.Run("registered and unregistered rows", func() {
		s.False(resp.Meals[0].IsRegistered)
		s.Equal("not_registered", resp.Meals[0].Status)
		s.Nil(resp.Meals[0].RegistrationID)

		s.True(resp.Meals[1].IsRegistered)
		s.Require().NotNil(resp.Meals[1].RegistrationID)
		s.Equal(created.ID, *resp.Meals[1].RegistrationID)
	})

	s.Run("admin may query another actor's status", func() {
		path := "/api/registrations/status?date=2026-03-11&actor_id=" + s.soldierID.String()
		req := testutil.NewRequest(s.T(), http.MethodGet, path)
		rr := testutil.DoRequest(s.router, s.asAdmin(req))
		s.Require().Equal(http.StatusOK, rr.Code)

		var other statusResponse
		testutil.DecodeJSON(s.T(), rr, &other)
		s.True(other.Meals[1].IsRegistered)
	})

	s.Run("date defaults to today", func() {
		req := testutil.NewRequest(s.T(), http.MethodGet, "/api/registrations/status")
		rr := testutil.DoRequest(s.router, s.asSoldier(req))
		s.Require().Equal(http.StatusOK, rr.Code)

		var today statusResponse
		testutil.DecodeJSON(s.T(), rr, &today)
		s.Equal("2026-03-10", today.Date)
	})
}

func (s *HandlerSuite) TestHistory() {
	s.register("2026-03-11")
	s.register("2026-03-12")

	req := testutil.NewRequest(s.T(), http.MethodGet, "/api/registrations/history?limit=10&page=1")
	rr := testutil.DoRequest(s.router, s.asSoldier(req))
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())

	var resp registrationListResponse
	testutil.DecodeJSON(s.T(), rr, &resp)
	s.Len(resp.Registrations, 2)

	s.Run("rejects a non-numeric limit", func() {
		req := testutil.NewRequest(s.T(), http.MethodGet, "/api/registrations/history?limit=lots")
		rr := testutil.DoRequest(s.router, s.asSoldier(req))
		s.Equal(http.StatusBadRequest, rr.Code)
	})
}

func (s *HandlerSuite) TestDailyStats() {
	s.register("2026-03-11")

	req := testutil.NewRequest(s.T(), http.MethodGet, "/api/stats/daily?date=2026-03-11")
	rr := testutil.DoRequest(s.router, s.asAdmin(req))
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())

	var resp dailyStatsResponse
	testutil.DecodeJSON(s.T(), rr, &resp)
	s.Equal(1, resp.Total)
	s.Require().Len(resp.Counts, 3)
	s.Equal(typeCountResponse{MealType: "breakfast", Count: 0}, resp.Counts[0])
	s.Equal(typeCountResponse{MealType: "lunch", Count: 1}, resp.Counts[1])
	s.Equal(typeCountResponse{MealType: "dinner", Count: 0}, resp.Counts[2])
}

func (s *HandlerSuite) TestRangeStats() {
	s.register("2026-03-11")
	s.register("2026-03-12")

	s.Run("requires start and end", func() {
		req := testutil.NewRequest(s.T(), http.MethodGet, "/api/stats/range?start=2026-03-11")
		rr := testutil.DoRequest(s.router, s.asAdmin(req))
		s.Equal(http.StatusBadRequest, rr.Code)
	})

	s.Run("admin gets system-wide counts", func() {
		req := testutil.NewRequest(s.T(), http.MethodGet, "/api/stats/range?start=2026-03-11&end=2026-03-12")
		rr := testutil.DoRequest(s.router, s.asAdmin(req))
		s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())

		var resp rangeStatsResponse
		testutil.DecodeJSON(s.T(), rr, &resp)
		s.Equal(2, resp.Total)
	})

	s.Run("soldier gets own counts even with a foreign actor_id", func() {
		path := "/api/stats/range?start=2026-03-11&end=2026-03-12&actor_id=" + domain.NewUserID().String()
		req := testutil.NewRequest(s.T(), http.MethodGet, path)
		rr := testutil.DoRequest(s.router, s.asSoldier(req))
		s.Require().Equal(http.StatusOK, rr.Code)

		var resp rangeStatsResponse
		testutil.DecodeJSON(s.T(), rr, &resp)
		s.Equal(2, resp.Total)
	})
}

func (s *HandlerSuite) TestMealAdmin() {
	s.Run("lists active meals", func() {
		req := testutil.NewRequest(s.T(), http.MethodGet, "/api/meals")
		rr := testutil.DoRequest(s.router, s.asSoldier(req))
		s.Require().Equal(http.StatusOK, rr.Code)

		var resp mealListResponse
		testutil.DecodeJSON(s.T(), rr, &resp)
		s.Len(resp.Meals, 2)
	})

	s.Run("creates a meal", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/admin/meals", createMealRequest{
			MealType:  "dinner",
			Name:      "Dinner",
			StartTime: "17:30",
			EndTime:   "19:00",
		})
		rr := testutil.DoRequest(s.router, s.asAdmin(req))
		s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())

		var resp mealResponse
		testutil.DecodeJSON(s.T(), rr, &resp)
		s.Equal("dinner", resp.MealType)
		s.Equal("17:30", resp.StartTime)
		s.True(resp.Active)
	})

	s.Run("deactivates a meal", func() {
		req := testutil.NewRequest(s.T(), http.MethodDelete, "/api/admin/meals/"+s.lunch.ID.String())
		rr := testutil.DoRequest(s.router, s.asAdmin(req))
		s.Require().Equal(http.StatusNoContent, rr.Code)

		listReq := testutil.NewRequest(s.T(), http.MethodGet, "/api/meals")
		listRR := testutil.DoRequest(s.router, s.asSoldier(listReq))
		var resp mealListResponse
		testutil.DecodeJSON(s.T(), listRR, &resp)
		for _, m := range resp.Meals {
			s.NotEqual(s.lunch.ID.String(), m.ID)
		}
	})
}

func (s *HandlerSuite) TestSystemInfo() {
	req := testutil.NewRequest(s.T(), http.MethodGet, "/api/system")
	rr := testutil.DoRequest(s.router, s.asSoldier(req))
	s.Require().Equal(http.StatusOK, rr.Code)

	var resp systemInfoResponse
	testutil.DecodeJSON(s.T(), rr, &resp)
	s.Equal(config.DefaultSystemTitle, resp.Title)
	s.Equal("18:00", resp.RegistrationDeadline)
	s.False(resp.AllowSameDayCancel)
}

func (s *HandlerSuite) TestAuditTrail() {
	created := s.register("2026-03-12")
	req := testutil.NewRequest(s.T(), http.MethodDelete, "/api/registrations/"+created.ID)
	rr := testutil.DoRequest(s.router, s.asSoldier(req))
	s.Require().Equal(http.StatusOK, rr.Code)

	listReq := testutil.NewRequest(s.T(), http.MethodGet, "/api/admin/audit?actor_id="+s.soldierID.String())
	listRR := testutil.DoRequest(s.router, s.asAdmin(listReq))
	s.Require().Equal(http.StatusOK, listRR.Code, listRR.Body.String())

	var resp auditListResponse
	testutil.DecodeJSON(s.T(), listRR, &resp)
	s.Require().Len(resp.Events, 2)
	actions := []string{resp.Events[0].Action, resp.Events[1].Action}
	s.Contains(actions, "MEAL_REGISTER")
	s.Contains(actions, "MEAL_CANCEL")
}

func (s *HandlerSuite) TestSettingsAdmin() {
	s.Run("stores a valid setting", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPut, "/api/admin/settings", putSettingRequest{
			Key:   config.KeyRegistrationDeadline,
			Value: "20:00",
		})
		rr := testutil.DoRequest(s.router, s.asAdmin(req))
		s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())
	})

	s.Run("rejects an unknown key", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPut, "/api/admin/settings", putSettingRequest{
			Key:   "mystery_knob",
			Value: "1",
		})
		rr := testutil.DoRequest(s.router, s.asAdmin(req))
		s.Equal(http.StatusBadRequest, rr.Code)
	})

	s.Run("lists stored settings", func() {
		req := testutil.NewRequest(s.T(), http.MethodGet, "/api/admin/settings")
		rr := testutil.DoRequest(s.router, s.asAdmin(req))
		s.Require().Equal(http.StatusOK, rr.Code)

		var resp settingListResponse
		testutil.DecodeJSON(s.T(), rr, &resp)
		s.Require().Len(resp.Settings, 1)
		s.Equal(config.KeyRegistrationDeadline, resp.Settings[0].Key)
	})
}
