// Package http wires the service surface to a chi router. Handlers decode
// and validate the wire shapes, call services, and render results; every
// rule lives below this layer.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"messhall/internal/audit"
	"messhall/internal/config"
	"messhall/internal/meal"
	"messhall/internal/platform/metrics"
	"messhall/internal/platform/middleware"
	"messhall/internal/registration"
	"messhall/internal/status"
	"messhall/pkg/platform/httputil"
)

// Handlers carries the services the transport exposes plus the reference
// time zone used to interpret bare dates.
type Handlers struct {
	registrations *registration.Service
	status        *status.Service
	meals         *meal.Service
	settings      *config.Service
	auditor       *audit.Service
	logger        *slog.Logger
	loc           *time.Location
}

func NewHandlers(
	registrations *registration.Service,
	statusSvc *status.Service,
	meals *meal.Service,
	settings *config.Service,
	auditor *audit.Service,
	logger *slog.Logger,
	loc *time.Location,
) *Handlers {
	if loc == nil {
		loc = time.UTC
	}
	return &Handlers{
		registrations: registrations,
		status:        statusSvc,
		meals:         meals,
		settings:      settings,
		auditor:       auditor,
		logger:        logger,
		loc:           loc,
	}
}

// RouterConfig assembles the full middleware chain and route table.
type RouterConfig struct {
	Handlers  *Handlers
	Validator middleware.TokenValidator
	Metrics   *metrics.Metrics
	Logger    *slog.Logger
	// Ready reports backing-store health for /healthz; nil means always
	// healthy.
	Ready func(ctx context.Context) error
}

func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Latency(cfg.Metrics))

	r.Get("/healthz", healthHandler(cfg.Ready))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	h := cfg.Handlers
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RequireAuth(cfg.Validator, cfg.Logger))

		r.Get("/meals", h.ListMeals)
		r.Get("/system", h.SystemInfo)

		r.Route("/registrations", func(r chi.Router) {
			r.Post("/", h.CreateRegistration)
			r.Get("/status", h.StatusForDate)
			r.Get("/history", h.History)
			r.Delete("/{registrationID}", h.CancelRegistration)
			r.Patch("/{registrationID}/notes", h.UpdateNotes)
		})

		r.Route("/stats", func(r chi.Router) {
			r.With(middleware.RequireAdmin(cfg.Logger)).Get("/daily", h.DailyStats)
			r.Get("/range", h.RangeStats)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin(cfg.Logger))

			r.Post("/meals", h.CreateMeal)
			r.Patch("/meals/{mealID}", h.UpdateMeal)
			r.Delete("/meals/{mealID}", h.DeactivateMeal)

			r.Get("/settings", h.ListSettings)
			r.Put("/settings", h.PutSetting)

			r.Get("/audit", h.ListAuditEvents)
		})
	})

	return r
}

func healthHandler(ready func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ready != nil {
			if err := ready(r.Context()); err != nil {
				httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
