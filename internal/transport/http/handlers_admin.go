package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"messhall/internal/audit"
	"messhall/internal/meal"
	"messhall/pkg/domain"
	dErrors "messhall/pkg/domain-errors"
	"messhall/pkg/platform/httputil"
	"messhall/pkg/requestcontext"
)

// ListMeals handles GET /api/meals: the active catalog in canonical order.
func (h *Handlers) ListMeals(w http.ResponseWriter, r *http.Request) {
	meals, err := h.meals.ListActive(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toMealListResponse(meals))
}

// CreateMeal handles POST /api/admin/meals.
func (h *Handlers) CreateMeal(w http.ResponseWriter, r *http.Request) {
	var req createMealRequest
	if err := decodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	mealType, err := domain.ParseMealType(req.MealType)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var start, end domain.TimeOfDay
	if req.StartTime != "" {
		if start, err = domain.ParseTimeOfDay(req.StartTime); err != nil {
			httputil.WriteError(w, err)
			return
		}
	}
	if req.EndTime != "" {
		if end, err = domain.ParseTimeOfDay(req.EndTime); err != nil {
			httputil.WriteError(w, err)
			return
		}
	}

	m, err := h.meals.Create(r.Context(), mealType, req.Name, req.Description, start, end)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.auditor.Emit(r.Context(), requestcontext.UserID(r.Context()), audit.ActionMealConfig,
		fmt.Sprintf("created meal=%s type=%s", m.Name, m.Type))
	httputil.WriteJSON(w, http.StatusCreated, toMealResponse(m))
}

// UpdateMeal handles PATCH /api/admin/meals/{mealID}.
func (h *Handlers) UpdateMeal(w http.ResponseWriter, r *http.Request) {
	mealID, err := domain.ParseMealID(chi.URLParam(r, "mealID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var req updateMealRequest
	if err := decodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	patch := meal.UpdateMeal{Name: req.Name, Description: req.Description}
	if req.StartTime != nil {
		t, err := domain.ParseTimeOfDay(*req.StartTime)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		patch.StartTime = &t
	}
	if req.EndTime != nil {
		t, err := domain.ParseTimeOfDay(*req.EndTime)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		patch.EndTime = &t
	}

	m, err := h.meals.Update(r.Context(), mealID, patch)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.auditor.Emit(r.Context(), requestcontext.UserID(r.Context()), audit.ActionMealConfig,
		fmt.Sprintf("updated meal=%s", mealID))
	httputil.WriteJSON(w, http.StatusOK, toMealResponse(m))
}

// DeactivateMeal handles DELETE /api/admin/meals/{mealID}. The meal is
// soft-deactivated, never removed.
func (h *Handlers) DeactivateMeal(w http.ResponseWriter, r *http.Request) {
	mealID, err := domain.ParseMealID(chi.URLParam(r, "mealID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.meals.Deactivate(r.Context(), mealID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.auditor.Emit(r.Context(), requestcontext.UserID(r.Context()), audit.ActionMealConfig,
		fmt.Sprintf("deactivated meal=%s", mealID))
	w.WriteHeader(http.StatusNoContent)
}

// ListAuditEvents handles GET /api/admin/audit?actor_id=&limit=.
func (h *Handlers) ListAuditEvents(w http.ResponseWriter, r *http.Request) {
	actorID, err := domain.ParseUserID(r.URL.Query().Get("actor_id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if limit, err = strconv.Atoi(raw); err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "limit must be an integer"))
			return
		}
	}

	events, err := h.auditor.ListByActor(r.Context(), actorID, limit)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toAuditListResponse(events))
}

// ListSettings handles GET /api/admin/settings.
func (h *Handlers) ListSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.List(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toSettingListResponse(settings))
}

// PutSetting handles PUT /api/admin/settings.
func (h *Handlers) PutSetting(w http.ResponseWriter, r *http.Request) {
	var req putSettingRequest
	if err := decodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.settings.Set(r.Context(), req.Key, req.Value, req.Description); err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.auditor.Emit(r.Context(), requestcontext.UserID(r.Context()), audit.ActionConfigUpdate,
		fmt.Sprintf("key=%s value=%s", req.Key, req.Value))
	httputil.WriteJSON(w, http.StatusOK, settingResponse{
		Key:         req.Key,
		Value:       req.Value,
		Description: req.Description,
	})
}
