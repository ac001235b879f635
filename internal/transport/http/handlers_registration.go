package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"messhall/pkg/domain"
	dErrors "messhall/pkg/domain-errors"
	"messhall/pkg/platform/httputil"
	"messhall/pkg/requestcontext"
)

// CreateRegistration handles POST /api/registrations. The actor always
// registers for themselves; the actor id comes from the token, never the
// body.
func (h *Handlers) CreateRegistration(w http.ResponseWriter, r *http.Request) {
	var req createRegistrationRequest
	if err := decodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	mealID, err := domain.ParseMealID(req.MealID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	date, err := domain.ParseDate(req.Date)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	reg, err := h.registrations.Register(r.Context(), actorFromContext(r), mealID, date, req.Notes)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toRegistrationResponse(reg))
}

// CancelRegistration handles DELETE /api/registrations/{registrationID}.
func (h *Handlers) CancelRegistration(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseRegistrationID(chi.URLParam(r, "registrationID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	reg, err := h.registrations.Cancel(r.Context(), actorFromContext(r), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toRegistrationResponse(reg))
}

// UpdateNotes handles PATCH /api/registrations/{registrationID}/notes.
func (h *Handlers) UpdateNotes(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseRegistrationID(chi.URLParam(r, "registrationID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var req updateNotesRequest
	if err := decodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	reg, err := h.registrations.UpdateNotes(r.Context(), actorFromContext(r), id, req.Notes)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toRegistrationResponse(reg))
}

// History handles GET /api/registrations/history?limit=&page=. Pages are
// 1-based; both parameters are optional.
func (h *Handlers) History(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "limit must be a positive integer"))
			return
		}
		limit = n
	}
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "page must be a positive integer"))
			return
		}
		page = n
	}

	records, err := h.registrations.History(r.Context(), requestcontext.UserID(r.Context()), limit, (page-1)*limit)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toRegistrationListResponse(records))
}
