package http

import (
	"net/http"

	"messhall/pkg/domain"
	dErrors "messhall/pkg/domain-errors"
	"messhall/pkg/platform/httputil"
	"messhall/pkg/requestcontext"
)

// StatusForDate handles GET /api/registrations/status?date=[&actor_id=].
// The date defaults to today in the deployment's reference time zone.
// Administrators may query another actor's status; everyone else gets their
// own regardless of the actor_id parameter.
func (h *Handlers) StatusForDate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	date := domain.DateOf(requestcontext.Now(ctx), h.loc)
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := domain.ParseDate(raw)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		date = parsed
	}

	actorID := requestcontext.UserID(ctx)
	if raw := r.URL.Query().Get("actor_id"); raw != "" && requestcontext.Role(ctx).IsAdmin() {
		parsed, err := domain.ParseUserID(raw)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		actorID = parsed
	}

	rows, err := h.status.ForDate(ctx, actorID, date)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toStatusResponse(date.String(), rows))
}

// SystemInfo handles GET /api/system: the display title and the effective
// registration policies clients render against.
func (h *Handlers) SystemInfo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	httputil.WriteJSON(w, http.StatusOK, systemInfoResponse{
		Title:                h.settings.SystemTitle(ctx),
		RegistrationDeadline: h.settings.RegistrationDeadline(ctx).String(),
		AllowSameDayCancel:   h.settings.AllowSameDayCancel(ctx),
	})
}

// DailyStats handles GET /api/stats/daily?date=. Admin only.
func (h *Handlers) DailyStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	date := domain.DateOf(requestcontext.Now(ctx), h.loc)
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := domain.ParseDate(raw)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		date = parsed
	}

	summary, err := h.status.SummaryForDate(ctx, date)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, dailyStatsResponse{
		Date:   summary.Date.String(),
		Total:  summary.Total,
		Counts: toTypeCounts(summary.Counts),
	})
}

// RangeStats handles GET /api/stats/range?start=&end=[&actor_id=].
// Administrators aggregate system-wide or for a named actor; everyone else
// gets their own aggregates regardless of the actor_id parameter.
func (h *Handlers) RangeStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	if q.Get("start") == "" || q.Get("end") == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "start and end dates are required"))
		return
	}
	start, err := domain.ParseDate(q.Get("start"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	end, err := domain.ParseDate(q.Get("end"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var actorID *domain.UserID
	if requestcontext.Role(ctx).IsAdmin() {
		if raw := q.Get("actor_id"); raw != "" {
			parsed, err := domain.ParseUserID(raw)
			if err != nil {
				httputil.WriteError(w, err)
				return
			}
			actorID = &parsed
		}
	} else {
		own := requestcontext.UserID(ctx)
		actorID = &own
	}

	stats, err := h.status.RangeStats(ctx, actorID, start, end)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, rangeStatsResponse{
		Start:  stats.Start.String(),
		End:    stats.End.String(),
		Total:  stats.Total,
		Counts: toTypeCounts(stats.Counts),
	})
}
