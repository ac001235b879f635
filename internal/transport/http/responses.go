package http

import (
	"time"

	"messhall/internal/audit"
	"messhall/internal/config"
	"messhall/internal/meal"
	"messhall/internal/registration"
	"messhall/internal/status"
	"messhall/pkg/domain"
)

type registrationResponse struct {
	ID          string     `json:"id"`
	ActorID     string     `json:"actor_id"`
	MealID      string     `json:"meal_id"`
	Date        string     `json:"date"`
	Status      string     `json:"status"`
	Notes       string     `json:"notes"`
	CreatedAt   time.Time  `json:"created_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
}

func toRegistrationResponse(r *registration.Registration) registrationResponse {
	return registrationResponse{
		ID:          r.ID.String(),
		ActorID:     r.ActorID.String(),
		MealID:      r.MealID.String(),
		Date:        r.Date.String(),
		Status:      string(r.Status),
		Notes:       r.Notes,
		CreatedAt:   r.CreatedAt,
		CancelledAt: r.CancelledAt,
	}
}

type registrationListResponse struct {
	Registrations []registrationResponse `json:"registrations"`
}

func toRegistrationListResponse(records []*registration.Registration) registrationListResponse {
	out := registrationListResponse{Registrations: make([]registrationResponse, 0, len(records))}
	for _, r := range records {
		out.Registrations = append(out.Registrations, toRegistrationResponse(r))
	}
	return out
}

type mealResponse struct {
	ID          string `json:"id"`
	MealType    string `json:"meal_type"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	StartTime   string `json:"start_time,omitempty"`
	EndTime     string `json:"end_time,omitempty"`
	Active      bool   `json:"active"`
}

func toMealResponse(m *meal.Meal) mealResponse {
	out := mealResponse{
		ID:       m.ID.String(),
		MealType: m.Type.String(),
		Name:     m.Name,
		Active:   m.Active,
	}
	out.Description = m.Description
	if m.StartTime != (domain.TimeOfDay{}) {
		out.StartTime = m.StartTime.String()
	}
	if m.EndTime != (domain.TimeOfDay{}) {
		out.EndTime = m.EndTime.String()
	}
	return out
}

type mealListResponse struct {
	Meals []mealResponse `json:"meals"`
}

func toMealListResponse(meals []*meal.Meal) mealListResponse {
	out := mealListResponse{Meals: make([]mealResponse, 0, len(meals))}
	for _, m := range meals {
		out.Meals = append(out.Meals, toMealResponse(m))
	}
	return out
}

type mealStatusResponse struct {
	MealID         string  `json:"meal_id"`
	MealType       string  `json:"meal_type"`
	MealName       string  `json:"meal_name"`
	RegistrationID *string `json:"registration_id"`
	Status         string  `json:"status"`
	IsRegistered   bool    `json:"is_registered"`
	Notes          string  `json:"notes,omitempty"`
}

type statusResponse struct {
	Date  string               `json:"date"`
	Meals []mealStatusResponse `json:"meals"`
}

func toStatusResponse(date string, rows []status.MealStatus) statusResponse {
	out := statusResponse{Date: date, Meals: make([]mealStatusResponse, 0, len(rows))}
	for _, row := range rows {
		resp := mealStatusResponse{
			MealID:       row.MealID.String(),
			MealType:     row.MealType.String(),
			MealName:     row.MealName,
			Status:       row.Status,
			IsRegistered: row.IsRegistered,
			Notes:        row.Notes,
		}
		if row.RegistrationID != nil {
			id := row.RegistrationID.String()
			resp.RegistrationID = &id
		}
		out.Meals = append(out.Meals, resp)
	}
	return out
}

type typeCountResponse struct {
	MealType string `json:"meal_type"`
	Count    int    `json:"count"`
}

func toTypeCounts(counts []status.TypeCount) []typeCountResponse {
	out := make([]typeCountResponse, 0, len(counts))
	for _, c := range counts {
		out = append(out, typeCountResponse{MealType: c.MealType.String(), Count: c.Count})
	}
	return out
}

type dailyStatsResponse struct {
	Date   string              `json:"date"`
	Total  int                 `json:"total"`
	Counts []typeCountResponse `json:"counts"`
}

type rangeStatsResponse struct {
	Start  string              `json:"start"`
	End    string              `json:"end"`
	Total  int                 `json:"total"`
	Counts []typeCountResponse `json:"counts"`
}

type auditEventResponse struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	ActorID   string    `json:"actor_id"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
}

type auditListResponse struct {
	Events []auditEventResponse `json:"events"`
}

func toAuditListResponse(events []*audit.Event) auditListResponse {
	out := auditListResponse{Events: make([]auditEventResponse, 0, len(events))}
	for _, e := range events {
		out.Events = append(out.Events, auditEventResponse{
			ID:        e.ID.String(),
			Timestamp: e.Timestamp,
			ActorID:   e.ActorID.String(),
			Action:    e.Action,
			Detail:    e.Detail,
			RequestID: e.RequestID,
		})
	}
	return out
}

type systemInfoResponse struct {
	Title                string `json:"title"`
	RegistrationDeadline string `json:"registration_deadline"`
	AllowSameDayCancel   bool   `json:"allow_same_day_cancel"`
}

type settingResponse struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}

type settingListResponse struct {
	Settings []settingResponse `json:"settings"`
}

func toSettingListResponse(settings []config.Setting) settingListResponse {
	out := settingListResponse{Settings: make([]settingResponse, 0, len(settings))}
	for _, s := range settings {
		out.Settings = append(out.Settings, settingResponse{
			Key:         s.Key,
			Value:       s.Value,
			Description: s.Description,
		})
	}
	return out
}
