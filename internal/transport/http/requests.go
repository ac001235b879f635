package http

import (
	"encoding/json"
	"net/http"

	"messhall/internal/registration"
	dErrors "messhall/pkg/domain-errors"
	"messhall/pkg/requestcontext"
)

type createRegistrationRequest struct {
	MealID string `json:"meal_id"`
	Date   string `json:"date"`
	Notes  string `json:"notes"`
}

type updateNotesRequest struct {
	Notes string `json:"notes"`
}

type createMealRequest struct {
	MealType    string `json:"meal_type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
}

type updateMealRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
}

type putSettingRequest struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

func decodeJSON(r *http.Request, out any) error {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is not valid JSON")
	}
	return nil
}

// actorFromContext rebuilds the authenticated actor the auth middleware
// stored.
func actorFromContext(r *http.Request) registration.Actor {
	ctx := r.Context()
	return registration.Actor{
		ID:   requestcontext.UserID(ctx),
		Role: requestcontext.Role(ctx),
	}
}
