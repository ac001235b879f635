// Package httputil renders domain errors and JSON payloads over HTTP. It is
// the single place error codes are mapped to statuses so handlers never
// hand-pick status codes.
package httputil

import (
	"encoding/json"
	"net/http"

	dErrors "messhall/pkg/domain-errors"
)

// statusByCode maps stable error codes to HTTP statuses. Business-rule
// rejections (past date, deadline, same-day policy, duplicates) render as
// 400 like the rest of the validation surface; resource facts get their
// conventional statuses.
var statusByCode = map[dErrors.Code]int{
	dErrors.CodeBadRequest:            http.StatusBadRequest,
	dErrors.CodeInvalidInput:          http.StatusBadRequest,
	dErrors.CodeUnauthorized:          http.StatusUnauthorized,
	dErrors.CodeForbidden:             http.StatusForbidden,
	dErrors.CodeNotFound:              http.StatusNotFound,
	dErrors.CodeConflict:              http.StatusConflict,
	dErrors.CodeInternal:              http.StatusInternalServerError,
	dErrors.CodePastDate:              http.StatusBadRequest,
	dErrors.CodeUnknownMeal:           http.StatusBadRequest,
	dErrors.CodeDuplicateRegistration: http.StatusBadRequest,
	dErrors.CodeDeadlinePassed:        http.StatusBadRequest,
	dErrors.CodeSameDayCancel:         http.StatusBadRequest,
}

type errorBody struct {
	Error       string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

// WriteError renders err as a JSON error response. Internal errors omit the
// description so storage details never leak to callers.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	status, ok := statusByCode[code]
	if !ok {
		status = http.StatusInternalServerError
	}

	body := errorBody{Error: string(code)}
	if code != dErrors.CodeInternal {
		body.Description = dErrors.MessageOf(err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteJSON renders v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
