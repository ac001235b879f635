package testutil

import (
	"net/http"
	"time"

	"messhall/pkg/domain"
	"messhall/pkg/requestcontext"
)

// WithActor adds an authenticated actor (id + role) to the request context,
// simulating what the auth middleware does for authenticated requests.
func WithActor(req *http.Request, userID domain.UserID, role domain.Role) *http.Request {
	ctx := requestcontext.WithUserID(req.Context(), userID)
	ctx = requestcontext.WithRole(ctx, role)
	return req.WithContext(ctx)
}

// WithTime pins the request-scoped clock, simulating the requesttime
// middleware with a fixed instant.
func WithTime(req *http.Request, t time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), t))
}
