package testutil

import (
	"net/http"

	"volunteerhub/pkg/requestcontext"
)

// WithVolunteerEmail stamps a verified volunteer email onto the request
// context, simulating what the session middleware does for bearer requests.
func WithVolunteerEmail(req *http.Request, email string) *http.Request {
	return req.WithContext(requestcontext.WithVolunteerEmail(req.Context(), email))
}

// WithSession stamps both the volunteer email and the session ID.
func WithSession(req *http.Request, email, sessionID string) *http.Request {
	ctx := requestcontext.WithVolunteerEmail(req.Context(), email)
	ctx = requestcontext.WithSessionID(ctx, sessionID)
	return req.WithContext(ctx)
}
