package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"volunteerhub/pkg/requestcontext"
)

// SessionValidator validates a session token and returns the identity claims
// it carries.
type SessionValidator interface {
	ValidateToken(tokenString string) (*SessionClaims, error)
}

// SessionClaims is what the middleware needs from a validated session.
type SessionClaims struct {
	VolunteerEmail string
	SessionID      string
}

// RequireSession rejects requests without a valid bearer session token and
// publishes the volunteer identity into the request context.
func RequireSession(validator SessionValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				// Legacy clients send the token in the JSON body; handlers on
				// unprotected routes resolve those themselves.
				unauthorized(w, r, logger, "missing or invalid Authorization header")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(r.Context(), "unauthorized - invalid session token",
					"request_id", requestcontext.RequestID(r.Context()),
					"error", err.Error(),
				)
				unauthorized(w, r, logger, "invalid or expired session")
				return
			}

			ctx := requestcontext.WithVolunteerEmail(r.Context(), claims.VolunteerEmail)
			ctx = requestcontext.WithSessionID(ctx, claims.SessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	const prefix = "Bearer "
	if after, ok := strings.CutPrefix(r.Header.Get("Authorization"), prefix); ok {
		return after
	}
	return ""
}

func unauthorized(w http.ResponseWriter, r *http.Request, logger *slog.Logger, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	if _, err := w.Write([]byte(`{"success":false,"error":"unauthorized","message":"` + description + `"}`)); err != nil {
		logger.ErrorContext(r.Context(), "failed to write unauthorized response",
			"request_id", requestcontext.RequestID(r.Context()),
			"error", err.Error(),
		)
	}
}
