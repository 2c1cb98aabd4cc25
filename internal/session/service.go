// Package session issues and validates volunteer session tokens. Email
// verification and code delivery happen in an external collaborator; by the
// time this package runs, the identity is already proven.
package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"volunteerhub/internal/platform/middleware"
	dErrors "volunteerhub/pkg/domain-errors"
)

// Service combines token signing with the live-session store.
type Service struct {
	tokens *TokenService
	store  Store
	logger *slog.Logger
	ttl    time.Duration
}

func NewService(tokens *TokenService, store Store, logger *slog.Logger, ttl time.Duration) *Service {
	return &Service{tokens: tokens, store: store, logger: logger, ttl: ttl}
}

// Mint creates a session for a verified volunteer and returns the signed token.
func (s *Service) Mint(ctx context.Context, volunteerEmail string) (string, error) {
	sessionID := uuid.NewString()
	token, err := s.tokens.Generate(volunteerEmail, sessionID, s.ttl)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "sign session token")
	}
	if s.store != nil {
		if err := s.store.Put(ctx, sessionID, volunteerEmail, s.ttl); err != nil {
			return "", dErrors.Wrap(err, dErrors.CodeUnavailable, "persist session")
		}
	}
	return token, nil
}

// Resolve validates a raw token and returns the volunteer email it belongs
// to. When the live-session store is reachable it must also confirm the
// session has not been revoked; when the store is down we fail closed.
func (s *Service) Resolve(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", dErrors.New(dErrors.CodeUnauthorized, "session token is required")
	}
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return "", err
	}
	if s.store != nil {
		live, err := s.store.IsLive(ctx, claims.SessionID)
		if err != nil {
			s.logger.ErrorContext(ctx, "session store unreachable", "error", err.Error())
			return "", dErrors.Wrap(err, dErrors.CodeUnavailable, "session store unreachable")
		}
		if !live {
			return "", dErrors.New(dErrors.CodeUnauthorized, "session has been revoked or expired")
		}
	}
	return claims.VolunteerEmail, nil
}

// Revoke ends a session by token.
func (s *Service) Revoke(ctx context.Context, token string) error {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return err
	}
	if s.store == nil {
		return nil
	}
	return s.store.Revoke(ctx, claims.SessionID)
}

// ValidateToken implements middleware.SessionValidator for bearer-header
// clients.
func (s *Service) ValidateToken(tokenString string) (*middleware.SessionClaims, error) {
	claims, err := s.tokens.Parse(tokenString)
	if err != nil {
		return nil, err
	}
	if s.store != nil {
		live, err := s.store.IsLive(context.Background(), claims.SessionID)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "session store unreachable")
		}
		if !live {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "session has been revoked or expired")
		}
	}
	return &middleware.SessionClaims{
		VolunteerEmail: claims.VolunteerEmail,
		SessionID:      claims.SessionID,
	}, nil
}
