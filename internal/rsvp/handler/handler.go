package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"volunteerhub/internal/platform/metrics"
	"volunteerhub/internal/platform/middleware"
	"volunteerhub/internal/rsvp"
	"volunteerhub/internal/volunteer"
	dErrors "volunteerhub/pkg/domain-errors"
	"volunteerhub/pkg/platform/httputil"
	"volunteerhub/pkg/platform/sentinel"
	"volunteerhub/pkg/requestcontext"
)

// Service is the registration core as the HTTP layer sees it.
type Service interface {
	Submit(ctx context.Context, identity rsvp.Identity, req *rsvp.SubmitRequest) (*rsvp.SubmitResponse, error)
	Check(ctx context.Context, eventID, callerEmail string) (*rsvp.CheckResponse, error)
	Cancel(ctx context.Context, requesterEmail string, req *rsvp.CancelRequest) (*rsvp.CancelResponse, error)
}

// SessionResolver turns a raw session token into a verified volunteer email.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (string, error)
}

// VolunteerDirectory supplies the dependents for a verified volunteer.
type VolunteerDirectory interface {
	GetVolunteer(ctx context.Context, email string) (*volunteer.Volunteer, error)
	ListDependents(ctx context.Context, volunteerEmail string) ([]volunteer.Dependent, error)
}

// Handler exposes the RSVP endpoints. Legacy static-site clients send the
// session token in the JSON body; modern clients use a bearer header, which
// the session middleware resolves before the handler runs.
type Handler struct {
	service    Service
	sessions   SessionResolver
	volunteers VolunteerDirectory
	validator  middleware.SessionValidator
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

func New(
	service Service,
	sessions SessionResolver,
	volunteers VolunteerDirectory,
	validator middleware.SessionValidator,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Handler {
	return &Handler{
		service:    service,
		sessions:   sessions,
		volunteers: volunteers,
		validator:  validator,
		logger:     logger,
		metrics:    m,
	}
}

// Register mounts the RSVP routes with their middleware chain.
func (h *Handler) Register(r chi.Router) {
	api := chi.NewRouter()
	api.Use(middleware.Recovery(h.logger))
	api.Use(middleware.RequestID)
	api.Use(middleware.Metadata)
	api.Use(middleware.Logger(h.logger))
	api.Use(middleware.Timeout(30 * time.Second))
	api.Use(middleware.ContentTypeJSON)
	if h.metrics != nil {
		api.Use(middleware.Latency(h.metrics))
	}

	api.Post("/rsvp", h.handleSubmit)
	api.Post("/rsvp/check", h.handleCheck)
	api.Post("/rsvp/cancel", h.handleCancel)

	api.Group(func(g chi.Router) {
		g.Use(middleware.RequireSession(h.validator, h.logger))
		g.Get("/me", h.handleMe)
	})

	r.Mount("/api", api)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req rsvp.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	identity, err := h.resolveIdentity(ctx, req.SessionToken)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	resp, err := h.service.Submit(ctx, identity, &req)
	if err != nil {
		h.logOutcome(ctx, "submit rejected", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		EventID string `json:"event_id"`
		Email   string `json:"email,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	resp, err := h.service.Check(ctx, req.EventID, req.Email)
	if err != nil {
		h.logOutcome(ctx, "check failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req rsvp.CancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	identity, err := h.resolveIdentity(ctx, req.SessionToken)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	resp, err := h.service.Cancel(ctx, identity.Email, &req)
	if err != nil {
		h.logOutcome(ctx, "cancel rejected", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// handleMe returns the authenticated volunteer and their dependents, which
// the UI needs to render the attendee picker.
func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	email := requestcontext.VolunteerEmail(ctx)
	if email == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "authentication context error"))
		return
	}

	vol, err := h.volunteers.GetVolunteer(ctx, email)
	if err != nil && !errorsIsNotFound(err) {
		h.logOutcome(ctx, "volunteer lookup failed", err)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeUnavailable, "volunteer lookup failed"))
		return
	}

	deps, err := h.volunteers.ListDependents(ctx, email)
	if err != nil {
		h.logOutcome(ctx, "dependent lookup failed", err)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeUnavailable, "dependent lookup failed"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"email":      email,
		"volunteer":  vol,
		"dependents": deps,
	})
}

// resolveIdentity prefers the session middleware's verdict (bearer header),
// then falls back to the body token legacy clients send.
func (h *Handler) resolveIdentity(ctx context.Context, bodyToken string) (rsvp.Identity, error) {
	email := requestcontext.VolunteerEmail(ctx)
	if email == "" {
		resolved, err := h.sessions.Resolve(ctx, bodyToken)
		if err != nil {
			return rsvp.Identity{}, err
		}
		email = resolved
	}

	deps, err := h.volunteers.ListDependents(ctx, email)
	if err != nil {
		return rsvp.Identity{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "dependent lookup failed")
	}
	return rsvp.Identity{Email: email, Dependents: deps}, nil
}

func (h *Handler) logOutcome(ctx context.Context, msg string, err error) {
	code := dErrors.CodeOf(err)
	if code == dErrors.CodeInternal || code == dErrors.CodeUnavailable {
		h.logger.ErrorContext(ctx, msg,
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		return
	}
	h.logger.WarnContext(ctx, msg,
		"request_id", requestcontext.RequestID(ctx),
		"code", string(code),
		"error", err.Error(),
	)
}

func errorsIsNotFound(err error) bool {
	return err != nil && (dErrors.HasCode(err, dErrors.CodeNotFound) || errors.Is(err, sentinel.ErrNotFound))
}
