package rsvp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"volunteerhub/internal/audit"
	"volunteerhub/internal/rsvp/metrics"
	dErrors "volunteerhub/pkg/domain-errors"
	pkgemail "volunteerhub/pkg/email"
	"volunteerhub/pkg/platform/sentinel"
	"volunteerhub/pkg/requestcontext"
)

// AuditEmitter receives registration activity events. Emission is
// fire-and-forget; it can never fail a request.
type AuditEmitter interface {
	Emit(ctx context.Context, event audit.Event)
}

// Service orchestrates the three registration operations. It is stateless
// between calls; the store owns all shared mutable state.
type Service struct {
	store   Store
	cache   *CountCache
	auditor AuditEmitter
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

func NewService(store Store, cache *CountCache, auditor AuditEmitter, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		store:   store,
		cache:   cache,
		auditor: auditor,
		logger:  logger,
		metrics: m,
		tracer:  otel.Tracer("volunteerhub/rsvp"),
	}
}

// Submit registers every not-yet-registered attendee of the request, or
// nothing. Attendees already registered are silently excluded unless they are
// the whole request. The store's transaction re-validates capacity at commit
// time; the pre-check here exists to fail fast with a precise message.
func (s *Service) Submit(ctx context.Context, identity Identity, req *SubmitRequest) (*SubmitResponse, error) {
	ctx, span := s.tracer.Start(ctx, "rsvp.Submit",
		trace.WithAttributes(attribute.String("event.id", req.EventID)))
	defer span.End()

	if req.EventID == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "event_id is required")
	}

	attendees, err := NormalizeAttendees(req, identity)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("attendees.requested", len(attendees)))

	event, err := s.resolveEvent(ctx, req)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.LiveAttendeeIDs(ctx, req.EventID)
	if err != nil {
		return nil, s.storeError(ctx, err, "read live registrations")
	}

	toRegister, alreadyRegistered := partitionAttendees(attendees, existing)
	if len(toRegister) == 0 {
		s.metrics.IncDuplicateRejections()
		s.emit(ctx, identity, req.EventID, audit.ActionSubmit, audit.OutcomeDuplicate,
			attendeeIDs(alreadyRegistered), "all attendees already registered")
		return nil, dErrors.New(dErrors.CodeDuplicate, "everyone selected is already registered for this event").
			WithMeta("already_registered", attendeeIDs(alreadyRegistered))
	}

	// Pre-check. All-or-nothing at the submission level: a batch that does
	// not fully fit is rejected, never trimmed to the remaining slots.
	if event.Attendance+len(toRegister) > event.Capacity {
		s.metrics.IncCapacityRejections("pre")
		s.emit(ctx, identity, req.EventID, audit.ActionSubmit, audit.OutcomeCapacityRejected,
			attendeeIDs(toRegister), "insufficient remaining capacity")
		return nil, dErrors.New(dErrors.CodeCapacity, "the event does not have enough open slots").
			WithMeta("remaining", event.Remaining())
	}

	now := requestcontext.Now(ctx).UTC()
	regs := make([]Registration, len(toRegister))
	for i, a := range toRegister {
		reg := Registration{
			EventID:      req.EventID,
			AttendeeID:   a.ID,
			AttendeeType: a.Type,
			FirstName:    a.FirstName,
			LastName:     a.LastName,
			OwnerEmail:   pkgemail.Normalize(identity.Email),
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if a.Type == AttendeeDependent {
			age := a.Age
			reg.AgeAtRegistration = &age
		}
		regs[i] = reg
	}

	if err := s.store.CreateAll(ctx, req.EventID, regs); err != nil {
		return nil, s.createAllError(ctx, identity, req.EventID, toRegister, err)
	}

	s.metrics.AddRegistrations(len(regs))
	s.cache.Invalidate(ctx, req.EventID)
	s.emit(ctx, identity, req.EventID, audit.ActionSubmit, audit.OutcomeRegistered,
		attendeeIDs(toRegister), "")
	s.logger.InfoContext(ctx, "registrations committed",
		"request_id", requestcontext.RequestID(ctx),
		"event_id", req.EventID,
		"registered", len(toRegister),
		"already_registered", len(alreadyRegistered),
	)

	resp := &SubmitResponse{
		Success:           true,
		Message:           submitMessage(len(toRegister), len(alreadyRegistered)),
		Results:           buildResults(attendees, existing),
		CurrentAttendance: event.Attendance + len(toRegister),
		AttendanceCap:     event.Capacity,
	}
	if req.Legacy() {
		resp.Email = pkgemail.Normalize(identity.Email)
	}
	return resp, nil
}

// Check reports the live attendance count and, when an email is supplied, the
// union of that volunteer's own registration and their dependents'
// registrations for the event.
func (s *Service) Check(ctx context.Context, eventID, callerEmail string) (*CheckResponse, error) {
	ctx, span := s.tracer.Start(ctx, "rsvp.Check",
		trace.WithAttributes(attribute.String("event.id", eventID)))
	defer span.End()

	if eventID == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "event_id is required")
	}

	resp := &CheckResponse{Success: true}

	count, cached := s.cache.Get(ctx, eventID)
	if !cached {
		event, err := s.store.GetEvent(ctx, eventID)
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			count = 0
		case err != nil:
			return nil, s.storeError(ctx, err, "read event")
		default:
			count = event.Attendance
			s.cache.Set(ctx, eventID, count)
		}
	}
	resp.RSVPCount = count

	if callerEmail == "" {
		return resp, nil
	}
	callerEmail = pkgemail.Normalize(callerEmail)

	var (
		own   *Registration
		owned []Registration
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		reg, err := s.store.FindRegistration(gctx, eventID, callerEmail)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return nil
			}
			return err
		}
		own = reg
		return nil
	})
	g.Go(func() error {
		regs, err := s.store.ListByOwner(gctx, eventID, callerEmail)
		if err != nil {
			if errors.Is(err, sentinel.ErrIndexUnavailable) {
				// Availability over completeness: serve the volunteer's own
				// registration and say so in the log, loudly.
				s.metrics.IncIndexDegradations()
				s.logger.WarnContext(gctx, "owner index unavailable, serving degraded check response",
					"request_id", requestcontext.RequestID(gctx),
					"event_id", eventID,
					"error", err.Error(),
				)
				return nil
			}
			return err
		}
		owned = regs
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, s.storeError(ctx, err, "aggregate registrations")
	}

	merged := mergeRegistrations(own, owned)
	resp.UserRegistered = own != nil
	resp.UserRSVPs = make([]RegistrationView, 0, len(merged))
	for _, reg := range merged {
		resp.UserRSVPs = append(resp.UserRSVPs, viewOf(reg))
	}
	return resp, nil
}

// Cancel removes exactly one registration after an ownership check, with the
// attendance decrement in the same store transaction as the delete.
func (s *Service) Cancel(ctx context.Context, requesterEmail string, req *CancelRequest) (*CancelResponse, error) {
	ctx, span := s.tracer.Start(ctx, "rsvp.Cancel",
		trace.WithAttributes(attribute.String("event.id", req.EventID)))
	defer span.End()

	if req.EventID == "" || req.AttendeeID == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "event_id and attendee_id are required")
	}
	requesterEmail = pkgemail.Normalize(requesterEmail)

	reg, err := s.store.FindRegistration(ctx, req.EventID, req.AttendeeID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "no registration found for this attendee")
		}
		return nil, s.storeError(ctx, err, "load registration")
	}

	if reg.OwnerEmail != requesterEmail {
		s.emit(ctx, Identity{Email: requesterEmail}, req.EventID, audit.ActionCancel, audit.OutcomeDenied,
			[]string{req.AttendeeID}, "requester does not own the registration")
		return nil, dErrors.New(dErrors.CodeForbidden, "only the registering volunteer can cancel this registration")
	}

	if err := s.store.DeleteRegistration(ctx, req.EventID, reg.AttendeeID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			// Raced with another cancel for the same record.
			return nil, dErrors.New(dErrors.CodeNotFound, "no registration found for this attendee")
		}
		return nil, s.storeError(ctx, err, "delete registration")
	}

	s.metrics.IncCancellations()
	s.cache.Invalidate(ctx, req.EventID)
	s.emit(ctx, Identity{Email: requesterEmail}, req.EventID, audit.ActionCancel, audit.OutcomeCancelled,
		[]string{reg.AttendeeID}, "")

	resp := &CancelResponse{
		Success:      true,
		Message:      "registration cancelled",
		AttendeeID:   reg.AttendeeID,
		AttendeeType: reg.AttendeeType,
	}
	if event, err := s.store.GetEvent(ctx, req.EventID); err == nil && event.StartsAt != nil {
		hours := time.Until(*event.StartsAt).Hours()
		resp.HoursBeforeEvent = &hours
	}
	return resp, nil
}

func (s *Service) resolveEvent(ctx context.Context, req *SubmitRequest) (*Event, error) {
	if req.AttendanceCap > 0 {
		event, err := s.store.EnsureEvent(ctx, req.EventID, req.AttendanceCap, req.EventStartsAt)
		if err != nil {
			return nil, s.storeError(ctx, err, "ensure event")
		}
		return event, nil
	}
	event, err := s.store.GetEvent(ctx, req.EventID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeValidation, "unknown event and no attendance_cap supplied")
		}
		return nil, s.storeError(ctx, err, "read event")
	}
	return event, nil
}

func (s *Service) createAllError(ctx context.Context, identity Identity, eventID string, toRegister []Attendee, err error) error {
	var capErr *CapacityExceededError
	if errors.As(err, &capErr) {
		s.metrics.IncCapacityRejections("commit")
		s.emit(ctx, identity, eventID, audit.ActionSubmit, audit.OutcomeCapacityRejected,
			attendeeIDs(toRegister), "capacity exceeded at commit")
		return dErrors.New(dErrors.CodeCapacityCommit, "the event filled up while processing this submission").
			WithMeta("remaining", capErr.Remaining)
	}
	var conflictErr *ConflictError
	if errors.As(err, &conflictErr) {
		s.metrics.IncCommitConflicts()
		s.emit(ctx, identity, eventID, audit.ActionSubmit, audit.OutcomeConflict,
			conflictErr.AttendeeIDs, "attendee concurrently registered")
		return dErrors.New(dErrors.CodeConflict, "someone in this submission was just registered by another request; please retry").
			WithMeta("conflicting", conflictErr.AttendeeIDs)
	}
	return s.storeError(ctx, err, "commit registration batch")
}

func (s *Service) storeError(ctx context.Context, err error, action string) error {
	s.logger.ErrorContext(ctx, "store operation failed",
		"request_id", requestcontext.RequestID(ctx),
		"action", action,
		"error", err.Error(),
	)
	return dErrors.Wrap(err, dErrors.CodeUnavailable, fmt.Sprintf("%s: store unavailable", action))
}

func (s *Service) emit(ctx context.Context, identity Identity, eventID, action, outcome string, ids []string, reason string) {
	if s.auditor == nil {
		return
	}
	s.auditor.Emit(ctx, audit.Event{
		Action:         action,
		Outcome:        outcome,
		VolunteerEmail: pkgemail.Normalize(identity.Email),
		EventID:        eventID,
		AttendeeIDs:    ids,
		Reason:         reason,
	})
}

func submitMessage(registered, duplicates int) string {
	if duplicates == 0 {
		return fmt.Sprintf("registered %d attendee(s)", registered)
	}
	return fmt.Sprintf("registered %d attendee(s); %d already registered", registered, duplicates)
}

// buildResults emits one entry per originally-requested attendee, preserving
// request order, so callers get a per-person outcome even though the write
// was all-or-nothing for the new subset.
func buildResults(attendees []Attendee, existing map[string]struct{}) []AttendeeResult {
	results := make([]AttendeeResult, len(attendees))
	for i, a := range attendees {
		status := StatusRegistered
		if _, ok := existing[a.ID]; ok {
			status = StatusAlreadyRegistered
		}
		results[i] = AttendeeResult{
			AttendeeID:   a.ID,
			Status:       status,
			AttendeeType: a.Type,
		}
	}
	return results
}

func mergeRegistrations(own *Registration, owned []Registration) []Registration {
	seen := make(map[string]struct{}, len(owned)+1)
	var merged []Registration
	if own != nil {
		merged = append(merged, *own)
		seen[own.AttendeeID] = struct{}{}
	}
	for _, reg := range owned {
		if _, dup := seen[reg.AttendeeID]; dup {
			continue
		}
		seen[reg.AttendeeID] = struct{}{}
		merged = append(merged, reg)
	}
	return merged
}

func viewOf(reg Registration) RegistrationView {
	view := RegistrationView{
		AttendeeID:   reg.AttendeeID,
		AttendeeType: reg.AttendeeType,
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		Age:          reg.AgeAtRegistration,
		CreatedAt:    reg.CreatedAt,
	}
	if view.FirstName == "" && view.LastName == "" {
		// Legacy rows from before names were captured.
		view.FirstName, view.LastName = pkgemail.DeriveNameFromEmail(reg.OwnerEmail)
	}
	return view
}
