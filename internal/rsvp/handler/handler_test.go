package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"volunteerhub/internal/rsvp"
	"volunteerhub/internal/rsvp/handler/mocks"
	"volunteerhub/internal/volunteer"
	dErrors "volunteerhub/pkg/domain-errors"
	"volunteerhub/pkg/testutil"
)

//go:generate mockgen -source=handler.go -destination=mocks/rsvp_mocks.go -package=mocks Service,SessionResolver,VolunteerDirectory

type RSVPHandlerSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *RSVPHandlerSuite) SetupSuite() {
	s.ctx = context.Background()
}

func TestRSVPHandlerSuite(t *testing.T) {
	suite.Run(t, new(RSVPHandlerSuite))
}

type handlerFixture struct {
	handler    *Handler
	router     chi.Router
	service    *mocks.MockService
	sessions   *mocks.MockSessionResolver
	volunteers *mocks.MockVolunteerDirectory
}

func newTestHandler(t *testing.T) *handlerFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &handlerFixture{
		service:    mocks.NewMockService(ctrl),
		sessions:   mocks.NewMockSessionResolver(ctrl),
		volunteers: mocks.NewMockVolunteerDirectory(ctrl),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.handler = New(f.service, f.sessions, f.volunteers, nil, logger, nil)
	f.router = chi.NewRouter()
	f.handler.Register(f.router)
	return f
}


func (s *RSVPHandlerSuite) TestHandleSubmit_LegacyBodyToken() {
	f := newTestHandler(s.T())

	f.sessions.EXPECT().Resolve(gomock.Any(), "tok-123").Return("ada@example.org", nil)
	f.volunteers.EXPECT().ListDependents(gomock.Any(), "ada@example.org").Return(nil, nil)
	f.service.EXPECT().Submit(
		gomock.Any(),
		rsvp.Identity{Email: "ada@example.org"},
		gomock.Any(),
	).Return(&rsvp.SubmitResponse{
		Success: true,
		Message: "Successfully registered 1 attendee(s)",
		Results: []rsvp.AttendeeResult{{
			AttendeeID:   "ada@example.org",
			Status:       rsvp.StatusRegistered,
			AttendeeType: rsvp.AttendeeSelf,
		}},
		CurrentAttendance: 1,
		AttendanceCap:     50,
		Email:             "ada@example.org",
	}, nil)

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/rsvp", rsvp.SubmitRequest{
		SessionToken: "tok-123",
		EventID:      "evt-1",
		FirstName:    "Ada",
		LastName:     "Lovelace",
	})
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusOK, w.Code)
	var resp rsvp.SubmitResponse
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(s.T(), resp.Success)
	assert.Equal(s.T(), "ada@example.org", resp.Email)
	require.Len(s.T(), resp.Results, 1)
	assert.Equal(s.T(), rsvp.StatusRegistered, resp.Results[0].Status)
}

func (s *RSVPHandlerSuite) TestHandleSubmit_BearerContextWins() {
	f := newTestHandler(s.T())

	deps := []volunteer.Dependent{{ID: "dep-1", VolunteerEmail: "ada@example.org", FirstName: "Byron", LastName: "Lovelace", Age: 9}}
	f.volunteers.EXPECT().ListDependents(gomock.Any(), "ada@example.org").Return(deps, nil)
	f.service.EXPECT().Submit(
		gomock.Any(),
		rsvp.Identity{Email: "ada@example.org", Dependents: deps},
		gomock.Any(),
	).Return(&rsvp.SubmitResponse{Success: true}, nil)

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/rsvp", rsvp.SubmitRequest{EventID: "evt-1", Attendees: []rsvp.AttendeeInput{{Type: "self"}}})
	req = testutil.WithVolunteerEmail(req, "ada@example.org")

	w := httptest.NewRecorder()
	f.handler.handleSubmit(w, req)

	assert.Equal(s.T(), http.StatusOK, w.Code)
}

func (s *RSVPHandlerSuite) TestHandleSubmit_InvalidSession() {
	f := newTestHandler(s.T())

	f.sessions.EXPECT().Resolve(gomock.Any(), "bad-token").
		Return("", dErrors.New(dErrors.CodeUnauthorized, "invalid session"))

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/rsvp", rsvp.SubmitRequest{SessionToken: "bad-token", EventID: "evt-1"})
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), false, resp["success"])
	assert.Equal(s.T(), "unauthorized", resp["error"])
}

func (s *RSVPHandlerSuite) TestHandleSubmit_MalformedBody() {
	f := newTestHandler(s.T())

	req := httptest.NewRequest(http.MethodPost, "/api/rsvp", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func (s *RSVPHandlerSuite) TestHandleSubmit_CapacityError() {
	f := newTestHandler(s.T())

	f.sessions.EXPECT().Resolve(gomock.Any(), "tok").Return("ada@example.org", nil)
	f.volunteers.EXPECT().ListDependents(gomock.Any(), "ada@example.org").Return(nil, nil)
	f.service.EXPECT().Submit(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, dErrors.New(dErrors.CodeCapacity, "not enough remaining capacity").WithMeta("remaining", 1))

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/rsvp", rsvp.SubmitRequest{SessionToken: "tok", EventID: "evt-1", FirstName: "Ada", LastName: "L"})
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), "capacity", resp["error"])
	assert.Equal(s.T(), float64(1), resp["remaining"])
}

func (s *RSVPHandlerSuite) TestHandleCheck_Anonymous() {
	f := newTestHandler(s.T())

	f.service.EXPECT().Check(gomock.Any(), "evt-1", "").
		Return(&rsvp.CheckResponse{Success: true, RSVPCount: 7}, nil)

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/rsvp/check", map[string]string{"event_id": "evt-1"})
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusOK, w.Code)
	var resp rsvp.CheckResponse
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), 7, resp.RSVPCount)
	assert.False(s.T(), resp.UserRegistered)
	assert.Empty(s.T(), resp.UserRSVPs)
}

func (s *RSVPHandlerSuite) TestHandleCheck_WithEmail() {
	f := newTestHandler(s.T())

	created := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	f.service.EXPECT().Check(gomock.Any(), "evt-1", "ada@example.org").
		Return(&rsvp.CheckResponse{
			Success:        true,
			RSVPCount:      7,
			UserRegistered: true,
			UserRSVPs: []rsvp.RegistrationView{{
				AttendeeID:   "ada@example.org",
				AttendeeType: rsvp.AttendeeSelf,
				FirstName:    "Ada",
				LastName:     "Lovelace",
				CreatedAt:    created,
			}},
		}, nil)

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/rsvp/check", map[string]string{"event_id": "evt-1", "email": "ada@example.org"})
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusOK, w.Code)
	var resp rsvp.CheckResponse
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(s.T(), resp.UserRegistered)
	require.Len(s.T(), resp.UserRSVPs, 1)
	assert.Equal(s.T(), "Ada", resp.UserRSVPs[0].FirstName)
}

func (s *RSVPHandlerSuite) TestHandleCancel() {
	f := newTestHandler(s.T())

	f.sessions.EXPECT().Resolve(gomock.Any(), "tok").Return("ada@example.org", nil)
	f.volunteers.EXPECT().ListDependents(gomock.Any(), "ada@example.org").Return(nil, nil)
	f.service.EXPECT().Cancel(gomock.Any(), "ada@example.org", gomock.Any()).
		Return(&rsvp.CancelResponse{
			Success:      true,
			Message:      "RSVP cancelled",
			AttendeeID:   "dep-1",
			AttendeeType: rsvp.AttendeeDependent,
		}, nil)

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/rsvp/cancel", rsvp.CancelRequest{
		SessionToken: "tok",
		EventID:      "evt-1",
		AttendeeID:   "dep-1",
		AttendeeType: rsvp.AttendeeDependent,
	})
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusOK, w.Code)
	var resp rsvp.CancelResponse
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(s.T(), resp.Success)
	assert.Equal(s.T(), "dep-1", resp.AttendeeID)
}

func (s *RSVPHandlerSuite) TestHandleCancel_NotOwner() {
	f := newTestHandler(s.T())

	f.sessions.EXPECT().Resolve(gomock.Any(), "tok").Return("eve@example.org", nil)
	f.volunteers.EXPECT().ListDependents(gomock.Any(), "eve@example.org").Return(nil, nil)
	f.service.EXPECT().Cancel(gomock.Any(), "eve@example.org", gomock.Any()).
		Return(nil, dErrors.New(dErrors.CodeForbidden, "registration belongs to another volunteer"))

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/rsvp/cancel", rsvp.CancelRequest{SessionToken: "tok", EventID: "evt-1", AttendeeID: "ada@example.org"})
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusForbidden, w.Code)
}

func (s *RSVPHandlerSuite) TestHandleMe() {
	f := newTestHandler(s.T())

	f.volunteers.EXPECT().GetVolunteer(gomock.Any(), "ada@example.org").
		Return(&volunteer.Volunteer{Email: "ada@example.org", FirstName: "Ada", LastName: "Lovelace"}, nil)
	f.volunteers.EXPECT().ListDependents(gomock.Any(), "ada@example.org").
		Return([]volunteer.Dependent{{ID: "dep-1", VolunteerEmail: "ada@example.org", FirstName: "Byron"}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req = testutil.WithVolunteerEmail(req, "ada@example.org")
	w := httptest.NewRecorder()
	f.handler.handleMe(w, req)

	assert.Equal(s.T(), http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), "ada@example.org", resp["email"])
	assert.Len(s.T(), resp["dependents"], 1)
}
