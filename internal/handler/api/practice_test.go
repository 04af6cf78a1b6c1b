//go:build unit

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"studysync-api/internal/handler/api"
	reqdto "studysync-api/internal/handler/dto/request"
	"studysync-api/internal/usecase/commands"
	"studysync-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type stubPracticeCommands struct {
	view *queries.PracticeSessionView
	err  error

	recorded []reqdto.RecordAttemptRequest
}

func (s *stubPracticeCommands) StartSession(_ context.Context, _ reqdto.StartPracticeRequest, _ uuid.UUID) (*queries.PracticeSessionView, error) {
	return s.view, s.err
}

func (s *stubPracticeCommands) PauseSession(context.Context, uuid.UUID, uuid.UUID) (*queries.PracticeSessionView, error) {
	return s.view, s.err
}

func (s *stubPracticeCommands) ResumeSession(context.Context, uuid.UUID, uuid.UUID) (*queries.PracticeSessionView, error) {
	return s.view, s.err
}

func (s *stubPracticeCommands) RecordAttempt(_ context.Context, _ uuid.UUID, _ uuid.UUID, req reqdto.RecordAttemptRequest) error {
	s.recorded = append(s.recorded, req)
	return s.err
}

func (s *stubPracticeCommands) CompleteSession(context.Context, uuid.UUID, uuid.UUID, reqdto.CompletePracticeRequest) (*queries.PracticeSessionView, error) {
	return s.view, s.err
}

type stubPracticeQueries struct {
	view *queries.PracticeSessionView
	err  error
}

func (s *stubPracticeQueries) GetSession(context.Context, uuid.UUID, uuid.UUID) (*queries.PracticeSessionView, error) {
	return s.view, s.err
}

type PracticeHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	commands *stubPracticeCommands
	queries  *stubPracticeQueries
	userID   uuid.UUID
}

func (s *PracticeHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.commands = &stubPracticeCommands{}
	s.queries = &stubPracticeQueries{}
	s.userID = uuid.New()

	handler := api.NewPracticeHandler(s.commands, s.queries)

	authed := s.router.Group("", func(c *gin.Context) {
		c.Set("user_id", s.userID)
	})
	authed.POST("/practice-sessions", handler.StartSession)
	authed.GET("/practice-sessions/:id", handler.GetSession)
	authed.POST("/practice-sessions/:id/pause", handler.PauseSession)
	authed.POST("/practice-sessions/:id/resume", handler.ResumeSession)
	authed.POST("/practice-sessions/:id/attempts", handler.RecordAttempt)
	authed.POST("/practice-sessions/:id/complete", handler.CompleteSession)
}

func TestPracticeHandlerSuite(t *testing.T) {
	suite.Run(t, new(PracticeHandlerTestSuite))
}

func (s *PracticeHandlerTestSuite) sessionView() *queries.PracticeSessionView {
	return &queries.PracticeSessionView{
		ID:        uuid.New(),
		UserID:    s.userID,
		SetName:   "biology midterm",
		CardCount: 20,
		Status:    "active",
		Attempts:  []queries.PracticeAttemptView{},
	}
}

func (s *PracticeHandlerTestSuite) TestStartSession() {
	s.Run("201 with the new session", func() {
		s.commands.view = s.sessionView()

		rec := s.perform(http.MethodPost, "/practice-sessions", map[string]any{
			"set_name":   "biology midterm",
			"card_count": 20,
		})

		s.Equal(http.StatusCreated, rec.Code)
		s.Contains(rec.Body.String(), "biology midterm")
	})

	s.Run("400 on missing card count", func() {
		rec := s.perform(http.MethodPost, "/practice-sessions", map[string]any{
			"set_name": "biology midterm",
		})
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("422 on domain validation failure", func() {
		s.commands.err = commands.ErrDomainValidation
		defer func() { s.commands.err = nil }()

		rec := s.perform(http.MethodPost, "/practice-sessions", map[string]any{
			"set_name":   " ",
			"card_count": 10,
		})
		s.Equal(http.StatusUnprocessableEntity, rec.Code)
	})
}

func (s *PracticeHandlerTestSuite) TestGetSession() {
	s.Run("200 for the owner", func() {
		s.queries.view = s.sessionView()

		rec := s.perform(http.MethodGet, "/practice-sessions/"+uuid.New().String(), nil)
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("403 for another user's session", func() {
		s.queries.err = queries.ErrNotSessionOwner
		defer func() { s.queries.err = nil }()

		rec := s.perform(http.MethodGet, "/practice-sessions/"+uuid.New().String(), nil)
		s.Equal(http.StatusForbidden, rec.Code)
	})

	s.Run("404 for unknown session", func() {
		s.queries.err = queries.ErrPracticeSessionNotFound
		defer func() { s.queries.err = nil }()

		rec := s.perform(http.MethodGet, "/practice-sessions/"+uuid.New().String(), nil)
		s.Equal(http.StatusNotFound, rec.Code)
	})
}

func (s *PracticeHandlerTestSuite) TestTransitions() {
	s.Run("pause returns the updated session", func() {
		view := s.sessionView()
		view.Status = "paused"
		s.commands.view = view

		rec := s.perform(http.MethodPost, "/practice-sessions/"+uuid.New().String()+"/pause", nil)

		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), `"status":"paused"`)
	})

	s.Run("409 on an invalid transition", func() {
		s.commands.err = commands.ErrSessionStateInvalid
		defer func() { s.commands.err = nil }()

		rec := s.perform(http.MethodPost, "/practice-sessions/"+uuid.New().String()+"/resume", nil)
		s.Equal(http.StatusConflict, rec.Code)
	})
}

func (s *PracticeHandlerTestSuite) TestRecordAttempt() {
	body := map[string]any{
		"card_index":   3,
		"flashcard_id": uuid.New().String(),
		"correct":      true,
		"response_ms":  1500,
	}

	s.Run("204 on success", func() {
		rec := s.perform(http.MethodPost, "/practice-sessions/"+uuid.New().String()+"/attempts", body)

		s.Equal(http.StatusNoContent, rec.Code)
		s.Len(s.commands.recorded, 1)
		s.Equal(3, s.commands.recorded[0].CardIndex)
	})

	s.Run("422 on an out-of-range card", func() {
		s.commands.err = commands.ErrAttemptInvalid
		defer func() { s.commands.err = nil }()

		rec := s.perform(http.MethodPost, "/practice-sessions/"+uuid.New().String()+"/attempts", body)
		s.Equal(http.StatusUnprocessableEntity, rec.Code)
	})
}

func (s *PracticeHandlerTestSuite) TestCompleteSession() {
	s.Run("200 with the frozen summary", func() {
		view := s.sessionView()
		view.Status = "completed"
		correct := 15
		accuracy := 0.75
		view.CorrectCount = &correct
		view.Accuracy = &accuracy
		s.commands.view = view

		rec := s.perform(http.MethodPost, "/practice-sessions/"+uuid.New().String()+"/complete", map[string]any{})

		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), `"accuracy":0.75`)
	})

	s.Run("409 when already completed", func() {
		s.commands.err = commands.ErrSessionStateInvalid
		defer func() { s.commands.err = nil }()

		rec := s.perform(http.MethodPost, "/practice-sessions/"+uuid.New().String()+"/complete", map[string]any{})
		s.Equal(http.StatusConflict, rec.Code)
	})
}

func (s *PracticeHandlerTestSuite) perform(method, url string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}
