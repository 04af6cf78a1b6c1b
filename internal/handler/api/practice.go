package api

import (
	"errors"
	"net/http"

	reqdto "studysync-api/internal/handler/dto/request"
	resdto "studysync-api/internal/handler/dto/response"
	"studysync-api/internal/handler/httperr"
	"studysync-api/internal/handler/middleware"
	"studysync-api/internal/usecase/commands"
	"studysync-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PracticeHandler struct {
	practiceCommands commands.PracticeCommands
	practiceQueries  queries.PracticeQueries
}

func NewPracticeHandler(practiceCommands commands.PracticeCommands, practiceQueries queries.PracticeQueries) *PracticeHandler {
	return &PracticeHandler{
		practiceCommands: practiceCommands,
		practiceQueries:  practiceQueries,
	}
}

// @Summary Start practice session
// @Description Start a timed flashcard practice run
// @Tags practice
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.StartPracticeRequest true "Session request"
// @Success 201 {object} resdto.PracticeSessionResponse
// @Failure 400 {object} httperr.Response
// @Router /practice-sessions [post]
func (h *PracticeHandler) StartSession(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error", nil)
		return
	}

	var req reqdto.StartPracticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	view, err := h.practiceCommands.StartSession(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, commands.ErrDomainValidation) {
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Session validation failed", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromPracticeSessionView(view))
}

// @Summary Get practice session
// @Description Get a session with its attempts and summary
// @Tags practice
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} resdto.PracticeSessionResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /practice-sessions/{id} [get]
func (h *PracticeHandler) GetSession(c *gin.Context) {
	userID, id, ok := h.sessionRequest(c)
	if !ok {
		return
	}

	view, err := h.practiceQueries.GetSession(c.Request.Context(), userID, id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrPracticeSessionNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Practice session not found", nil)
		case errors.Is(err, queries.ErrNotSessionOwner):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Practice session belongs to another user", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromPracticeSessionView(view))
}

// @Summary Pause practice session
// @Tags practice
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} resdto.PracticeSessionResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /practice-sessions/{id}/pause [post]
func (h *PracticeHandler) PauseSession(c *gin.Context) {
	userID, id, ok := h.sessionRequest(c)
	if !ok {
		return
	}

	view, err := h.practiceCommands.PauseSession(c.Request.Context(), id, userID)
	if err != nil {
		h.writeSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromPracticeSessionView(view))
}

// @Summary Resume practice session
// @Tags practice
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} resdto.PracticeSessionResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /practice-sessions/{id}/resume [post]
func (h *PracticeHandler) ResumeSession(c *gin.Context) {
	userID, id, ok := h.sessionRequest(c)
	if !ok {
		return
	}

	view, err := h.practiceCommands.ResumeSession(c.Request.Context(), id, userID)
	if err != nil {
		h.writeSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromPracticeSessionView(view))
}

// @Summary Record practice attempt
// @Description Record one card's outcome; re-answering a card replaces the earlier outcome
// @Tags practice
// @Accept json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param request body reqdto.RecordAttemptRequest true "Attempt"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /practice-sessions/{id}/attempts [post]
func (h *PracticeHandler) RecordAttempt(c *gin.Context) {
	userID, id, ok := h.sessionRequest(c)
	if !ok {
		return
	}

	var req reqdto.RecordAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	if err := h.practiceCommands.RecordAttempt(c.Request.Context(), id, userID, req); err != nil {
		if errors.Is(err, commands.ErrAttemptInvalid) {
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid attempt payload", nil)
			return
		}
		h.writeSessionError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Complete practice session
// @Description Reconcile the final attempt batch and freeze the session summary
// @Tags practice
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param request body reqdto.CompletePracticeRequest true "Final attempt batch"
// @Success 200 {object} resdto.PracticeSessionResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /practice-sessions/{id}/complete [post]
func (h *PracticeHandler) CompleteSession(c *gin.Context) {
	userID, id, ok := h.sessionRequest(c)
	if !ok {
		return
	}

	var req reqdto.CompletePracticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	view, err := h.practiceCommands.CompleteSession(c.Request.Context(), id, userID, req)
	if err != nil {
		if errors.Is(err, commands.ErrAttemptInvalid) {
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid attempt payload", nil)
			return
		}
		h.writeSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromPracticeSessionView(view))
}

func (h *PracticeHandler) sessionRequest(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error", nil)
		return uuid.Nil, uuid.Nil, false
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid session ID", nil)
		return uuid.Nil, uuid.Nil, false
	}
	return userID, id, true
}

func (h *PracticeHandler) writeSessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrSessionNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Practice session not found", nil)
	case errors.Is(err, commands.ErrNotSessionOwner):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Practice session belongs to another user", nil)
	case errors.Is(err, commands.ErrSessionStateInvalid):
		httperr.AbortWithError(c, http.StatusConflict, err, "Session is not in a valid state for this operation", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
