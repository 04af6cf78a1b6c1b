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

type ReservationHandler struct {
	reservationCommands commands.ReservationCommands
	reservationQueries  queries.ReservationQueries
	availabilityQueries queries.AvailabilityQueries
}

func NewReservationHandler(
	reservationCommands commands.ReservationCommands,
	reservationQueries queries.ReservationQueries,
	availabilityQueries queries.AvailabilityQueries,
) *ReservationHandler {
	return &ReservationHandler{
		reservationCommands: reservationCommands,
		reservationQueries:  reservationQueries,
		availabilityQueries: availabilityQueries,
	}
}

// @Summary Create reservation
// @Description Book a whole room or up to three seats for a time window
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {array} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /reservations [post]
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error", nil)
		return
	}

	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	views, err := h.reservationCommands.CreateBooking(c.Request.Context(), req, userID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrRoomNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Room not found", nil)
		case errors.Is(err, commands.ErrSeatNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "One or more seats not found in the room", nil)
		case errors.Is(err, commands.ErrInvalidTimeSlot):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid time slot", nil)
		case errors.Is(err, commands.ErrSlotConflict):
			httperr.AbortWithError(c, http.StatusConflict, err, "The requested slot is no longer available", nil)
		case errors.Is(err, commands.ErrBookingCapExceeded):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Active reservation limit reached", nil)
		case errors.Is(err, commands.ErrSeatSelectionInvalid):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid seat selection", nil)
		case errors.Is(err, commands.ErrDomainValidation):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Reservation validation failed", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromReservationViews(views))
}

// @Summary Get reservation
// @Description Get reservation by ID
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id} [get]
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation ID", nil)
		return
	}

	view, err := h.reservationQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrReservationNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary List my reservations
// @Description List the authenticated user's reservations, newest first
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.ReservationResponse
// @Failure 401 {object} httperr.Response
// @Router /reservations [get]
func (h *ReservationHandler) GetUserReservations(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error", nil)
		return
	}

	views, err := h.reservationQueries.ListByUser(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationViews(views))
}

// @Summary Cancel reservation
// @Description Delete a reservation, freeing its window immediately. Owners can cancel their own; librarians and admins can cancel any.
// @Tags reservations
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id} [delete]
func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error", nil)
		return
	}
	role, _ := middleware.GetUserRole(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation ID", nil)
		return
	}

	err = h.reservationCommands.Cancel(c.Request.Context(), id, userID, role)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrReservationNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
		case errors.Is(err, commands.ErrNotReservationOwner):
			httperr.AbortWithError(c, http.StatusForbidden, err, "You can only cancel your own reservations", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Check room availability
// @Description Report whether a room can take a new booking for a time window
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param roomId path string true "Room ID"
// @Param start_time query string true "Window start (RFC3339)"
// @Param end_time query string true "Window end (RFC3339)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/room/{roomId}/check-availability [get]
func (h *ReservationHandler) CheckAvailability(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("roomId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid room ID", nil)
		return
	}

	slot, err := parseWindow(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
		return
	}

	view, err := h.availabilityQueries.CheckRoom(c.Request.Context(), roomID, slot)
	if err != nil {
		if errors.Is(err, queries.ErrRoomNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Room not found", nil)
			return
		}
		// Fail closed: an availability failure is an error, never a yes.
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Availability check failed", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.AvailabilityResponse{Available: view.Available})
}

// @Summary Sweep reservation statuses
// @Description Advance reservation statuses past their window boundaries (librarian or admin)
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.SweepResponse
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /reservations/update-availability [post]
func (h *ReservationHandler) UpdateAvailability(c *gin.Context) {
	result, err := h.reservationCommands.SweepStatuses(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.SweepResponse{
		Occupied:  result.Occupied,
		Completed: result.Completed,
	})
}
