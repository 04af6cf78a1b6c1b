package api

import (
	"errors"
	"net/http"
	"time"

	"studysync-api/internal/domain/reservation"
	resdto "studysync-api/internal/handler/dto/response"
	"studysync-api/internal/handler/httperr"
	"studysync-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SeatHandler struct {
	roomQueries         queries.RoomQueries
	availabilityQueries queries.AvailabilityQueries
}

func NewSeatHandler(roomQueries queries.RoomQueries, availabilityQueries queries.AvailabilityQueries) *SeatHandler {
	return &SeatHandler{
		roomQueries:         roomQueries,
		availabilityQueries: availabilityQueries,
	}
}

// @Summary Seats in a room
// @Description List a room's seats with their active reservations
// @Tags seats
// @Produce json
// @Security BearerAuth
// @Param roomId path string true "Room ID"
// @Success 200 {array} resdto.SeatWithReservationsResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /seats/room/{roomId} [get]
func (h *SeatHandler) SeatsForRoom(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("roomId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid room ID", nil)
		return
	}

	seats, err := h.roomQueries.SeatsForRoom(c.Request.Context(), roomID)
	if err != nil {
		if errors.Is(err, queries.ErrRoomNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Room not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromSeatsWithReservations(seats))
}

// @Summary Booked seats for a window
// @Description List seat IDs with an active reservation overlapping the window
// @Tags seats
// @Produce json
// @Security BearerAuth
// @Param roomId path string true "Room ID"
// @Param start_time query string true "Window start (RFC3339)"
// @Param end_time query string true "Window end (RFC3339)"
// @Success 200 {object} resdto.BookedSeatsResponse
// @Failure 400 {object} httperr.Response
// @Router /seats/room/{roomId}/booked [get]
func (h *SeatHandler) BookedSeats(c *gin.Context) {
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

	view, err := h.availabilityQueries.BookedSeats(c.Request.Context(), roomID, slot)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	seatIDs := view.BookedSeatIDs
	if seatIDs == nil {
		seatIDs = []uuid.UUID{}
	}
	c.JSON(http.StatusOK, resdto.BookedSeatsResponse{BookedSeatIDs: seatIDs})
}

func parseWindow(c *gin.Context) (reservation.TimeSlot, error) {
	startRaw, endRaw := c.Query("start_time"), c.Query("end_time")
	if startRaw == "" || endRaw == "" {
		return reservation.TimeSlot{}, errors.New("start_time and end_time are required")
	}
	start, err := time.Parse(time.RFC3339, startRaw)
	if err != nil {
		return reservation.TimeSlot{}, errors.New("start_time must be RFC3339")
	}
	end, err := time.Parse(time.RFC3339, endRaw)
	if err != nil {
		return reservation.TimeSlot{}, errors.New("end_time must be RFC3339")
	}
	slot, err := reservation.NewTimeSlot(start, end)
	if err != nil {
		return reservation.TimeSlot{}, errors.New("start_time must be before end_time")
	}
	return slot, nil
}
