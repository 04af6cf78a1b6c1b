package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"studysync-api/internal/domain/reservation"
	reqdto "studysync-api/internal/handler/dto/request"
	resdto "studysync-api/internal/handler/dto/response"
	"studysync-api/internal/handler/httperr"
	"studysync-api/internal/usecase/commands"
	"studysync-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RoomHandler struct {
	roomQueries  queries.RoomQueries
	roomCommands commands.RoomCommands
}

func NewRoomHandler(roomQueries queries.RoomQueries, roomCommands commands.RoomCommands) *RoomHandler {
	return &RoomHandler{
		roomQueries:  roomQueries,
		roomCommands: roomCommands,
	}
}

// @Summary List library rooms
// @Description List rooms, optionally filtered and annotated with availability for a time window
// @Tags rooms
// @Produce json
// @Param q query string false "Match against room name or label"
// @Param min_capacity query int false "Minimum capacity"
// @Param features query string false "Comma-separated feature list"
// @Param room_type query string false "Room type substring"
// @Param start_time query string false "Window start (RFC3339), requires end_time"
// @Param end_time query string false "Window end (RFC3339)"
// @Success 200 {array} resdto.RoomListItemResponse
// @Failure 400 {object} httperr.Response
// @Router /library-rooms [get]
func (h *RoomHandler) ListRooms(c *gin.Context) {
	filter, err := parseRoomFilter(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
		return
	}

	rooms, err := h.roomQueries.List(c.Request.Context(), filter)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromRoomListItems(rooms))
}

// @Summary Get library room
// @Description Get a room with its seat layout
// @Tags rooms
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} resdto.RoomResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /library-rooms/{id} [get]
func (h *RoomHandler) GetRoom(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid room ID", nil)
		return
	}

	room, err := h.roomQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrRoomNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Room not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromRoomView(room))
}

// @Summary Create library room
// @Description Create a room (librarian or admin)
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateRoomRequest true "Room request"
// @Success 201 {object} resdto.RoomResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /library-rooms [post]
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req reqdto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	room, err := h.roomCommands.CreateRoom(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, commands.ErrDomainValidation) {
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Room validation failed", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromRoomView(room))
}

// @Summary Update library room
// @Description Update a room's attributes (librarian or admin)
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Param request body reqdto.UpdateRoomRequest true "Room patch"
// @Success 200 {object} resdto.RoomResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /library-rooms/{id} [patch]
func (h *RoomHandler) UpdateRoom(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid room ID", nil)
		return
	}

	var req reqdto.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	room, err := h.roomCommands.UpdateRoom(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrRoomNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Room not found", nil)
		case errors.Is(err, commands.ErrDomainValidation):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Room validation failed", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromRoomView(room))
}

// @Summary Add seats to a room
// @Description Create a batch of seats for a room (librarian or admin)
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Param request body reqdto.CreateSeatsRequest true "Seats request"
// @Success 201 {array} resdto.SeatResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /library-rooms/{id}/seats [post]
func (h *RoomHandler) CreateSeats(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid room ID", nil)
		return
	}

	var req reqdto.CreateSeatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	seats, err := h.roomCommands.CreateSeats(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrRoomNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Room not found", nil)
		case errors.Is(err, commands.ErrSeatSelectionInvalid):
			httperr.AbortWithError(c, http.StatusConflict, err, "Seat numbers conflict with existing seats", nil)
		case errors.Is(err, commands.ErrDomainValidation):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Seat validation failed", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromSeatViews(seats))
}

func parseRoomFilter(c *gin.Context) (queries.RoomFilter, error) {
	filter := queries.RoomFilter{
		Query:    c.Query("q"),
		RoomType: c.Query("room_type"),
	}

	if raw := c.Query("min_capacity"); raw != "" {
		minCapacity, err := strconv.Atoi(raw)
		if err != nil || minCapacity < 0 {
			return queries.RoomFilter{}, errors.New("min_capacity must be a non-negative integer")
		}
		filter.MinCapacity = minCapacity
	}

	if raw := c.Query("features"); raw != "" {
		filter.Features = strings.Split(raw, ",")
	}

	startRaw, endRaw := c.Query("start_time"), c.Query("end_time")
	if startRaw != "" || endRaw != "" {
		if startRaw == "" || endRaw == "" {
			return queries.RoomFilter{}, errors.New("start_time and end_time must be provided together")
		}
		start, err := time.Parse(time.RFC3339, startRaw)
		if err != nil {
			return queries.RoomFilter{}, errors.New("start_time must be RFC3339")
		}
		end, err := time.Parse(time.RFC3339, endRaw)
		if err != nil {
			return queries.RoomFilter{}, errors.New("end_time must be RFC3339")
		}
		slot, err := reservation.NewTimeSlot(start, end)
		if err != nil {
			return queries.RoomFilter{}, errors.New("start_time must be before end_time")
		}
		filter.Window = &slot
	}

	return filter, nil
}
