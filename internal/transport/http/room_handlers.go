package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/roomlog/internal/service/rooms"
)

// RoomHandlers provides HTTP handlers for the room directory.
type RoomHandlers struct {
	service *rooms.Service
	log     *zerolog.Logger
}

// NewRoomHandlers creates a new room handlers instance.
func NewRoomHandlers(svc *rooms.Service, logger *zerolog.Logger) *RoomHandlers {
	return &RoomHandlers{
		service: svc,
		log:     logger,
	}
}

// RoomRequest represents the create/update room request body.
type RoomRequest struct {
	Name string `json:"name" binding:"required"`
}

// ListRooms handles listing all rooms.
// GET /
// GET /rooms
func (h *RoomHandlers) ListRooms(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	h.log.Debug().Int("room_count", len(list)).Msg("rooms listed")
	c.JSON(http.StatusOK, roomsToResponse(list))
}

// CreateRoom handles room creation.
// POST /rooms
func (h *RoomHandlers) CreateRoom(c *gin.Context) {
	var req RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, h.log, err)
		return
	}

	room, err := h.service.Create(c.Request.Context(), req.Name)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	h.log.Info().Int64("room_id", room.ID).Str("room_name", room.Name).Msg("room created")
	c.JSON(http.StatusCreated, roomToResponse(room))
}

// ShowRoom handles fetching a single room.
// GET /rooms/:room_id
func (h *RoomHandlers) ShowRoom(c *gin.Context) {
	id, ok := h.roomID(c)
	if !ok {
		return
	}

	room, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, roomToResponse(room))
}

// UpdateRoom handles renaming a room.
// PATCH /rooms/:room_id
// PUT /rooms/:room_id
func (h *RoomHandlers) UpdateRoom(c *gin.Context) {
	id, ok := h.roomID(c)
	if !ok {
		return
	}

	var req RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, h.log, err)
		return
	}

	room, err := h.service.Update(c.Request.Context(), id, req.Name)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	h.log.Info().Int64("room_id", room.ID).Str("room_name", room.Name).Msg("room updated")
	c.JSON(http.StatusOK, roomToResponse(room))
}

// DeleteRoom handles deleting a room and its messages.
// DELETE /rooms/:room_id
func (h *RoomHandlers) DeleteRoom(c *gin.Context) {
	id, ok := h.roomID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		writeError(c, h.log, err)
		return
	}

	h.log.Info().Int64("room_id", id).Msg("room deleted")
	c.Status(http.StatusNoContent)
}

func (h *RoomHandlers) roomID(c *gin.Context) (int64, bool) {
	id, ok := parseID(c.Param("room_id"))
	if !ok {
		writeError(c, h.log, rooms.ErrRoomNotFound)
	}
	return id, ok
}
