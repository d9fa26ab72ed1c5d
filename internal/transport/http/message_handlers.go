package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/roomlog/internal/service/messages"
)

// MessageHandlers provides HTTP handlers for the message log of a room.
type MessageHandlers struct {
	service *messages.Service
	log     *zerolog.Logger
}

// NewMessageHandlers creates a new message handlers instance.
func NewMessageHandlers(svc *messages.Service, logger *zerolog.Logger) *MessageHandlers {
	return &MessageHandlers{
		service: svc,
		log:     logger,
	}
}

// MessageRequest represents the create/update message request body.
type MessageRequest struct {
	Body string `json:"body" binding:"required"`
}

// ListMessages handles listing the messages of a room.
// GET /rooms/:room_id/messages
func (h *MessageHandlers) ListMessages(c *gin.Context) {
	roomID, ok := h.roomID(c)
	if !ok {
		return
	}

	list, err := h.service.List(c.Request.Context(), roomID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	h.log.Debug().Int64("room_id", roomID).Int("message_count", len(list)).Msg("messages listed")
	c.JSON(http.StatusOK, messagesToResponse(list))
}

// CreateMessage handles posting a message to a room.
// POST /rooms/:room_id/messages
func (h *MessageHandlers) CreateMessage(c *gin.Context) {
	roomID, ok := h.roomID(c)
	if !ok {
		return
	}

	var req MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, h.log, err)
		return
	}

	msg, err := h.service.Create(c.Request.Context(), roomID, req.Body)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	h.log.Info().Int64("room_id", roomID).Int64("message_id", msg.ID).Msg("message created")
	c.JSON(http.StatusCreated, messageToResponse(msg))
}

// ShowMessage handles fetching a single message.
// GET /rooms/:room_id/messages/:id
func (h *MessageHandlers) ShowMessage(c *gin.Context) {
	roomID, id, ok := h.ids(c)
	if !ok {
		return
	}

	msg, err := h.service.Get(c.Request.Context(), roomID, id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, messageToResponse(msg))
}

// UpdateMessage handles editing a message body.
// PATCH /rooms/:room_id/messages/:id
// PUT /rooms/:room_id/messages/:id
func (h *MessageHandlers) UpdateMessage(c *gin.Context) {
	roomID, id, ok := h.ids(c)
	if !ok {
		return
	}

	var req MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, h.log, err)
		return
	}

	msg, err := h.service.Update(c.Request.Context(), roomID, id, req.Body)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	h.log.Info().Int64("room_id", roomID).Int64("message_id", id).Msg("message updated")
	c.JSON(http.StatusOK, messageToResponse(msg))
}

// DeleteMessage handles deleting a message.
// DELETE /rooms/:room_id/messages/:id
func (h *MessageHandlers) DeleteMessage(c *gin.Context) {
	roomID, id, ok := h.ids(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), roomID, id); err != nil {
		writeError(c, h.log, err)
		return
	}

	h.log.Info().Int64("room_id", roomID).Int64("message_id", id).Msg("message deleted")
	c.Status(http.StatusNoContent)
}

func (h *MessageHandlers) roomID(c *gin.Context) (int64, bool) {
	id, ok := parseID(c.Param("room_id"))
	if !ok {
		writeError(c, h.log, messages.ErrRoomNotFound)
	}
	return id, ok
}

// ids resolves both path ids. A malformed message id maps to 0, which never
// resolves, so the service still reports a missing room first.
func (h *MessageHandlers) ids(c *gin.Context) (roomID, id int64, ok bool) {
	if roomID, ok = h.roomID(c); !ok {
		return 0, 0, false
	}
	id, _ = parseID(c.Param("id"))
	return roomID, id, true
}
