package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/relaykit/relay/internal/core"
	"github.com/relaykit/relay/internal/store"
)

// APIHandlers provides HTTP handlers for the REST surface.
type APIHandlers struct {
	store    store.MessageStore
	presence *core.Presence
	log      *zerolog.Logger
}

// NewAPIHandlers creates a new API handlers instance.
func NewAPIHandlers(st store.MessageStore, presence *core.Presence, logger *zerolog.Logger) *APIHandlers {
	return &APIHandlers{
		store:    st,
		presence: presence,
		log:      logger,
	}
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// PresenceResponse lists currently connected display names.
type PresenceResponse struct {
	ConnectedUsers []string `json:"connectedUsers"`
}

// History returns all persisted messages in timestamp order.
// GET /api/history
func (h *APIHandlers) History(c *gin.Context) {
	records, err := h.store.ListMessages(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list history")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	history := make([]MessageResponse, 0, len(records))
	for _, rec := range records {
		history = append(history, MessageResponse{
			ID:            rec.ID,
			UserName:      rec.UserName,
			Message:       rec.Body,
			ProfilePicURL: rec.AvatarURL,
			Timestamp:     rec.CreatedAt.UnixMilli(),
		})
	}

	c.JSON(http.StatusOK, history)
}

// MessageResponse is a persisted message in REST responses. Mirrors the
// WebSocket record shape.
type MessageResponse struct {
	ID            int64  `json:"id"`
	UserName      string `json:"userName"`
	Message       string `json:"message"`
	ProfilePicURL string `json:"profilePicUrl"`
	Timestamp     int64  `json:"timestamp"`
}

// Presence returns the current presence snapshot.
// GET /api/presence
func (h *APIHandlers) Presence(c *gin.Context) {
	c.JSON(http.StatusOK, PresenceResponse{ConnectedUsers: h.presence.List()})
}
