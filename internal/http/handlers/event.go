package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/foodgram/foodgram-backend/internal/http/response"
	"github.com/foodgram/foodgram-backend/internal/pkg/logger"
	"github.com/foodgram/foodgram-backend/internal/services"
)

type EventHandler struct {
	log          *logger.Logger
	eventService services.EventService
}

func NewEventHandler(log *logger.Logger, eventService services.EventService) *EventHandler {
	return &EventHandler{
		log:          log.With("handler", "EventHandler"),
		eventService: eventService,
	}
}

// POST /api/events/
func (h *EventHandler) Ingest(c *gin.Context) {
	var req struct {
		EventType string         `json:"event_type"`
		Payload   map[string]any `json:"payload"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := h.eventService.RecordForCaller(c.Request.Context(), req.EventType, req.Payload); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"ok": true})
}
