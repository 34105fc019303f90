package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/foodgram/foodgram-backend/internal/http/response"
	"github.com/foodgram/foodgram-backend/internal/pkg/logger"
	"github.com/foodgram/foodgram-backend/internal/services"
)

type SubscriptionHandler struct {
	log                 *logger.Logger
	subscriptionService services.SubscriptionService
}

func NewSubscriptionHandler(log *logger.Logger, subscriptionService services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{
		log:                 log.With("handler", "SubscriptionHandler"),
		subscriptionService: subscriptionService,
	}
}

func recipesLimitParam(c *gin.Context) int {
	if raw := c.Query("recipes_limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			return parsed
		}
	}
	return 0
}

// GET /api/users/subscriptions/
func (h *SubscriptionHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)
	views, total, err := h.subscriptionService.ListSubscriptions(c.Request.Context(), offset, limit, recipesLimitParam(c))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, paginatedBody(c, total, views))
}

// POST /api/users/:id/subscribe/
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	authorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusNotFound, "not_found", err)
		return
	}
	view, err := h.subscriptionService.Subscribe(c.Request.Context(), authorID, recipesLimitParam(c))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, view)
}

// DELETE /api/users/:id/subscribe/
func (h *SubscriptionHandler) Unsubscribe(c *gin.Context) {
	authorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusNotFound, "not_found", err)
		return
	}
	if err := h.subscriptionService.Unsubscribe(c.Request.Context(), authorID); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondNoContent(c)
}
