package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/foodgram/foodgram-backend/internal/http/response"
	"github.com/foodgram/foodgram-backend/internal/pkg/logger"
	"github.com/foodgram/foodgram-backend/internal/services"
)

type TagHandler struct {
	log        *logger.Logger
	tagService services.TagService
}

func NewTagHandler(log *logger.Logger, tagService services.TagService) *TagHandler {
	return &TagHandler{
		log:        log.With("handler", "TagHandler"),
		tagService: tagService,
	}
}

// GET /api/tags/
func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.tagService.ListTags(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, tags)
}

// GET /api/tags/:id/
func (h *TagHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusNotFound, "not_found", err)
		return
	}
	tag, err := h.tagService.GetTag(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, tag)
}
