package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/foodgram/foodgram-backend/internal/http/response"
	"github.com/foodgram/foodgram-backend/internal/pkg/logger"
	"github.com/foodgram/foodgram-backend/internal/services"
)

type IngredientHandler struct {
	log               *logger.Logger
	ingredientService services.IngredientService
}

func NewIngredientHandler(log *logger.Logger, ingredientService services.IngredientService) *IngredientHandler {
	return &IngredientHandler{
		log:               log.With("handler", "IngredientHandler"),
		ingredientService: ingredientService,
	}
}

// GET /api/ingredients/?name=<prefix>
func (h *IngredientHandler) List(c *gin.Context) {
	ingredients, err := h.ingredientService.ListIngredients(c.Request.Context(), c.Query("name"))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, ingredients)
}

// GET /api/ingredients/:id/
func (h *IngredientHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusNotFound, "not_found", err)
		return
	}
	ingredient, err := h.ingredientService.GetIngredient(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, ingredient)
}
