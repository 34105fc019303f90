package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/foodgram/foodgram-backend/internal/http/response"
	"github.com/foodgram/foodgram-backend/internal/pkg/logger"
	"github.com/foodgram/foodgram-backend/internal/services"
)

type ShoppingListHandler struct {
	log                 *logger.Logger
	shoppingListService services.ShoppingListService
}

func NewShoppingListHandler(log *logger.Logger, shoppingListService services.ShoppingListService) *ShoppingListHandler {
	return &ShoppingListHandler{
		log:                 log.With("handler", "ShoppingListHandler"),
		shoppingListService: shoppingListService,
	}
}

// POST /api/recipes/:id/shopping_cart/
func (h *ShoppingListHandler) Add(c *gin.Context) {
	id, ok := recipeIDParam(c)
	if !ok {
		return
	}
	view, err := h.shoppingListService.AddToCart(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, view)
}

// DELETE /api/recipes/:id/shopping_cart/
func (h *ShoppingListHandler) Remove(c *gin.Context) {
	id, ok := recipeIDParam(c)
	if !ok {
		return
	}
	if err := h.shoppingListService.RemoveFromCart(c.Request.Context(), id); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondNoContent(c)
}

// GET /api/recipes/download_shopping_cart/
func (h *ShoppingListHandler) Download(c *gin.Context) {
	body, err := h.shoppingListService.DownloadForCaller(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="shopping_list.txt"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(body))
}
