package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/foodgram/foodgram-backend/internal/http/response"
	"github.com/foodgram/foodgram-backend/internal/pkg/logger"
	"github.com/foodgram/foodgram-backend/internal/services"
)

type RecipeHandler struct {
	log              *logger.Logger
	recipeService    services.RecipeService
	favoriteService  services.FavoriteService
	shortLinkService services.ShortLinkService
}

func NewRecipeHandler(
	log *logger.Logger,
	recipeService services.RecipeService,
	favoriteService services.FavoriteService,
	shortLinkService services.ShortLinkService,
) *RecipeHandler {
	return &RecipeHandler{
		log:              log.With("handler", "RecipeHandler"),
		recipeService:    recipeService,
		favoriteService:  favoriteService,
		shortLinkService: shortLinkService,
	}
}

func recipeIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusNotFound, "not_found", err)
		return uuid.Nil, false
	}
	return id, true
}

// GET /api/recipes/
func (h *RecipeHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)
	filter := services.RecipeListFilter{Offset: offset, Limit: limit}

	if author := c.Query("author"); author != "" {
		authorID, err := uuid.Parse(author)
		if err != nil {
			response.RespondOK(c, paginatedBody(c, 0, []any{}))
			return
		}
		filter.AuthorID = authorID
	}
	if tags := c.QueryArray("tags"); len(tags) > 0 {
		filter.TagSlugs = tags
	}
	if c.Query("is_favorited") == "1" {
		filter.OnlyFavorited = true
	}
	switch c.Query("is_in_shopping_cart") {
	case "1":
		yes := true
		filter.InCart = &yes
	case "0":
		no := false
		filter.InCart = &no
	}

	views, total, err := h.recipeService.ListRecipes(c.Request.Context(), filter)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, paginatedBody(c, total, views))
}

// GET /api/recipes/:id/
func (h *RecipeHandler) Get(c *gin.Context) {
	id, ok := recipeIDParam(c)
	if !ok {
		return
	}
	view, err := h.recipeService.GetRecipe(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, view)
}

// POST /api/recipes/
func (h *RecipeHandler) Create(c *gin.Context) {
	var input services.RecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	view, err := h.recipeService.CreateRecipe(c.Request.Context(), &input)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, view)
}

// PATCH /api/recipes/:id/
func (h *RecipeHandler) Update(c *gin.Context) {
	id, ok := recipeIDParam(c)
	if !ok {
		return
	}
	var input services.RecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	view, err := h.recipeService.UpdateRecipe(c.Request.Context(), id, &input)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, view)
}

// DELETE /api/recipes/:id/
func (h *RecipeHandler) Delete(c *gin.Context) {
	id, ok := recipeIDParam(c)
	if !ok {
		return
	}
	if err := h.recipeService.DeleteRecipe(c.Request.Context(), id); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondNoContent(c)
}

// POST /api/recipes/:id/favorite/
func (h *RecipeHandler) AddFavorite(c *gin.Context) {
	id, ok := recipeIDParam(c)
	if !ok {
		return
	}
	view, err := h.favoriteService.AddFavorite(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, view)
}

// DELETE /api/recipes/:id/favorite/
func (h *RecipeHandler) RemoveFavorite(c *gin.Context) {
	id, ok := recipeIDParam(c)
	if !ok {
		return
	}
	if err := h.favoriteService.RemoveFavorite(c.Request.Context(), id); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondNoContent(c)
}

// GET /api/recipes/:id/get-link/
func (h *RecipeHandler) GetLink(c *gin.Context) {
	id, ok := recipeIDParam(c)
	if !ok {
		return
	}
	link, err := h.shortLinkService.GetOrCreateLink(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"short-link": link})
}

// GET /s/:code
func (h *RecipeHandler) ResolveShortLink(c *gin.Context) {
	code := strings.TrimSpace(c.Param("code"))
	recipeID, err := h.shortLinkService.Resolve(c.Request.Context(), code)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/api/recipes/"+recipeID.String()+"/")
}
