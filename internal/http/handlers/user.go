package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/foodgram/foodgram-backend/internal/domain"
	"github.com/foodgram/foodgram-backend/internal/http/response"
	"github.com/foodgram/foodgram-backend/internal/pkg/logger"
	"github.com/foodgram/foodgram-backend/internal/requestdata"
	"github.com/foodgram/foodgram-backend/internal/services"
)

type UserHandler struct {
	log           *logger.Logger
	authService   services.AuthService
	userService   services.UserService
	avatarService services.AvatarService
}

func NewUserHandler(
	log *logger.Logger,
	authService services.AuthService,
	userService services.UserService,
	avatarService services.AvatarService,
) *UserHandler {
	return &UserHandler{
		log:           log.With("handler", "UserHandler"),
		authService:   authService,
		userService:   userService,
		avatarService: avatarService,
	}
}

// POST /api/users/
func (h *UserHandler) Register(c *gin.Context) {
	var req struct {
		Email     string `json:"email"`
		Username  string `json:"username"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Password  string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	user := &types.User{
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	}
	if err := h.authService.RegisterUser(c.Request.Context(), user); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{
		"id":         user.ID,
		"email":      user.Email,
		"username":   user.Username,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
	})
}

// GET /api/users/
func (h *UserHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)
	views, total, err := h.userService.ListUsers(c.Request.Context(), offset, limit)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, paginatedBody(c, total, views))
}

// GET /api/users/:id/
func (h *UserHandler) Get(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusNotFound, "not_found", err)
		return
	}
	view, err := h.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, view)
}

// GET /api/users/me/
func (h *UserHandler) Me(c *gin.Context) {
	view, err := h.userService.Me(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, view)
}

// POST /api/users/set_password/
func (h *UserHandler) SetPassword(c *gin.Context) {
	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := h.authService.SetPassword(c.Request.Context(), req.CurrentPassword, req.NewPassword); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondNoContent(c)
}

// PUT /api/users/me/avatar/
// Accepts a base64 data-url body or a multipart "avatar" file.
func (h *UserHandler) PutAvatar(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	user, err := h.userService.GetModel(c.Request.Context(), rd.UserID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}

	raw, err := h.readAvatarPayload(c)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := h.avatarService.SetFromImage(c.Request.Context(), nil, user, raw); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"avatar": user.AvatarURL})
}

func (h *UserHandler) readAvatarPayload(c *gin.Context) ([]byte, error) {
	contentType := c.GetHeader("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		file, err := c.FormFile("avatar")
		if err != nil {
			return nil, err
		}
		f, err := file.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(f)
	}

	var req struct {
		Avatar string `json:"avatar"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	raw, _, err := services.DecodeDataURL(req.Avatar)
	return raw, err
}

// DELETE /api/users/me/avatar/
func (h *UserHandler) DeleteAvatar(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	user, err := h.userService.GetModel(c.Request.Context(), rd.UserID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	if err := h.avatarService.Remove(c.Request.Context(), nil, user); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondNoContent(c)
}
