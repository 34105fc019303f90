package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/foodgram/foodgram-backend/internal/services"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

func RespondNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// RespondServiceError maps the service error taxonomy onto HTTP statuses.
func RespondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, services.ErrUnauthorized):
		RespondError(c, http.StatusUnauthorized, "unauthorized", err)
	case errors.Is(err, services.ErrPermission):
		RespondError(c, http.StatusForbidden, "forbidden", err)
	case errors.Is(err, services.ErrConflict):
		RespondError(c, http.StatusBadRequest, "conflict", err)
	case errors.Is(err, services.ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
	case errors.Is(err, services.ErrDataIntegrity):
		RespondError(c, http.StatusInternalServerError, "data_integrity", err)
	default:
		RespondError(c, http.StatusInternalServerError, "internal", err)
	}
}
