package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/coachcenter/internal/app/models/dto"
	"github.com/yigit/coachcenter/internal/pkg/apperrors"
	"github.com/yigit/coachcenter/internal/pkg/logger"
)

// ServerErrorMessage is returned for every unexpected failure.
const ServerErrorMessage = "Server Error"

// StatusFor maps an error kind to its HTTP status
func StatusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest
	case apperrors.Is(err, apperrors.ErrUnauthorized, apperrors.ErrInvalidCredentials, apperrors.ErrTokenExpired, apperrors.ErrTokenInvalid):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// HandleAPIError handles common API errors and returns appropriate responses
func HandleAPIError(c *gin.Context, err error) {
	status := StatusFor(err)

	message := apperrors.Message(err, ServerErrorMessage)
	if status == http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Request failed")
		// Internal details stay in the log.
		if !errors.Is(err, apperrors.ErrInternal) {
			message = ServerErrorMessage
		}
	} else if message == ServerErrorMessage {
		message = http.StatusText(status)
	}

	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message))
}
