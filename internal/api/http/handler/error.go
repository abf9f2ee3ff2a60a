package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/archia-server/internal/model"
)

// statusFor maps domain errors to an HTTP status and a message that is safe
// to show to end users.
func statusFor(err error) (int, string) {
	var vErr *model.ValidationError
	switch {
	case errors.As(err, &vErr):
		return http.StatusBadRequest, vErr.Error()
	case errors.Is(err, model.ErrValidation):
		return http.StatusBadRequest, "invalid request"
	case errors.Is(err, model.ErrUsernameConflict):
		return http.StatusConflict, "username is already taken"
	case errors.Is(err, model.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid username or password"
	case errors.Is(err, model.ErrUnauthenticated):
		return http.StatusUnauthorized, "authentication required"
	case errors.Is(err, model.ErrStoryNotFound):
		return http.StatusNotFound, "story not found"
	case errors.Is(err, model.ErrStorageUnavailable):
		return http.StatusServiceUnavailable, "service temporarily unavailable"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func handleError(c *gin.Context, err error) {
	status, msg := statusFor(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
