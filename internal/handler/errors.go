package handler

import (
	"errors"
	"net/http"

	"github.com/ShivaTejMatam/Blog-Platform/internal/dto"
	"github.com/ShivaTejMatam/Blog-Platform/internal/service"
	"github.com/gin-gonic/gin"
)

var (
	errNotAuthorized     = errors.New("user is not authorized")
	errInvalidPostID     = errors.New("invalid post ID")
	errInvalidUserID     = errors.New("invalid user ID")
	errInvalidID         = errors.New("invalid ID")
	errRateLimitExceeded = errors.New("rate limit exceeded")
)

func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError never exposes the text of unclassified errors.
func respondError(c *gin.Context, err error) {
	status := errorStatus(err)

	details := err.Error()
	if status == http.StatusInternalServerError {
		details = service.ErrInternal.Error()
	}

	c.AbortWithStatusJSON(status, dto.NewBasicResponse(false, details))
}
