// Package handler provides HTTP handlers for API endpoints.
package handler

import (
	"errors"

	"messagebox/internal/services"
	"messagebox/internal/transport/httpdto"
	mb_errors "messagebox/pkg/errors"

	"github.com/gin-gonic/gin"
)

// writeError emits the error envelope and records the error on the
// context for the logging middleware.
func writeError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(services.HTTPStatus(err), httpdto.NewErrorResponse(err.Error(), errorCode(err)))
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, mb_errors.ErrInvalidInput):
		return "INVALID_INPUT"
	case errors.Is(err, mb_errors.ErrInvalidParameter):
		return "INVALID_PARAMETER"
	case errors.Is(err, mb_errors.ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, mb_errors.ErrForbidden):
		return "FORBIDDEN"
	case errors.Is(err, mb_errors.ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, mb_errors.ErrAlreadyExists):
		return "ALREADY_EXISTS"
	case errors.Is(err, mb_errors.ErrRateLimited):
		return "RATE_LIMITED"
	default:
		return "INTERNAL_ERROR"
	}
}
