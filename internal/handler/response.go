package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/CaptainFAHIM/uni-ride/internal/repository"
	"github.com/CaptainFAHIM/uni-ride/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
// Unexpected errors are logged and flattened to a generic message.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	code := mapErrorToHTTPStatus(err)
	if code == http.StatusInternalServerError {
		if logger != nil {
			logger.Error("request failed",
				zap.String("path", c.FullPath()),
				zap.String("method", c.Request.Method),
				zap.Error(err))
		}
		c.JSON(code, ErrorResponse{Error: "failed, try again"})
		return
	}
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrMissingFields),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrInvalidSeatCount),
		errors.Is(err, service.ErrInvalidFare),
		errors.Is(err, service.ErrMissingCardFields):
		return http.StatusBadRequest

	// Missing or unresolvable session
	case errors.Is(err, service.ErrNotAuthenticated),
		errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Membership gate is distinct from ownership failures
	case errors.Is(err, service.ErrMembershipExpired):
		return http.StatusPaymentRequired

	// Role and ownership errors
	case errors.Is(err, service.ErrNotRider),
		errors.Is(err, service.ErrNotRideOwner):
		return http.StatusForbidden

	// Conflict errors
	case errors.Is(err, service.ErrEmailTaken):
		return http.StatusConflict

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
