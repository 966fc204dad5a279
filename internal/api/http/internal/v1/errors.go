package v1

import (
	"errors"
	"net/http"

	"github.com/attendly/backend/internal/domain"
	"github.com/attendly/backend/internal/service"
	"github.com/attendly/backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ErrorStruct struct {
	Message string `json:"message"`
} // @name ErrorStruct

// serviceErrorResponse maps service sentinels onto HTTP statuses. Anything
// unmapped is a 500 with the detail suppressed outside dev.
func (h *Handler) serviceErrorResponse(c *gin.Context, err error) {
	var cooldown *service.CooldownError
	if errors.As(err, &cooldown) {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"message":             "please wait before requesting a new code",
			"retry_after_seconds": cooldown.Wait,
		})
		return
	}

	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrInvalidPin),
		errors.Is(err, service.ErrPinMismatch),
		errors.Is(err, service.ErrUserAlreadyExists),
		errors.Is(err, service.ErrCodeExpired),
		errors.Is(err, service.ErrCodeInvalid),
		errors.Is(err, service.ErrAlreadyCheckedIn),
		errors.Is(err, service.ErrBreakAlreadyOpen):
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorStruct{Message: err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrWrongOldPin):
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorStruct{Message: err.Error()})
	case errors.Is(err, service.ErrUserNotVerified):
		c.AbortWithStatusJSON(http.StatusForbidden, ErrorStruct{
			Message: "email not verified, a new verification code has been sent",
		})
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrCodeNotFound),
		errors.Is(err, domain.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, ErrorStruct{Message: err.Error()})
	case errors.Is(err, service.ErrTooManyAttempts):
		c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorStruct{Message: err.Error()})
	default:
		logger.Error("unhandled service error", zap.Error(err))
		msg := "internal server error"
		if h.config.Env == "dev" {
			msg = err.Error()
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorStruct{Message: msg})
	}
}
