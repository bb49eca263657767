package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BerylCAtieno/romantic-brand-builder/internal/interview"
	"github.com/BerylCAtieno/romantic-brand-builder/internal/models"
	"github.com/BerylCAtieno/romantic-brand-builder/internal/profiler"
	"github.com/BerylCAtieno/romantic-brand-builder/internal/session"
)

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var verr *models.ValidationError
	switch {
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, interview.ErrBusy),
		errors.Is(err, session.ErrGenerationInFlight),
		errors.Is(err, session.ErrNoResult):
		return http.StatusConflict
	case errors.Is(err, interview.ErrToneRequired):
		return http.StatusUnprocessableEntity
	case errors.Is(err, profiler.ErrNotConfigured):
		return http.StatusServiceUnavailable
	case errors.Is(err, profiler.ErrEmptyResponse),
		errors.Is(err, profiler.ErrMalformedResponse),
		errors.Is(err, profiler.ErrGenerationFailed):
		return http.StatusBadGateway
	// Checked after the profiler errors, which may wrap a ValidationError.
	case errors.Is(err, interview.ErrUnknownField),
		errors.Is(err, interview.ErrInvalidTone),
		errors.Is(err, interview.ErrImageIndexOutOfRange),
		errors.As(err, &verr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// attachError records err on the context so the request log carries it.
func attachError(c *gin.Context, err error) {
	if err != nil {
		_ = c.Error(err) //nolint:errcheck
	}
}

func respondError(c *gin.Context, status int, message string, err error) {
	attachError(c, err)
	c.JSON(status, gin.H{"error": message})
}

// respondDomainError picks the status from err and uses its text as the message.
func respondDomainError(c *gin.Context, err error) {
	respondError(c, statusFor(err), err.Error(), err)
}
