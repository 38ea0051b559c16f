package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coopsuite/activity-log-ms/internal/httputil"
	"github.com/coopsuite/activity-log-ms/internal/metrics"
	"github.com/coopsuite/activity-log-ms/internal/models"
)

// Error code constants for standardized API responses.
const (
	ErrCodeInvalidRequest  = "invalid_request"
	ErrCodeValidationError = "validation_error"
	ErrCodeNotFound        = "not_found"
	ErrCodeInternalError   = "internal_error"
)

// respondError writes a standardized JSON error response, pulling the
// request ID from the Gin context (set by the request ID middleware).
func respondError(c *gin.Context, status int, code, message string) {
	metrics.ErrorsTotal.WithLabelValues(code).Inc()
	httputil.RespondError(c, status, code, message, "")
}

// respondServiceError maps service-layer errors onto HTTP responses:
// validation errors carry the offending field with a 400, missing
// records map to 404, everything else is a 500.
func respondServiceError(c *gin.Context, err error) {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		metrics.ErrorsTotal.WithLabelValues(ErrCodeValidationError).Inc()
		httputil.RespondError(c, http.StatusBadRequest, ErrCodeValidationError, verr.Message, verr.Field)

		return
	}

	if errors.Is(err, models.ErrRecordNotFound) {
		respondError(c, http.StatusNotFound, ErrCodeNotFound, "activity log record not found")

		return
	}

	respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal error")
}

// isExpectedError reports whether err is a normal caller-facing outcome
// rather than a fault.
func isExpectedError(err error) bool {
	var verr *models.ValidationError

	return errors.As(err, &verr) || errors.Is(err, models.ErrRecordNotFound)
}
