package errorhandler

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/plannivo/booking-api/internal/pkg/logger"
	"github.com/plannivo/booking-api/internal/pkg/response"
)

// HandleError logs err with the request logger and sends the error envelope.
// Server errors never leak err to the client.
func HandleError(ctx context.Context, w http.ResponseWriter, status int, code, message string, err error) {
	l := logger.FromContext(ctx)
	var event *zerolog.Event
	if status >= http.StatusInternalServerError {
		event = l.Error()
	} else {
		event = l.Warn()
	}
	if err != nil {
		event = event.Err(err)
	}
	event.
		Str("error_code", code).
		Int("status_code", status).
		Msg(message)

	response.Error(w, status, code, message)
}

// Internal logs err and answers 500
func Internal(ctx context.Context, w http.ResponseWriter, err error) {
	HandleError(ctx, w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", err)
}

// LogValidationError logs request validation failures
func LogValidationError(ctx context.Context, fieldErrors map[string]string) {
	logger.FromContext(ctx).Warn().
		Interface("validation_errors", fieldErrors).
		Msg("Validation error")
}

// LogExternalServiceError logs a failed call to an upstream service
func LogExternalServiceError(ctx context.Context, service, operation string, err error) {
	logger.FromContext(ctx).Error().
		Str("external_service", service).
		Str("operation", operation).
		Err(err).
		Msg("External service error")
}
