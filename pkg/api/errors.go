package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/thundertactical/thunder-ai-backend/pkg/services"
)

const (
	replyNoMessage      = "No message provided."
	replyInvalidRequest = "Invalid request body."
	replyTooLong        = "Message is too long."
	replyInternal       = "Error processing request."
)

// mapServiceError maps service-layer errors to a status code and a customer-safe reply.
func mapServiceError(err error) (int, string) {
	if errors.Is(err, services.ErrEmptyMessage) {
		return http.StatusBadRequest, replyNoMessage
	}
	var validErr *services.ValidationError
	if errors.As(err, &validErr) {
		return http.StatusBadRequest, validErr.Message
	}
	if errors.Is(err, services.ErrCompletionFailed) {
		return http.StatusInternalServerError, replyInternal
	}

	// Unexpected error
	slog.Error("Unexpected service error", "error", err)
	return http.StatusInternalServerError, replyInternal
}
