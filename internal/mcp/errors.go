package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/traffichours/internal/csvcodec"
	"github.com/rpggio/traffichours/internal/domain/activity"
	"github.com/rpggio/traffichours/internal/domain/record"
	"github.com/rpggio/traffichours/internal/repository"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	if e.RecoveryHint != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.RecoveryHint)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes. Unknown errors map to nil.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, record.ErrInvalidInput), errors.Is(err, activity.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error(), RecoveryHint: "date, start_time and end_time are required"}
	case errors.Is(err, record.ErrImportIncomplete):
		return &APIError{Code: "IMPORT_INCOMPLETE", Message: err.Error(), RecoveryHint: "Committed rows were kept; list_records shows what was stored"}
	case errors.Is(err, repository.ErrStorageUnavailable):
		return &APIError{Code: "STORAGE_UNAVAILABLE", Message: "storage unavailable", Details: err.Error(), RecoveryHint: "Check the database path and permissions"}
	case errors.Is(err, csvcodec.ErrUnreadableInput):
		return &APIError{Code: "UNREADABLE_INPUT", Message: "could not read CSV input", Details: err.Error()}
	default:
		return nil
	}
}

// toolError converts a service error into the error reported to the client.
func toolError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
