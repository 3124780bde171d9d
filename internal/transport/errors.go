package transport

import (
	"errors"
	"net/http"

	"github.com/rpggio/traffichours/internal/csvcodec"
	"github.com/rpggio/traffichours/internal/domain/activity"
	"github.com/rpggio/traffichours/internal/domain/record"
	"github.com/rpggio/traffichours/internal/logging"
	"github.com/rpggio/traffichours/internal/repository"
)

// ErrorResponse is the JSON body of every error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ImportErrorResponse reports a failed import together with the rows already committed.
type ImportErrorResponse struct {
	ErrorResponse
	Result record.ImportResult `json:"result"`
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, record.ErrInvalidInput), errors.Is(err, activity.ErrInvalidInput):
		return http.StatusBadRequest, "INVALID_INPUT"
	case errors.Is(err, csvcodec.ErrUnreadableInput):
		return http.StatusBadRequest, "UNREADABLE_INPUT"
	case errors.Is(err, repository.ErrStorageUnavailable):
		return http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE"
	case errors.Is(err, record.ErrImportIncomplete):
		return http.StatusInternalServerError, "IMPORT_INCOMPLETE"
	default:
		return http.StatusInternalServerError, "INTERNAL"
	}
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	s.logError(r, err, status, code)
	writeJSON(w, status, ErrorResponse{Error: err.Error(), Code: code})
}

func (s *Server) respondImportError(w http.ResponseWriter, r *http.Request, result record.ImportResult, err error) {
	status, code := classify(err)
	s.logError(r, err, status, code)
	writeJSON(w, status, ImportErrorResponse{
		ErrorResponse: ErrorResponse{Error: err.Error(), Code: code},
		Result:        result,
	})
}

func (s *Server) logError(r *http.Request, err error, status int, code string) {
	logging.FromContext(r.Context(), s.logger).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"code", code,
		"error", err,
	)
}
