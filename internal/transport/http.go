package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rpggio/traffichours/internal/csvcodec"
	"github.com/rpggio/traffichours/internal/domain/activity"
	"github.com/rpggio/traffichours/internal/domain/record"
)

// MaxImportBytes caps the size of an uploaded CSV file.
const MaxImportBytes = 10 << 20

// RecordService defines record operations served over HTTP.
type RecordService interface {
	Add(ctx context.Context, in record.Input) (*record.Record, error)
	List(ctx context.Context) ([]record.Record, error)
	Delete(ctx context.Context, id int64) error
	Export(ctx context.Context) (record.ExportResult, error)
	Import(ctx context.Context, r io.Reader) (record.ImportResult, error)
	Search(ctx context.Context, query string, opts record.SearchOptions) ([]record.SearchResult, error)
}

// ActivityService defines activity operations served over HTTP.
type ActivityService interface {
	GetRecentActivity(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

// Options configures optional parts of the router.
type Options struct {
	// MCP, when set, is mounted at /mcp.
	MCP    http.Handler
	Logger *slog.Logger
}

// Server wires HTTP handlers.
type Server struct {
	records  RecordService
	activity ActivityService
	logger   *slog.Logger
}

// NewServer creates an HTTP server router with middleware.
func NewServer(records RecordService, activitySvc ActivityService, opts Options) *chi.Mux {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	srv := &Server{records: records, activity: activitySvc, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(logger))

	r.Get("/health", srv.handleHealth)

	r.Route("/records", func(r chi.Router) {
		r.Get("/", srv.handleListRecords)
		r.Post("/", srv.handleAddRecord)
		r.Get("/export", srv.handleExport)
		r.Post("/import", srv.handleImport)
		r.Get("/search", srv.handleSearch)
		r.Delete("/{id}", srv.handleDeleteRecord)
	})

	if activitySvc != nil {
		r.Get("/activity", srv.handleActivity)
	}

	if opts.MCP != nil {
		r.Handle("/mcp", opts.MCP)
		r.Handle("/mcp/*", opts.MCP)
	}

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	recs, err := s.records.List(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func (s *Server) handleAddRecord(w http.ResponseWriter, r *http.Request) {
	var in record.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.respondError(w, r, fmt.Errorf("%w: %w", record.ErrInvalidInput, err))
		return
	}
	rec, err := s.records.Add(r.Context(), in)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		s.respondError(w, r, fmt.Errorf("%w: bad record id", record.ErrInvalidInput))
		return
	}
	if err := s.records.Delete(r.Context(), id); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	result, err := s.records.Export(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if result.Count == 0 {
		w.Header().Set("X-Message", result.Message)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": result.FileName}))
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, result.CSV)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxImportBytes)

	body := io.Reader(r.Body)
	if mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); strings.HasPrefix(mediaType, "multipart/") {
		file, _, err := r.FormFile("file")
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.respondImportError(w, r, record.ImportResult{}, fmt.Errorf("%w: %w", csvcodec.ErrUnreadableInput, err))
			return
		}
		if err != nil {
			s.respondError(w, r, fmt.Errorf("%w: missing file field: %w", record.ErrInvalidInput, err))
			return
		}
		defer file.Close()
		body = file
	}

	result, err := s.records.Import(r.Context(), body)
	if err != nil {
		s.respondImportError(w, r, result, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	results, err := s.records.Search(r.Context(), r.URL.Query().Get("q"), record.SearchOptions{Limit: limit, Offset: offset})
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	opts := activity.ListActivityOptions{Limit: limit}
	if t := r.URL.Query().Get("type"); t != "" {
		at := activity.ActivityType(t)
		opts.ActivityType = &at
	}
	entries, err := s.activity.GetRecentActivity(r.Context(), opts)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func queryInt(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: bad %s", record.ErrInvalidInput, key)
	}
	return n, nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
