package record

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/rpggio/traffichours/internal/domain/activity"
)

// ExportFileName is the suggested name for exported CSV files.
const ExportFileName = "traffic_hours.csv"

// Informational outcomes reported when an operation has nothing to do.
const (
	MsgNoRecordsToExport = "No records available to export."
	MsgNoValidRecords    = "No valid records found in the CSV file."
)

// Service handles record business logic.
type Service struct {
	records    RecordRepository
	activities ActivityRepository
	search     SearchRepository
	codec      Codec
	opts       ImportOptions
	logger     *slog.Logger
}

// NewService creates a new record service.
func NewService(
	records RecordRepository,
	activities ActivityRepository,
	search SearchRepository,
	codec Codec,
	opts ImportOptions,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		records:    records,
		activities: activities,
		search:     search,
		codec:      codec,
		opts:       opts,
		logger:     logger,
	}
}

// Add validates and stores a new record.
func (s *Service) Add(ctx context.Context, in Input) (*Record, error) {
	if err := ValidateInput(in); err != nil {
		return nil, err
	}

	id, err := s.records.Add(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("adding record: %w", err)
	}

	rec := &Record{
		ID:        id,
		Date:      in.Date,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
		Comments:  in.Comments,
	}

	s.logActivity(ctx, &activity.ActivityEntry{
		ActivityType: activity.TypeRecordAdded,
		RecordID:     &rec.ID,
		Summary:      fmt.Sprintf("added record %d", rec.ID),
	})

	return rec, nil
}

// List returns every stored record in insertion order.
func (s *Service) List(ctx context.Context) ([]Record, error) {
	recs, err := s.records.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	return recs, nil
}

// Delete removes a record. Deleting an unknown id succeeds and logs nothing.
func (s *Service) Delete(ctx context.Context, id int64) error {
	deleted, err := s.records.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting record: %w", err)
	}
	if !deleted {
		return nil
	}

	s.logActivity(ctx, &activity.ActivityEntry{
		ActivityType: activity.TypeRecordDeleted,
		RecordID:     &id,
		Summary:      fmt.Sprintf("deleted record %d", id),
	})

	return nil
}

// Export encodes all stored records as CSV. An empty store is reported
// through the result message, not as an error.
func (s *Service) Export(ctx context.Context) (ExportResult, error) {
	recs, err := s.records.GetAll(ctx)
	if err != nil {
		return ExportResult{}, fmt.Errorf("exporting records: %w", err)
	}

	result := ExportResult{FileName: ExportFileName, Count: len(recs)}
	if len(recs) == 0 {
		result.Message = MsgNoRecordsToExport
		return result, nil
	}

	result.CSV = s.codec.Encode(recs)
	result.Message = fmt.Sprintf("Exported %d records.", len(recs))

	s.logActivity(ctx, &activity.ActivityEntry{
		ActivityType: activity.TypeRecordsExported,
		Summary:      fmt.Sprintf("exported %d records", len(recs)),
	})

	return result, nil
}

// Import decodes CSV text and stores every valid row. Malformed rows are
// dropped by the codec. Without the Atomic option rows are added one at a
// time, so a failure leaves earlier rows committed and the result reports
// how many made it.
func (s *Service) Import(ctx context.Context, r io.Reader) (ImportResult, error) {
	inputs, err := s.codec.Decode(r)
	if err != nil {
		return ImportResult{}, fmt.Errorf("decoding import: %w", err)
	}

	result := ImportResult{
		BatchID: uuid.NewString(),
		Parsed:  len(inputs),
	}
	logger := s.logger.With("batch_id", result.BatchID)

	if len(inputs) == 0 {
		result.Message = MsgNoValidRecords
		logger.Info("import found no valid records")
		return result, nil
	}

	if s.opts.Atomic {
		ids, err := s.records.AddAll(ctx, inputs)
		if err != nil {
			result.Message = "Import failed; no records were imported."
			logger.Error("atomic import failed", "parsed", result.Parsed, "error", err)
			return result, fmt.Errorf("importing records: %w", err)
		}
		result.Imported = len(ids)
	} else {
		for _, in := range inputs {
			if _, err := s.records.Add(ctx, in); err != nil {
				result.Message = fmt.Sprintf("Imported %d of %d records before an error occurred.", result.Imported, result.Parsed)
				logger.Error("import stopped", "imported", result.Imported, "parsed", result.Parsed, "error", err)
				s.logImport(ctx, result)
				return result, fmt.Errorf("%w: %d of %d records committed: %w", ErrImportIncomplete, result.Imported, result.Parsed, err)
			}
			result.Imported++
		}
	}

	result.Message = fmt.Sprintf("Successfully imported %d records.", result.Imported)
	logger.Info("import complete", "imported", result.Imported)
	s.logImport(ctx, result)

	return result, nil
}

// Search finds records whose comments match a full-text query.
func (s *Service) Search(ctx context.Context, query string, opts SearchOptions) ([]SearchResult, error) {
	if s.search == nil {
		return nil, fmt.Errorf("search not configured")
	}
	results, err := s.search.Search(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("searching records: %w", err)
	}
	return results, nil
}

func (s *Service) logImport(ctx context.Context, result ImportResult) {
	if result.Imported == 0 {
		return
	}
	details, _ := json.Marshal(map[string]int{
		"parsed":   result.Parsed,
		"imported": result.Imported,
	})
	s.logActivity(ctx, &activity.ActivityEntry{
		ActivityType: activity.TypeRecordsImported,
		BatchID:      result.BatchID,
		Summary:      fmt.Sprintf("imported %d records", result.Imported),
		Details:      string(details),
	})
}

// logActivity records an audit entry. Failures are logged and otherwise ignored.
func (s *Service) logActivity(ctx context.Context, entry *activity.ActivityEntry) {
	if s.activities == nil {
		return
	}
	if err := s.activities.Log(ctx, entry); err != nil {
		s.logger.Warn("failed to log activity", "type", entry.ActivityType, "error", err)
	}
}
