package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rpggio/traffichours/internal/domain/activity"
	"github.com/rpggio/traffichours/internal/domain/record"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type AddRecordParams struct {
	Date      string `json:"date" jsonschema:"Date of the shift, for example 2024-01-05"`
	StartTime string `json:"start_time" jsonschema:"Start time, for example 08:00"`
	EndTime   string `json:"end_time" jsonschema:"End time, for example 16:30"`
	Comments  string `json:"comments,omitempty" jsonschema:"Free-text notes"`
}

type RecordResponse struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Comments  string `json:"comments"`
}

type AddRecordResponse struct {
	Record RecordResponse `json:"record"`
}

type ListRecordsParams struct{}

type ListRecordsResponse struct {
	Records []RecordResponse `json:"records"`
	Count   int              `json:"count"`
}

type DeleteRecordParams struct {
	ID int64 `json:"id" jsonschema:"Record id"`
}

type DeleteRecordResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

type ExportCSVParams struct{}

type ExportCSVResponse struct {
	FileName string `json:"file_name"`
	Count    int    `json:"count"`
	CSV      string `json:"csv,omitempty"`
	Message  string `json:"message"`
}

type ImportCSVParams struct {
	CSV string `json:"csv" jsonschema:"CSV text with a header line"`
}

type ImportCSVResponse struct {
	BatchID  string `json:"batch_id"`
	Parsed   int    `json:"parsed"`
	Imported int    `json:"imported"`
	Message  string `json:"message"`
}

type SearchRecordsParams struct {
	Query  string `json:"query" jsonschema:"Words to find in comments"`
	Limit  int    `json:"limit,omitempty" jsonschema:"Maximum number of results"`
	Offset int    `json:"offset,omitempty" jsonschema:"Offset for pagination"`
}

type SearchResultResponse struct {
	Record  RecordResponse `json:"record"`
	Rank    float64        `json:"rank"`
	Snippet string         `json:"snippet,omitempty"`
}

type SearchRecordsResponse struct {
	Results []SearchResultResponse `json:"results"`
}

type GetRecentActivityParams struct {
	RecordID *int64 `json:"record_id,omitempty" jsonschema:"Only activity for this record id"`
	Type     string `json:"type,omitempty" jsonschema:"Only this activity type: record_added, record_deleted, records_imported or records_exported"`
	Limit    int    `json:"limit,omitempty" jsonschema:"Maximum number of entries (default 20)"`
}

type ActivityEntryResponse struct {
	ID        int64  `json:"id"`
	Type      string `json:"type"`
	RecordID  *int64 `json:"record_id,omitempty"`
	BatchID   string `json:"batch_id,omitempty"`
	Summary   string `json:"summary"`
	Details   string `json:"details,omitempty"`
	CreatedAt string `json:"created_at"`
}

type GetRecentActivityResponse struct {
	Entries []ActivityEntryResponse `json:"entries"`
}

const defaultActivityLimit = 20

func registerTools(server *sdkmcp.Server, services Services) {
	records := services.Records

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_record",
		Description: "Store a time entry and return it with its assigned id",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in AddRecordParams) (*sdkmcp.CallToolResult, AddRecordResponse, error) {
		rec, err := records.Add(ctx, record.Input{
			Date:      in.Date,
			StartTime: in.StartTime,
			EndTime:   in.EndTime,
			Comments:  in.Comments,
		})
		if err != nil {
			return nil, AddRecordResponse{}, toolError(err)
		}
		return nil, AddRecordResponse{Record: toRecordResponse(*rec)}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_records",
		Description: "List every time entry in insertion order",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ ListRecordsParams) (*sdkmcp.CallToolResult, ListRecordsResponse, error) {
		recs, err := records.List(ctx)
		if err != nil {
			return nil, ListRecordsResponse{}, toolError(err)
		}
		resp := ListRecordsResponse{Records: make([]RecordResponse, 0, len(recs)), Count: len(recs)}
		for _, rec := range recs {
			resp.Records = append(resp.Records, toRecordResponse(rec))
		}
		return nil, resp, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_record",
		Description: "Delete a time entry by id; unknown ids are ignored",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in DeleteRecordParams) (*sdkmcp.CallToolResult, DeleteRecordResponse, error) {
		if err := records.Delete(ctx, in.ID); err != nil {
			return nil, DeleteRecordResponse{}, toolError(err)
		}
		return nil, DeleteRecordResponse{ID: in.ID, Message: fmt.Sprintf("Record %d deleted.", in.ID)}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "export_csv",
		Description: "Export every time entry as CSV text",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ ExportCSVParams) (*sdkmcp.CallToolResult, ExportCSVResponse, error) {
		result, err := records.Export(ctx)
		if err != nil {
			return nil, ExportCSVResponse{}, toolError(err)
		}
		return nil, ExportCSVResponse{
			FileName: result.FileName,
			Count:    result.Count,
			CSV:      result.CSV,
			Message:  result.Message,
		}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "import_csv",
		Description: "Import time entries from CSV text; malformed rows are skipped",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in ImportCSVParams) (*sdkmcp.CallToolResult, ImportCSVResponse, error) {
		result, err := records.Import(ctx, strings.NewReader(in.CSV))
		if err != nil {
			return nil, ImportCSVResponse{}, toolError(err)
		}
		return nil, ImportCSVResponse{
			BatchID:  result.BatchID,
			Parsed:   result.Parsed,
			Imported: result.Imported,
			Message:  result.Message,
		}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "search_records",
		Description: "Full-text search over record comments",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in SearchRecordsParams) (*sdkmcp.CallToolResult, SearchRecordsResponse, error) {
		results, err := records.Search(ctx, in.Query, record.SearchOptions{Limit: in.Limit, Offset: in.Offset})
		if err != nil {
			return nil, SearchRecordsResponse{}, toolError(err)
		}
		resp := SearchRecordsResponse{Results: make([]SearchResultResponse, 0, len(results))}
		for _, res := range results {
			resp.Results = append(resp.Results, SearchResultResponse{
				Record:  toRecordResponse(res.Record),
				Rank:    res.Rank,
				Snippet: res.Snippet,
			})
		}
		return nil, resp, nil
	})

	if services.Activity == nil {
		return
	}
	activities := services.Activity

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_recent_activity",
		Description: "List recent activity, newest first",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in GetRecentActivityParams) (*sdkmcp.CallToolResult, GetRecentActivityResponse, error) {
		opts := activity.ListActivityOptions{RecordID: in.RecordID, Limit: in.Limit}
		if opts.Limit == 0 {
			opts.Limit = defaultActivityLimit
		}
		if in.Type != "" {
			t := activity.ActivityType(in.Type)
			opts.ActivityType = &t
		}
		entries, err := activities.GetRecentActivity(ctx, opts)
		if err != nil {
			return nil, GetRecentActivityResponse{}, toolError(err)
		}
		resp := GetRecentActivityResponse{Entries: make([]ActivityEntryResponse, 0, len(entries))}
		for _, e := range entries {
			resp.Entries = append(resp.Entries, ActivityEntryResponse{
				ID:        e.ID,
				Type:      string(e.ActivityType),
				RecordID:  e.RecordID,
				BatchID:   e.BatchID,
				Summary:   e.Summary,
				Details:   e.Details,
				CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
			})
		}
		return nil, resp, nil
	})
}

func toRecordResponse(rec record.Record) RecordResponse {
	return RecordResponse{
		ID:        rec.ID,
		Date:      rec.Date,
		StartTime: rec.StartTime,
		EndTime:   rec.EndTime,
		Comments:  rec.Comments,
	}
}
