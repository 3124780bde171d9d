package mcp

import (
	"context"
	"io"
	"log/slog"

	"github.com/rpggio/traffichours/internal/domain/activity"
	"github.com/rpggio/traffichours/internal/domain/record"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// RecordService defines record operations needed by MCP.
type RecordService interface {
	Add(ctx context.Context, in record.Input) (*record.Record, error)
	List(ctx context.Context) ([]record.Record, error)
	Delete(ctx context.Context, id int64) error
	Export(ctx context.Context) (record.ExportResult, error)
	Import(ctx context.Context, r io.Reader) (record.ImportResult, error)
	Search(ctx context.Context, query string, opts record.SearchOptions) ([]record.SearchResult, error)
}

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	GetRecentActivity(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Records  RecordService
	Activity ActivityService
}

// Config contains server configuration.
type Config struct {
	Services Services
	Version  string
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	version := cfg.Version
	if version == "" {
		version = "0.1.0"
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "traffichours",
		Version: version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Services)

	return server
}
