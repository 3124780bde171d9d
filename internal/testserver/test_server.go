package testserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rpggio/traffichours/internal/csvcodec"
	"github.com/rpggio/traffichours/internal/domain/activity"
	"github.com/rpggio/traffichours/internal/domain/record"
	"github.com/rpggio/traffichours/internal/mcp"
	"github.com/rpggio/traffichours/internal/sqlite"
	"github.com/rpggio/traffichours/internal/transport"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

// TestServer runs the full HTTP stack, MCP endpoint included, over a
// database file in a temporary directory.
type TestServer struct {
	Server  *httptest.Server
	DB      *sqlite.DB
	DBPath  string
	Records *record.Service
}

// Options tweaks the stack built by New.
type Options struct {
	AtomicImport bool
}

func New(t *testing.T, opts Options) *TestServer {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "traffichours.db")
	db, err := sqlite.New(dbPath)
	require.NoError(t, err)
	require.NoError(t, db.Initialize(context.Background()))

	recordRepo := sqlite.NewRecordRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)
	searchRepo := sqlite.NewSearchRepository(db)

	activitySvc := activity.NewService(activityRepo, nil)
	recordSvc := record.NewService(recordRepo, activityRepo, searchRepo, csvcodec.Codec{}, record.ImportOptions{Atomic: opts.AtomicImport}, nil)

	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{Records: recordSvc, Activity: activitySvc},
	})
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return mcpServer },
		nil,
	)

	server := httptest.NewServer(transport.NewServer(recordSvc, activitySvc, transport.Options{MCP: mcpHandler}))

	ts := &TestServer{
		Server:  server,
		DB:      db,
		DBPath:  dbPath,
		Records: recordSvc,
	}

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return ts
}

// Connect opens an MCP client session against the server's /mcp endpoint.
func (ts *TestServer) Connect(t *testing.T) *sdkmcp.ClientSession {
	t.Helper()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(context.Background(), &sdkmcp.StreamableClientTransport{
		Endpoint: ts.Server.URL + "/mcp",
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}
