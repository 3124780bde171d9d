package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/rpggio/traffichours/internal/repository"
	"github.com/rpggio/traffichours/migrations"
	_ "modernc.org/sqlite"
)

const schemaFile = "001_initial_schema.up.sql"

// DB wraps a SQLite database connection. It is opened once and shared by
// every repository.
type DB struct {
	*sql.DB

	mu          sync.Mutex
	initialized bool
}

// New opens a SQLite database. Failure to open or reach the file is
// reported as repository.ErrStorageUnavailable.
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database: %w", repository.ErrStorageUnavailable, err)
	}

	// One connection: SQLite has a single writer and :memory: databases
	// exist per connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: failed to open database: %w", repository.ErrStorageUnavailable, err)
	}

	return &DB{DB: db}, nil
}

// Initialize creates the schema if it does not exist yet. Calling it again
// is a no-op, so repositories call it before every operation.
func (db *DB) Initialize(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.initialized {
		return nil
	}

	schema, err := migrations.FS.ReadFile(schemaFile)
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}
	if _, err := db.ExecContext(ctx, string(schema)); err != nil {
		return fmt.Errorf("%w: failed to initialize schema: %w", repository.ErrStorageUnavailable, err)
	}

	db.initialized = true
	return nil
}
