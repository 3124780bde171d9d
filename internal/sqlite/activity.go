package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/rpggio/traffichours/internal/domain/activity"
)

// ActivityRepository implements activity.Repository for SQLite
type ActivityRepository struct {
	db *DB
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Log inserts a new activity entry
func (r *ActivityRepository) Log(ctx context.Context, entry *activity.ActivityEntry) error {
	if err := r.db.Initialize(ctx); err != nil {
		return err
	}

	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	var batchID sql.NullString
	if entry.BatchID != "" {
		batchID = sql.NullString{String: entry.BatchID, Valid: true}
	}

	query := `
		INSERT INTO activity_log (
			activity_type, record_id, batch_id, summary, details, created_at
		) VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		entry.ActivityType,
		entry.RecordID,
		batchID,
		entry.Summary,
		entry.Details,
		createdAt,
	)
	if err != nil {
		return wrapError("failed to log activity", err)
	}

	id, err := result.LastInsertId()
	if err == nil {
		entry.ID = id
	}
	entry.CreatedAt = createdAt

	return nil
}

// List returns activity entries matching the given filters, newest first
func (r *ActivityRepository) List(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	if err := r.db.Initialize(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, activity_type, record_id, batch_id, summary, details, created_at
		FROM activity_log
	`

	args := []interface{}{}
	conditions := []string{}

	if opts.RecordID != nil {
		conditions = append(conditions, "record_id = ?")
		args = append(args, *opts.RecordID)
	}
	if opts.ActivityType != nil {
		conditions = append(conditions, "activity_type = ?")
		args = append(args, *opts.ActivityType)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY id DESC"

	// SQLite needs a LIMIT before OFFSET; -1 means no limit.
	switch {
	case opts.Limit > 0:
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	case opts.Offset > 0:
		query += " LIMIT -1"
	}
	if opts.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, opts.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapError("failed to list activity", err)
	}
	defer rows.Close()

	entries := []activity.ActivityEntry{}
	for rows.Next() {
		var entry activity.ActivityEntry
		var recordID sql.NullInt64
		var batchID sql.NullString
		if err := rows.Scan(
			&entry.ID,
			&entry.ActivityType,
			&recordID,
			&batchID,
			&entry.Summary,
			&entry.Details,
			&entry.CreatedAt,
		); err != nil {
			return nil, wrapError("failed to scan activity entry", err)
		}
		if recordID.Valid {
			id := recordID.Int64
			entry.RecordID = &id
		}
		entry.BatchID = batchID.String
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapError("error iterating activity rows", err)
	}

	return entries, nil
}
