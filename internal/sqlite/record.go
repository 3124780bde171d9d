package sqlite

import (
	"context"

	"github.com/rpggio/traffichours/internal/domain/record"
)

// RecordRepository implements record.RecordRepository for SQLite
type RecordRepository struct {
	db *DB
}

// NewRecordRepository creates a new RecordRepository
func NewRecordRepository(db *DB) *RecordRepository {
	return &RecordRepository{db: db}
}

const insertRecord = `
	INSERT INTO records (date, start_time, end_time, comments)
	VALUES (?, ?, ?, ?)
`

// Add stores a record and returns its new ID. IDs increase monotonically
// and are never reused, even after deletion.
func (r *RecordRepository) Add(ctx context.Context, in record.Input) (int64, error) {
	if err := r.db.Initialize(ctx); err != nil {
		return 0, err
	}

	result, err := r.db.ExecContext(ctx, insertRecord, in.Date, in.StartTime, in.EndTime, in.Comments)
	if err != nil {
		return 0, wrapError("failed to add record", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, wrapError("failed to read record id", err)
	}

	return id, nil
}

// AddAll stores every record in one transaction. Either all records are
// stored or none are.
func (r *RecordRepository) AddAll(ctx context.Context, ins []record.Input) ([]int64, error) {
	if err := r.db.Initialize(ctx); err != nil {
		return nil, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, wrapError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertRecord)
	if err != nil {
		return nil, wrapError("failed to prepare insert", err)
	}
	defer stmt.Close()

	ids := make([]int64, 0, len(ins))
	for _, in := range ins {
		result, err := stmt.ExecContext(ctx, in.Date, in.StartTime, in.EndTime, in.Comments)
		if err != nil {
			return nil, wrapError("failed to add record", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return nil, wrapError("failed to read record id", err)
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(); err != nil {
		return nil, wrapError("failed to commit records", err)
	}

	return ids, nil
}

// GetAll returns every record in insertion order. An empty store yields an
// empty slice.
func (r *RecordRepository) GetAll(ctx context.Context) ([]record.Record, error) {
	if err := r.db.Initialize(ctx); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, date, start_time, end_time, comments
		FROM records
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, wrapError("failed to list records", err)
	}
	defer rows.Close()

	records := []record.Record{}
	for rows.Next() {
		var rec record.Record
		if err := rows.Scan(&rec.ID, &rec.Date, &rec.StartTime, &rec.EndTime, &rec.Comments); err != nil {
			return nil, wrapError("failed to scan record", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapError("error iterating record rows", err)
	}

	return records, nil
}

// Delete removes a record. Deleting an ID that does not exist is not an error.
func (r *RecordRepository) Delete(ctx context.Context, id int64) (bool, error) {
	if err := r.db.Initialize(ctx); err != nil {
		return false, err
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM records WHERE id = ?`, id)
	if err != nil {
		return false, wrapError("failed to delete record", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, wrapError("failed to delete record", err)
	}

	return n > 0, nil
}
