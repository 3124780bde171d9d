package record

import (
	"context"
	"io"

	"github.com/rpggio/traffichours/internal/domain/activity"
)

// RecordRepository provides persistence for records.
type RecordRepository interface {
	Add(ctx context.Context, in Input) (int64, error)
	AddAll(ctx context.Context, ins []Input) ([]int64, error)
	GetAll(ctx context.Context) ([]Record, error)
	// Delete reports whether a row was removed.
	Delete(ctx context.Context, id int64) (bool, error)
}

// ActivityRepository logs record activities.
type ActivityRepository interface {
	Log(ctx context.Context, entry *activity.ActivityEntry) error
}

// SearchRepository performs full-text search over comments.
type SearchRepository interface {
	Search(ctx context.Context, query string, opts SearchOptions) ([]SearchResult, error)
}

// Codec converts between records and their CSV text form.
type Codec interface {
	Encode(records []Record) string
	Decode(r io.Reader) ([]Input, error)
}
