package sqlite

import (
	"context"
	"strings"

	"github.com/rpggio/traffichours/internal/domain/record"
)

// SearchRepository implements record.SearchRepository for SQLite
type SearchRepository struct {
	db *DB
}

// NewSearchRepository creates a new SearchRepository
func NewSearchRepository(db *DB) *SearchRepository {
	return &SearchRepository{db: db}
}

// Search performs a full-text search over record comments. Every word of
// query must appear; FTS operators in query are matched literally.
func (r *SearchRepository) Search(ctx context.Context, query string, opts record.SearchOptions) ([]record.SearchResult, error) {
	if err := r.db.Initialize(ctx); err != nil {
		return nil, err
	}

	match := ftsQuery(query)
	if match == "" {
		return []record.SearchResult{}, nil
	}

	baseQuery := `
		SELECT
			r.id, r.date, r.start_time, r.end_time, r.comments,
			bm25(records_fts) AS rank,
			snippet(records_fts, 0, '[', ']', '...', 8) AS snippet
		FROM records_fts
		JOIN records r ON r.id = records_fts.rowid
		WHERE records_fts MATCH ?
		ORDER BY rank, r.id
	`
	args := []interface{}{match}

	// SQLite needs a LIMIT before OFFSET; -1 means no limit.
	switch {
	case opts.Limit > 0:
		baseQuery += " LIMIT ?"
		args = append(args, opts.Limit)
	case opts.Offset > 0:
		baseQuery += " LIMIT -1"
	}
	if opts.Offset > 0 {
		baseQuery += " OFFSET ?"
		args = append(args, opts.Offset)
	}

	rows, err := r.db.QueryContext(ctx, baseQuery, args...)
	if err != nil {
		return nil, wrapError("failed to search records", err)
	}
	defer rows.Close()

	results := []record.SearchResult{}
	for rows.Next() {
		var result record.SearchResult
		err := rows.Scan(
			&result.Record.ID,
			&result.Record.Date,
			&result.Record.StartTime,
			&result.Record.EndTime,
			&result.Record.Comments,
			&result.Rank,
			&result.Snippet,
		)
		if err != nil {
			return nil, wrapError("failed to scan search result", err)
		}
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapError("error iterating search results", err)
	}

	return results, nil
}

// ftsQuery quotes each word of query as an FTS5 string.
func ftsQuery(query string) string {
	words := strings.Fields(query)
	for i, w := range words {
		words[i] = `"` + strings.ReplaceAll(w, `"`, `""`) + `"`
	}
	return strings.Join(words, " ")
}
