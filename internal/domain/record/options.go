package record

// SearchOptions provides paging for comment search.
type SearchOptions struct {
	Limit  int
	Offset int
}

// ImportOptions controls how parsed rows are committed.
type ImportOptions struct {
	// Atomic commits every row in one transaction instead of one add per row.
	Atomic bool
}
