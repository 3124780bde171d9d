package record

// Record is one tracked time interval. ID is assigned by the store.
type Record struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Comments  string `json:"comments"`
}

// Input is a record that has not been persisted yet.
type Input struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Comments  string `json:"comments"`
}

// Input returns the record's fields without its ID.
func (r Record) Input() Input {
	return Input{
		Date:      r.Date,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Comments:  r.Comments,
	}
}

// SearchResult is a record matching a comments search.
type SearchResult struct {
	Record  Record  `json:"record"`
	Rank    float64 `json:"rank"`
	Snippet string  `json:"snippet,omitempty"`
}

// ExportResult describes the outcome of an export.
type ExportResult struct {
	FileName string `json:"file_name"`
	Count    int    `json:"count"`
	CSV      string `json:"csv,omitempty"`
	Message  string `json:"message"`
}

// ImportResult describes the outcome of an import. Imported counts the rows
// already committed, which may be fewer than Parsed when the import failed.
type ImportResult struct {
	BatchID  string `json:"batch_id"`
	Parsed   int    `json:"parsed"`
	Imported int    `json:"imported"`
	Message  string `json:"message"`
}
