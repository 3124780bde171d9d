package csvcodec

import (
	"fmt"
	"io"
	"strings"

	"github.com/rpggio/traffichours/internal/domain/record"
)

// Decode reads CSV text from r and returns the valid records it contains.
// Only a read failure is an error; it wraps ErrUnreadableInput.
func Decode(r io.Reader) ([]record.Input, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadableInput, err)
	}
	return DecodeString(string(data)), nil
}

// DecodeString returns the valid records in text. The first line names the
// columns; each later line becomes a record when keepRow accepts it. Text
// with no data line decodes to an empty slice.
func DecodeString(text string) []record.Input {
	lines := strings.Split(trimSpace(text), "\n")
	if len(lines) < 2 {
		return []record.Input{}
	}

	headers := parseHeader(lines[0])
	records := make([]record.Input, 0, len(lines)-1)
	for _, line := range lines[1:] {
		fields := splitFields(line)
		if len(fields) != len(headers) {
			continue
		}
		in := mapFields(headers, fields)
		if !keepRow(in) {
			continue
		}
		records = append(records, in)
	}
	return records
}

// parseHeader normalizes header cells: trimmed, stripped of every double
// quote, lower-cased.
func parseHeader(line string) []string {
	cells := strings.Split(line, ",")
	headers := make([]string, len(cells))
	for i, cell := range cells {
		cell = strings.ReplaceAll(trimSpace(cell), `"`, "")
		headers[i] = strings.ToLower(cell)
	}
	return headers
}

// mapFields assigns fields to the record by header name. Columns with an
// unrecognized header are ignored.
func mapFields(headers, fields []string) record.Input {
	var in record.Input
	for i, header := range headers {
		switch header {
		case ColumnDate:
			in.Date = fields[i]
		case ColumnStartTime:
			in.StartTime = fields[i]
		case ColumnEndTime:
			in.EndTime = fields[i]
		case ColumnComments:
			in.Comments = fields[i]
		}
	}
	return in
}

// keepRow is the import filter: date, start time and end time must be
// present. Comments may be empty.
func keepRow(in record.Input) bool {
	return in.Date != "" && in.StartTime != "" && in.EndTime != ""
}
