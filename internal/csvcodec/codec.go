// Package csvcodec converts records to and from the CSV text used for
// export and import.
//
// Encoding always quotes every field and doubles embedded quotes. Decoding
// is tolerant: rows with the wrong number of fields or missing
// required values are dropped one by one, and only a failure to read the
// input is reported as an error.
package csvcodec

import (
	"io"
	"strings"

	"github.com/rpggio/traffichours/internal/domain/record"
)

// Header is the first line of every encoded file.
const Header = "Date,Start Time,End Time,Comments"

// Normalized header names recognized when decoding.
const (
	ColumnDate      = "date"
	ColumnStartTime = "start time"
	ColumnEndTime   = "end time"
	ColumnComments  = "comments"
)

// Codec implements record.Codec with the package functions.
type Codec struct{}

// Encode implements record.Codec.
func (Codec) Encode(records []record.Record) string {
	return Encode(records)
}

// Decode implements record.Codec.
func (Codec) Decode(r io.Reader) ([]record.Input, error) {
	return Decode(r)
}

var newlines = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// Encode renders records as CSV text: the header, then one row per record,
// joined with "\n". Newlines in comments become single spaces so each record
// stays on one line.
func Encode(records []record.Record) string {
	var b strings.Builder
	b.WriteString(Header)
	for _, rec := range records {
		b.WriteByte('\n')
		writeField(&b, rec.Date)
		b.WriteByte(',')
		writeField(&b, rec.StartTime)
		b.WriteByte(',')
		writeField(&b, rec.EndTime)
		b.WriteByte(',')
		writeField(&b, newlines.Replace(rec.Comments))
	}
	return b.String()
}

func writeField(b *strings.Builder, value string) {
	b.WriteByte('"')
	b.WriteString(strings.ReplaceAll(value, `"`, `""`))
	b.WriteByte('"')
}
