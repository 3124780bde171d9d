package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `traffichours keeps a local log of traffic-duty time entries.

Each record has a date, a start time, an end time and free-text comments.
The store assigns every record a numeric id. Ids only grow and are never
reused, even after a record is deleted. There is no update: delete and add
again instead.

Tools:
- add_record: store one entry (date, start_time and end_time are required).
- list_records: all entries in the order they were added.
- delete_record: remove an entry by id. Unknown ids are not an error.
- search_records: full-text search over comments.
- export_csv: every entry as CSV text (see traffichours://docs/csv-format).
- import_csv: add every valid row of a CSV text. Malformed rows are skipped.
- get_recent_activity: newest-first audit trail of adds, deletes, imports and exports.

Dates and times are stored as given. Nothing checks that the end time is
after the start time.
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "traffichours://docs/csv-format",
		Name:        "docs_csv_format",
		Title:       "CSV import and export format",
		Description: "The exact CSV text produced by export_csv and accepted by import_csv.",
		Content: `# CSV format

## Export

The first line is always:

    Date,Start Time,End Time,Comments

Each record follows on its own line, in insertion order, with every field
wrapped in double quotes:

    "2024-01-05","08:00","16:30","covered north gate"

- A double quote inside a field is written twice: ` + "`He said \"\"hi\"\"`" + `.
- Line breaks inside comments are replaced by a single space.
- Lines are separated by a single line feed with none after the last line.
- Ids are not exported.

## Import

- The first line is a header. Cells are trimmed, quotes are removed and the
  names are compared without regard to case, so column order is free.
- Recognised columns: ` + "`date`" + `, ` + "`start time`" + `, ` + "`end time`" + `, ` + "`comments`" + `. Others are ignored.
- A row whose field count differs from the header is skipped.
- A row with an empty date, start time or end time is skipped.
- Quoted fields may contain commas, but a quote directly followed by a
  comma ends the field: a comment ` + "`cones \"borrowed\", returned`" + ` exports
  intact and imports as ` + "`cones \"borrowed\"`" + `. Fields cannot span lines.
- Nothing else is an error: an import with no usable rows reports
  "No valid records found in the CSV file."
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
