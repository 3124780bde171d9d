package record

import "errors"

var (
	// ErrInvalidInput indicates a record is missing a required field.
	ErrInvalidInput = errors.New("invalid record input")
	// ErrImportIncomplete indicates an import stopped after committing some rows.
	ErrImportIncomplete = errors.New("import incomplete")
)
