package repository

import "errors"

var (
	// ErrStorageUnavailable is returned when the database cannot be opened or accessed
	ErrStorageUnavailable = errors.New("storage unavailable")
)
