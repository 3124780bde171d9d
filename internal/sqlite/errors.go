package sqlite

import (
	"fmt"
	"strings"

	"github.com/rpggio/traffichours/internal/repository"
)

var unavailableMessages = []string{
	"database is closed",
	"unable to open database file",
	"disk I/O error",
	"database is locked",
	"attempt to write a readonly database",
}

func isUnavailable(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, m := range unavailableMessages {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}

// wrapError annotates err with the failed operation and marks failures of
// the storage medium with repository.ErrStorageUnavailable.
func wrapError(op string, err error) error {
	if isUnavailable(err) {
		return fmt.Errorf("%w: %s: %w", repository.ErrStorageUnavailable, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
