package store

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a write contradicts existing data, such
// as a reply whose parent belongs to a different post.
var ErrConflict = errors.New("conflict")

func notFound(resource string) error {
	return fmt.Errorf("%s %w", resource, ErrNotFound)
}

// isUniqueViolation reports whether err is a Postgres unique
// constraint failure (error code 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
