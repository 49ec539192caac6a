package store

import "errors"

// ErrNotFound is returned when an update or lookup targets an id or
// client name that does not exist. Deletes stay idempotent and never
// return it.
var ErrNotFound = errors.New("not found")
