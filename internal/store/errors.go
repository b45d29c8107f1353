package store

import "errors"

// ErrNotFound is returned when a referenced entity ID does not exist.
var ErrNotFound = errors.New("not found")
