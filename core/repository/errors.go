package repository

import "errors"

// ErrNotFound indicates the requested record does not exist. Handlers map
// it to a 404 instead of a server error.
var ErrNotFound = errors.New("record not found")
