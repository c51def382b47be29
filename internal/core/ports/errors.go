package ports

import "errors"

// ErrNotFound is returned by storages when a write targets a row that does
// not exist or is not owned by the caller.
var ErrNotFound = errors.New("not found")
