package archivestore

import "errors"

// ErrNotFound is returned by Get and Meta when no record exists under the
// requested key.
var ErrNotFound = errors.New("archivestore: record not found")
