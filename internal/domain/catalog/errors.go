package catalog

import "errors"

// Sentinel kinds for catalog errors.
var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidCatalog = errors.New("invalid catalog")
)
