package examcheck

import "errors"

// Sentinel kinds for check failures.
var (
	ErrUnhealthy   = errors.New("service unhealthy")
	ErrBadResponse = errors.New("unexpected response")
	ErrMismatch    = errors.New("samples failed verification")
)
