package examcheck

import "time"

// HTTP status code constants.
const (
	StatusOK = 200
)

// Worker configuration constants.
const (
	DefaultWorkers = 4
	DefaultTimeout = 10 * time.Second
)

// Answer comparison constants.
const (
	floatTolerance       = 1e-9
	PercentageMultiplier = 100
)
