package solver

import (
	"errors"

	"github.com/okian/examprep/internal/domain/types"
)

// Sentinel kinds for solve failures. These allow errors.Is from callers.
var (
	ErrUnknownTopic = types.ErrUnknownTopic
	ErrInvalidInput = errors.New("invalid input")
)

// Error carries a human-readable reason alongside its kind.
type Error struct {
	Kind   error
	Reason string
}

func (e *Error) Error() string { return e.Reason }

func (e *Error) Unwrap() error { return e.Kind }

// InvalidInput builds an ErrInvalidInput error with the given reason.
func InvalidInput(reason string) error {
	return &Error{Kind: ErrInvalidInput, Reason: reason}
}

// UnknownTopic builds an ErrUnknownTopic error with the given reason.
func UnknownTopic(reason string) error {
	return &Error{Kind: ErrUnknownTopic, Reason: reason}
}

// Reason returns the reason carried by err, or err.Error() when err is not an *Error.
func Reason(err error) string {
	var se *Error
	if errors.As(err, &se) {
		return se.Reason
	}
	return err.Error()
}
