package api

import (
	"errors"

	"github.com/okian/examprep/internal/domain/solver"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
	ErrNotFound   = errors.New("not found")
	ErrInternal   = errors.New("internal error")
)

// KindError attaches an operation and a kind to an underlying error.
type KindError struct {
	Op   string
	Kind error
	Err  error
}

func (e *KindError) Error() string {
	if e.Err == nil {
		return e.Op + ": " + e.Kind.Error()
	}
	return e.Op + ": " + e.Kind.Error() + ": " + e.Err.Error()
}

// Unwrap exposes both the kind and the cause to errors.Is/As.
func (e *KindError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Message is the client facing text: the cause's reason, or the kind.
func (e *KindError) Message() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return solver.Reason(e.Err)
}

// NewKind returns an error of kind for op with no further cause.
func NewKind(op string, kind error) error {
	return &KindError{Op: op, Kind: kind}
}

// WrapKind returns err tagged with op and kind.
func WrapKind(op string, kind, err error) error {
	return &KindError{Op: op, Kind: kind, Err: err}
}

// Wrap tags err with op as an internal error.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return WrapKind(op, ErrInternal, err)
}
