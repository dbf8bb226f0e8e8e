package core

import (
	"errors"
	"fmt"
)

// Domain errors for grid, quadrature and differentiation operations.
var (
	// ErrInvalidGrid indicates non-monotonic coordinates, too few points or bad bounds.
	ErrInvalidGrid = errors.New("fieldcalc: invalid grid")

	// ErrShapeMismatch indicates a field, grid, spacing or mask size disagreement.
	ErrShapeMismatch = errors.New("fieldcalc: shape mismatch")

	// ErrDegenerateCell indicates a zero or negative cell width or area.
	ErrDegenerateCell = errors.New("fieldcalc: degenerate cell")

	// ErrAxisOutOfRange indicates an invalid differentiation axis.
	ErrAxisOutOfRange = errors.New("fieldcalc: axis out of range")

	// ErrUnknownRule indicates a quadrature rule name that is not registered.
	ErrUnknownRule = errors.New("fieldcalc: unknown quadrature rule")

	// ErrEmptySweep indicates a convergence sweep with no resolutions.
	ErrEmptySweep = errors.New("fieldcalc: empty resolution sequence")
)

// OpError wraps an error with the operation and index where it was detected.
// Index is -1 when the failure is not tied to a single position.
type OpError struct {
	Op      string
	Index   int
	Wrapped error
}

func (e *OpError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %v", e.Op, e.Wrapped)
	}
	return fmt.Sprintf("%s: index %d: %v", e.Op, e.Index, e.Wrapped)
}

func (e *OpError) Unwrap() error {
	return e.Wrapped
}

// Errorf builds an OpError whose wrapped error carries a formatted detail
// message and still matches kind under errors.Is.
func Errorf(op string, index int, kind error, format string, args ...any) error {
	return &OpError{
		Op:      op,
		Index:   index,
		Wrapped: fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), kind),
	}
}
