package nn

import (
	"errors"
	"fmt"

	"github.com/born-ml/mlp/internal/tensor"
)

// Common errors.
var (
	ErrShape    = errors.New("shape mismatch")
	ErrOrdering = errors.New("backward called before forward")
)

// ShapeError provides detailed information about incompatible inputs.
type ShapeError struct {
	Op      string       // Operation that rejected the input (e.g., "Linear.Forward")
	Want    tensor.Shape // Expected shape, nil when only Details apply
	Got     tensor.Shape // Received shape
	Details string       // Additional details
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	if e.Want != nil {
		return fmt.Sprintf("%s: expected shape %v, got %v", e.Op, e.Want, e.Got)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Details)
}

// Unwrap makes errors.Is(err, ErrShape) hold.
func (e *ShapeError) Unwrap() error {
	return ErrShape
}

// OrderingError reports a backward pass with no cached forward state.
type OrderingError struct {
	Op string
}

// Error implements the error interface.
func (e *OrderingError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, ErrOrdering)
}

// Unwrap makes errors.Is(err, ErrOrdering) hold.
func (e *OrderingError) Unwrap() error {
	return ErrOrdering
}
