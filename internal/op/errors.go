package op

import (
	"errors"
	"fmt"

	"github.com/gradkit-ml/gradkit/internal/tensor"
)

// Sentinel errors for contract violations. All of them indicate a broken
// computation graph, not a runtime condition to tolerate; callers should
// treat them as fatal.
var (
	// ErrShapeMismatch reports a gradient whose shape does not match the
	// array recorded during the matching forward pass.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrNotImplemented reports a required kernel hook that was invoked
	// without a concrete implementation.
	ErrNotImplemented = errors.New("not implemented")

	// ErrInvariant reports a construction-time invariant violation.
	ErrInvariant = errors.New("invariant violation")
)

// sameShape checks that got has the same shape as want.
func sameShape(want, got *tensor.RawTensor) error {
	if !want.Shape().Equal(got.Shape()) {
		return fmt.Errorf("%w: got %v, want %v", ErrShapeMismatch, got.Shape(), want.Shape())
	}
	return nil
}
