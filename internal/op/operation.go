// Package op implements the forward/backward operation contract that
// differentiable stages of a network share.
//
// An Operation wraps a Kernel (the per-operation math) and adds the shape
// bookkeeping common to all stages: Forward caches the input and output of
// the current cycle, Backward validates the incoming gradient against the
// cached output shape, delegates to the kernel, and validates the computed
// input gradient against the cached input shape.
//
// Concrete operations:
//   - WeightMultiply: output = input @ W, a learnable linear map
//   - BiasAdd: output = input + b, b broadcast across the batch
//   - Sigmoid: element-wise logistic activation
//   - Linear: identity pass-through
//
// Callers assemble operations into a network by threading arrays through
// Forward in order and gradients through Backward in reverse:
//
//	backend := cpu.New()
//	w, _ := tensor.FromSlice([]float32{...}, tensor.Shape{3, 4}, backend)
//	wm, _ := op.NewWeightMultiply(w, backend)
//	sig := op.NewSigmoid(backend)
//
//	h, _ := wm.Forward(x)
//	y, _ := sig.Forward(h)
//	gh, _ := sig.Backward(gy)
//	gx, _ := wm.Backward(gh)
//	// wm.ParamGrad() now holds dL/dW for the update rule.
package op

import (
	"fmt"

	"github.com/gradkit-ml/gradkit/internal/tensor"
)

// Kernel computes the per-operation math. Implementations must be pure
// functions of their arguments (and, for parametric kernels, of the owned
// parameter): all cycle state is cached by the surrounding Operation.
type Kernel interface {
	// Output computes the forward result for the given input.
	Output(input *tensor.RawTensor, b tensor.Backend) (*tensor.RawTensor, error)

	// InputGrad computes the gradient of the loss with respect to input,
	// given the output gradient and the cached input and output of the
	// current cycle.
	InputGrad(outputGrad, input, output *tensor.RawTensor, b tensor.Backend) (*tensor.RawTensor, error)
}

// Op is the interface shared by Operation and ParamOperation. A caller
// sequencing a network only needs these two calls.
type Op interface {
	Forward(input *tensor.RawTensor) (*tensor.RawTensor, error)
	Backward(outputGrad *tensor.RawTensor) (*tensor.RawTensor, error)
}

// Operation is a differentiable stage without learnable state.
//
// An Operation is stateful across exactly one forward→backward pairing:
// Forward overwrites the cached input and output, Backward overwrites the
// cached input gradient. Instances are not safe for concurrent use; give
// each concurrent pipeline its own operations.
type Operation struct {
	kernel  Kernel
	backend tensor.Backend

	input     *tensor.RawTensor
	output    *tensor.RawTensor
	inputGrad *tensor.RawTensor
}

// New creates an Operation around the given kernel.
func New(k Kernel, b tensor.Backend) *Operation {
	return &Operation{kernel: k, backend: b}
}

// Forward computes the operation's output for input and caches both sides
// for the matching Backward call. No shape check happens here: this call
// defines the shapes that Backward is checked against.
func (o *Operation) Forward(input *tensor.RawTensor) (*tensor.RawTensor, error) {
	o.input = input

	output, err := o.kernel.Output(input, o.backend)
	if err != nil {
		return nil, fmt.Errorf("forward: %w", err)
	}

	o.output = output
	return output, nil
}

// Backward computes the gradient of the loss with respect to the input of
// the previous Forward call.
//
// The incoming outputGrad must match the cached output's shape, and the
// computed input gradient must match the cached input's shape; either
// mismatch fails with ErrShapeMismatch. The second check catches a broken
// kernel immediately instead of letting a malformed gradient propagate
// through the rest of the chain.
func (o *Operation) Backward(outputGrad *tensor.RawTensor) (*tensor.RawTensor, error) {
	if o.output == nil {
		return nil, fmt.Errorf("backward: %w: no forward pass recorded", ErrInvariant)
	}
	if err := sameShape(o.output, outputGrad); err != nil {
		return nil, fmt.Errorf("backward: output gradient: %w", err)
	}

	inputGrad, err := o.kernel.InputGrad(outputGrad, o.input, o.output, o.backend)
	if err != nil {
		return nil, fmt.Errorf("backward: %w", err)
	}
	if err := sameShape(o.input, inputGrad); err != nil {
		return nil, fmt.Errorf("backward: input gradient: %w", err)
	}

	o.inputGrad = inputGrad
	return inputGrad, nil
}

// Input returns the input cached by the last Forward call.
func (o *Operation) Input() *tensor.RawTensor {
	return o.input
}

// Output returns the output cached by the last Forward call.
func (o *Operation) Output() *tensor.RawTensor {
	return o.output
}

// InputGrad returns the input gradient cached by the last Backward call.
func (o *Operation) InputGrad() *tensor.RawTensor {
	return o.inputGrad
}

// Unimplemented is an embeddable kernel whose hooks all fail with
// ErrNotImplemented. Embed it when sketching a new operation so that the
// missing hooks fail loudly instead of not compiling half a network away.
type Unimplemented struct{}

// Output fails with ErrNotImplemented.
func (Unimplemented) Output(_ *tensor.RawTensor, _ tensor.Backend) (*tensor.RawTensor, error) {
	return nil, fmt.Errorf("output hook: %w", ErrNotImplemented)
}

// InputGrad fails with ErrNotImplemented.
func (Unimplemented) InputGrad(_, _, _ *tensor.RawTensor, _ tensor.Backend) (*tensor.RawTensor, error) {
	return nil, fmt.Errorf("input grad hook: %w", ErrNotImplemented)
}

// ParamGrad fails with ErrNotImplemented.
func (Unimplemented) ParamGrad(_, _, _ *tensor.RawTensor, _ tensor.Backend) (*tensor.RawTensor, error) {
	return nil, fmt.Errorf("param grad hook: %w", ErrNotImplemented)
}
