package op

import (
	"fmt"

	"github.com/gradkit-ml/gradkit/internal/tensor"
)

// ParamKernel is a Kernel with an owned learnable parameter and a hook for
// its gradient.
type ParamKernel interface {
	Kernel

	// Param returns the learnable parameter array. The kernel owns it for
	// the operation's lifetime; forward and backward never mutate it.
	Param() *tensor.RawTensor

	// ParamGrad computes the gradient of the loss with respect to the
	// parameter. The result must have the parameter's shape.
	ParamGrad(outputGrad, input, output *tensor.RawTensor, b tensor.Backend) (*tensor.RawTensor, error)
}

// ParamOperation is an Operation with a learnable parameter. Every Backward
// call additionally computes the parameter gradient, retrievable via
// ParamGrad until the next cycle overwrites it.
type ParamOperation struct {
	Operation

	kernel    ParamKernel
	paramGrad *tensor.RawTensor
}

// NewParam creates a ParamOperation around the given parametric kernel.
func NewParam(k ParamKernel, b tensor.Backend) *ParamOperation {
	return &ParamOperation{
		Operation: Operation{kernel: k, backend: b},
		kernel:    k,
	}
}

// Backward computes the input gradient as Operation.Backward does and,
// additionally, the parameter gradient as a side effect. Both gradients are
// shape-checked: the input gradient against the cached input, the parameter
// gradient against the parameter.
func (o *ParamOperation) Backward(outputGrad *tensor.RawTensor) (*tensor.RawTensor, error) {
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

	paramGrad, err := o.kernel.ParamGrad(outputGrad, o.input, o.output, o.backend)
	if err != nil {
		return nil, fmt.Errorf("backward: %w", err)
	}
	if err := sameShape(o.kernel.Param(), paramGrad); err != nil {
		return nil, fmt.Errorf("backward: param gradient: %w", err)
	}

	o.inputGrad = inputGrad
	o.paramGrad = paramGrad
	return inputGrad, nil
}

// Param returns the operation's learnable parameter. Callers may mutate it
// between cycles (that is the update rule's job), never during one.
func (o *ParamOperation) Param() *tensor.RawTensor {
	return o.kernel.Param()
}

// ParamGrad returns the parameter gradient cached by the last Backward call.
func (o *ParamOperation) ParamGrad() *tensor.RawTensor {
	return o.paramGrad
}
