package op

import (
	"github.com/gradkit-ml/gradkit/internal/tensor"
)

// linear is the identity activation, used as a pass-through output stage
// for regression networks.
type linear struct{}

// NewLinear creates an identity pass-through operation.
func NewLinear(b tensor.Backend) *Operation {
	return New(linear{}, b)
}

func (linear) Output(input *tensor.RawTensor, _ tensor.Backend) (*tensor.RawTensor, error) {
	return input, nil
}

func (linear) InputGrad(outputGrad, _, _ *tensor.RawTensor, _ tensor.Backend) (*tensor.RawTensor, error) {
	return outputGrad, nil
}
