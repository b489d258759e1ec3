package op

import (
	"github.com/gradkit-ml/gradkit/internal/tensor"
)

// sigmoid implements the element-wise logistic activation
// σ(x) = 1 / (1 + exp(-x)).
type sigmoid struct{}

// NewSigmoid creates a sigmoid activation operation.
func NewSigmoid(b tensor.Backend) *Operation {
	return New(sigmoid{}, b)
}

func (sigmoid) Output(input *tensor.RawTensor, b tensor.Backend) (*tensor.RawTensor, error) {
	denom := b.AddScalar(b.Exp(b.MulScalar(input, -1)), 1)
	return b.Div(tensor.OnesLike(input), denom), nil
}

// InputGrad uses the identity σ'(x) = σ(x) * (1 - σ(x)): the cached output
// is the sigmoid itself, so the exponential never needs recomputing.
func (sigmoid) InputGrad(outputGrad, _, output *tensor.RawTensor, b tensor.Backend) (*tensor.RawTensor, error) {
	derivative := b.Mul(output, b.Sub(tensor.OnesLike(output), output))
	return b.Mul(derivative, outputGrad), nil
}
