package op

import (
	"fmt"

	"github.com/gradkit-ml/gradkit/internal/tensor"
)

// biasAdd implements broadcast bias addition: output = input + b, with the
// single row of b added to every row of the input.
//
// Shapes: input [batch, features], b [1, features], output [batch, features].
type biasAdd struct {
	param *tensor.RawTensor // [1, features]
}

// NewBiasAdd creates a bias addition operation owning the bias array, which
// must have shape [1, features].
func NewBiasAdd(bias *tensor.RawTensor, b tensor.Backend) (*ParamOperation, error) {
	shape := bias.Shape()
	if len(shape) != 2 || shape[0] != 1 {
		return nil, fmt.Errorf("bias add: %w: bias must have shape [1, features], got %v", ErrInvariant, shape)
	}
	return NewParam(&biasAdd{param: bias}, b), nil
}

func (k *biasAdd) Output(input *tensor.RawTensor, b tensor.Backend) (*tensor.RawTensor, error) {
	shape := input.Shape()
	if len(shape) != 2 || shape[1] != k.param.Shape()[1] {
		return nil, fmt.Errorf("bias add: %w: input %v incompatible with bias %v",
			ErrShapeMismatch, shape, k.param.Shape())
	}
	return b.Add(input, k.param), nil
}

// InputGrad: addition passes the gradient through unchanged. Multiplying by
// a ones array of the input's shape keeps the shape bookkeeping explicit.
func (k *biasAdd) InputGrad(outputGrad, input, _ *tensor.RawTensor, b tensor.Backend) (*tensor.RawTensor, error) {
	return b.Mul(tensor.OnesLike(input), outputGrad), nil
}

// ParamGrad: the broadcast-backward reduction, summing the output gradient
// over the batch dimension down to the bias shape [1, features].
func (k *biasAdd) ParamGrad(outputGrad, _, _ *tensor.RawTensor, b tensor.Backend) (*tensor.RawTensor, error) {
	grad := b.Mul(tensor.OnesLike(k.param), outputGrad)
	return b.SumDim(grad, 0, true), nil
}

func (k *biasAdd) Param() *tensor.RawTensor {
	return k.param
}
