package op

import (
	"fmt"

	"github.com/gradkit-ml/gradkit/internal/tensor"
)

// weightMultiply implements the learnable linear map output = input @ W.
//
// Shapes: input [batch, in], W [in, out], output [batch, out].
type weightMultiply struct {
	param *tensor.RawTensor // [in, out]
}

// NewWeightMultiply creates a weight multiplication operation owning the
// weight matrix w, which must be 2-D with shape [in_features, out_features].
func NewWeightMultiply(w *tensor.RawTensor, b tensor.Backend) (*ParamOperation, error) {
	if len(w.Shape()) != 2 {
		return nil, fmt.Errorf("weight multiply: %w: weight must be 2-D, got %v", ErrInvariant, w.Shape())
	}
	return NewParam(&weightMultiply{param: w}, b), nil
}

func (k *weightMultiply) Output(input *tensor.RawTensor, b tensor.Backend) (*tensor.RawTensor, error) {
	if err := k.checkInput(input); err != nil {
		return nil, err
	}
	return b.MatMul(input, k.param), nil
}

// InputGrad: d(X@W)/dX = outputGrad @ Wᵀ, shape [batch, in].
func (k *weightMultiply) InputGrad(outputGrad, _, _ *tensor.RawTensor, b tensor.Backend) (*tensor.RawTensor, error) {
	return b.MatMul(outputGrad, b.Transpose(k.param)), nil
}

// ParamGrad: d(X@W)/dW = Xᵀ @ outputGrad, shape [in, out].
func (k *weightMultiply) ParamGrad(outputGrad, input, _ *tensor.RawTensor, b tensor.Backend) (*tensor.RawTensor, error) {
	return b.MatMul(b.Transpose(input), outputGrad), nil
}

func (k *weightMultiply) Param() *tensor.RawTensor {
	return k.param
}

func (k *weightMultiply) checkInput(input *tensor.RawTensor) error {
	shape := input.Shape()
	if len(shape) != 2 {
		return fmt.Errorf("weight multiply: %w: input must be 2-D, got %v", ErrShapeMismatch, shape)
	}
	if shape[1] != k.param.Shape()[0] {
		return fmt.Errorf("weight multiply: %w: input %v incompatible with weight %v",
			ErrShapeMismatch, shape, k.param.Shape())
	}
	return nil
}
