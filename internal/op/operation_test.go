package op_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradkit-ml/gradkit/internal/backend/cpu"
	"github.com/gradkit-ml/gradkit/internal/op"
	"github.com/gradkit-ml/gradkit/internal/tensor"
)

// double is a minimal kernel for exercising the base contract: output = 2x.
type double struct{}

func (double) Output(input *tensor.RawTensor, b tensor.Backend) (*tensor.RawTensor, error) {
	return b.MulScalar(input, 2), nil
}

func (double) InputGrad(outputGrad, _, _ *tensor.RawTensor, b tensor.Backend) (*tensor.RawTensor, error) {
	return b.MulScalar(outputGrad, 2), nil
}

// crookedGrad is a broken kernel whose input gradient has the wrong shape.
type crookedGrad struct {
	double
}

func (crookedGrad) InputGrad(outputGrad, _, _ *tensor.RawTensor, b tensor.Backend) (*tensor.RawTensor, error) {
	return b.SumDim(outputGrad, 0, true), nil
}

func TestOperationForwardCachesCycleState(t *testing.T) {
	backend := cpu.New()
	o := op.New(double{}, backend)

	x, err := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{1, 3}, backend)
	require.NoError(t, err)

	out, err := o.Forward(x)
	require.NoError(t, err)

	assert.Equal(t, x, o.Input())
	assert.Equal(t, out, o.Output())
	assert.Equal(t, []float32{2, 4, 6}, out.AsFloat32())
}

func TestOperationBackwardReturnsInputShapedGrad(t *testing.T) {
	backend := cpu.New()
	o := op.New(double{}, backend)

	x, err := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
	require.NoError(t, err)

	out, err := o.Forward(x)
	require.NoError(t, err)

	grad := tensor.Ones[float32](out.Shape(), backend)
	inputGrad, err := o.Backward(grad)
	require.NoError(t, err)

	assert.True(t, inputGrad.Shape().Equal(x.Shape()))
	assert.Equal(t, []float32{2, 2, 2, 2}, inputGrad.AsFloat32())
	assert.Equal(t, inputGrad, o.InputGrad())
}

func TestOperationBackwardRejectsWrongGradShape(t *testing.T) {
	backend := cpu.New()
	o := op.New(double{}, backend)

	x := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
	_, err := o.Forward(x)
	require.NoError(t, err)

	grad := tensor.Ones[float32](tensor.Shape{3, 2}, backend)
	_, err = o.Backward(grad)
	assert.ErrorIs(t, err, op.ErrShapeMismatch)
}

func TestOperationBackwardRejectsCrookedKernel(t *testing.T) {
	backend := cpu.New()
	o := op.New(crookedGrad{}, backend)

	x := tensor.Ones[float32](tensor.Shape{4, 2}, backend)
	out, err := o.Forward(x)
	require.NoError(t, err)

	// The kernel produces a [1, 2] gradient for a [4, 2] input; the
	// post-hook check must catch it.
	_, err = o.Backward(tensor.Ones[float32](out.Shape(), backend))
	assert.ErrorIs(t, err, op.ErrShapeMismatch)
}

// crookedParamGrad is a broken parametric kernel whose param gradient keeps
// the batch dimension instead of reducing it to the param's shape.
type crookedParamGrad struct {
	param *tensor.RawTensor
}

func (k crookedParamGrad) Output(input *tensor.RawTensor, b tensor.Backend) (*tensor.RawTensor, error) {
	return b.Add(input, k.param), nil
}

func (k crookedParamGrad) InputGrad(outputGrad, input, _ *tensor.RawTensor, b tensor.Backend) (*tensor.RawTensor, error) {
	return b.Mul(tensor.OnesLike(input), outputGrad), nil
}

func (k crookedParamGrad) ParamGrad(outputGrad, _, _ *tensor.RawTensor, _ tensor.Backend) (*tensor.RawTensor, error) {
	return outputGrad, nil
}

func (k crookedParamGrad) Param() *tensor.RawTensor {
	return k.param
}

func TestParamOperationBackwardRejectsCrookedParamGrad(t *testing.T) {
	backend := cpu.New()
	param := tensor.Zeros[float32](tensor.Shape{1, 2}, backend)
	o := op.NewParam(crookedParamGrad{param: param}, backend)

	x := tensor.Ones[float32](tensor.Shape{3, 2}, backend)
	out, err := o.Forward(x)
	require.NoError(t, err)

	// The input gradient is well-formed, so the failure is specifically
	// the [3, 2] param gradient against the [1, 2] param.
	_, err = o.Backward(tensor.Ones[float32](out.Shape(), backend))
	assert.ErrorIs(t, err, op.ErrShapeMismatch)
	assert.Nil(t, o.ParamGrad())
}

func TestOperationBackwardBeforeForward(t *testing.T) {
	backend := cpu.New()
	o := op.New(double{}, backend)

	_, err := o.Backward(tensor.Ones[float32](tensor.Shape{1, 1}, backend))
	assert.ErrorIs(t, err, op.ErrInvariant)
}

func TestUnimplementedHooks(t *testing.T) {
	backend := cpu.New()
	x := tensor.Ones[float32](tensor.Shape{1, 1}, backend)

	o := op.New(op.Unimplemented{}, backend)
	_, err := o.Forward(x)
	assert.ErrorIs(t, err, op.ErrNotImplemented)

	var u op.Unimplemented
	_, err = u.InputGrad(x, x, x, backend)
	assert.ErrorIs(t, err, op.ErrNotImplemented)
	_, err = u.ParamGrad(x, x, x, backend)
	assert.ErrorIs(t, err, op.ErrNotImplemented)
}

// partialKernel sketches a parametric op with only the forward hook filled
// in, the way a caller would while wiring a new operation.
type partialKernel struct {
	op.Unimplemented
	param *tensor.RawTensor
}

func (k partialKernel) Output(input *tensor.RawTensor, b tensor.Backend) (*tensor.RawTensor, error) {
	return b.Add(input, k.param), nil
}

func (k partialKernel) Param() *tensor.RawTensor {
	return k.param
}

func TestUnimplementedEmbeddedInParamKernel(t *testing.T) {
	backend := cpu.New()
	param := tensor.Ones[float32](tensor.Shape{1, 2}, backend)

	o := op.NewParam(partialKernel{param: param}, backend)

	x := tensor.Ones[float32](tensor.Shape{3, 2}, backend)
	out, err := o.Forward(x)
	require.NoError(t, err)

	// Forward works; backward hits the missing gradient hooks.
	_, err = o.Backward(tensor.Ones[float32](out.Shape(), backend))
	assert.ErrorIs(t, err, op.ErrNotImplemented)
}
