package tensor

// Backend defines the interface that compute backends must implement.
// Backends handle the actual math for tensor operations; ops call through
// this interface so that the operation contract stays device-agnostic.
type Backend interface {
	// Name returns the backend name.
	Name() string

	// Device returns the device the backend computes on.
	Device() Device

	// Element-wise binary operations with broadcasting.
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor

	// MatMul performs 2-D matrix multiplication: (M, K) @ (K, N) -> (M, N).
	MatMul(a, b *RawTensor) *RawTensor

	// Transpose permutes the axes of a tensor. With no axes given the axis
	// order is reversed (the usual 2-D transpose).
	Transpose(t *RawTensor, axes ...int) *RawTensor

	// SumDim sums along the given dimension. With keepDim the reduced
	// dimension is kept with size 1.
	SumDim(x *RawTensor, dim int, keepDim bool) *RawTensor

	// Element-wise math.
	Exp(x *RawTensor) *RawTensor

	// Scalar operations (element-wise with a scalar operand).
	AddScalar(x *RawTensor, scalar float64) *RawTensor
	MulScalar(x *RawTensor, scalar float64) *RawTensor
}
