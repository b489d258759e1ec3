package tensor

import (
	"fmt"
	"math/rand"
)

// Zeros creates a tensor filled with zeros.
//
// Example:
//
//	backend := cpu.New()
//	t := tensor.Zeros[float32](Shape{3, 4}, backend)
func Zeros[T DType](shape Shape, b Backend) *RawTensor {
	var dummy T
	raw, err := NewRaw(shape, inferDataType(dummy), b.Device())
	if err != nil {
		panic(err) // Shape validation should prevent this
	}
	// Buffer is already zero-initialized.
	return raw
}

// Ones creates a tensor filled with ones.
func Ones[T DType](shape Shape, b Backend) *RawTensor {
	return Full[T](shape, 1, b)
}

// Full creates a tensor filled with a specific value.
//
// Example:
//
//	t := tensor.Full[float32](Shape{3, 3}, 3.14, backend)
func Full[T DType](shape Shape, value T, b Backend) *RawTensor {
	raw := Zeros[T](shape, b)
	switch any(value).(type) {
	case float32:
		data := raw.AsFloat32()
		for i := range data {
			data[i] = float32(value)
		}
	case float64:
		data := raw.AsFloat64()
		for i := range data {
			data[i] = float64(value)
		}
	}
	return raw
}

// Randn creates a tensor with values drawn from a standard normal
// distribution. Uses math/rand, not crypto/rand: reproducibility under
// rand.Seed matters more here than unpredictability.
//
// Example:
//
//	t := tensor.Randn[float32](Shape{100, 3}, backend)
func Randn[T DType](shape Shape, b Backend) *RawTensor {
	raw := Zeros[T](shape, b)
	switch raw.DType() {
	case Float32:
		data := raw.AsFloat32()
		for i := range data {
			data[i] = float32(rand.NormFloat64())
		}
	case Float64:
		data := raw.AsFloat64()
		for i := range data {
			data[i] = rand.NormFloat64()
		}
	}
	return raw
}

// FromSlice creates a tensor from a flat row-major slice.
//
// Example:
//
//	t, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3}, backend)
func FromSlice[T DType](data []T, shape Shape, b Backend) (*RawTensor, error) {
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("data length %d does not match shape %v (%d elements)",
			len(data), shape, shape.NumElements())
	}

	var dummy T
	raw, err := NewRaw(shape, inferDataType(dummy), b.Device())
	if err != nil {
		return nil, err
	}

	switch any(dummy).(type) {
	case float32:
		copy(raw.AsFloat32(), any(data).([]float32))
	case float64:
		copy(raw.AsFloat64(), any(data).([]float64))
	}
	return raw, nil
}

// OnesLike creates a tensor of ones with the same shape, dtype and device
// as the given tensor.
func OnesLike(t *RawTensor) *RawTensor {
	raw, err := NewRaw(t.Shape(), t.DType(), t.Device())
	if err != nil {
		panic(err) // t already carries a valid shape
	}
	switch raw.DType() {
	case Float32:
		data := raw.AsFloat32()
		for i := range data {
			data[i] = 1
		}
	case Float64:
		data := raw.AsFloat64()
		for i := range data {
			data[i] = 1
		}
	}
	return raw
}
