// Copyright 2025 Gradkit ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for the gradkit array types.
//
// The package defines the types that operations exchange:
//   - RawTensor: a flat row-major buffer with shape and dtype
//   - Shape, DataType, Device: core type definitions
//   - Backend: interface for compute implementations
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	y := tensor.Randn[float32](tensor.Shape{2, 3}, backend)
//	z := backend.Add(x, y)
package tensor

import (
	"github.com/gradkit-ml/gradkit/internal/tensor"
)

// DType is a constraint for tensor element types.
// Supported types: float32, float64.
type DType = tensor.DType

// DataType represents the underlying data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
)

// Device represents the device where tensor data resides.
type Device = tensor.Device

// Device constants.
const (
	CPU Device = tensor.CPU
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3} represents a 2×3 matrix.
type Shape = tensor.Shape

// RawTensor is the tensor representation exchanged by operations and
// backends: a flat row-major buffer plus shape and runtime type information.
type RawTensor = tensor.RawTensor

// Creation functions

// Zeros creates a tensor filled with zeros.
func Zeros[T DType](shape Shape, b Backend) *RawTensor {
	return tensor.Zeros[T](shape, b)
}

// Ones creates a tensor filled with ones.
func Ones[T DType](shape Shape, b Backend) *RawTensor {
	return tensor.Ones[T](shape, b)
}

// Full creates a tensor filled with a specific value.
func Full[T DType](shape Shape, value T, b Backend) *RawTensor {
	return tensor.Full[T](shape, value, b)
}

// Randn creates a tensor filled with random values from the standard normal
// distribution N(0, 1).
func Randn[T DType](shape Shape, b Backend) *RawTensor {
	return tensor.Randn[T](shape, b)
}

// FromSlice creates a tensor from a flat row-major slice.
//
// Example:
//
//	data := []float32{1, 2, 3, 4, 5, 6}
//	x, err := tensor.FromSlice(data, tensor.Shape{2, 3}, backend)
func FromSlice[T DType](data []T, shape Shape, b Backend) (*RawTensor, error) {
	return tensor.FromSlice[T](data, shape, b)
}

// OnesLike creates a tensor of ones with the same shape, dtype and device
// as the given tensor.
func OnesLike(t *RawTensor) *RawTensor {
	return tensor.OnesLike(t)
}

// NewRaw creates a new zero-initialized tensor with the given shape, dtype,
// and device. Most users should use the high-level creation functions.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// BroadcastShapes computes the broadcast result shape for two operand
// shapes following NumPy broadcasting rules.
func BroadcastShapes(a, b Shape) (Shape, error) {
	return tensor.BroadcastShapes(a, b)
}
