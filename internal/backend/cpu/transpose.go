package cpu

import (
	"fmt"

	"github.com/gradkit-ml/gradkit/internal/tensor"
)

// Transpose permutes the axes of a tensor and returns a contiguous copy.
// With no axes given the axis order is reversed, which for 2-D tensors is
// the usual matrix transpose.
func (cpu *CPUBackend) Transpose(t *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	shape := t.Shape()
	ndim := len(shape)

	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}
	if len(axes) != ndim {
		panic(fmt.Sprintf("transpose: got %d axes for %dD tensor", len(axes), ndim))
	}

	seen := make([]bool, ndim)
	outShape := make(tensor.Shape, ndim)
	for i, ax := range axes {
		if ax < 0 || ax >= ndim || seen[ax] {
			panic(fmt.Sprintf("transpose: invalid axes %v for %dD tensor", axes, ndim))
		}
		seen[ax] = true
		outShape[i] = shape[ax]
	}

	result, err := tensor.NewRaw(outShape, t.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("transpose: failed to create result tensor: %v", err))
	}

	inStrides := rowMajorStrides(shape)
	outStrides := rowMajorStrides(outShape)

	switch t.DType() {
	case tensor.Float32:
		src, dst := t.AsFloat32(), result.AsFloat32()
		for i := range dst {
			dst[i] = src[permutedIndex(i, outStrides, inStrides, axes)]
		}
	case tensor.Float64:
		src, dst := t.AsFloat64(), result.AsFloat64()
		for i := range dst {
			dst[i] = src[permutedIndex(i, outStrides, inStrides, axes)]
		}
	default:
		panic(fmt.Sprintf("transpose: unsupported dtype %s", t.DType()))
	}

	return result
}

func rowMajorStrides(shape tensor.Shape) []int {
	strides := make([]int, len(shape))
	stride := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = stride
		stride *= shape[i]
	}
	return strides
}

// permutedIndex maps a flat output index back to the flat source index
// under the given axis permutation.
func permutedIndex(flat int, outStrides, inStrides []int, axes []int) int {
	idx := 0
	for i, os := range outStrides {
		coord := flat / os
		flat %= os
		idx += coord * inStrides[axes[i]]
	}
	return idx
}
