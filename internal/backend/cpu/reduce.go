package cpu

import (
	"fmt"

	"github.com/gradkit-ml/gradkit/internal/tensor"
)

// SumDim sums tensor elements along the specified dimension.
//
// Parameters:
//   - dim: dimension to reduce (supports negative indexing: -1 = last dim)
//   - keepDim: if true, keep the reduced dimension with size 1; if false, remove it
func (cpu *CPUBackend) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	shape := x.Shape()
	ndim := len(shape)

	if dim < 0 {
		dim = ndim + dim
	}
	if dim < 0 || dim >= ndim {
		panic(fmt.Sprintf("sumdim: dimension %d out of range for %dD tensor", dim, ndim))
	}

	var outShape tensor.Shape
	if keepDim {
		outShape = shape.Clone()
		outShape[dim] = 1
	} else {
		outShape = make(tensor.Shape, 0, ndim-1)
		for i := 0; i < ndim; i++ {
			if i != dim {
				outShape = append(outShape, shape[i])
			}
		}
	}

	result, err := tensor.NewRaw(outShape, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("sumdim: %v", err))
	}

	// Iterate as outer × reduced × inner, where inner is the product of the
	// dimensions to the right of dim.
	inner := 1
	for i := dim + 1; i < ndim; i++ {
		inner *= shape[i]
	}
	outer := x.NumElements() / (inner * shape[dim])

	switch x.DType() {
	case tensor.Float32:
		sumDimFloat32(x.AsFloat32(), result.AsFloat32(), outer, shape[dim], inner)
	case tensor.Float64:
		sumDimFloat64(x.AsFloat64(), result.AsFloat64(), outer, shape[dim], inner)
	default:
		panic(fmt.Sprintf("sumdim: unsupported dtype %s", x.DType()))
	}

	return result
}

func sumDimFloat32(src, dst []float32, outer, reduce, inner int) {
	for o := 0; o < outer; o++ {
		for in := 0; in < inner; in++ {
			sum := float32(0)
			for r := 0; r < reduce; r++ {
				sum += src[o*reduce*inner+r*inner+in]
			}
			dst[o*inner+in] = sum
		}
	}
}

func sumDimFloat64(src, dst []float64, outer, reduce, inner int) {
	for o := 0; o < outer; o++ {
		for in := 0; in < inner; in++ {
			sum := float64(0)
			for r := 0; r < reduce; r++ {
				sum += src[o*reduce*inner+r*inner+in]
			}
			dst[o*inner+in] = sum
		}
	}
}
