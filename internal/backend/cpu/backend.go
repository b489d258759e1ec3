// Package cpu implements the CPU compute backend.
package cpu

import (
	"fmt"

	"github.com/gradkit-ml/gradkit/internal/tensor"
)

// CPUBackend implements tensor.Backend with pure Go kernels.
type CPUBackend struct {
	device tensor.Device
}

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Add performs element-wise addition with NumPy-style broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("add", a, b,
		func(x, y float32) float32 { return x + y },
		func(x, y float64) float64 { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("sub", a, b,
		func(x, y float32) float32 { return x - y },
		func(x, y float64) float64 { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("mul", a, b,
		func(x, y float32) float32 { return x * y },
		func(x, y float64) float64 { return x * y })
}

// Div performs element-wise division with broadcasting.
func (cpu *CPUBackend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("div", a, b,
		func(x, y float32) float32 { return x / y },
		func(x, y float64) float64 { return x / y })
}

// binary allocates the broadcast result tensor and dispatches on dtype.
func (cpu *CPUBackend) binary(name string, a, b *tensor.RawTensor,
	f32 func(x, y float32) float32, f64 func(x, y float64) float64,
) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch %s vs %s", name, a.DType(), b.DType()))
	}

	outShape, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	result, err := tensor.NewRaw(outShape, a.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", name, err))
	}

	switch a.DType() {
	case tensor.Float32:
		binaryFloat32(result, a, b, f32)
	case tensor.Float64:
		binaryFloat64(result, a, b, f64)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", name, a.DType()))
	}

	return result
}

func binaryFloat32(out, a, b *tensor.RawTensor, f func(x, y float32) float32) {
	dst, av, bv := out.AsFloat32(), a.AsFloat32(), b.AsFloat32()

	if a.Shape().Equal(b.Shape()) {
		// Fast path: no broadcasting.
		for i := range dst {
			dst[i] = f(av[i], bv[i])
		}
		return
	}

	aIdx := newBroadcastIndexer(out.Shape(), a.Shape())
	bIdx := newBroadcastIndexer(out.Shape(), b.Shape())
	for i := range dst {
		dst[i] = f(av[aIdx.at(i)], bv[bIdx.at(i)])
	}
}

func binaryFloat64(out, a, b *tensor.RawTensor, f func(x, y float64) float64) {
	dst, av, bv := out.AsFloat64(), a.AsFloat64(), b.AsFloat64()

	if a.Shape().Equal(b.Shape()) {
		for i := range dst {
			dst[i] = f(av[i], bv[i])
		}
		return
	}

	aIdx := newBroadcastIndexer(out.Shape(), a.Shape())
	bIdx := newBroadcastIndexer(out.Shape(), b.Shape())
	for i := range dst {
		dst[i] = f(av[aIdx.at(i)], bv[bIdx.at(i)])
	}
}

// broadcastIndexer maps a flat index in the output tensor to the flat index
// of the corresponding element in a (possibly smaller) operand, treating
// size-1 dimensions as repeated.
type broadcastIndexer struct {
	outStrides []int // row-major strides of the output shape
	inStrides  []int // operand strides, 0 where the operand dimension is 1
}

func newBroadcastIndexer(outShape, inShape tensor.Shape) *broadcastIndexer {
	n := len(outShape)

	outStrides := make([]int, n)
	stride := 1
	for i := n - 1; i >= 0; i-- {
		outStrides[i] = stride
		stride *= outShape[i]
	}

	// Operand strides aligned to the trailing dimensions of the output.
	inStrides := make([]int, n)
	stride = 1
	for i := len(inShape) - 1; i >= 0; i-- {
		outDim := n - len(inShape) + i
		if inShape[i] != 1 {
			inStrides[outDim] = stride
		}
		stride *= inShape[i]
	}

	return &broadcastIndexer{outStrides: outStrides, inStrides: inStrides}
}

func (ix *broadcastIndexer) at(flat int) int {
	idx := 0
	for i, os := range ix.outStrides {
		idx += (flat / os) * ix.inStrides[i]
		flat %= os
	}
	return idx
}
