// Copyright 2025 Gradkit ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package op provides the public API for the forward/backward operation
// toolkit.
//
// An Operation is a single differentiable stage: Forward caches the input
// and output of the current cycle, Backward shape-checks the incoming
// gradient against the cached output and the computed input gradient
// against the cached input. A ParamOperation additionally owns a learnable
// parameter and computes its gradient on every backward pass.
//
// Example:
//
//	backend := cpu.New()
//	w := tensor.Randn[float32](tensor.Shape{3, 4}, backend)
//	wm, err := op.NewWeightMultiply(w, backend)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	out, err := wm.Forward(x)      // [batch, 4]
//	grad, err := wm.Backward(g)    // [batch, 3]
//	dw := wm.ParamGrad()           // [3, 4], for the update rule
package op

import (
	internalop "github.com/gradkit-ml/gradkit/internal/op"
	"github.com/gradkit-ml/gradkit/tensor"
)

// Sentinel errors, matched with errors.Is.
var (
	ErrShapeMismatch  = internalop.ErrShapeMismatch
	ErrNotImplemented = internalop.ErrNotImplemented
	ErrInvariant      = internalop.ErrInvariant
)

// Kernel computes the per-operation math; implement it to define a new
// non-parametric operation.
type Kernel = internalop.Kernel

// ParamKernel is a Kernel with an owned learnable parameter.
type ParamKernel = internalop.ParamKernel

// Op is the interface shared by Operation and ParamOperation.
type Op = internalop.Op

// Operation is a differentiable stage without learnable state.
type Operation = internalop.Operation

// ParamOperation is an Operation with a learnable parameter.
type ParamOperation = internalop.ParamOperation

// Unimplemented is an embeddable kernel whose hooks fail with
// ErrNotImplemented.
type Unimplemented = internalop.Unimplemented

// New creates an Operation around the given kernel.
func New(k Kernel, b tensor.Backend) *Operation {
	return internalop.New(k, b)
}

// NewParam creates a ParamOperation around the given parametric kernel.
func NewParam(k ParamKernel, b tensor.Backend) *ParamOperation {
	return internalop.NewParam(k, b)
}

// NewWeightMultiply creates a weight multiplication operation owning the
// weight matrix w, which must be 2-D with shape [in_features, out_features].
func NewWeightMultiply(w *tensor.RawTensor, b tensor.Backend) (*ParamOperation, error) {
	return internalop.NewWeightMultiply(w, b)
}

// NewBiasAdd creates a bias addition operation owning the bias array, which
// must have shape [1, features].
func NewBiasAdd(bias *tensor.RawTensor, b tensor.Backend) (*ParamOperation, error) {
	return internalop.NewBiasAdd(bias, b)
}

// NewSigmoid creates a sigmoid activation operation.
func NewSigmoid(b tensor.Backend) *Operation {
	return internalop.NewSigmoid(b)
}

// NewLinear creates an identity pass-through operation.
func NewLinear(b tensor.Backend) *Operation {
	return internalop.NewLinear(b)
}
