// Copyright 2025 Gradkit ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/gradkit-ml/gradkit/internal/backend/cpu"
	"github.com/gradkit-ml/gradkit/tensor"
)

// Backend represents the CPU backend implementation, with pure Go kernels
// for every tensor operation.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend.
//
// Example:
//
//	import (
//	    "github.com/gradkit-ml/gradkit/backend/cpu"
//	    "github.com/gradkit-ml/gradkit/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	}
func New() *Backend {
	return internalcpu.New()
}
