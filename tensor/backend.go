// Copyright 2025 Gradkit ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/gradkit-ml/gradkit/internal/tensor"
)

// Backend is the interface compute backends implement. Operations call
// through it so that the forward/backward contract stays device-agnostic.
type Backend = tensor.Backend
