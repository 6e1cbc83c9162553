// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/born-ml/autograd/internal/tensor"

// Backend defines the numeric runtime operations compute on: broadcasting
// arithmetic, comparisons, selection and reductions with IEEE float
// semantics (NaN and ±Inf are results, not errors).
//
// Implementations:
//   - backend/cpu: Pure Go
//
// Example:
//
//	import (
//	    "github.com/born-ml/autograd/backend/cpu"
//	)
//
//	backend := cpu.New()
//	y := backend.Sqrt(x)
type Backend = tensor.Backend
