// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for the autograd engine.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO), gonum vector routines for float64
//   - Float32 and Float64 support
//   - NumPy-compatible broadcasting
//   - IEEE-754 results for domain errors (sqrt(-1) = NaN, 1/0 = +Inf)
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/autograd/autodiff"
//	    "github.com/born-ml/autograd/backend/cpu"
//	)
//
//	func main() {
//	    g := autodiff.NewGraph(cpu.New())
//	    ...
//	}
package cpu
