// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public tensor types used by the autograd engine.
//
// # Overview
//
// This package exposes:
//   - RawTensor: dense row-major float32/float64/bool buffers
//   - Shape with NumPy-style broadcasting rules
//   - Backend: the numeric runtime interface operations compute on
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/autograd/tensor"
//	)
//
//	func main() {
//	    x, err := tensor.FromSlice([]float64{-2, 0, 3}, tensor.Shape{3})
//	    if err != nil {
//	        panic(err)
//	    }
//	    fmt.Println(x) // float64[3] [-2 0 3]
//	}
package tensor
