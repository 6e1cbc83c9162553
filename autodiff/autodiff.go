// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode automatic differentiation.
//
// Values live in a Graph, an arena scoped to one computation session.
// Every primitive operation records its operands when applied and, during
// the backward pass, pushes the chain-rule gradient into each operand.
//
// Example:
//
//	import (
//	    "github.com/born-ml/autograd/autodiff"
//	    "github.com/born-ml/autograd/backend/cpu"
//	    "github.com/born-ml/autograd/tensor"
//	)
//
//	func main() {
//	    g := autodiff.NewGraph(cpu.New())
//	    data, _ := tensor.FromSlice([]float64{4, 9}, tensor.Shape{2})
//	    x := g.Leaf(data, true)
//
//	    y, _ := g.Sqrt(x)                                   // [2, 3]
//	    _ = y.Backprop(nil, autodiff.BackwardConfig{})
//	    fmt.Println(x.Grad())                               // [0.25 0.1666...]
//	}
package autodiff

import (
	"github.com/born-ml/autograd/internal/autodiff"
	"github.com/born-ml/autograd/internal/autodiff/ops"
	"github.com/born-ml/autograd/tensor"
)

// Graph owns the values of one computation session.
type Graph = autodiff.Graph

// Value is a handle to a differentiable value in a Graph.
type Value = autodiff.Value

// ValueID indexes a value inside its Graph.
type ValueID = autodiff.ValueID

// GraphOption configures a Graph.
type GraphOption = autodiff.GraphOption

// Stats summarizes a Graph.
type Stats = autodiff.Stats

// Operation is a primitive differentiable function. Custom operations
// implementing it can be added to a graph with Graph.Apply.
type Operation = ops.Operation

// Variable is the view of a Value that operations see.
type Variable = ops.Variable

// BackwardConfig carries traversal-wide options through a backward pass.
type BackwardConfig = ops.BackwardConfig

// Errors.
var (
	ErrForeignValue    = autodiff.ErrForeignValue
	ErrGradShape       = autodiff.ErrGradShape
	ErrGraphCleared    = autodiff.ErrGraphCleared
	ErrIndexOutOfRange = ops.ErrIndexOutOfRange
	ErrArity           = ops.ErrArity
	ErrOperationReused = ops.ErrOperationReused
	ErrNotRecorded     = ops.ErrNotRecorded
	ErrDType           = ops.ErrDType
)

// NewGraph creates an empty graph computing on backend.
func NewGraph(backend tensor.Backend, opts ...GraphOption) *Graph {
	return autodiff.NewGraph(backend, opts...)
}

// WithName sets a graph name used in trace logs.
func WithName(name string) GraphOption {
	return autodiff.WithName(name)
}
