package autodiff

import (
	"fmt"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/born-ml/autograd/internal/autodiff/ops"
	"github.com/born-ml/autograd/internal/tensor"
)

// Value is a handle to a differentiable value in a Graph.
// The zero Value is invalid.
type Value struct {
	graph      *Graph
	id         ValueID
	generation int
}

var _ ops.Variable = Value{}

// ID returns the arena index of the value.
func (v Value) ID() ValueID {
	return v.id
}

// Graph returns the graph owning the value.
func (v Value) Graph() *Graph {
	return v.graph
}

func (v Value) node() *node {
	if v.graph == nil || !v.graph.owns(v) {
		panic(fmt.Sprintf("autodiff: stale or zero value %d", v.id))
	}
	return &v.graph.nodes[v.id]
}

// Data returns the forward value. It never changes after creation.
func (v Value) Data() *tensor.RawTensor {
	return v.node().data
}

// Shape returns the shape of the forward value.
func (v Value) Shape() tensor.Shape {
	return v.Data().Shape()
}

// Grad returns the accumulated gradient, or nil if none has arrived.
func (v Value) Grad() *tensor.RawTensor {
	return v.node().grad
}

// Creator returns the operation that produced the value, nil for leaves
// and for values released by ClearGraph.
func (v Value) Creator() ops.Operation {
	return v.node().creator
}

// RequiresGrad reports whether gradients flow into this value.
func (v Value) RequiresGrad() bool {
	return v.node().requiresGrad
}

// IsLeaf reports whether the value was created as an input.
func (v Value) IsLeaf() bool {
	n := v.node()
	return n.creator == nil && !n.cleared
}

// Backprop starts a backward pass at v. A nil grad seeds a tensor of ones
// shaped like v. When it returns, every value upstream of v holds its
// accumulated gradient.
func (v Value) Backprop(grad *tensor.RawTensor, cfg ops.BackwardConfig) error {
	n := v.node()
	if grad == nil {
		var err error
		grad, err = tensor.Full(n.data.Shape(), n.data.DType(), 1, n.data.Device())
		if err != nil {
			return errors.Wrap(err, "backprop: seed gradient")
		}
	}

	g := v.graph
	defer g.finishTraversal(cfg)

	klog.V(2).Infof("graph %s: backprop from value %d %v", g.name, v.id, n.data.Shape())
	if err := v.Backward(grad, cfg); err != nil {
		return errors.WithMessagef(err, "backprop from value %d", v.id)
	}
	return nil
}

// Backward accumulates grad into v and propagates it through v's creator
// to every operand that requires a gradient.
//
// It implements ops.Variable and is called by operations; start a pass
// with Backprop.
func (v Value) Backward(grad *tensor.RawTensor, cfg ops.BackwardConfig) error {
	n := v.node()
	if n.cleared {
		return errors.Wrapf(ErrGraphCleared, "value %d", v.id)
	}
	if !grad.Shape().Equal(n.data.Shape()) || grad.DType() != n.data.DType() {
		return errors.Wrapf(ErrGradShape, "value %d is %s%v, gradient is %s%v",
			v.id, n.data.DType(), n.data.Shape(), grad.DType(), grad.Shape())
	}

	if n.grad == nil {
		n.grad = grad.Clone()
	} else {
		n.grad = v.graph.backend.Add(n.grad, grad)
	}
	n.visited = true

	op := n.creator
	if op == nil {
		return nil
	}
	for index, operand := range op.Variables() {
		if !operand.(Value).RequiresGrad() {
			continue
		}
		klog.V(2).Infof("graph %s: value %d: %s backward to operand %d", v.graph.name, v.id, op.Name(), index)
		if err := op.BackwardVar(grad, index, cfg); err != nil {
			return errors.WithMessagef(err, "%s operand %d", op.Name(), index)
		}
	}
	return nil
}
