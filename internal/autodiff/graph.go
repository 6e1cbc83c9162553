// Package autodiff implements the differentiable value layer for reverse-mode
// automatic differentiation.
//
// Architecture:
//   - Graph: an arena owning every value created in one computation session
//   - Value: a small index-based handle into the arena; implements ops.Variable
//   - Operations (package ops) record their operands during the forward pass
//     and push gradients back into them during the backward pass
//   - Backward is plain recursion: each value accumulates the gradient it
//     receives and immediately forwards it through its creator
//
// Usage:
//
//	g := autodiff.NewGraph(cpu.New())
//	x := g.Leaf(data, true)
//	y, err := g.Sqrt(x)
//	err = y.Backprop(nil, ops.BackwardConfig{})
//	dx := x.Grad() // 1 / (2*sqrt(x))
package autodiff

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/born-ml/autograd/internal/autodiff/ops"
	"github.com/born-ml/autograd/internal/tensor"
)

// Errors reported by the graph.
var (
	// ErrForeignValue is returned when a value from another graph (or from
	// before a Reset) is used as an operand.
	ErrForeignValue = errors.New("value does not belong to this graph")

	// ErrGradShape is returned when a gradient's shape or dtype differs from
	// the value it is propagated into.
	ErrGradShape = errors.New("gradient does not match value")

	// ErrGraphCleared is returned when backpropagating through a value whose
	// creator was released by a ClearGraph traversal.
	ErrGraphCleared = errors.New("graph was cleared by a previous backward pass")
)

// ValueID indexes a value inside its Graph.
type ValueID int

// node is the arena record behind a Value.
type node struct {
	data         *tensor.RawTensor
	grad         *tensor.RawTensor
	creator      ops.Operation
	requiresGrad bool
	visited      bool // reached by the traversal in progress
	cleared      bool // creator released by ClearGraph
}

// Graph owns all values of one computation session. Values refer to each
// other only through indices into the arena, so the graph needs no
// ownership bookkeeping: dropping the Graph drops everything.
//
// A Graph is not safe for concurrent use.
type Graph struct {
	id         uuid.UUID
	name       string
	backend    tensor.Backend
	nodes      []node
	generation int
}

// GraphOption configures a Graph.
type GraphOption func(*Graph)

// WithName sets a name that appears in trace logs.
func WithName(name string) GraphOption {
	return func(g *Graph) {
		g.name = name
	}
}

// NewGraph creates an empty graph computing on backend.
func NewGraph(backend tensor.Backend, opts ...GraphOption) *Graph {
	g := &Graph{
		id:      uuid.New(),
		backend: backend,
		nodes:   make([]node, 0, 64),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.name == "" {
		g.name = g.id.String()
	}
	return g
}

// ID returns the session id.
func (g *Graph) ID() uuid.UUID {
	return g.id
}

// Name returns the graph name, the session id unless WithName was given.
func (g *Graph) Name() string {
	return g.name
}

// Backend returns the numeric backend.
func (g *Graph) Backend() tensor.Backend {
	return g.backend
}

// Len returns the number of values in the arena.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Leaf adds an input value. Only leaves that require a gradient, and values
// computed from them, receive gradients.
func (g *Graph) Leaf(data *tensor.RawTensor, requiresGrad bool) Value {
	return g.add(node{data: data, requiresGrad: requiresGrad})
}

// Constant adds an input value that never receives a gradient.
func (g *Graph) Constant(data *tensor.RawTensor) Value {
	return g.Leaf(data, false)
}

// Apply runs op forward on operands and adds its output to the graph.
// The op instance must be fresh; it becomes owned by the output value.
func (g *Graph) Apply(op ops.Operation, operands ...Value) (Value, error) {
	vars := make([]ops.Variable, len(operands))
	requiresGrad := false
	for i, v := range operands {
		if !g.owns(v) {
			return Value{}, errors.Wrapf(ErrForeignValue, "%s operand %d", op.Name(), i)
		}
		vars[i] = v
		requiresGrad = requiresGrad || v.RequiresGrad()
	}

	data, err := op.Forward(g.backend, vars...)
	if err != nil {
		return Value{}, err
	}

	return g.add(node{data: data, creator: op, requiresGrad: requiresGrad}), nil
}

// ZeroGrad discards every accumulated gradient.
func (g *Graph) ZeroGrad() {
	for i := range g.nodes {
		g.nodes[i].grad = nil
	}
	klog.V(1).Infof("graph %s: zeroed gradients of %d values", g.name, len(g.nodes))
}

// Reset empties the arena. Values created before the reset become invalid.
func (g *Graph) Reset() {
	klog.V(1).Infof("graph %s: reset, dropping %d values", g.name, len(g.nodes))
	g.nodes = g.nodes[:0]
	g.generation++
}

// Stats summarizes the arena.
type Stats struct {
	Values    int
	Ops       int
	Grads     int
	GradBytes int
}

// String formats the stats for logs.
func (s Stats) String() string {
	return fmt.Sprintf("%d values, %d ops, %d gradients (%s)",
		s.Values, s.Ops, s.Grads, humanize.Bytes(uint64(s.GradBytes)))
}

// Stats returns counts over the current arena.
func (g *Graph) Stats() Stats {
	s := Stats{Values: len(g.nodes)}
	for i := range g.nodes {
		n := &g.nodes[i]
		if n.creator != nil {
			s.Ops++
		}
		if n.grad != nil {
			s.Grads++
			s.GradBytes += n.grad.ByteSize()
		}
	}
	return s
}

func (g *Graph) add(n node) Value {
	g.nodes = append(g.nodes, n)
	return Value{graph: g, id: ValueID(len(g.nodes) - 1), generation: g.generation}
}

func (g *Graph) owns(v Value) bool {
	return v.graph == g && v.generation == g.generation && int(v.id) < len(g.nodes)
}

// finishTraversal resets visit marks and, when cfg asks for it, releases
// the creator of every visited value.
func (g *Graph) finishTraversal(cfg ops.BackwardConfig) {
	released := 0
	for i := range g.nodes {
		n := &g.nodes[i]
		if !n.visited {
			continue
		}
		n.visited = false
		if cfg.ClearGraph && n.creator != nil {
			n.creator = nil
			n.cleared = true
			released++
		}
	}
	if released > 0 {
		klog.V(1).Infof("graph %s: released %d operations", g.name, released)
	}
}
