// Package ops defines the operation protocol for reverse-mode automatic
// differentiation and the primitive operations built on it.
//
// Each operation implements the Operation interface, which provides:
//   - Forward: records its operands and computes the output on a backend
//   - BackwardVar: computes the gradient for one operand and hands it to
//     that operand's own Backward, which continues the traversal
//
// Supported operations:
//   - AbsOp: absolute value (d|a|/da = sign(a), NaN at a == 0)
//   - SqrtOp: square root (d sqrt(a)/da = 1 / (2*sqrt(a)))
//   - CbrtOp: real cube root (d cbrt(a)/da = 1 / (3*cbrt(a²)))
//   - MaximumOp, MinimumOp: element-wise extremum, gradient routed by mask
//   - AddOp, SubOp, MulOp, DivOp: broadcasting arithmetic
//   - ExpOp, LogOp: exponential and natural logarithm
//   - SumOp: reduction of all elements to a scalar
package ops

import (
	"github.com/pkg/errors"

	"github.com/born-ml/autograd/internal/tensor"
)

// Errors reported by operations. They signal misuse by the caller that
// drives the graph, never numeric conditions: NaN and ±Inf are results.
var (
	// ErrIndexOutOfRange is returned by BackwardVar for an operand index
	// outside [0, len(Variables())).
	ErrIndexOutOfRange = errors.New("operand index out of range")

	// ErrArity is returned by Forward when called with the wrong number of operands.
	ErrArity = errors.New("wrong number of operands")

	// ErrOperationReused is returned by Forward on an operation that
	// already recorded operands. Each instance serves one forward/backward cycle.
	ErrOperationReused = errors.New("operation already used")

	// ErrNotRecorded is returned by BackwardVar before Forward has run.
	ErrNotRecorded = errors.New("operation has no recorded operands")

	// ErrDType is returned by Forward for operands that are not float
	// tensors, or whose dtypes differ.
	ErrDType = errors.New("unsupported operand dtype")
)

// BackwardConfig carries traversal-wide options. Operations pass it
// through to their operands unchanged.
type BackwardConfig struct {
	// ClearGraph detaches every visited value from its creator once the
	// traversal finishes, releasing the recorded operations.
	ClearGraph bool
}

// Variable is a differentiable value as seen by an operation: a forward
// value plus the ability to receive a gradient and continue backpropagation.
type Variable interface {
	// Data returns the forward value. It never changes after creation.
	Data() *tensor.RawTensor

	// Backward accumulates grad and propagates it to the value's own operands.
	Backward(grad *tensor.RawTensor, cfg BackwardConfig) error
}

// Operation represents one primitive function in the computation graph.
// An instance records its operands during Forward and uses them exactly
// once more, during the backward pass.
type Operation interface {
	// Name returns a short identifier such as "abs" or "maximum".
	Name() string

	// Forward records vars (order preserved) and returns the output
	// computed from their data on backend.
	Forward(backend tensor.Backend, vars ...Variable) (*tensor.RawTensor, error)

	// BackwardVar computes grad * d(output)/d(vars[index]) at the recorded
	// inputs and calls vars[index].Backward with it and cfg.
	//
	// grad has the shape of the forward output.
	BackwardVar(grad *tensor.RawTensor, index int, cfg BackwardConfig) error

	// Variables returns the recorded operands.
	Variables() []Variable
}

// base holds the state every operation shares.
type base struct {
	name      string
	arity     int
	variables []Variable
	backend   tensor.Backend
}

func newBase(name string, arity int) base {
	return base{name: name, arity: arity}
}

// Name returns the operation name.
func (b *base) Name() string {
	return b.name
}

// Variables returns the recorded operands.
func (b *base) Variables() []Variable {
	return b.variables
}

// record stores the operands and backend. It may succeed only once.
func (b *base) record(backend tensor.Backend, vars []Variable) error {
	if b.variables != nil {
		return errors.Wrapf(ErrOperationReused, "%s", b.name)
	}
	if len(vars) != b.arity {
		return errors.Wrapf(ErrArity, "%s: expected %d, got %d", b.name, b.arity, len(vars))
	}
	for i, v := range vars {
		if dt := v.Data().DType(); !dt.IsFloat() {
			return errors.Wrapf(ErrDType, "%s: operand %d is %s", b.name, i, dt)
		}
	}
	b.variables = append([]Variable(nil), vars...)
	b.backend = backend
	return nil
}

// variable returns the operand at index.
func (b *base) variable(index int) (Variable, error) {
	if b.variables == nil {
		return nil, errors.Wrapf(ErrNotRecorded, "%s", b.name)
	}
	if index < 0 || index >= len(b.variables) {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "%s: index %d, %d operands", b.name, index, len(b.variables))
	}
	return b.variables[index], nil
}
