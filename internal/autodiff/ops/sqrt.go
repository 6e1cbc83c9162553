package ops

import "github.com/born-ml/autograd/internal/tensor"

// SqrtOp represents the square root operation: y = sqrt(a).
//
// Backward pass:
//   - d(sqrt(a))/da = 1 / (2 * sqrt(a))
//   - grad_input = grad_output / (2 * sqrt(a))
//
// Negative inputs give NaN and a == 0 divides by zero; both are left to
// IEEE float semantics.
type SqrtOp struct {
	base
}

// NewSqrtOp creates a new SqrtOp.
func NewSqrtOp() *SqrtOp {
	return &SqrtOp{base: newBase("sqrt", 1)}
}

// Forward records a and returns sqrt(a).
func (op *SqrtOp) Forward(backend tensor.Backend, vars ...Variable) (*tensor.RawTensor, error) {
	if err := op.record(backend, vars); err != nil {
		return nil, err
	}
	return backend.Sqrt(vars[0].Data()), nil
}

// BackwardVar propagates grad / (2 * sqrt(a)).
func (op *SqrtOp) BackwardVar(grad *tensor.RawTensor, index int, cfg BackwardConfig) error {
	a, err := op.variable(index)
	if err != nil {
		return err
	}
	b := op.backend
	return a.Backward(b.Div(grad, b.MulScalar(b.Sqrt(a.Data()), 2)), cfg)
}
