package ops

import "github.com/born-ml/autograd/internal/tensor"

// LogOp represents the natural logarithm: y = ln(x).
//
// Backward pass:
//   - d(ln(x))/dx = 1/x
//   - grad_input = grad_output / x
//
// Non-positive inputs give -Inf or NaN in both passes.
type LogOp struct {
	base
}

// NewLogOp creates a new LogOp.
func NewLogOp() *LogOp {
	return &LogOp{base: newBase("log", 1)}
}

// Forward records x and returns ln(x).
func (op *LogOp) Forward(backend tensor.Backend, vars ...Variable) (*tensor.RawTensor, error) {
	if err := op.record(backend, vars); err != nil {
		return nil, err
	}
	return backend.Log(vars[0].Data()), nil
}

// BackwardVar propagates grad / x.
func (op *LogOp) BackwardVar(grad *tensor.RawTensor, index int, cfg BackwardConfig) error {
	x, err := op.variable(index)
	if err != nil {
		return err
	}
	return x.Backward(op.backend.Div(grad, x.Data()), cfg)
}
