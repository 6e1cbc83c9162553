package ops

import "github.com/born-ml/autograd/internal/tensor"

// ExpOp represents the exponential operation: y = exp(x).
//
// Backward pass:
//   - d(exp(x))/dx = exp(x) = y
//   - grad_input = grad_output * y
type ExpOp struct {
	base
	output *tensor.RawTensor // exp(x)
}

// NewExpOp creates a new ExpOp.
func NewExpOp() *ExpOp {
	return &ExpOp{base: newBase("exp", 1)}
}

// Forward records x and returns exp(x).
func (op *ExpOp) Forward(backend tensor.Backend, vars ...Variable) (*tensor.RawTensor, error) {
	if err := op.record(backend, vars); err != nil {
		return nil, err
	}
	op.output = backend.Exp(vars[0].Data())
	return op.output, nil
}

// BackwardVar propagates grad * exp(x), reusing the forward output.
func (op *ExpOp) BackwardVar(grad *tensor.RawTensor, index int, cfg BackwardConfig) error {
	x, err := op.variable(index)
	if err != nil {
		return err
	}
	return x.Backward(op.backend.Mul(grad, op.output), cfg)
}
