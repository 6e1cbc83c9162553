package ops

import "github.com/born-ml/autograd/internal/tensor"

// SumOp reduces all elements of x to a scalar: y = Σ x.
//
// Backward pass:
//   - dy/dx_i = 1, so the scalar gradient is broadcast back to x's shape
type SumOp struct {
	base
}

// NewSumOp creates a new SumOp.
func NewSumOp() *SumOp {
	return &SumOp{base: newBase("sum", 1)}
}

// Forward records x and returns its total as a scalar tensor.
func (op *SumOp) Forward(backend tensor.Backend, vars ...Variable) (*tensor.RawTensor, error) {
	if err := op.record(backend, vars); err != nil {
		return nil, err
	}
	return backend.Sum(vars[0].Data()), nil
}

// BackwardVar broadcasts the scalar grad to x's shape.
func (op *SumOp) BackwardVar(grad *tensor.RawTensor, index int, cfg BackwardConfig) error {
	x, err := op.variable(index)
	if err != nil {
		return err
	}
	return x.Backward(op.backend.BroadcastTo(grad, x.Data().Shape()), cfg)
}
