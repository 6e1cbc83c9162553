package ops

import "github.com/born-ml/autograd/internal/tensor"

// CbrtOp represents the real cube root: y = cbrt(a), defined for all reals.
//
// Backward pass:
//   - d(cbrt(a))/da = 1 / (3 * cbrt(a²))
//
// At a == 0 the derivative divides by zero and yields Inf (or NaN for a
// zero upstream gradient).
type CbrtOp struct {
	base
}

// NewCbrtOp creates a new CbrtOp.
func NewCbrtOp() *CbrtOp {
	return &CbrtOp{base: newBase("cbrt", 1)}
}

// Forward records a and returns cbrt(a).
func (op *CbrtOp) Forward(backend tensor.Backend, vars ...Variable) (*tensor.RawTensor, error) {
	if err := op.record(backend, vars); err != nil {
		return nil, err
	}
	return backend.Cbrt(vars[0].Data()), nil
}

// BackwardVar propagates grad / (3 * cbrt(a²)).
func (op *CbrtOp) BackwardVar(grad *tensor.RawTensor, index int, cfg BackwardConfig) error {
	a, err := op.variable(index)
	if err != nil {
		return err
	}
	b := op.backend
	x := a.Data()
	return a.Backward(b.Div(grad, b.MulScalar(b.Cbrt(b.Mul(x, x)), 3)), cfg)
}
