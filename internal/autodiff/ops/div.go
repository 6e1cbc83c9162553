package ops

import "github.com/born-ml/autograd/internal/tensor"

// DivOp represents an element-wise division operation: output = a / b.
//
// Backward pass:
//   - d(a/b)/da = 1/b, so grad_a = outputGrad / b
//   - d(a/b)/db = -a/b², so grad_b = -outputGrad * a / b²
type DivOp struct {
	broadcastable
}

// NewDivOp creates a new DivOp.
func NewDivOp() *DivOp {
	return &DivOp{newBroadcastable("div", 2)}
}

// Forward records a and b and returns a / b.
func (op *DivOp) Forward(backend tensor.Backend, vars ...Variable) (*tensor.RawTensor, error) {
	if err := op.recordBroadcast(backend, vars); err != nil {
		return nil, err
	}
	return backend.Div(vars[0].Data(), vars[1].Data()), nil
}

// BackwardVar propagates grad / b to a and -grad * a / b² to b.
func (op *DivOp) BackwardVar(grad *tensor.RawTensor, index int, cfg BackwardConfig) error {
	v, err := op.variable(index)
	if err != nil {
		return err
	}

	be := op.backend
	a, b := op.variables[0].Data(), op.variables[1].Data()
	if index == 0 {
		return op.propagate(v, be.Div(grad, b), cfg)
	}
	local := be.Neg(be.Div(be.Mul(grad, a), be.Mul(b, b)))
	return op.propagate(v, local, cfg)
}
