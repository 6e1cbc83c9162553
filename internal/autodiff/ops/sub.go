package ops

import "github.com/born-ml/autograd/internal/tensor"

// SubOp represents an element-wise subtraction operation: output = a - b.
//
// Backward pass:
//   - grad_a = outputGrad
//   - grad_b = -outputGrad
type SubOp struct {
	broadcastable
}

// NewSubOp creates a new SubOp.
func NewSubOp() *SubOp {
	return &SubOp{newBroadcastable("sub", 2)}
}

// Forward records a and b and returns a - b.
func (op *SubOp) Forward(backend tensor.Backend, vars ...Variable) (*tensor.RawTensor, error) {
	if err := op.recordBroadcast(backend, vars); err != nil {
		return nil, err
	}
	return backend.Sub(vars[0].Data(), vars[1].Data()), nil
}

// BackwardVar propagates grad to a and -grad to b.
func (op *SubOp) BackwardVar(grad *tensor.RawTensor, index int, cfg BackwardConfig) error {
	v, err := op.variable(index)
	if err != nil {
		return err
	}
	if index == 1 {
		grad = op.backend.Neg(grad)
	}
	return op.propagate(v, grad, cfg)
}
