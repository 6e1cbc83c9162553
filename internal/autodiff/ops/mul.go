package ops

import "github.com/born-ml/autograd/internal/tensor"

// MulOp represents an element-wise multiplication operation: output = a * b.
//
// Backward pass:
//   - d(a*b)/da = b, so grad_a = outputGrad * b
//   - d(a*b)/db = a, so grad_b = outputGrad * a
type MulOp struct {
	broadcastable
}

// NewMulOp creates a new MulOp.
func NewMulOp() *MulOp {
	return &MulOp{newBroadcastable("mul", 2)}
}

// Forward records a and b and returns a * b.
func (op *MulOp) Forward(backend tensor.Backend, vars ...Variable) (*tensor.RawTensor, error) {
	if err := op.recordBroadcast(backend, vars); err != nil {
		return nil, err
	}
	return backend.Mul(vars[0].Data(), vars[1].Data()), nil
}

// BackwardVar propagates grad times the other operand.
func (op *MulOp) BackwardVar(grad *tensor.RawTensor, index int, cfg BackwardConfig) error {
	v, err := op.variable(index)
	if err != nil {
		return err
	}
	other := op.variables[1-index].Data()
	return op.propagate(v, op.backend.Mul(grad, other), cfg)
}
