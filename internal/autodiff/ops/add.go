package ops

import "github.com/born-ml/autograd/internal/tensor"

// AddOp represents an element-wise addition operation: output = a + b.
//
// Backward pass:
//   - d(a+b)/da = 1, so grad_a = outputGrad
//   - d(a+b)/db = 1, so grad_b = outputGrad
//
// If broadcasting was used in the forward pass, gradients are summed along
// the broadcast dimensions to match input shapes.
type AddOp struct {
	broadcastable
}

// NewAddOp creates a new AddOp.
func NewAddOp() *AddOp {
	return &AddOp{newBroadcastable("add", 2)}
}

// Forward records a and b and returns a + b.
func (op *AddOp) Forward(backend tensor.Backend, vars ...Variable) (*tensor.RawTensor, error) {
	if err := op.recordBroadcast(backend, vars); err != nil {
		return nil, err
	}
	return backend.Add(vars[0].Data(), vars[1].Data()), nil
}

// BackwardVar passes grad through unchanged to either operand.
func (op *AddOp) BackwardVar(grad *tensor.RawTensor, index int, cfg BackwardConfig) error {
	v, err := op.variable(index)
	if err != nil {
		return err
	}
	return op.propagate(v, grad, cfg)
}
