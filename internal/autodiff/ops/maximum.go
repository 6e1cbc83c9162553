package ops

import "github.com/born-ml/autograd/internal/tensor"

// MaximumOp represents the element-wise maximum: y = a if a > b else b.
//
// Backward pass:
//   - grad_a = grad * (a > b)
//   - grad_b = grad * !(a > b)
//
// Both are summed back to the operand shapes when broadcasting occurred.
// Where a == b the gradient goes entirely to b.
type MaximumOp struct {
	extremum
}

// NewMaximumOp creates a new MaximumOp.
func NewMaximumOp() *MaximumOp {
	return &MaximumOp{extremum{
		broadcastable: newBroadcastable("maximum", 2),
		compare: func(backend tensor.Backend, a, b *tensor.RawTensor) *tensor.RawTensor {
			return backend.Greater(a, b)
		},
	}}
}

// MaxMask returns a > b as computed by Forward.
func (op *MaximumOp) MaxMask() *tensor.RawTensor {
	return op.selectMask
}
