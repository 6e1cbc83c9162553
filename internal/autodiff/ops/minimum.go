package ops

import "github.com/born-ml/autograd/internal/tensor"

// MinimumOp represents the element-wise minimum: y = a if a < b else b.
//
// Backward pass:
//   - grad_a = grad * (a < b)
//   - grad_b = grad * !(a < b)
//
// Where a == b the gradient goes entirely to b, as for MaximumOp.
type MinimumOp struct {
	extremum
}

// NewMinimumOp creates a new MinimumOp.
func NewMinimumOp() *MinimumOp {
	return &MinimumOp{extremum{
		broadcastable: newBroadcastable("minimum", 2),
		compare: func(backend tensor.Backend, a, b *tensor.RawTensor) *tensor.RawTensor {
			return backend.Lower(a, b)
		},
	}}
}

// MinMask returns a < b as computed by Forward.
func (op *MinimumOp) MinMask() *tensor.RawTensor {
	return op.selectMask
}
