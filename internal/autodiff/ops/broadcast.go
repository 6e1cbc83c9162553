package ops

import (
	"github.com/pkg/errors"

	"github.com/born-ml/autograd/internal/tensor"
)

// broadcastable is the base for operations whose operands may be broadcast
// to a common output shape. Gradients flowing back are summed over the
// broadcast axes before they reach an operand.
type broadcastable struct {
	base
}

func newBroadcastable(name string, arity int) broadcastable {
	return broadcastable{base: newBase(name, arity)}
}

// recordBroadcast records the operands after checking that their dtypes
// agree and their shapes broadcast.
func (b *broadcastable) recordBroadcast(backend tensor.Backend, vars []Variable) error {
	if err := b.record(backend, vars); err != nil {
		return err
	}

	first := vars[0].Data()
	shape := first.Shape()
	for _, v := range vars[1:] {
		data := v.Data()
		if data.DType() != first.DType() {
			b.variables = nil
			return errors.Wrapf(ErrDType, "%s: %s vs %s", b.name, first.DType(), data.DType())
		}
		out, _, err := tensor.BroadcastShapes(shape, data.Shape())
		if err != nil {
			b.variables = nil
			return errors.Wrap(err, b.name)
		}
		shape = out
	}
	return nil
}

// propagate reduces localGrad to v's shape and hands it to v.
func (b *broadcastable) propagate(v Variable, localGrad *tensor.RawTensor, cfg BackwardConfig) error {
	return v.Backward(reduceBroadcast(localGrad, v.Data().Shape(), b.backend), cfg)
}

// reduceBroadcast reduces a gradient tensor to match the target shape.
// This is necessary when broadcasting was used in the forward pass.
//
// Example:
//
//	Forward: a[3] max b[2,3] -> c[2,3]  (a was broadcast along dim 0)
//	Backward: grad_c[2,3] -> grad_a[3]  (sum along dim 0)
func reduceBroadcast(grad *tensor.RawTensor, targetShape tensor.Shape, backend tensor.Backend) *tensor.RawTensor {
	if grad.Shape().Equal(targetShape) {
		// Clone so that no two values share one gradient buffer.
		return grad.Clone()
	}

	result := grad
	for _, axis := range tensor.BroadcastAxes(targetShape, grad.Shape()) {
		result = backend.SumDim(result, axis, true)
	}

	// Drop the leading axes the operand never had.
	return backend.Reshape(result, targetShape)
}
