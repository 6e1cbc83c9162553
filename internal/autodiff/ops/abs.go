package ops

import (
	"fmt"
	"math"

	"github.com/born-ml/autograd/internal/tensor"
)

// AbsOp represents the absolute value operation: y = |a|.
//
// Backward pass:
//   - d|a|/da = -1 where a < 0, +1 where a > 0
//   - the derivative is undefined at a == 0 and is reported as NaN there,
//     so callers can detect a non-differentiable evaluation point
type AbsOp struct {
	base
}

// NewAbsOp creates a new AbsOp.
func NewAbsOp() *AbsOp {
	return &AbsOp{base: newBase("abs", 1)}
}

// Forward records a and returns |a|.
func (op *AbsOp) Forward(backend tensor.Backend, vars ...Variable) (*tensor.RawTensor, error) {
	if err := op.record(backend, vars); err != nil {
		return nil, err
	}
	return backend.Abs(vars[0].Data()), nil
}

// BackwardVar propagates grad * sign(a), with NaN where a == 0.
func (op *AbsOp) BackwardVar(grad *tensor.RawTensor, index int, cfg BackwardConfig) error {
	a, err := op.variable(index)
	if err != nil {
		return err
	}
	return a.Backward(op.backend.Mul(grad, absDerivative(a.Data())), cfg)
}

// absDerivative returns the piecewise derivative of |x|: -1, NaN, +1.
func absDerivative(x *tensor.RawTensor) *tensor.RawTensor {
	d, err := tensor.NewRaw(x.Shape(), x.DType(), x.Device())
	if err != nil {
		panic(fmt.Sprintf("abs: failed to create derivative: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		signWithNaN(x.AsFloat32(), d.AsFloat32())
	case tensor.Float64:
		signWithNaN(x.AsFloat64(), d.AsFloat64())
	default:
		panic(fmt.Sprintf("abs: unsupported dtype %s (only float32/float64 supported)", x.DType()))
	}

	return d
}

func signWithNaN[T ~float32 | ~float64](src, dst []T) {
	for i, v := range src {
		switch {
		case v < 0:
			dst[i] = -1
		case v > 0:
			dst[i] = 1
		default:
			// Zero, and NaN inputs, have no derivative.
			dst[i] = T(math.NaN())
		}
	}
}
