package ops

import "github.com/born-ml/autograd/internal/tensor"

// extremum implements the shared body of MaximumOp and MinimumOp.
//
// Forward stores selectMask = compare(a, b) and equalMask = (a == b) and
// returns where(selectMask, a, b). Backward routes the gradient through
// selectMask to a and through its negation to b, so ties (where selectMask
// is false) send the whole gradient to b. equalMask does not influence
// routing; it is kept for inspection.
type extremum struct {
	broadcastable
	compare    func(backend tensor.Backend, a, b *tensor.RawTensor) *tensor.RawTensor
	selectMask *tensor.RawTensor
	equalMask  *tensor.RawTensor
}

func (op *extremum) Forward(backend tensor.Backend, vars ...Variable) (*tensor.RawTensor, error) {
	if err := op.recordBroadcast(backend, vars); err != nil {
		return nil, err
	}

	a, b := vars[0].Data(), vars[1].Data()
	op.selectMask = op.compare(backend, a, b)
	op.equalMask = backend.Equal(a, b)
	return backend.Where(op.selectMask, a, b), nil
}

// BackwardVar propagates mask * grad, reduced to the operand's shape.
// Index 0 uses the selection mask, index 1 its negation.
func (op *extremum) BackwardVar(grad *tensor.RawTensor, index int, cfg BackwardConfig) error {
	v, err := op.variable(index)
	if err != nil {
		return err
	}

	mask := op.selectMask
	if index == 1 {
		mask = op.backend.Not(mask)
	}

	local := op.backend.Mul(op.backend.Cast(mask, grad.DType()), grad)
	return op.propagate(v, local, cfg)
}

// EqualMask returns a == b as computed by Forward.
func (op *extremum) EqualMask() *tensor.RawTensor {
	return op.equalMask
}
