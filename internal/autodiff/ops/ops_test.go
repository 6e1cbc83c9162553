package ops

import (
	"testing"

	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/autograd/internal/backend/cpu"
	"github.com/born-ml/autograd/internal/tensor"
)

// leaf is a Variable that records every gradient it receives.
type leaf struct {
	data  *tensor.RawTensor
	grads []*tensor.RawTensor
	cfgs  []BackwardConfig
	err   error
}

func newLeaf(data []float64, shape ...int) *leaf {
	return &leaf{data: must.M1(tensor.FromSlice(data, tensor.Shape(shape)))}
}

func (l *leaf) Data() *tensor.RawTensor {
	return l.data
}

func (l *leaf) Backward(grad *tensor.RawTensor, cfg BackwardConfig) error {
	l.grads = append(l.grads, grad)
	l.cfgs = append(l.cfgs, cfg)
	return l.err
}

// lastGrad returns the most recent gradient as float64 values.
func (l *leaf) lastGrad(t *testing.T) []float64 {
	t.Helper()
	require.NotEmpty(t, l.grads, "no gradient received")
	return l.grads[len(l.grads)-1].Float64s()
}

func ones(shape ...int) *tensor.RawTensor {
	return must.M1(tensor.Full(tensor.Shape(shape), tensor.Float64, 1, tensor.CPU))
}

func values(data []float64, shape ...int) *tensor.RawTensor {
	return must.M1(tensor.FromSlice(data, tensor.Shape(shape)))
}

// allOps builds one fresh instance of every operation with its operands.
func allOps() map[string]struct {
	op   Operation
	vars []Variable
} {
	unary := func() []Variable { return []Variable{newLeaf([]float64{1, 4}, 2)} }
	binary := func() []Variable {
		return []Variable{newLeaf([]float64{1, 4}, 2), newLeaf([]float64{2, 3}, 2)}
	}
	return map[string]struct {
		op   Operation
		vars []Variable
	}{
		"abs":     {NewAbsOp(), unary()},
		"sqrt":    {NewSqrtOp(), unary()},
		"cbrt":    {NewCbrtOp(), unary()},
		"maximum": {NewMaximumOp(), binary()},
		"minimum": {NewMinimumOp(), binary()},
		"add":     {NewAddOp(), binary()},
		"sub":     {NewSubOp(), binary()},
		"mul":     {NewMulOp(), binary()},
		"div":     {NewDivOp(), binary()},
		"exp":     {NewExpOp(), unary()},
		"log":     {NewLogOp(), unary()},
		"sum":     {NewSumOp(), unary()},
	}
}

func TestOperation_RecordsVariablesInOrder(t *testing.T) {
	backend := cpu.New()
	for name, tc := range allOps() {
		t.Run(name, func(t *testing.T) {
			_, err := tc.op.Forward(backend, tc.vars...)
			require.NoError(t, err)
			assert.Equal(t, tc.vars, tc.op.Variables())
			assert.Equal(t, name, tc.op.Name())
		})
	}
}

func TestOperation_IndexOutOfRange(t *testing.T) {
	backend := cpu.New()
	for name, tc := range allOps() {
		t.Run(name, func(t *testing.T) {
			out, err := tc.op.Forward(backend, tc.vars...)
			require.NoError(t, err)

			grad := must.M1(tensor.Full(out.Shape(), out.DType(), 1, tensor.CPU))
			for _, index := range []int{2, -1} {
				err = tc.op.BackwardVar(grad, index, BackwardConfig{})
				assert.True(t, errors.Is(err, ErrIndexOutOfRange), "index %d: %v", index, err)
			}
			for _, v := range tc.vars {
				assert.Empty(t, v.(*leaf).grads, "no gradient may flow on a bad index")
			}
		})
	}
}

func TestOperation_UnaryIndexOneOutOfRange(t *testing.T) {
	op := NewSqrtOp()
	_, err := op.Forward(cpu.New(), newLeaf([]float64{4}, 1))
	require.NoError(t, err)

	err = op.BackwardVar(ones(1), 1, BackwardConfig{})
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))
}

func TestOperation_BackwardBeforeForward(t *testing.T) {
	err := NewAbsOp().BackwardVar(ones(1), 0, BackwardConfig{})
	assert.True(t, errors.Is(err, ErrNotRecorded))
}

func TestOperation_ForwardTwice(t *testing.T) {
	backend := cpu.New()
	op := NewCbrtOp()
	_, err := op.Forward(backend, newLeaf([]float64{8}, 1))
	require.NoError(t, err)

	_, err = op.Forward(backend, newLeaf([]float64{27}, 1))
	assert.True(t, errors.Is(err, ErrOperationReused))
}

func TestOperation_Arity(t *testing.T) {
	backend := cpu.New()

	_, err := NewAbsOp().Forward(backend, newLeaf([]float64{1}, 1), newLeaf([]float64{2}, 1))
	assert.True(t, errors.Is(err, ErrArity))

	_, err = NewMaximumOp().Forward(backend, newLeaf([]float64{1}, 1))
	assert.True(t, errors.Is(err, ErrArity))
}

func TestOperation_IncompatibleShapes(t *testing.T) {
	op := NewMaximumOp()
	_, err := op.Forward(cpu.New(), newLeaf([]float64{1, 2, 3, 4}, 4), newLeaf([]float64{1, 2, 3}, 3))
	require.Error(t, err)
	assert.True(t, errors.Is(err, tensor.ErrBroadcast))
	assert.Nil(t, op.Variables(), "a failed forward records nothing")
}

func TestOperation_DTypeMismatch(t *testing.T) {
	a := newLeaf([]float64{1}, 1)
	b := &leaf{data: must.M1(tensor.FromSlice([]float32{1}, tensor.Shape{1}))}

	op := NewAddOp()
	_, err := op.Forward(cpu.New(), a, b)
	assert.True(t, errors.Is(err, ErrDType))
	assert.Nil(t, op.Variables(), "a failed forward records nothing")
}

func TestOperation_RejectsBoolOperands(t *testing.T) {
	mask := &leaf{data: must.M1(tensor.FromSlice([]bool{true, false}, tensor.Shape{2}))}

	for name, op := range map[string]Operation{
		"abs":  NewAbsOp(),
		"sqrt": NewSqrtOp(),
		"cbrt": NewCbrtOp(),
		"exp":  NewExpOp(),
		"log":  NewLogOp(),
		"sum":  NewSumOp(),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := op.Forward(cpu.New(), mask)
			assert.True(t, errors.Is(err, ErrDType))
			assert.Nil(t, op.Variables())
		})
	}
}

func TestOperation_ForwardsConfigAndError(t *testing.T) {
	a := newLeaf([]float64{-1}, 1)
	a.err = errors.New("boom")

	op := NewAbsOp()
	_, err := op.Forward(cpu.New(), a)
	require.NoError(t, err)

	cfg := BackwardConfig{ClearGraph: true}
	err = op.BackwardVar(ones(1), 0, cfg)
	assert.EqualError(t, err, "boom")
	assert.Equal(t, []BackwardConfig{cfg}, a.cfgs)
}
