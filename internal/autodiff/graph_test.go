package autodiff_test

import (
	"math"
	"testing"

	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"

	"github.com/born-ml/autograd/internal/autodiff"
	"github.com/born-ml/autograd/internal/autodiff/ops"
	"github.com/born-ml/autograd/internal/backend/cpu"
	"github.com/born-ml/autograd/internal/tensor"
)

func raw(data []float64, shape ...int) *tensor.RawTensor {
	return must.M1(tensor.FromSlice(data, tensor.Shape(shape)))
}

func TestGraph_AbsEndToEnd(t *testing.T) {
	g := autodiff.NewGraph(cpu.New())
	a := g.Leaf(raw([]float64{-2, 0, 3}, 3), true)

	y := must.M1(g.Abs(a))
	assert.Equal(t, []float64{2, 0, 3}, y.Data().AsFloat64())

	require.NoError(t, y.Backprop(raw([]float64{1, 1, 1}, 3), ops.BackwardConfig{}))

	grad := a.Grad().AsFloat64()
	assert.Equal(t, -1.0, grad[0])
	assert.True(t, math.IsNaN(grad[1]))
	assert.Equal(t, 1.0, grad[2])
}

func TestGraph_SqrtEndToEnd(t *testing.T) {
	g := autodiff.NewGraph(cpu.New())
	a := g.Leaf(raw([]float64{4, 9}, 2), true)

	y := must.M1(g.Sqrt(a))
	assert.Equal(t, []float64{2, 3}, y.Data().AsFloat64())

	require.NoError(t, y.Backprop(nil, ops.BackwardConfig{}))
	assert.InDeltaSlice(t, []float64{0.25, 1.0 / 6}, a.Grad().AsFloat64(), 1e-15)
}

func TestGraph_MaximumEndToEnd(t *testing.T) {
	g := autodiff.NewGraph(cpu.New())
	a := g.Leaf(raw([]float64{1, 5}, 2), true)
	b := g.Leaf(raw([]float64{3, 2}, 2), true)

	y := must.M1(g.Maximum(a, b))
	assert.Equal(t, []float64{3, 5}, y.Data().AsFloat64())

	require.NoError(t, y.Backprop(nil, ops.BackwardConfig{}))
	assert.Equal(t, []float64{0, 1}, a.Grad().AsFloat64())
	assert.Equal(t, []float64{1, 0}, b.Grad().AsFloat64())
}

func TestGraph_MinimumBroadcast(t *testing.T) {
	g := autodiff.NewGraph(cpu.New())
	a := g.Leaf(raw([]float64{0, 5, 2}, 3), true)
	b := g.Leaf(raw([]float64{1, 1, 1, 3, 6, 2}, 2, 3), true)

	y := must.M1(g.Minimum(a, b))
	assert.Equal(t, []float64{0, 1, 1, 0, 5, 2}, y.Data().AsFloat64())

	require.NoError(t, y.Backprop(nil, ops.BackwardConfig{}))
	// a < b: [T F F; T T F]
	assert.Equal(t, tensor.Shape{3}, a.Grad().Shape())
	assert.Equal(t, []float64{2, 1, 0}, a.Grad().AsFloat64())
	assert.Equal(t, []float64{0, 1, 1, 0, 0, 1}, b.Grad().AsFloat64())
}

// Maximum(x, x) ties everywhere: the gradient reaches x once, through operand b.
func TestGraph_MaximumOfSameValue(t *testing.T) {
	g := autodiff.NewGraph(cpu.New())
	x := g.Leaf(raw([]float64{1, -2}, 2), true)

	y := must.M1(g.Maximum(x, x))
	require.NoError(t, y.Backprop(nil, ops.BackwardConfig{}))
	assert.Equal(t, []float64{1, 1}, x.Grad().AsFloat64())
}

func TestGraph_FanOutAccumulates(t *testing.T) {
	g := autodiff.NewGraph(cpu.New())
	x := g.Leaf(raw([]float64{3, -1.5}, 2), true)

	y := must.M1(g.Mul(x, x))
	require.NoError(t, y.Backprop(nil, ops.BackwardConfig{}))
	assert.Equal(t, []float64{6, -3}, x.Grad().AsFloat64())
}

func TestGraph_DiamondAccumulates(t *testing.T) {
	g := autodiff.NewGraph(cpu.New())
	x := g.Leaf(raw([]float64{4}, 1), true)

	// y = sqrt(x) + sqrt(x)*x  ->  dy/dx = 1/(2√x) + (3/2)√x = 0.25 + 3
	s := must.M1(g.Sqrt(x))
	sx := must.M1(g.Mul(s, x))
	y := must.M1(g.Add(s, sx))

	require.NoError(t, y.Backprop(nil, ops.BackwardConfig{}))
	assert.InDelta(t, 3.25, x.Grad().AsFloat64()[0], 1e-12)
	assert.InDelta(t, 1+4.0, s.Grad().AsFloat64()[0], 1e-12)
}

// chain builds sum(cbrt(max(|x|, c)) * exp(x)) / 2 at one point.
func chain(g *autodiff.Graph, x autodiff.Value) (autodiff.Value, error) {
	c := g.Constant(raw([]float64{0.5}, 1))
	two := g.Constant(raw([]float64{2}, 1))

	ax, err := g.Abs(x)
	if err != nil {
		return autodiff.Value{}, err
	}
	m, err := g.Maximum(ax, c)
	if err != nil {
		return autodiff.Value{}, err
	}
	r, err := g.Cbrt(m)
	if err != nil {
		return autodiff.Value{}, err
	}
	e, err := g.Exp(x)
	if err != nil {
		return autodiff.Value{}, err
	}
	p, err := g.Mul(r, e)
	if err != nil {
		return autodiff.Value{}, err
	}
	d, err := g.Div(p, two)
	if err != nil {
		return autodiff.Value{}, err
	}
	return g.Sum(d)
}

func TestGraph_ChainMatchesFiniteDifference(t *testing.T) {
	f := func(v float64) float64 {
		g := autodiff.NewGraph(cpu.New())
		y, err := chain(g, g.Leaf(raw([]float64{v}, 1), false))
		if err != nil {
			panic(err)
		}
		return y.Data().AsFloat64()[0]
	}

	for _, point := range []float64{-1.7, -0.2, 0.3, 2} {
		g := autodiff.NewGraph(cpu.New())
		x := g.Leaf(raw([]float64{point}, 1), true)
		y := must.M1(chain(g, x))
		require.NoError(t, y.Backprop(nil, ops.BackwardConfig{}))

		numeric := fd.Derivative(f, point, &fd.Settings{Formula: fd.Central, Step: 1e-6})
		assert.InDelta(t, numeric, x.Grad().AsFloat64()[0], 1e-5, "x = %g", point)
	}
}

func TestGraph_ConstantsReceiveNoGradient(t *testing.T) {
	g := autodiff.NewGraph(cpu.New())
	x := g.Leaf(raw([]float64{1, 2}, 2), true)
	c := g.Constant(raw([]float64{5, 0}, 2))

	y := must.M1(g.Maximum(x, c))
	assert.True(t, y.RequiresGrad())
	require.NoError(t, y.Backprop(nil, ops.BackwardConfig{}))

	assert.Equal(t, []float64{0, 1}, x.Grad().AsFloat64())
	assert.Nil(t, c.Grad())

	k := must.M1(g.Sqrt(c))
	assert.False(t, k.RequiresGrad())
}

func TestGraph_RepeatedBackpropAccumulates(t *testing.T) {
	g := autodiff.NewGraph(cpu.New())
	x := g.Leaf(raw([]float64{-3}, 1), true)
	y := must.M1(g.Abs(x))

	require.NoError(t, y.Backprop(nil, ops.BackwardConfig{}))
	require.NoError(t, y.Backprop(nil, ops.BackwardConfig{}))
	assert.Equal(t, []float64{-2}, x.Grad().AsFloat64())

	g.ZeroGrad()
	assert.Nil(t, x.Grad())
	assert.Nil(t, y.Grad())
}

func TestGraph_ClearGraph(t *testing.T) {
	g := autodiff.NewGraph(cpu.New())
	x := g.Leaf(raw([]float64{9}, 1), true)
	s := must.M1(g.Sqrt(x))
	y := must.M1(g.Add(s, s))

	require.NoError(t, y.Backprop(nil, ops.BackwardConfig{ClearGraph: true}))
	assert.InDelta(t, 1.0/3, x.Grad().AsFloat64()[0], 1e-15)

	assert.Nil(t, y.Creator())
	assert.Nil(t, s.Creator())
	assert.False(t, y.IsLeaf())
	assert.True(t, x.IsLeaf())
	assert.Equal(t, 0, g.Stats().Ops)

	err := y.Backprop(nil, ops.BackwardConfig{})
	assert.True(t, errors.Is(err, autodiff.ErrGraphCleared))
}

func TestGraph_GradShapeMismatch(t *testing.T) {
	g := autodiff.NewGraph(cpu.New())
	x := g.Leaf(raw([]float64{1, 2}, 2), true)
	y := must.M1(g.Sqrt(x))

	err := y.Backprop(raw([]float64{1, 1, 1}, 3), ops.BackwardConfig{})
	assert.True(t, errors.Is(err, autodiff.ErrGradShape))

	f32 := must.M1(tensor.FromSlice([]float32{1, 1}, tensor.Shape{2}))
	err = y.Backprop(f32, ops.BackwardConfig{})
	assert.True(t, errors.Is(err, autodiff.ErrGradShape))
}

func TestGraph_BroadcastErrorSurfaces(t *testing.T) {
	g := autodiff.NewGraph(cpu.New())
	a := g.Leaf(raw([]float64{1, 2, 3, 4}, 4), true)
	b := g.Leaf(raw([]float64{1, 2, 3}, 3), true)

	_, err := g.Maximum(a, b)
	assert.True(t, errors.Is(err, tensor.ErrBroadcast))
	assert.Equal(t, 2, g.Len(), "a failed apply adds no value")
}

func TestGraph_BoolOperandsRejected(t *testing.T) {
	g := autodiff.NewGraph(cpu.New())
	a := g.Leaf(must.M1(tensor.FromSlice([]bool{true, false}, tensor.Shape{2})), true)
	b := g.Leaf(must.M1(tensor.FromSlice([]bool{false, false}, tensor.Shape{2})), true)

	_, err := g.Abs(a)
	assert.True(t, errors.Is(err, ops.ErrDType))
	_, err = g.Sqrt(a)
	assert.True(t, errors.Is(err, ops.ErrDType))
	_, err = g.Cbrt(a)
	assert.True(t, errors.Is(err, ops.ErrDType))
	_, err = g.Maximum(a, b)
	assert.True(t, errors.Is(err, ops.ErrDType))
	_, err = g.Minimum(a, b)
	assert.True(t, errors.Is(err, ops.ErrDType))

	x := g.Leaf(raw([]float64{1, 2}, 2), true)
	_, err = g.Maximum(x, a)
	assert.True(t, errors.Is(err, ops.ErrDType))
	assert.Equal(t, 3, g.Len(), "rejected operations add no value")
}

func TestGraph_ForeignAndStaleValues(t *testing.T) {
	g1 := autodiff.NewGraph(cpu.New())
	g2 := autodiff.NewGraph(cpu.New())
	x := g1.Leaf(raw([]float64{1}, 1), true)

	_, err := g2.Abs(x)
	assert.True(t, errors.Is(err, autodiff.ErrForeignValue))

	g1.Reset()
	assert.Equal(t, 0, g1.Len())
	_, err = g1.Abs(x)
	assert.True(t, errors.Is(err, autodiff.ErrForeignValue))
	assert.Panics(t, func() { x.Data() })
}

func TestGraph_ReusedOperation(t *testing.T) {
	g := autodiff.NewGraph(cpu.New())
	x := g.Leaf(raw([]float64{1}, 1), true)

	op := ops.NewAbsOp()
	_, err := g.Apply(op, x)
	require.NoError(t, err)
	_, err = g.Apply(op, x)
	assert.True(t, errors.Is(err, ops.ErrOperationReused))
}

func TestGraph_NameAndStats(t *testing.T) {
	g := autodiff.NewGraph(cpu.New(), autodiff.WithName("session"))
	assert.Equal(t, "session", g.Name())

	anonymous := autodiff.NewGraph(cpu.New())
	assert.Equal(t, anonymous.ID().String(), anonymous.Name())

	x := g.Leaf(raw([]float64{1, 2}, 2), true)
	y := must.M1(g.Exp(x))
	require.NoError(t, y.Backprop(nil, ops.BackwardConfig{}))

	stats := g.Stats()
	assert.Equal(t, autodiff.Stats{Values: 2, Ops: 1, Grads: 2, GradBytes: 32}, stats)
	assert.Equal(t, "2 values, 1 ops, 2 gradients (32 B)", stats.String())
}
