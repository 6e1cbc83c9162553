package autodiff

import "github.com/born-ml/autograd/internal/autodiff/ops"

// Abs returns |x|. Its gradient is NaN wherever x == 0.
func (g *Graph) Abs(x Value) (Value, error) {
	return g.Apply(ops.NewAbsOp(), x)
}

// Sqrt returns sqrt(x).
func (g *Graph) Sqrt(x Value) (Value, error) {
	return g.Apply(ops.NewSqrtOp(), x)
}

// Cbrt returns the real cube root of x.
func (g *Graph) Cbrt(x Value) (Value, error) {
	return g.Apply(ops.NewCbrtOp(), x)
}

// Maximum returns the element-wise maximum of a and b, broadcasting.
// Where a == b the gradient goes to b.
func (g *Graph) Maximum(a, b Value) (Value, error) {
	return g.Apply(ops.NewMaximumOp(), a, b)
}

// Minimum returns the element-wise minimum of a and b, broadcasting.
// Where a == b the gradient goes to b.
func (g *Graph) Minimum(a, b Value) (Value, error) {
	return g.Apply(ops.NewMinimumOp(), a, b)
}

// Add returns a + b, broadcasting.
func (g *Graph) Add(a, b Value) (Value, error) {
	return g.Apply(ops.NewAddOp(), a, b)
}

// Sub returns a - b, broadcasting.
func (g *Graph) Sub(a, b Value) (Value, error) {
	return g.Apply(ops.NewSubOp(), a, b)
}

// Mul returns a * b, broadcasting.
func (g *Graph) Mul(a, b Value) (Value, error) {
	return g.Apply(ops.NewMulOp(), a, b)
}

// Div returns a / b, broadcasting.
func (g *Graph) Div(a, b Value) (Value, error) {
	return g.Apply(ops.NewDivOp(), a, b)
}

// Exp returns exp(x).
func (g *Graph) Exp(x Value) (Value, error) {
	return g.Apply(ops.NewExpOp(), x)
}

// Log returns ln(x).
func (g *Graph) Log(x Value) (Value, error) {
	return g.Apply(ops.NewLogOp(), x)
}

// Sum returns the sum of all elements of x as a scalar.
func (g *Graph) Sum(x Value) (Value, error) {
	return g.Apply(ops.NewSumOp(), x)
}
