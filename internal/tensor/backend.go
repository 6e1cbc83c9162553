package tensor

// Backend defines the numeric runtime the autodiff operations compute on.
// All elementwise binary operations follow NumPy broadcasting rules and
// IEEE-754 float semantics: domain errors and singularities produce NaN or
// ±Inf rather than failing.
//
// Implementations panic on internal misuse (incompatible shapes, unsupported
// dtypes); callers that accept user input validate with BroadcastShapes first.
type Backend interface {
	// Element-wise binary operations
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor

	// Scalar operations (element-wise with scalar)
	MulScalar(x *RawTensor, scalar float64) *RawTensor

	// Math operations (element-wise)
	Abs(x *RawTensor) *RawTensor  // absolute value
	Neg(x *RawTensor) *RawTensor  // negation
	Sqrt(x *RawTensor) *RawTensor // square root
	Cbrt(x *RawTensor) *RawTensor // real cube root
	Exp(x *RawTensor) *RawTensor  // exponential
	Log(x *RawTensor) *RawTensor  // natural logarithm

	// Comparison operations (element-wise, return bool tensor)
	Greater(a, b *RawTensor) *RawTensor // a > b
	Lower(a, b *RawTensor) *RawTensor   // a < b
	Equal(a, b *RawTensor) *RawTensor   // a == b

	// Boolean operations
	Not(x *RawTensor) *RawTensor // logical NOT

	// Selection and conversion
	Where(condition, x, y *RawTensor) *RawTensor // conditional element selection
	Cast(x *RawTensor, dtype DataType) *RawTensor

	// Reduction operations
	Sum(x *RawTensor) *RawTensor                           // total sum (scalar result)
	SumDim(x *RawTensor, dim int, keepDim bool) *RawTensor // sum along dimension

	// Shape operations
	Reshape(t *RawTensor, newShape Shape) *RawTensor
	BroadcastTo(t *RawTensor, shape Shape) *RawTensor

	// Metadata
	Name() string
	Device() Device
}
