package cpu

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/autograd/internal/tensor"
)

// MulScalar multiplies every element by scalar.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	result := x.Clone()

	switch x.DType() {
	case tensor.Float32:
		data := result.AsFloat32()
		s := float32(scalar)
		for i := range data {
			data[i] *= s
		}
	case tensor.Float64:
		floats.Scale(scalar, result.AsFloat64())
	default:
		panic(fmt.Sprintf("mulscalar: unsupported dtype %s (only float32/float64 supported)", x.DType()))
	}

	return result
}
