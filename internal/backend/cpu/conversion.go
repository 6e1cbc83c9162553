package cpu

import (
	"fmt"

	"github.com/born-ml/autograd/internal/tensor"
)

// Cast converts x to dtype. Bool converts to 0/1, floats convert to bool
// as x != 0.
func (cpu *CPUBackend) Cast(x *tensor.RawTensor, dtype tensor.DataType) *tensor.RawTensor {
	if x.DType() == dtype {
		return x.Clone()
	}

	result, err := tensor.NewRaw(x.Shape(), dtype, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("cast: %v", err))
	}

	values := x.Float64s()
	switch dtype {
	case tensor.Float32:
		dst := result.AsFloat32()
		for i, v := range values {
			dst[i] = float32(v)
		}
	case tensor.Float64:
		copy(result.AsFloat64(), values)
	case tensor.Bool:
		dst := result.AsBool()
		for i, v := range values {
			dst[i] = v != 0
		}
	default:
		panic(fmt.Sprintf("cast: unsupported dtype %s", dtype))
	}

	return result
}
