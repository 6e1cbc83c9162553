package cpu

import (
	"fmt"

	"github.com/born-ml/autograd/internal/tensor"
)

// Reshape returns a copy of t laid out as newShape.
func (cpu *CPUBackend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	view, err := t.Clone().WithShape(newShape)
	if err != nil {
		panic(fmt.Sprintf("reshape: %v", err))
	}
	return view
}

// BroadcastTo expands t to shape following NumPy broadcasting rules.
func (cpu *CPUBackend) BroadcastTo(t *tensor.RawTensor, shape tensor.Shape) *tensor.RawTensor {
	outShape, _, err := tensor.BroadcastShapes(t.Shape(), shape)
	if err != nil || !outShape.Equal(shape) {
		panic(fmt.Sprintf("broadcastto: cannot broadcast %v to %v", t.Shape(), shape))
	}

	result, err := tensor.NewRaw(shape, t.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("broadcastto: %v", err))
	}

	switch t.DType() {
	case tensor.Float32:
		expandKernel(result.AsFloat32(), t.AsFloat32(), t.Shape(), shape)
	case tensor.Float64:
		expandKernel(result.AsFloat64(), t.AsFloat64(), t.Shape(), shape)
	default:
		panic(fmt.Sprintf("broadcastto: unsupported dtype %s (only float32/float64 supported)", t.DType()))
	}

	return result
}
