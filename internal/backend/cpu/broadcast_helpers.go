package cpu

import (
	"github.com/born-ml/autograd/internal/tensor"
)

// float is the set of element types the arithmetic kernels run on.
type float interface {
	~float32 | ~float64
}

// computeBroadcastStridesForShape computes strides for broadcasting a shape to outShape.
// Returns strides where dimensions of size 1 have stride 0 (for broadcasting).
func computeBroadcastStridesForShape(inShape, outShape tensor.Shape) []int {
	outDim := len(outShape)
	strides := make([]int, outDim)

	// Pad input shape with 1s on the left
	inDim := len(inShape)
	offset := outDim - inDim

	origStrides := inShape.ComputeStrides()

	for i := 0; i < outDim; i++ {
		inIdx := i - offset
		switch {
		case inIdx < 0 || inIdx >= inDim:
			strides[i] = 0
		case inShape[inIdx] == 1:
			strides[i] = 0
		default:
			strides[i] = origStrides[inIdx]
		}
	}

	return strides
}

// computeFlatIndex computes the flat index in the source array for a given output index.
// outStrides: strides of the output shape.
// inStrides: broadcast-adjusted strides of the input shape.
func computeFlatIndex(outIdx int, outStrides, inStrides []int) int {
	flatIdx := 0
	for i := range outStrides {
		coord := outIdx / outStrides[i]
		outIdx %= outStrides[i]
		flatIdx += coord * inStrides[i]
	}
	return flatIdx
}

// broadcastIndex maps flat indices of outShape to flat indices of an operand
// with shape inShape.
type broadcastIndex struct {
	identity   bool
	outStrides []int
	inStrides  []int
}

func newBroadcastIndex(inShape, outShape tensor.Shape) broadcastIndex {
	if inShape.Equal(outShape) {
		return broadcastIndex{identity: true}
	}
	return broadcastIndex{
		outStrides: outShape.ComputeStrides(),
		inStrides:  computeBroadcastStridesForShape(inShape, outShape),
	}
}

func (bi broadcastIndex) at(outIdx int) int {
	if bi.identity {
		return outIdx
	}
	return computeFlatIndex(outIdx, bi.outStrides, bi.inStrides)
}

// binaryKernel applies fn elementwise over broadcast operands.
func binaryKernel[T float](dst, a, b []T, aShape, bShape, outShape tensor.Shape, fn func(x, y T) T) {
	ai := newBroadcastIndex(aShape, outShape)
	bi := newBroadcastIndex(bShape, outShape)
	for i := range dst {
		dst[i] = fn(a[ai.at(i)], b[bi.at(i)])
	}
}

// compareKernel writes fn(a, b) over broadcast operands into a bool buffer.
func compareKernel[T float](dst []bool, a, b []T, aShape, bShape, outShape tensor.Shape, fn func(x, y T) bool) {
	ai := newBroadcastIndex(aShape, outShape)
	bi := newBroadcastIndex(bShape, outShape)
	for i := range dst {
		dst[i] = fn(a[ai.at(i)], b[bi.at(i)])
	}
}

// whereKernel selects x where cond holds and y elsewhere, broadcasting all three.
func whereKernel[T float](dst []T, cond []bool, x, y []T, condShape, xShape, yShape, outShape tensor.Shape) {
	ci := newBroadcastIndex(condShape, outShape)
	xi := newBroadcastIndex(xShape, outShape)
	yi := newBroadcastIndex(yShape, outShape)
	for i := range dst {
		if cond[ci.at(i)] {
			dst[i] = x[xi.at(i)]
		} else {
			dst[i] = y[yi.at(i)]
		}
	}
}

// expandKernel copies src into dst, repeating it along broadcast axes.
func expandKernel[T float](dst, src []T, srcShape, outShape tensor.Shape) {
	si := newBroadcastIndex(srcShape, outShape)
	for i := range dst {
		dst[i] = src[si.at(i)]
	}
}
