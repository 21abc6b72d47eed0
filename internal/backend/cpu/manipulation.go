package cpu

import (
	"fmt"

	"github.com/born-ml/tta/internal/parallel"
	"github.com/born-ml/tta/internal/tensor"
)

// Flip reverses the order of elements along the given dimensions.
// Negative dimensions count from the end.
func (cpu *CPUBackend) Flip(x *tensor.RawTensor, dims ...int) *tensor.RawTensor {
	shape := x.Shape()
	flipped := make([]bool, len(shape))
	for _, d := range dims {
		nd, err := shape.NormalizeDim(d)
		if err != nil {
			panic(fmt.Sprintf("flip: %v", err))
		}
		flipped[nd] = !flipped[nd]
	}

	strides := x.Strides()
	return cpu.remap("flip", x, shape, func(coords []int) int {
		src := 0
		for i, c := range coords {
			if flipped[i] {
				c = shape[i] - 1 - c
			}
			src += c * strides[i]
		}
		return src
	})
}

// Transpose swaps two dimensions.
func (cpu *CPUBackend) Transpose(x *tensor.RawTensor, dim0, dim1 int) *tensor.RawTensor {
	shape := x.Shape()
	d0, err := shape.NormalizeDim(dim0)
	if err != nil {
		panic(fmt.Sprintf("transpose: %v", err))
	}
	d1, err := shape.NormalizeDim(dim1)
	if err != nil {
		panic(fmt.Sprintf("transpose: %v", err))
	}

	outShape := shape.Clone()
	outShape[d0], outShape[d1] = shape[d1], shape[d0]

	strides := x.Strides()
	return cpu.remap("transpose", x, outShape, func(coords []int) int {
		src := 0
		for i, c := range coords {
			switch i {
			case d0:
				src += c * strides[d1]
			case d1:
				src += c * strides[d0]
			default:
				src += c * strides[i]
			}
		}
		return src
	})
}

// Rot90 rotates the plane spanned by (dim0, dim1) by k quarter turns,
// counter-clockwise when viewed with dim0 as rows and dim1 as columns.
// Negative k rotates clockwise. Rot90(Rot90(x, k), -k) == x.
func (cpu *CPUBackend) Rot90(x *tensor.RawTensor, k, dim0, dim1 int) *tensor.RawTensor {
	switch ((k % 4) + 4) % 4 {
	case 1:
		return cpu.Transpose(cpu.Flip(x, dim1), dim0, dim1)
	case 2:
		return cpu.Flip(x, dim0, dim1)
	case 3:
		return cpu.Flip(cpu.Transpose(x, dim0, dim1), dim1)
	default:
		return x.Clone()
	}
}

// remap builds a tensor of outShape whose element at coords is read from
// x at flat offset srcIndex(coords).
func (cpu *CPUBackend) remap(
	op string,
	x *tensor.RawTensor,
	outShape tensor.Shape,
	srcIndex func(coords []int) int,
) *tensor.RawTensor {
	result, err := tensor.NewRaw(outShape, x.DType())
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", op, err))
	}

	outStrides := outShape.ComputeStrides()
	switch x.DType() {
	case tensor.Float32:
		gather(result.AsFloat32(), x.AsFloat32(), outShape, outStrides, srcIndex, cpu.cfg)
	case tensor.Float64:
		gather(result.AsFloat64(), x.AsFloat64(), outShape, outStrides, srcIndex, cpu.cfg)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", op, x.DType()))
	}
	return result
}

func gather[T tensor.DType](
	dst, src []T,
	outShape tensor.Shape,
	outStrides []int,
	srcIndex func(coords []int) int,
	cfg parallel.Config,
) {
	parallel.ForRange(len(dst), func(start, end int) {
		coords := make([]int, len(outShape))
		rem := start
		for i, s := range outStrides {
			coords[i] = rem / s
			rem %= s
		}

		for i := start; i < end; i++ {
			dst[i] = src[srcIndex(coords)]
			for d := len(coords) - 1; d >= 0; d-- {
				coords[d]++
				if coords[d] < outShape[d] {
					break
				}
				coords[d] = 0
			}
		}
	}, cfg)
}
