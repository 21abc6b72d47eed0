package cpu

import (
	"fmt"
	"math"

	"github.com/born-ml/tta/internal/parallel"
	"github.com/born-ml/tta/internal/tensor"
)

// AddScalar adds a scalar to every element.
func (cpu *CPUBackend) AddScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	return cpu.unary("add_scalar", x, func(v float64) float64 { return v + scalar })
}

// MulScalar multiplies every element by a scalar.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	return cpu.unary("mul_scalar", x, func(v float64) float64 { return v * scalar })
}

// DivScalar divides every element by a scalar.
func (cpu *CPUBackend) DivScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	return cpu.unary("div_scalar", x, func(v float64) float64 { return v / scalar })
}

// PowScalar raises every element to the given power.
// Follows math.Pow, so negative bases with fractional exponents yield NaN.
func (cpu *CPUBackend) PowScalar(x *tensor.RawTensor, exponent float64) *tensor.RawTensor {
	switch exponent {
	case 1:
		return x.Clone()
	case 0.5:
		return cpu.unary("pow", x, math.Sqrt)
	case 2:
		return cpu.unary("pow", x, func(v float64) float64 { return v * v })
	}
	return cpu.unary("pow", x, func(v float64) float64 { return math.Pow(v, exponent) })
}

// unary applies f element-wise, computing in float64 and storing in x's dtype.
func (cpu *CPUBackend) unary(op string, x *tensor.RawTensor, f func(float64) float64) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType())
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", op, err))
	}

	switch x.DType() {
	case tensor.Float32:
		dst, src := result.AsFloat32(), x.AsFloat32()
		parallel.ForRange(len(dst), func(s, e int) {
			for i := s; i < e; i++ {
				dst[i] = float32(f(float64(src[i])))
			}
		}, cpu.cfg)
	case tensor.Float64:
		dst, src := result.AsFloat64(), x.AsFloat64()
		parallel.ForRange(len(dst), func(s, e int) {
			for i := s; i < e; i++ {
				dst[i] = f(src[i])
			}
		}, cpu.cfg)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", op, x.DType()))
	}

	return result
}
