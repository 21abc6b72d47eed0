// Package cpu implements the element-wise tensor kernels used by merge
// strategies and transforms.
package cpu

import (
	"fmt"

	"github.com/born-ml/tta/internal/parallel"
	"github.com/born-ml/tta/internal/tensor"
)

// CPUBackend executes tensor kernels in pure Go.
// Large tensors are split across goroutines according to its parallel config.
type CPUBackend struct {
	cfg parallel.Config
}

// New creates a new CPU backend with the default parallel config.
func New() *CPUBackend {
	return &CPUBackend{cfg: parallel.DefaultConfig()}
}

// NewWithConfig creates a CPU backend with an explicit parallel config.
func NewWithConfig(cfg parallel.Config) *CPUBackend {
	return &CPUBackend{cfg: cfg}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Add performs element-wise addition. Shapes and dtypes must match.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("add", a, b, addFloat32, addFloat64)
}

// Mul performs element-wise multiplication. Shapes and dtypes must match.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("mul", a, b, mulFloat32, mulFloat64)
}

// Maximum returns the element-wise maximum of a and b.
func (cpu *CPUBackend) Maximum(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("maximum", a, b, maxFloat32, maxFloat64)
}

// Minimum returns the element-wise minimum of a and b.
func (cpu *CPUBackend) Minimum(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("minimum", a, b, minFloat32, minFloat64)
}

func (cpu *CPUBackend) binary(
	op string,
	a, b *tensor.RawTensor,
	f32 func(dst, a, b []float32),
	f64 func(dst, a, b []float64),
) *tensor.RawTensor {
	if !a.SameLayout(b) {
		panic(fmt.Sprintf("%s: operands differ: %s vs %s", op, a, b))
	}

	result, err := tensor.NewRaw(a.Shape(), a.DType())
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", op, err))
	}

	switch a.DType() {
	case tensor.Float32:
		dst, x, y := result.AsFloat32(), a.AsFloat32(), b.AsFloat32()
		parallel.ForRange(len(dst), func(s, e int) {
			f32(dst[s:e], x[s:e], y[s:e])
		}, cpu.cfg)
	case tensor.Float64:
		dst, x, y := result.AsFloat64(), a.AsFloat64(), b.AsFloat64()
		parallel.ForRange(len(dst), func(s, e int) {
			f64(dst[s:e], x[s:e], y[s:e])
		}, cpu.cfg)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", op, a.DType()))
	}

	return result
}
