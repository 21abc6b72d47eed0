package cpu

import (
	"math"

	"github.com/born-ml/tta/internal/tensor"
)

func addFloat32(dst, a, b []float32) {
	for i := range dst {
		dst[i] = a[i] + b[i]
	}
}

func addFloat64(dst, a, b []float64) {
	for i := range dst {
		dst[i] = a[i] + b[i]
	}
}

func mulFloat32(dst, a, b []float32) {
	for i := range dst {
		dst[i] = a[i] * b[i]
	}
}

func mulFloat64(dst, a, b []float64) {
	for i := range dst {
		dst[i] = a[i] * b[i]
	}
}

func maxFloat32(dst, a, b []float32) { maxInto(dst, a, b) }
func maxFloat64(dst, a, b []float64) { maxInto(dst, a, b) }
func minFloat32(dst, a, b []float32) { minInto(dst, a, b) }
func minFloat64(dst, a, b []float64) { minInto(dst, a, b) }

// maxInto and minInto propagate NaN from either operand.
func maxInto[T tensor.DType](dst, a, b []T) {
	for i := range dst {
		x, y := a[i], b[i]
		if math.IsNaN(float64(x)) || x >= y {
			dst[i] = x
		} else {
			dst[i] = y
		}
	}
}

func minInto[T tensor.DType](dst, a, b []T) {
	for i := range dst {
		x, y := a[i], b[i]
		if math.IsNaN(float64(x)) || x <= y {
			dst[i] = x
		} else {
			dst[i] = y
		}
	}
}
