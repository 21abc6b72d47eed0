package cpu

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/tta/internal/parallel"
	"github.com/born-ml/tta/internal/tensor"
)

const epsilon = 1e-5

func mustFloat32(t *testing.T, data []float32, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.FromSlice(data, shape)
	require.NoError(t, err)
	return raw
}

func mustFloat64(t *testing.T, data []float64, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.FromSlice(data, shape)
	require.NoError(t, err)
	return raw
}

func TestBinaryOps(t *testing.T) {
	backend := New()
	a := mustFloat32(t, []float32{1, 5, -2, 4}, tensor.Shape{2, 2})
	b := mustFloat32(t, []float32{3, 2, -1, 4}, tensor.Shape{2, 2})

	tests := []struct {
		name string
		op   func(a, b *tensor.RawTensor) *tensor.RawTensor
		want []float32
	}{
		{"add", backend.Add, []float32{4, 7, -3, 8}},
		{"mul", backend.Mul, []float32{3, 10, 2, 16}},
		{"maximum", backend.Maximum, []float32{3, 5, -1, 4}},
		{"minimum", backend.Minimum, []float32{1, 2, -2, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.op(a, b)
			assert.Equal(t, tensor.Shape{2, 2}, result.Shape())
			assert.InDeltaSlice(t, tt.want, result.AsFloat32(), epsilon)
		})
	}

	// Operands are never written to.
	assert.Equal(t, []float32{1, 5, -2, 4}, a.AsFloat32())
}

func TestMaximumPropagatesNaN(t *testing.T) {
	backend := New()
	nan := math.NaN()
	a := mustFloat64(t, []float64{nan, 1}, tensor.Shape{2})
	b := mustFloat64(t, []float64{0, nan}, tensor.Shape{2})

	for _, result := range []*tensor.RawTensor{backend.Maximum(a, b), backend.Minimum(a, b)} {
		for i, v := range result.AsFloat64() {
			assert.Truef(t, math.IsNaN(v), "[%d] = %v, want NaN", i, v)
		}
	}
}

func TestBinaryShapeMismatchPanics(t *testing.T) {
	backend := New()
	a := mustFloat32(t, []float32{1, 2}, tensor.Shape{2})
	b := mustFloat32(t, []float32{1, 2}, tensor.Shape{1, 2})

	assert.Panics(t, func() { backend.Add(a, b) })
}

func TestScalarOps(t *testing.T) {
	backend := New()
	x := mustFloat32(t, []float32{1, 4, 9}, tensor.Shape{3})

	assert.InDeltaSlice(t, []float32{2, 5, 10}, backend.AddScalar(x, 1).AsFloat32(), epsilon)
	assert.InDeltaSlice(t, []float32{0.5, 2, 4.5}, backend.MulScalar(x, 0.5).AsFloat32(), epsilon)
	assert.InDeltaSlice(t, []float32{0.5, 2, 4.5}, backend.DivScalar(x, 2).AsFloat32(), epsilon)
	assert.InDeltaSlice(t, []float32{1, 2, 3}, backend.PowScalar(x, 0.5).AsFloat32(), epsilon)
	assert.InDeltaSlice(t, []float32{1, 16, 81}, backend.PowScalar(x, 2).AsFloat32(), epsilon)
	assert.InDeltaSlice(t, []float32{1, 1.587401, 2.080084}, backend.PowScalar(x, 1.0/3).AsFloat32(), epsilon)
}

func TestPowScalarNegativeBaseIsNaN(t *testing.T) {
	backend := New()
	x := mustFloat64(t, []float64{-4}, tensor.Shape{1})
	assert.True(t, math.IsNaN(backend.PowScalar(x, 0.5).AsFloat64()[0]))
}

func TestFlip(t *testing.T) {
	backend := New()
	// [[0 1 2]
	//  [3 4 5]]
	x := mustFloat32(t, []float32{0, 1, 2, 3, 4, 5}, tensor.Shape{2, 3})

	tests := []struct {
		name string
		dims []int
		want []float32
	}{
		{"last dim", []int{-1}, []float32{2, 1, 0, 5, 4, 3}},
		{"first dim", []int{0}, []float32{3, 4, 5, 0, 1, 2}},
		{"both dims", []int{0, 1}, []float32{5, 4, 3, 2, 1, 0}},
		{"flipped twice", []int{1, 1}, []float32{0, 1, 2, 3, 4, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, backend.Flip(x, tt.dims...).AsFloat32())
		})
	}
}

func TestTranspose(t *testing.T) {
	backend := New()
	x := mustFloat32(t, []float32{0, 1, 2, 3, 4, 5}, tensor.Shape{1, 2, 3})

	result := backend.Transpose(x, -2, -1)
	require.Equal(t, tensor.Shape{1, 3, 2}, result.Shape())
	assert.Equal(t, []float32{0, 3, 1, 4, 2, 5}, result.AsFloat32())
}

func TestRot90(t *testing.T) {
	backend := New()
	// [[0 1 2]
	//  [3 4 5]]
	x := mustFloat32(t, []float32{0, 1, 2, 3, 4, 5}, tensor.Shape{2, 3})

	tests := []struct {
		name  string
		k     int
		shape tensor.Shape
		want  []float32
	}{
		{"k=0", 0, tensor.Shape{2, 3}, []float32{0, 1, 2, 3, 4, 5}},
		{"k=1", 1, tensor.Shape{3, 2}, []float32{2, 5, 1, 4, 0, 3}},
		{"k=2", 2, tensor.Shape{2, 3}, []float32{5, 4, 3, 2, 1, 0}},
		{"k=3", 3, tensor.Shape{3, 2}, []float32{3, 0, 4, 1, 5, 2}},
		{"k=-1", -1, tensor.Shape{3, 2}, []float32{3, 0, 4, 1, 5, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := backend.Rot90(x, tt.k, 0, 1)
			require.Equal(t, tt.shape, result.Shape())
			assert.Equal(t, tt.want, result.AsFloat32())
		})
	}
}

func TestRot90RoundTrip(t *testing.T) {
	backend := NewWithConfig(parallel.Config{Enabled: true, NumWorkers: 3, MinChunkSize: 2})
	data := make([]float64, 2*3*4*5)
	for i := range data {
		data[i] = float64(i)
	}
	x := mustFloat64(t, data, tensor.Shape{2, 3, 4, 5})

	for k := -3; k <= 4; k++ {
		back := backend.Rot90(backend.Rot90(x, k, -2, -1), -k, -2, -1)
		require.Truef(t, back.SameLayout(x), "k=%d: layout %s, want %s", k, back, x)
		assert.Equalf(t, data, back.AsFloat64(), "k=%d", k)
	}
}
