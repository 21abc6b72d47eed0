package tensor

import "testing"

func TestShapeNumElements(t *testing.T) {
	tests := []struct {
		shape Shape
		want  int
	}{
		{Shape{}, 1},
		{Shape{5}, 5},
		{Shape{2, 3, 4}, 24},
	}

	for _, tt := range tests {
		if got := tt.shape.NumElements(); got != tt.want {
			t.Errorf("%v.NumElements() = %d, want %d", tt.shape, got, tt.want)
		}
	}
}

func TestShapeComputeStrides(t *testing.T) {
	got := Shape{2, 3, 4}.ComputeStrides()
	want := []int{12, 4, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("strides = %v, want %v", got, want)
		}
	}
}

func TestShapeNormalizeDim(t *testing.T) {
	s := Shape{1, 3, 8, 8}

	tests := []struct {
		dim     int
		want    int
		wantErr bool
	}{
		{dim: 0, want: 0},
		{dim: -1, want: 3},
		{dim: -2, want: 2},
		{dim: 4, wantErr: true},
		{dim: -5, wantErr: true},
	}

	for _, tt := range tests {
		got, err := s.NormalizeDim(tt.dim)
		if tt.wantErr {
			if err == nil {
				t.Errorf("NormalizeDim(%d) expected error", tt.dim)
			}
			continue
		}
		if err != nil {
			t.Errorf("NormalizeDim(%d) unexpected error: %v", tt.dim, err)
		}
		if got != tt.want {
			t.Errorf("NormalizeDim(%d) = %d, want %d", tt.dim, got, tt.want)
		}
	}
}

func TestShapeEqualAndClone(t *testing.T) {
	s := Shape{2, 3}
	c := s.Clone()
	c[0] = 7

	if s.Equal(c) {
		t.Error("Clone should not alias the original")
	}
	if !s.Equal(Shape{2, 3}) {
		t.Error("Equal should match identical shapes")
	}
	if s.Equal(Shape{2, 3, 1}) {
		t.Error("Equal should reject different ranks")
	}
}
