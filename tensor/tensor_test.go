// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"testing"

	"github.com/born-ml/tta/tensor"
)

// TestRawTensorAPI verifies the RawTensor alias exposes the expected API.
func TestRawTensorAPI(t *testing.T) {
	raw, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}

	if !raw.Shape().Equal(tensor.Shape{2, 3}) {
		t.Errorf("Shape() = %v, want [2 3]", raw.Shape())
	}
	if raw.DType() != tensor.Float32 {
		t.Errorf("DType() = %v, want float32", raw.DType())
	}
	if got := tensor.Values[float32](raw)[4]; got != 5 {
		t.Errorf("Values()[4] = %v, want 5", got)
	}
}

func TestFull(t *testing.T) {
	raw, err := tensor.Full(tensor.Shape{2, 2}, 0.5)
	if err != nil {
		t.Fatalf("Full failed: %v", err)
	}
	if raw.DType() != tensor.Float64 {
		t.Errorf("DType() = %v, want float64", raw.DType())
	}
	for i, v := range raw.AsFloat64() {
		if v != 0.5 {
			t.Errorf("[%d] = %v, want 0.5", i, v)
		}
	}
}
