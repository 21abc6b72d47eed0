// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public tensor type used by the TTA wrappers.
//
// Tensors are contiguous row-major float32 or float64 buffers:
//
//	x, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{1, 1, 2, 3})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(x.Shape(), x.AsFloat32())
package tensor

import (
	"github.com/born-ml/tta/internal/tensor"
)

// DType is a constraint for tensor element types: float32 or float64.
type DType = tensor.DType

// DataType represents the underlying data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
)

// Shape represents the dimensions of a tensor.
// Example: Shape{1, 3, 224, 224} is one 3-channel 224×224 image.
type Shape = tensor.Shape

// RawTensor is a contiguous row-major tensor tagged with shape and dtype.
//
// Kernels never modify their operands, so tensors can be shared freely
// between goroutines as long as nobody writes through AsFloat32/AsFloat64.
type RawTensor = tensor.RawTensor

// NewRaw creates a zero-filled tensor.
func NewRaw(shape Shape, dtype DataType) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype)
}

// FromSlice creates a tensor from a Go slice. The slice is copied.
//
// Example:
//
//	x, err := tensor.FromSlice([]float64{1, 2, 3}, tensor.Shape{3})
func FromSlice[T DType](data []T, shape Shape) (*RawTensor, error) {
	return tensor.FromSlice(data, shape)
}

// Full creates a tensor with every element set to value.
func Full[T DType](shape Shape, value T) (*RawTensor, error) {
	return tensor.Full(shape, value)
}

// Values returns a typed view of a tensor's data.
// Panics if T does not match the tensor's dtype.
func Values[T DType](r *RawTensor) []T {
	return tensor.Values[T](r)
}
