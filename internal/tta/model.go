package tta

import "github.com/born-ml/tta/internal/tensor"

// Model is the wrapped predictor. Forward is called once per transform with
// the augmented input and the extra arguments given to the wrapper.
type Model interface {
	Forward(input *tensor.RawTensor, args ...any) (Output, error)
}

// ModelFunc adapts a function to the Model interface.
type ModelFunc func(input *tensor.RawTensor, args ...any) (Output, error)

// Forward calls f.
func (f ModelFunc) Forward(input *tensor.RawTensor, args ...any) (Output, error) {
	return f(input, args...)
}

// TensorFunc adapts a function returning a bare tensor to the Model interface.
type TensorFunc func(input *tensor.RawTensor, args ...any) (*tensor.RawTensor, error)

// Forward calls f and wraps its result as a bare output.
func (f TensorFunc) Forward(input *tensor.RawTensor, args ...any) (Output, error) {
	t, err := f(input, args...)
	if err != nil {
		return Output{}, err
	}
	return Bare(t), nil
}
