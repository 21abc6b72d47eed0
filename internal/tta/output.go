package tta

import (
	"errors"
	"fmt"
	"sort"

	"github.com/born-ml/tta/internal/tensor"
)

// ErrMissingOutputKey is returned when a configured output key cannot be
// found in a model output.
var ErrMissingOutputKey = errors.New("missing output key")

// Output is a model output: either a single bare tensor or a set of named
// tensors. The zero value is an empty bare output.
type Output struct {
	tensor *tensor.RawTensor
	named  map[string]*tensor.RawTensor
}

// Bare wraps a single tensor.
func Bare(t *tensor.RawTensor) Output {
	return Output{tensor: t}
}

// Keyed wraps named tensors. The map is used as given.
func Keyed(named map[string]*tensor.RawTensor) Output {
	if named == nil {
		named = map[string]*tensor.RawTensor{}
	}
	return Output{named: named}
}

// IsKeyed reports whether the output holds named tensors.
func (o Output) IsKeyed() bool {
	return o.named != nil
}

// Tensor returns the bare tensor, or nil for keyed outputs.
func (o Output) Tensor() *tensor.RawTensor {
	return o.tensor
}

// Get returns the tensor stored under key.
func (o Output) Get(key string) (*tensor.RawTensor, bool) {
	t, ok := o.named[key]
	return t, ok
}

// Keys returns the sorted names of a keyed output.
func (o Output) Keys() []string {
	keys := make([]string, 0, len(o.named))
	for k := range o.named {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Extract selects the tensor to merge from a model output.
// With an empty key the output must be bare; otherwise it must be keyed
// and contain key.
func (o Output) Extract(key string) (*tensor.RawTensor, error) {
	if key == "" {
		if o.IsKeyed() {
			return nil, fmt.Errorf("%w: model returned named outputs %v but no output key is configured", ErrMissingOutputKey, o.Keys())
		}
		return o.tensor, nil
	}

	if !o.IsKeyed() {
		return nil, fmt.Errorf("%w: %q: model returned a bare tensor", ErrMissingOutputKey, key)
	}
	t, ok := o.named[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q not in %v", ErrMissingOutputKey, key, o.Keys())
	}
	return t, nil
}

// Wrap is the inverse of Extract: a keyed output holding only key, or a
// bare output when key is empty.
func Wrap(key string, t *tensor.RawTensor) Output {
	if key == "" {
		return Bare(t)
	}
	return Keyed(map[string]*tensor.RawTensor{key: t})
}

// String describes the output layout.
func (o Output) String() string {
	if !o.IsKeyed() {
		if o.tensor == nil {
			return "Output(<nil>)"
		}
		return "Output(" + o.tensor.String() + ")"
	}
	return fmt.Sprintf("Output%v", o.Keys())
}
