package transforms

import (
	"fmt"
	"strings"

	"github.com/born-ml/tta/internal/tensor"
)

// Chain applies its steps in order when augmenting and undoes them in
// reverse order when de-augmenting.
type Chain []Transform

// Name joins the names of the non-identity steps with "+".
func (c Chain) Name() string {
	parts := make([]string, 0, len(c))
	for _, t := range c {
		if _, ok := t.(Identity); ok {
			continue
		}
		parts = append(parts, Name(t))
	}
	if len(parts) == 0 {
		return Identity{}.Name()
	}
	return strings.Join(parts, "+")
}

// AugmentImage applies every step to x in order.
func (c Chain) AugmentImage(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	var err error
	for _, t := range c {
		if x, err = t.AugmentImage(x); err != nil {
			return nil, err
		}
	}
	return x, nil
}

// DeaugmentMask reverses every step on y, last step first.
func (c Chain) DeaugmentMask(y *tensor.RawTensor) (*tensor.RawTensor, error) {
	var err error
	for i := len(c) - 1; i >= 0; i-- {
		if y, err = c[i].DeaugmentMask(y); err != nil {
			return nil, err
		}
	}
	return y, nil
}

// DeaugmentLabel reverses every step's label effect, last step first.
func (c Chain) DeaugmentLabel(y *tensor.RawTensor) (*tensor.RawTensor, error) {
	var err error
	for i := len(c) - 1; i >= 0; i-- {
		if y, err = c[i].DeaugmentLabel(y); err != nil {
			return nil, err
		}
	}
	return y, nil
}

// Compose returns one Chain per element of the cartesian product of the
// given choices. The first choice list varies slowest:
//
//	Compose(HorizontalFlips(), Rotations(0, 180))
//	// identity, rotate90(180), hflip, hflip+rotate90(180)
func Compose(choices ...[]Transform) ([]Transform, error) {
	if len(choices) == 0 {
		return nil, fmt.Errorf("%w: compose needs at least one transform", ErrInvalidParam)
	}

	total := 1
	for i, options := range choices {
		if len(options) == 0 {
			return nil, fmt.Errorf("%w: transform %d has no parameter values", ErrInvalidParam, i)
		}
		total *= len(options)
	}

	result := make([]Transform, 0, total)
	idx := make([]int, len(choices))
	for n := 0; n < total; n++ {
		chain := make(Chain, len(choices))
		for i, options := range choices {
			chain[i] = options[idx[i]]
		}
		result = append(result, chain)

		for d := len(idx) - 1; d >= 0; d-- {
			idx[d]++
			if idx[d] < len(choices[d]) {
				break
			}
			idx[d] = 0
		}
	}
	return result, nil
}

// HorizontalFlips returns the choices {no flip, flip W}.
func HorizontalFlips() []Transform {
	return []Transform{Identity{}, HorizontalFlip{}}
}

// VerticalFlips returns the choices {no flip, flip H}.
func VerticalFlips() []Transform {
	return []Transform{Identity{}, VerticalFlip{}}
}

// Rotations returns one Rotate90 per angle. Every angle must be a multiple of 90.
func Rotations(angles ...int) ([]Transform, error) {
	if len(angles) == 0 {
		return nil, fmt.Errorf("%w: rotate90 needs at least one angle", ErrInvalidParam)
	}
	out := make([]Transform, len(angles))
	for i, a := range angles {
		r, err := NewRotate90(a)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

// Adds returns one Add per value.
func Adds(values ...float64) []Transform {
	out := make([]Transform, len(values))
	for i, v := range values {
		out[i] = Add{Value: v}
	}
	return out
}

// Multiplies returns one Multiply per factor.
func Multiplies(factors ...float64) []Transform {
	out := make([]Transform, len(factors))
	for i, f := range factors {
		out[i] = Multiply{Factor: f}
	}
	return out
}
