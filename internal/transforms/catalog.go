package transforms

import (
	"fmt"
	"strconv"

	"github.com/born-ml/tta/internal/tensor"
)

// Identity leaves inputs and outputs unchanged.
type Identity struct{}

// Name implements Transform naming.
func (Identity) Name() string { return "identity" }

// AugmentImage returns x.
func (Identity) AugmentImage(x *tensor.RawTensor) (*tensor.RawTensor, error) { return x, nil }

// DeaugmentMask returns y.
func (Identity) DeaugmentMask(y *tensor.RawTensor) (*tensor.RawTensor, error) { return y, nil }

// DeaugmentLabel returns y.
func (Identity) DeaugmentLabel(y *tensor.RawTensor) (*tensor.RawTensor, error) { return y, nil }

// HorizontalFlip mirrors the W axis (last dimension).
type HorizontalFlip struct{}

// Name implements Transform naming.
func (HorizontalFlip) Name() string { return "hflip" }

// AugmentImage flips x along W.
func (HorizontalFlip) AugmentImage(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	if err := requireRank("hflip", x, 2); err != nil {
		return nil, err
	}
	return kernels.Flip(x, -1), nil
}

// DeaugmentMask flips y back along W.
func (f HorizontalFlip) DeaugmentMask(y *tensor.RawTensor) (*tensor.RawTensor, error) {
	return f.AugmentImage(y)
}

// DeaugmentLabel returns y; labels do not depend on orientation.
func (HorizontalFlip) DeaugmentLabel(y *tensor.RawTensor) (*tensor.RawTensor, error) { return y, nil }

// VerticalFlip mirrors the H axis (second-to-last dimension).
type VerticalFlip struct{}

// Name implements Transform naming.
func (VerticalFlip) Name() string { return "vflip" }

// AugmentImage flips x along H.
func (VerticalFlip) AugmentImage(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	if err := requireRank("vflip", x, 2); err != nil {
		return nil, err
	}
	return kernels.Flip(x, -2), nil
}

// DeaugmentMask flips y back along H.
func (f VerticalFlip) DeaugmentMask(y *tensor.RawTensor) (*tensor.RawTensor, error) {
	return f.AugmentImage(y)
}

// DeaugmentLabel returns y.
func (VerticalFlip) DeaugmentLabel(y *tensor.RawTensor) (*tensor.RawTensor, error) { return y, nil }

// Rotate90 rotates the (H, W) plane counter-clockwise by Angle degrees.
// Angle must be a multiple of 90.
type Rotate90 struct {
	Angle int
}

// NewRotate90 validates angle and returns the transform.
func NewRotate90(angle int) (Rotate90, error) {
	if angle%90 != 0 {
		return Rotate90{}, fmt.Errorf("%w: rotate90 angle %d is not a multiple of 90", ErrInvalidParam, angle)
	}
	return Rotate90{Angle: angle}, nil
}

// Name implements Transform naming.
func (r Rotate90) Name() string { return "rotate90(" + strconv.Itoa(r.Angle) + ")" }

func (r Rotate90) rotate(x *tensor.RawTensor, sign int) (*tensor.RawTensor, error) {
	if err := requireRank("rotate90", x, 2); err != nil {
		return nil, err
	}
	if r.Angle%90 != 0 {
		return nil, fmt.Errorf("%w: rotate90 angle %d is not a multiple of 90", ErrInvalidParam, r.Angle)
	}
	return kernels.Rot90(x, sign*r.Angle/90, -2, -1), nil
}

// AugmentImage rotates x by Angle.
func (r Rotate90) AugmentImage(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return r.rotate(x, 1)
}

// DeaugmentMask rotates y by -Angle.
func (r Rotate90) DeaugmentMask(y *tensor.RawTensor) (*tensor.RawTensor, error) {
	return r.rotate(y, -1)
}

// DeaugmentLabel returns y.
func (Rotate90) DeaugmentLabel(y *tensor.RawTensor) (*tensor.RawTensor, error) { return y, nil }

// Add shifts input intensities by Value. Outputs are left unchanged.
type Add struct {
	Value float64
}

// Name implements Transform naming.
func (a Add) Name() string { return "add(" + formatFloat(a.Value) + ")" }

// AugmentImage returns x + Value.
func (a Add) AugmentImage(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	if err := requireRank("add", x, 0); err != nil {
		return nil, err
	}
	if a.Value == 0 {
		return x, nil
	}
	return kernels.AddScalar(x, a.Value), nil
}

// DeaugmentMask returns y.
func (Add) DeaugmentMask(y *tensor.RawTensor) (*tensor.RawTensor, error) { return y, nil }

// DeaugmentLabel returns y.
func (Add) DeaugmentLabel(y *tensor.RawTensor) (*tensor.RawTensor, error) { return y, nil }

// Multiply scales input intensities by Factor. Outputs are left unchanged.
type Multiply struct {
	Factor float64
}

// Name implements Transform naming.
func (m Multiply) Name() string { return "multiply(" + formatFloat(m.Factor) + ")" }

// AugmentImage returns x * Factor.
func (m Multiply) AugmentImage(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	if err := requireRank("multiply", x, 0); err != nil {
		return nil, err
	}
	if m.Factor == 1 {
		return x, nil
	}
	return kernels.MulScalar(x, m.Factor), nil
}

// DeaugmentMask returns y.
func (Multiply) DeaugmentMask(y *tensor.RawTensor) (*tensor.RawTensor, error) { return y, nil }

// DeaugmentLabel returns y.
func (Multiply) DeaugmentLabel(y *tensor.RawTensor) (*tensor.RawTensor, error) { return y, nil }

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
