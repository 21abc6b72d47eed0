// Package transforms provides the invertible input transforms used for
// test-time augmentation.
//
// A Transform augments a model input and reverses its effect on the model
// output. Geometric transforms treat the last two dimensions as (H, W), so
// inputs must have rank >= 2. Transforms never modify their arguments.
package transforms

import (
	"errors"
	"fmt"

	"github.com/born-ml/tta/internal/backend/cpu"
	"github.com/born-ml/tta/internal/tensor"
)

// Transform errors.
var (
	ErrRank         = errors.New("tensor rank too small for transform")
	ErrInvalidParam = errors.New("invalid transform parameter")
)

// Transform is one invertible augmentation.
type Transform interface {
	// AugmentImage applies the transform to a model input.
	AugmentImage(x *tensor.RawTensor) (*tensor.RawTensor, error)
	// DeaugmentMask reverses the transform on a per-pixel model output.
	DeaugmentMask(y *tensor.RawTensor) (*tensor.RawTensor, error)
	// DeaugmentLabel reverses the transform on a per-example model output.
	DeaugmentLabel(y *tensor.RawTensor) (*tensor.RawTensor, error)
}

// Kernels are the tensor operations the catalog is built on.
type Kernels interface {
	Flip(x *tensor.RawTensor, dims ...int) *tensor.RawTensor
	Rot90(x *tensor.RawTensor, k, dim0, dim1 int) *tensor.RawTensor
	AddScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor
	MulScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor
}

var kernels Kernels = cpu.New()

// Name describes t. Transforms without a Name method are described by their Go type.
func Name(t Transform) string {
	if n, ok := t.(interface{ Name() string }); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", t)
}

func requireRank(op string, x *tensor.RawTensor, rank int) error {
	if x == nil {
		return fmt.Errorf("%s: nil tensor", op)
	}
	if len(x.Shape()) < rank {
		return fmt.Errorf("%w: %s needs rank >= %d, got %s", ErrRank, op, rank, x)
	}
	return nil
}
