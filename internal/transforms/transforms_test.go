package transforms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/tta/internal/tensor"
)

// image returns a [1, 1, h, w] tensor holding 0..h*w-1.
func image(t *testing.T, h, w int) *tensor.RawTensor {
	t.Helper()
	data := make([]float32, h*w)
	for i := range data {
		data[i] = float32(i)
	}
	raw, err := tensor.FromSlice(data, tensor.Shape{1, 1, h, w})
	require.NoError(t, err)
	return raw
}

func catalog(t *testing.T) []Transform {
	t.Helper()
	rotations, err := Rotations(0, 90, 180, 270, -90, 450)
	require.NoError(t, err)

	all := []Transform{Identity{}, HorizontalFlip{}, VerticalFlip{}, Add{Value: 0.5}, Multiply{Factor: 2}}
	return append(all, rotations...)
}

func TestMaskRoundTrip(t *testing.T) {
	x := image(t, 3, 4)

	for _, tr := range catalog(t) {
		t.Run(Name(tr), func(t *testing.T) {
			augmented, err := tr.AugmentImage(x)
			require.NoError(t, err)

			// Identity model: the output is the augmented input itself.
			// Intensity transforms do not move pixels, so compare against
			// the augmented values for them.
			restored, err := tr.DeaugmentMask(augmented)
			require.NoError(t, err)
			require.Equal(t, x.Shape(), restored.Shape())

			switch tr.(type) {
			case Add, Multiply:
				assert.Equal(t, augmented.AsFloat32(), restored.AsFloat32())
			default:
				assert.Equal(t, x.AsFloat32(), restored.AsFloat32())
			}
		})
	}
}

func TestAugmentDoesNotMutateInput(t *testing.T) {
	x := image(t, 2, 2)
	before := append([]float32(nil), x.AsFloat32()...)

	for _, tr := range catalog(t) {
		_, err := tr.AugmentImage(x)
		require.NoError(t, err)
	}
	assert.Equal(t, before, x.AsFloat32())
}

func TestHorizontalFlipAugment(t *testing.T) {
	out, err := HorizontalFlip{}.AugmentImage(image(t, 2, 3))
	require.NoError(t, err)
	assert.Equal(t, []float32{2, 1, 0, 5, 4, 3}, out.AsFloat32())
}

func TestVerticalFlipAugment(t *testing.T) {
	out, err := VerticalFlip{}.AugmentImage(image(t, 2, 3))
	require.NoError(t, err)
	assert.Equal(t, []float32{3, 4, 5, 0, 1, 2}, out.AsFloat32())
}

func TestRotate90ChangesShape(t *testing.T) {
	out, err := Rotate90{Angle: 90}.AugmentImage(image(t, 2, 3))
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{1, 1, 3, 2}, out.Shape())
	assert.Equal(t, []float32{2, 5, 1, 4, 0, 3}, out.AsFloat32())
}

func TestIntensityTransforms(t *testing.T) {
	x := image(t, 1, 3)

	out, err := Add{Value: 1}.AugmentImage(x)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 3}, out.AsFloat32())

	out, err = Multiply{Factor: 3}.AugmentImage(x)
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 3, 6}, out.AsFloat32())
}

func TestDeaugmentLabelIsIdentity(t *testing.T) {
	label, err := tensor.FromSlice([]float32{0.1, 0.7, 0.2}, tensor.Shape{1, 3})
	require.NoError(t, err)

	for _, tr := range catalog(t) {
		out, err := tr.DeaugmentLabel(label)
		require.NoError(t, err, Name(tr))
		assert.Equal(t, label.AsFloat32(), out.AsFloat32(), Name(tr))
	}
}

func TestGeometricTransformsRequireRank2(t *testing.T) {
	vector, err := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{3})
	require.NoError(t, err)

	for _, tr := range []Transform{HorizontalFlip{}, VerticalFlip{}, Rotate90{Angle: 90}} {
		_, err := tr.AugmentImage(vector)
		assert.ErrorIs(t, err, ErrRank, Name(tr))
	}
}

func TestRotationsValidateAngles(t *testing.T) {
	_, err := Rotations(0, 45)
	assert.ErrorIs(t, err, ErrInvalidParam)

	_, err = Rotations()
	assert.ErrorIs(t, err, ErrInvalidParam)

	_, err = Rotate90{Angle: 30}.AugmentImage(image(t, 2, 2))
	assert.ErrorIs(t, err, ErrInvalidParam)
}

func TestNames(t *testing.T) {
	assert.Equal(t, "rotate90(270)", Name(Rotate90{Angle: 270}))
	assert.Equal(t, "add(0.25)", Name(Add{Value: 0.25}))
	assert.Equal(t, "multiply(1.1)", Name(Multiply{Factor: 1.1}))
	assert.Equal(t, "identity", Name(Chain{Identity{}, Identity{}}))
	assert.Equal(t, "hflip+rotate90(90)", Name(Chain{HorizontalFlip{}, Identity{}, Rotate90{Angle: 90}}))
}
