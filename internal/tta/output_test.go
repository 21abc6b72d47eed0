package tta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/tta/internal/tensor"
)

func TestExtractAndWrap(t *testing.T) {
	x, err := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2})
	require.NoError(t, err)

	bare := Bare(x)
	got, err := bare.Extract("")
	require.NoError(t, err)
	assert.Same(t, x, got)
	assert.False(t, Wrap("", x).IsKeyed())

	keyed := Keyed(map[string]*tensor.RawTensor{"mask": x})
	got, err = keyed.Extract("mask")
	require.NoError(t, err)
	assert.Same(t, x, got)

	wrapped := Wrap("mask", x)
	require.True(t, wrapped.IsKeyed())
	assert.Equal(t, []string{"mask"}, wrapped.Keys())
	assert.Nil(t, wrapped.Tensor())
}

func TestExtractMissingKey(t *testing.T) {
	x, err := tensor.FromSlice([]float32{1}, tensor.Shape{1})
	require.NoError(t, err)

	_, err = Bare(x).Extract("mask")
	assert.ErrorIs(t, err, ErrMissingOutputKey)

	_, err = Keyed(map[string]*tensor.RawTensor{"logits": x}).Extract("mask")
	assert.ErrorIs(t, err, ErrMissingOutputKey)
	assert.Contains(t, err.Error(), "logits")

	_, err = Keyed(nil).Extract("")
	assert.ErrorIs(t, err, ErrMissingOutputKey)
}

func TestOutputString(t *testing.T) {
	x, err := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2})
	require.NoError(t, err)

	assert.Equal(t, "Output(Tensor[float64][2 2])", Bare(x).String())
	assert.Equal(t, "Output[a b]", Keyed(map[string]*tensor.RawTensor{"b": x, "a": x}).String())
	assert.Equal(t, "Output(<nil>)", Output{}.String())
}

func TestParseTask(t *testing.T) {
	task, err := ParseTask("classification")
	require.NoError(t, err)
	assert.Equal(t, Classification, task)
	assert.Equal(t, "segmentation", Segmentation.String())

	_, err = ParseTask("detection")
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}
