package tta

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/tta/internal/tensor"
	"github.com/born-ml/tta/internal/transforms"
)

func TestForwardBatchPreservesOrder(t *testing.T) {
	inputs := make([]*tensor.RawTensor, 10)
	for i := range inputs {
		raw, err := tensor.Full[float32](tensor.Shape{1, 2, 2}, float32(i))
		require.NoError(t, err)
		inputs[i] = raw
	}

	var inFlight, peak atomic.Int32
	model := TensorFunc(func(input *tensor.RawTensor, _ ...any) (*tensor.RawTensor, error) {
		n := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		return input, nil
	})

	w, err := NewSegmentationWrapper(model, dihedral(t), WithConcurrency(3))
	require.NoError(t, err)

	outs, err := w.ForwardBatch(context.Background(), inputs)
	require.NoError(t, err)
	require.Len(t, outs, len(inputs))
	for i, out := range outs {
		assert.InDeltaSlice(t, inputs[i].Float64s(), out.Tensor().Float64s(), 1e-6, "input %d", i)
	}
	assert.LessOrEqual(t, peak.Load(), int32(3))
}

func TestForwardBatchReturnsFirstError(t *testing.T) {
	boom := errors.New("boom")
	model := TensorFunc(func(input *tensor.RawTensor, _ ...any) (*tensor.RawTensor, error) {
		if input.AsFloat32()[0] == 3 {
			return nil, boom
		}
		return input, nil
	})

	inputs := make([]*tensor.RawTensor, 6)
	for i := range inputs {
		raw, err := tensor.Full[float32](tensor.Shape{2, 2}, float32(i))
		require.NoError(t, err)
		inputs[i] = raw
	}

	w, err := NewClassificationWrapper(model, []transforms.Transform{transforms.Identity{}})
	require.NoError(t, err)

	outs, err := w.ForwardBatch(context.Background(), inputs)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "input 3")
	assert.Nil(t, outs)
}

func TestForwardBatchCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	model := TensorFunc(func(input *tensor.RawTensor, _ ...any) (*tensor.RawTensor, error) {
		calls.Add(1)
		return input, nil
	})

	w, err := NewSegmentationWrapper(model, []transforms.Transform{transforms.Identity{}})
	require.NoError(t, err)

	raw, err := tensor.Full[float32](tensor.Shape{2, 2}, 1)
	require.NoError(t, err)

	_, err = w.ForwardBatch(ctx, []*tensor.RawTensor{raw, raw})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls.Load())
}

func TestForwardBatchEmpty(t *testing.T) {
	w, err := NewSegmentationWrapper(identityModel, []transforms.Transform{transforms.Identity{}})
	require.NoError(t, err)

	outs, err := w.ForwardBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, outs)
}
