package tta

import (
	"context"
	"fmt"

	"github.com/born-ml/tta/internal/merge"
	"github.com/born-ml/tta/internal/tensor"
	"github.com/born-ml/tta/internal/transforms"
)

// SegmentationWrapper applies test-time augmentation to a model with
// per-pixel outputs such as segmentation masks.
//
// The model and transforms are shared read-only; a wrapper is safe for
// concurrent Forward calls if the model is.
type SegmentationWrapper struct {
	p *pipeline
}

// NewSegmentationWrapper validates the configuration and returns a wrapper.
// Returns ErrInvalidConfiguration for a nil model, an empty transform set or
// an unknown merge mode.
func NewSegmentationWrapper(model Model, set []transforms.Transform, opts ...Option) (*SegmentationWrapper, error) {
	p, err := newPipeline(Segmentation, model, set, opts)
	if err != nil {
		return nil, err
	}
	return &SegmentationWrapper{p: p}, nil
}

// Forward runs the model once per transform and returns the merged,
// de-augmented mask. The result is bare unless an output key is configured.
func (w *SegmentationWrapper) Forward(input *tensor.RawTensor, args ...any) (Output, error) {
	return w.p.forward(input, args...)
}

// ForwardBatch runs Forward for every input, up to the configured
// concurrency at a time. Results are in input order.
func (w *SegmentationWrapper) ForwardBatch(ctx context.Context, inputs []*tensor.RawTensor, args ...any) ([]Output, error) {
	return w.p.forwardBatch(ctx, inputs, args...)
}

// MergeOutputs de-augments and merges model outputs computed elsewhere,
// one per transform in transform order.
func (w *SegmentationWrapper) MergeOutputs(outputs []Output) (Output, error) {
	return w.p.mergeOutputs(outputs)
}

// Transforms returns the names of the wrapper's transforms in order.
func (w *SegmentationWrapper) Transforms() []string {
	return append([]string(nil), w.p.names...)
}

// MergeMode returns the configured merge mode.
func (w *SegmentationWrapper) MergeMode() merge.Mode {
	return w.p.mode
}

// OutputKey returns the configured mask key, or "" if outputs are bare.
func (w *SegmentationWrapper) OutputKey() string {
	return w.p.opts.outputKey
}

// ClassificationWrapper applies test-time augmentation to a model with
// per-example outputs such as class scores.
type ClassificationWrapper struct {
	p *pipeline
}

// NewClassificationWrapper validates the configuration and returns a wrapper.
func NewClassificationWrapper(model Model, set []transforms.Transform, opts ...Option) (*ClassificationWrapper, error) {
	p, err := newPipeline(Classification, model, set, opts)
	if err != nil {
		return nil, err
	}
	return &ClassificationWrapper{p: p}, nil
}

// Forward runs the model once per transform and returns the merged,
// de-augmented label scores.
func (w *ClassificationWrapper) Forward(input *tensor.RawTensor, args ...any) (Output, error) {
	return w.p.forward(input, args...)
}

// ForwardBatch runs Forward for every input, up to the configured
// concurrency at a time. Results are in input order.
func (w *ClassificationWrapper) ForwardBatch(ctx context.Context, inputs []*tensor.RawTensor, args ...any) ([]Output, error) {
	return w.p.forwardBatch(ctx, inputs, args...)
}

// MergeOutputs de-augments and merges model outputs computed elsewhere.
func (w *ClassificationWrapper) MergeOutputs(outputs []Output) (Output, error) {
	return w.p.mergeOutputs(outputs)
}

// Transforms returns the names of the wrapper's transforms in order.
func (w *ClassificationWrapper) Transforms() []string {
	return append([]string(nil), w.p.names...)
}

// MergeMode returns the configured merge mode.
func (w *ClassificationWrapper) MergeMode() merge.Mode {
	return w.p.mode
}

// OutputKey returns the configured label key, or "" if outputs are bare.
func (w *ClassificationWrapper) OutputKey() string {
	return w.p.opts.outputKey
}

// Wrapper is implemented by both wrappers.
type Wrapper interface {
	Forward(input *tensor.RawTensor, args ...any) (Output, error)
	ForwardBatch(ctx context.Context, inputs []*tensor.RawTensor, args ...any) ([]Output, error)
	MergeOutputs(outputs []Output) (Output, error)
	Transforms() []string
	MergeMode() merge.Mode
	OutputKey() string
}

var (
	_ Wrapper = (*SegmentationWrapper)(nil)
	_ Wrapper = (*ClassificationWrapper)(nil)
)

// New builds the wrapper for task.
func New(task Task, model Model, set []transforms.Transform, opts ...Option) (Wrapper, error) {
	switch task {
	case Segmentation, Classification:
	default:
		return nil, fmt.Errorf("%w: unknown task %d", ErrInvalidConfiguration, int(task))
	}

	p, err := newPipeline(task, model, set, opts)
	if err != nil {
		return nil, err
	}
	if task == Classification {
		return &ClassificationWrapper{p: p}, nil
	}
	return &SegmentationWrapper{p: p}, nil
}
