// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tta

import (
	"github.com/born-ml/tta/internal/merge"
	"github.com/born-ml/tta/internal/tta"
	"github.com/born-ml/tta/transforms"
)

// Errors returned by wrappers. Match them with errors.Is.
var (
	ErrInvalidConfiguration   = tta.ErrInvalidConfiguration
	ErrMissingOutputKey       = tta.ErrMissingOutputKey
	ErrShapeMismatch          = merge.ErrShapeMismatch
	ErrTooManyAppends         = merge.ErrTooManyAppends
	ErrIncompleteAccumulation = merge.ErrIncompleteAccumulation
)

// DefaultMergeMode is used when WithMergeMode is not given.
const DefaultMergeMode = tta.DefaultMergeMode

// Task selects which inverse a wrapper applies to model outputs.
type Task = tta.Task

// Supported tasks.
const (
	Segmentation   = tta.Segmentation
	Classification = tta.Classification
)

// ParseTask resolves "segmentation" or "classification".
func ParseTask(name string) (Task, error) {
	return tta.ParseTask(name)
}

// Output is a model or wrapper result: a bare tensor or a keyed set of tensors.
type Output = tta.Output

// Model is the wrapped predictor.
type Model = tta.Model

// ModelFunc adapts a function to the Model interface.
type ModelFunc = tta.ModelFunc

// TensorFunc adapts a function returning a bare tensor to the Model interface.
type TensorFunc = tta.TensorFunc

// Option configures a wrapper.
type Option = tta.Option

// Wrapper is implemented by both wrapper kinds.
type Wrapper = tta.Wrapper

// SegmentationWrapper merges mask predictions.
type SegmentationWrapper = tta.SegmentationWrapper

// ClassificationWrapper merges label predictions.
type ClassificationWrapper = tta.ClassificationWrapper

// MergeMode identifies a merge strategy.
type MergeMode = merge.Mode

// Merger accumulates aligned predictions and reduces them to one tensor.
type Merger = merge.Merger

// Option helpers.
var (
	WithMergeMode    = tta.WithMergeMode
	WithOutputKey    = tta.WithOutputKey
	WithLogger       = tta.WithLogger
	WithConcurrency  = tta.WithConcurrency
	WithMergeBackend = tta.WithMergeBackend
)

// Bare wraps a single tensor as an Output.
var Bare = tta.Bare

// Keyed wraps named tensors as an Output.
var Keyed = tta.Keyed

// NewSegmentationWrapper wraps a model whose outputs are spatially aligned
// with its input.
func NewSegmentationWrapper(model Model, set []transforms.Transform, opts ...Option) (*SegmentationWrapper, error) {
	return tta.NewSegmentationWrapper(model, set, opts...)
}

// NewClassificationWrapper wraps a model whose outputs are per-class scores.
func NewClassificationWrapper(model Model, set []transforms.Transform, opts ...Option) (*ClassificationWrapper, error) {
	return tta.NewClassificationWrapper(model, set, opts...)
}

// New builds the wrapper for task.
func New(task Task, model Model, set []transforms.Transform, opts ...Option) (Wrapper, error) {
	return tta.New(task, model, set, opts...)
}

// MergeModes lists the supported merge modes in declaration order.
func MergeModes() []MergeMode {
	return merge.Modes()
}

// ParseMergeMode resolves a merge mode name.
func ParseMergeMode(name string) (MergeMode, error) {
	return merge.ParseMode(name)
}

// NewMerger creates a merger expecting n predictions.
func NewMerger(mode string, n int) (*Merger, error) {
	return merge.NewFromName(mode, n)
}
