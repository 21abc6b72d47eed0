package tta

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/born-ml/tta/internal/merge"
	"github.com/born-ml/tta/internal/tensor"
	"github.com/born-ml/tta/internal/transforms"
)

// ErrInvalidConfiguration is returned by wrapper constructors for an unknown
// merge mode, a missing model, or an empty transform set.
var ErrInvalidConfiguration = merge.ErrInvalidConfiguration

// Task selects which inverse a wrapper applies to model outputs.
type Task int

// Supported tasks.
const (
	Segmentation Task = iota
	Classification
)

// String returns the task name.
func (t Task) String() string {
	switch t {
	case Segmentation:
		return "segmentation"
	case Classification:
		return "classification"
	default:
		return fmt.Sprintf("Task(%d)", int(t))
	}
}

// ParseTask resolves "segmentation" or "classification".
func ParseTask(name string) (Task, error) {
	switch name {
	case "segmentation":
		return Segmentation, nil
	case "classification":
		return Classification, nil
	default:
		return 0, fmt.Errorf("%w: unknown task %q", ErrInvalidConfiguration, name)
	}
}

type deaugmentFunc func(t transforms.Transform, y *tensor.RawTensor) (*tensor.RawTensor, error)

func (t Task) deaugmenter() deaugmentFunc {
	if t == Classification {
		return transforms.Transform.DeaugmentLabel
	}
	return transforms.Transform.DeaugmentMask
}

// pipeline is the augment, infer, de-augment, merge loop shared by both
// wrappers. It holds no per-call state.
type pipeline struct {
	task       Task
	model      Model
	transforms []transforms.Transform
	names      []string
	mode       merge.Mode
	opts       options
	deaugment  deaugmentFunc
}

func newPipeline(task Task, model Model, set []transforms.Transform, opts []Option) (*pipeline, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if model == nil {
		return nil, fmt.Errorf("%w: model is required", ErrInvalidConfiguration)
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("%w: transform set is empty", ErrInvalidConfiguration)
	}
	mode, err := merge.ParseMode(o.mergeMode)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(set))
	for i, t := range set {
		if t == nil {
			return nil, fmt.Errorf("%w: transform %d is nil", ErrInvalidConfiguration, i)
		}
		names[i] = transforms.Name(t)
	}

	return &pipeline{
		task:       task,
		model:      model,
		transforms: append([]transforms.Transform(nil), set...),
		names:      names,
		mode:       mode,
		opts:       o,
		deaugment:  task.deaugmenter(),
	}, nil
}

func (p *pipeline) newMerger() (*merge.Merger, error) {
	var mopts []merge.Option
	if p.opts.backend != nil {
		mopts = append(mopts, merge.WithBackend(p.opts.backend))
	}
	return merge.New(p.mode, len(p.transforms), mopts...)
}

func (p *pipeline) forward(input *tensor.RawTensor, args ...any) (Output, error) {
	merger, err := p.newMerger()
	if err != nil {
		return Output{}, err
	}

	for i, t := range p.transforms {
		augmented, err := t.AugmentImage(input)
		if err != nil {
			return Output{}, fmt.Errorf("augment with %s: %w", p.names[i], err)
		}

		out, err := p.model.Forward(augmented, args...)
		if err != nil {
			return Output{}, fmt.Errorf("model forward with %s: %w", p.names[i], err)
		}

		if err := p.accumulate(merger, i, out); err != nil {
			return Output{}, err
		}
	}

	return p.finish(merger)
}

// mergeOutputs runs the second half of the loop over outputs the model
// already produced, one per transform and in transform order.
func (p *pipeline) mergeOutputs(outputs []Output) (Output, error) {
	merger, err := p.newMerger()
	if err != nil {
		return Output{}, err
	}

	for i, out := range outputs {
		if i >= len(p.transforms) {
			return Output{}, fmt.Errorf("%w: %d outputs for %d transforms",
				merge.ErrTooManyAppends, len(outputs), len(p.transforms))
		}
		if err := p.accumulate(merger, i, out); err != nil {
			return Output{}, err
		}
	}

	return p.finish(merger)
}

func (p *pipeline) accumulate(merger *merge.Merger, i int, out Output) error {
	extracted, err := out.Extract(p.opts.outputKey)
	if err != nil {
		return fmt.Errorf("output of %s: %w", p.names[i], err)
	}

	restored, err := p.deaugment(p.transforms[i], extracted)
	if err != nil {
		return fmt.Errorf("deaugment with %s: %w", p.names[i], err)
	}

	if err := merger.Append(restored); err != nil {
		return fmt.Errorf("merge output of %s: %w", p.names[i], err)
	}

	p.opts.logger.Debug("tta step",
		zap.Stringer("task", p.task),
		zap.Int("index", i),
		zap.String("transform", p.names[i]),
		zap.Stringer("shape", restored.Shape()),
	)
	return nil
}

func (p *pipeline) finish(merger *merge.Merger) (Output, error) {
	result, err := merger.Result()
	if err != nil {
		return Output{}, err
	}

	p.opts.logger.Debug("tta merged",
		zap.Stringer("task", p.task),
		zap.Stringer("mode", p.mode),
		zap.Int("transforms", len(p.transforms)),
	)
	return Wrap(p.opts.outputKey, result), nil
}
