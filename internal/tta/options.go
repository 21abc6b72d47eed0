package tta

import (
	"go.uber.org/zap"

	"github.com/born-ml/tta/internal/merge"
)

// DefaultMergeMode is used when WithMergeMode is not given.
const DefaultMergeMode = "mean"

// Option configures a wrapper.
type Option func(*options)

type options struct {
	mergeMode   string
	outputKey   string
	logger      *zap.Logger
	concurrency int
	backend     merge.Backend
}

func defaultOptions() options {
	return options{
		mergeMode:   DefaultMergeMode,
		logger:      zap.NewNop(),
		concurrency: 1,
	}
}

// WithMergeMode selects the merge strategy by name: mean, sum, max, min,
// gmean or tsharpen.
func WithMergeMode(mode string) Option {
	return func(o *options) {
		o.mergeMode = mode
	}
}

// WithOutputKey names the model output to merge. When set, the model must
// return keyed outputs containing the key and the wrapper returns a keyed
// output holding only the merged tensor under the same key. For a
// SegmentationWrapper this is the mask key; for a ClassificationWrapper the
// label key.
func WithOutputKey(key string) Option {
	return func(o *options) {
		o.outputKey = key
	}
}

// WithLogger sets the logger used for per-step debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithConcurrency bounds how many inputs ForwardBatch processes at once.
// Values below 1 are treated as 1.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = max(n, 1)
	}
}

// WithMergeBackend sets the kernels used by the merge engine.
func WithMergeBackend(b merge.Backend) Option {
	return func(o *options) {
		o.backend = b
	}
}
