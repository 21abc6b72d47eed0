package merge

import (
	"fmt"

	"github.com/born-ml/tta/internal/backend/cpu"
	"github.com/born-ml/tta/internal/tensor"
)

// Backend is the set of element-wise kernels a Merger needs.
// Implementations must not modify their operands.
type Backend interface {
	Add(a, b *tensor.RawTensor) *tensor.RawTensor
	Mul(a, b *tensor.RawTensor) *tensor.RawTensor
	Maximum(a, b *tensor.RawTensor) *tensor.RawTensor
	Minimum(a, b *tensor.RawTensor) *tensor.RawTensor
	DivScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor
	PowScalar(x *tensor.RawTensor, exponent float64) *tensor.RawTensor
}

var _ Backend = (*cpu.CPUBackend)(nil)

// strategy is the accumulate/finalize pair a Mode resolves to.
type strategy struct {
	// prepare maps an appended value before it is accumulated. Optional.
	prepare func(x *tensor.RawTensor) *tensor.RawTensor
	// combine folds a prepared value into the accumulator.
	combine func(acc, x *tensor.RawTensor) *tensor.RawTensor
	// finalize turns the accumulator of n values into the result.
	finalize func(acc *tensor.RawTensor, n int) *tensor.RawTensor
}

func resolve(mode Mode, b Backend) (strategy, error) {
	keep := func(acc *tensor.RawTensor, _ int) *tensor.RawTensor { return acc }

	switch mode {
	case Mean:
		return strategy{
			combine: b.Add,
			finalize: func(acc *tensor.RawTensor, n int) *tensor.RawTensor {
				return b.DivScalar(acc, float64(n))
			},
		}, nil
	case Sum:
		return strategy{combine: b.Add, finalize: keep}, nil
	case Max:
		return strategy{combine: b.Maximum, finalize: keep}, nil
	case Min:
		return strategy{combine: b.Minimum, finalize: keep}, nil
	case GMean:
		return strategy{
			combine: b.Mul,
			finalize: func(acc *tensor.RawTensor, n int) *tensor.RawTensor {
				return b.PowScalar(acc, 1/float64(n))
			},
		}, nil
	case TSharpen:
		return strategy{
			prepare: func(x *tensor.RawTensor) *tensor.RawTensor {
				return b.PowScalar(x, SharpenPower)
			},
			combine: b.Add,
			finalize: func(acc *tensor.RawTensor, n int) *tensor.RawTensor {
				return b.PowScalar(b.DivScalar(acc, float64(n)), 1/SharpenPower)
			},
		}, nil
	default:
		return strategy{}, fmt.Errorf("%w: unknown merge mode %d", ErrInvalidConfiguration, int(mode))
	}
}

// Merger accumulates exactly n tensors and aggregates them with one Mode.
//
// A Merger is single-use and not safe for concurrent use.
type Merger struct {
	mode     Mode
	n        int
	strategy strategy

	count  int
	acc    *tensor.RawTensor
	result *tensor.RawTensor
}

// Option configures a Merger.
type Option func(*options)

type options struct {
	backend Backend
}

// WithBackend sets the kernel backend. Defaults to the CPU backend.
func WithBackend(b Backend) Option {
	return func(o *options) {
		o.backend = b
	}
}

// New creates a Merger expecting n appends.
// Returns ErrInvalidConfiguration if mode is unknown or n is not positive.
func New(mode Mode, n int, opts ...Option) (*Merger, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: expected count must be positive, got %d", ErrInvalidConfiguration, n)
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.backend == nil {
		o.backend = cpu.New()
	}

	s, err := resolve(mode, o.backend)
	if err != nil {
		return nil, err
	}

	return &Merger{mode: mode, n: n, strategy: s}, nil
}

// NewFromName is New with the mode given by its configuration name.
func NewFromName(name string, n int, opts ...Option) (*Merger, error) {
	mode, err := ParseMode(name)
	if err != nil {
		return nil, err
	}
	return New(mode, n, opts...)
}

// Mode returns the configured merge mode.
func (m *Merger) Mode() Mode {
	return m.mode
}

// Expected returns the number of appends the Merger was created for.
func (m *Merger) Expected() int {
	return m.n
}

// Count returns the number of values appended so far.
func (m *Merger) Count() int {
	return m.count
}

// Append folds x into the running aggregate. x is not modified or retained.
//
// Returns ErrTooManyAppends once Expected values have been appended, and
// ErrShapeMismatch if x's shape or dtype differs from the first value.
func (m *Merger) Append(x *tensor.RawTensor) error {
	if x == nil {
		return fmt.Errorf("%w: nil tensor", ErrShapeMismatch)
	}
	if m.count >= m.n {
		return fmt.Errorf("%w: merger expects %d values", ErrTooManyAppends, m.n)
	}

	if m.acc != nil && !m.acc.SameLayout(x) {
		return fmt.Errorf("%w: got %s, want %s", ErrShapeMismatch, x, m.acc)
	}

	v := x
	if m.strategy.prepare != nil {
		v = m.strategy.prepare(x)
	}

	switch {
	case m.acc != nil:
		m.acc = m.strategy.combine(m.acc, v)
	case v == x:
		m.acc = x.Clone()
	default:
		m.acc = v
	}
	m.count++
	return nil
}

// Result returns the aggregated tensor.
// Returns ErrIncompleteAccumulation until Expected values have been appended.
// Repeated calls return the same tensor.
func (m *Merger) Result() (*tensor.RawTensor, error) {
	if m.count < m.n {
		return nil, fmt.Errorf("%w: %d of %d values appended", ErrIncompleteAccumulation, m.count, m.n)
	}
	if m.result == nil {
		m.result = m.strategy.finalize(m.acc, m.n)
	}
	return m.result, nil
}
