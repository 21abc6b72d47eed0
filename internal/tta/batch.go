package tta

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/born-ml/tta/internal/tensor"
)

// forwardBatch runs independent forward calls. Each call owns its merger;
// the first failure stops scheduling of the remaining inputs.
func (p *pipeline) forwardBatch(ctx context.Context, inputs []*tensor.RawTensor, args ...any) ([]Output, error) {
	results := make([]Output, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.concurrency)

	for i, input := range inputs {
		if gctx.Err() != nil {
			break
		}
		i, input := i, input
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out, err := p.forward(input, args...)
			if err != nil {
				p.opts.logger.Debug("tta batch item failed", zap.Int("input", i), zap.Error(err))
				return fmt.Errorf("input %d: %w", i, err)
			}
			results[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
