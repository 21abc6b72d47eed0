package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/born-ml/tta/internal/serialization"
	"github.com/born-ml/tta/internal/tensor"
	"github.com/born-ml/tta/internal/tta"
)

// BareOutputName is the tensor name used when the merged output is bare.
const BareOutputName = "output"

var errOfflineModel = errors.New("model is not available during offline merge")

type mergeOptions struct {
	manifest  string
	outputs   string
	out       string
	mergeMode string
}

func newMergeCommand(a *app) *cobra.Command {
	var opts mergeOptions
	cmd := &cobra.Command{
		Use:   "merge",
		Short: "De-augment and merge model predictions for an augment run",
		Long: `Reads the manifest written by augment and one prediction file per step,
maps every prediction back through its transform, and merges them with the
configured merge mode.

A prediction file holding a single tensor is treated as a bare output unless
the pipeline names an output key; otherwise its tensors form a keyed output.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := runMerge(a.logger, opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "merged %s to %s\n", out, opts.out)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.manifest, "manifest", "m", "", "manifest written by augment")
	f.StringVar(&opts.outputs, "outputs", "", "directory of prediction files (default: the manifest's directory)")
	f.StringVarP(&opts.out, "out", "o", "", "SafeTensors file for the merged output")
	f.StringVar(&opts.mergeMode, "merge-mode", "", "override the configured merge mode")
	_ = cmd.MarkFlagRequired("manifest")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

// readPrediction loads one model output.
func readPrediction(path, outputKey string) (tta.Output, error) {
	f, err := serialization.ReadFile(path)
	if err != nil {
		return tta.Output{}, err
	}
	if outputKey == "" && len(f.Tensors) == 1 {
		return tta.Bare(f.Tensors[f.Names()[0]]), nil
	}
	return tta.Keyed(f.Tensors), nil
}

func runMerge(logger *zap.Logger, opts mergeOptions) (tta.Output, error) {
	m, err := readManifest(opts.manifest)
	if err != nil {
		return tta.Output{}, err
	}
	pipeline := m.Pipeline
	if opts.mergeMode != "" {
		pipeline.MergeMode = opts.mergeMode
	}

	offline := tta.ModelFunc(func(*tensor.RawTensor, ...any) (tta.Output, error) {
		return tta.Output{}, errOfflineModel
	})
	w, err := pipeline.NewWrapper(offline, tta.WithLogger(logger))
	if err != nil {
		return tta.Output{}, err
	}

	names := w.Transforms()
	if len(names) != len(m.Steps) {
		return tta.Output{}, fmt.Errorf("%w: %d steps but pipeline has %d transforms", errManifest, len(m.Steps), len(names))
	}

	dir := opts.outputs
	if dir == "" {
		dir = filepath.Dir(opts.manifest)
	}
	outputs := make([]tta.Output, len(m.Steps))
	for i, step := range m.Steps {
		if step.Transform != names[i] {
			return tta.Output{}, fmt.Errorf("%w: step %d is %q, pipeline expects %q", errManifest, i, step.Transform, names[i])
		}
		outputs[i], err = readPrediction(filepath.Join(dir, step.File), pipeline.OutputKey)
		if err != nil {
			return tta.Output{}, fmt.Errorf("step %d (%s): %w", i, step.Transform, err)
		}
	}

	merged, err := w.MergeOutputs(outputs)
	if err != nil {
		return tta.Output{}, err
	}

	tensors := map[string]*tensor.RawTensor{}
	if merged.IsKeyed() {
		for _, k := range merged.Keys() {
			tensors[k], _ = merged.Get(k)
		}
	} else {
		tensors[BareOutputName] = merged.Tensor()
	}
	meta := map[string]string{"run_id": m.RunID, "merge_mode": w.MergeMode().String()}
	if err := serialization.WriteFile(opts.out, tensors, meta); err != nil {
		return tta.Output{}, err
	}
	logger.Info("merge finished",
		zap.String("run_id", m.RunID),
		zap.Stringer("merge_mode", w.MergeMode()),
		zap.Int("steps", len(outputs)))
	return merged, nil
}
