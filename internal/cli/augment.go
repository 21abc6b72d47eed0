package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/born-ml/tta/internal/config"
	"github.com/born-ml/tta/internal/serialization"
	"github.com/born-ml/tta/internal/tensor"
	"github.com/born-ml/tta/internal/transforms"
)

type augmentOptions struct {
	configPath string
	input      string
	tensor     string
	out        string
}

func newAugmentCommand(a *app) *cobra.Command {
	var opts augmentOptions
	cmd := &cobra.Command{
		Use:   "augment",
		Short: "Write one augmented copy of the input per transform",
		Long: `Reads a pipeline config and an input tensor, applies every transform of the
composed set, and writes each augmented tensor to its own SafeTensors file
together with a manifest describing the run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := runAugment(a.logger, opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "run %s: wrote %d augmented inputs to %s\n", m.RunID, len(m.Steps), opts.out)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", ".", "pipeline YAML file, or a directory containing tta.yml")
	f.StringVarP(&opts.input, "input", "i", "", "SafeTensors file holding the input image")
	f.StringVarP(&opts.tensor, "tensor", "t", "", "tensor name inside the input file (default: its only tensor)")
	f.StringVarP(&opts.out, "out", "o", "", "output directory")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func loadPipeline(path string) (*config.Pipeline, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if info.IsDir() {
		return config.LoadDir(path)
	}
	return config.Load(path)
}

// selectTensor returns the named tensor, or the only tensor when name is empty.
func selectTensor(f *serialization.File, name string) (string, *tensor.RawTensor, error) {
	if name != "" {
		t, err := f.Tensor(name)
		return name, t, err
	}
	names := f.Names()
	if len(names) != 1 {
		return "", nil, fmt.Errorf("input holds %d tensors %v, choose one with --tensor", len(names), names)
	}
	return names[0], f.Tensors[names[0]], nil
}

func runAugment(logger *zap.Logger, opts augmentOptions) (*Manifest, error) {
	pipeline, err := loadPipeline(opts.configPath)
	if err != nil {
		return nil, err
	}
	set, err := pipeline.BuildTransforms()
	if err != nil {
		return nil, err
	}

	in, err := serialization.ReadFile(opts.input)
	if err != nil {
		return nil, err
	}
	name, x, err := selectTensor(in, opts.tensor)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(opts.out, 0o750); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	m := &Manifest{
		RunID:    uuid.NewString(),
		Input:    opts.input,
		Tensor:   name,
		Pipeline: *pipeline,
		Steps:    make([]Step, 0, len(set)),
	}
	for i, t := range set {
		step := Step{Transform: transforms.Name(t), File: stepFileName(i)}
		aug, err := t.AugmentImage(x)
		if err != nil {
			return nil, fmt.Errorf("augment %s: %w", step.Transform, err)
		}
		meta := map[string]string{"run_id": m.RunID, "transform": step.Transform}
		path := filepath.Join(opts.out, step.File)
		if err := serialization.WriteFile(path, map[string]*tensor.RawTensor{name: aug}, meta); err != nil {
			return nil, err
		}
		logger.Debug("augmented input written",
			zap.Int("step", i),
			zap.String("transform", step.Transform),
			zap.String("file", path),
			zap.Stringer("shape", aug.Shape()))
		m.Steps = append(m.Steps, step)
	}

	if err := writeManifest(filepath.Join(opts.out, ManifestFileName), m); err != nil {
		return nil, err
	}
	logger.Info("augment finished", zap.String("run_id", m.RunID), zap.Int("steps", len(m.Steps)))
	return m, nil
}
