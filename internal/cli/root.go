// Package cli implements the born-tta command line tool.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Version is the tool version reported by "born-tta version".
var Version = "v0.1.0-dev"

// app carries state shared by subcommands.
type app struct {
	verbose bool
	logger  *zap.Logger
}

// NewRootCommand builds the born-tta command tree.
func NewRootCommand() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "born-tta",
		Short: "Test-time augmentation for segmentation and classification models",
		Long: `born-tta prepares augmented inputs for an external model and merges the
model's predictions back into a single output.

Workflow:
  1. born-tta augment --config tta.yml --input image.safetensors --out run/
  2. run the model on every run/step_*.safetensors, writing predictions
     with the same file names into a predictions directory
  3. born-tta merge --manifest run/manifest.yaml --outputs preds/ --out merged.safetensors`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(cmd.ErrOrStderr(), a.verbose)
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.logger.Sync()
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log every pipeline step")

	root.AddCommand(
		newAugmentCommand(a),
		newMergeCommand(a),
		newModesCommand(),
		newVersionCommand(),
	)
	return root
}

// newLogger writes console-encoded logs to w. Without verbose only warnings
// and errors are emitted.
func newLogger(w io.Writer, verbose bool) (*zap.Logger, error) {
	if w == nil {
		return nil, errors.New("nil log writer")
	}
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.AddSync(w), level)
	return zap.New(core), nil
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
