package cli

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/tta/internal/config"
)

// ManifestFileName is written by augment into its output directory.
const ManifestFileName = "manifest.yaml"

var errManifest = errors.New("invalid manifest")

// Manifest records one augment run so merge can rebuild the same pipeline.
type Manifest struct {
	RunID    string          `yaml:"run_id"`
	Input    string          `yaml:"input"`
	Tensor   string          `yaml:"tensor"`
	Pipeline config.Pipeline `yaml:"pipeline"`
	Steps    []Step          `yaml:"steps"`
}

// Step is one augmented input: the transform applied and the file holding it.
type Step struct {
	Transform string `yaml:"transform"`
	File      string `yaml:"file"`
}

func stepFileName(i int) string {
	return fmt.Sprintf("step_%03d.safetensors", i)
}

func writeManifest(path string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

func readManifest(path string) (*Manifest, error) {
	//nolint:gosec // G304: manifest path is user input by design
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errManifest, path, err)
	}
	if len(m.Steps) == 0 {
		return nil, fmt.Errorf("%w: %s: no steps", errManifest, path)
	}
	if err := m.Pipeline.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errManifest, path, err)
	}
	return &m, nil
}
