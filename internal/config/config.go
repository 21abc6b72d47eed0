// Package config loads TTA pipeline definitions from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/tta/internal/merge"
	"github.com/born-ml/tta/internal/transforms"
	"github.com/born-ml/tta/internal/tta"
)

// ErrInvalidConfig is returned for pipeline files that fail validation.
var ErrInvalidConfig = errors.New("invalid pipeline config")

// DefaultFileNames are tried in order by LoadDir.
var DefaultFileNames = []string{"tta.yml", "tta.yaml"}

// Pipeline describes a TTA wrapper: its task, merge strategy, output key
// and transform set.
type Pipeline struct {
	Task        string      `yaml:"task,omitempty"`
	MergeMode   string      `yaml:"merge_mode,omitempty"`
	OutputKey   string      `yaml:"output_key,omitempty"`
	Concurrency int         `yaml:"concurrency,omitempty"`
	Transforms  []Transform `yaml:"transforms"`
}

// Transform is one parameterised entry of the transform list. The set of
// transformers is the cartesian product of all entries' parameter values.
type Transform struct {
	Type    string    `yaml:"type"`
	Angles  []int     `yaml:"angles,omitempty"`
	Values  []float64 `yaml:"values,omitempty"`
	Factors []float64 `yaml:"factors,omitempty"`
}

// Transform type names. Aliases are normalised by canonicalType.
const (
	TypeHorizontalFlip = "hflip"
	TypeVerticalFlip   = "vflip"
	TypeRotate90       = "rotate90"
	TypeAdd            = "add"
	TypeMultiply       = "multiply"
	TypeIdentity       = "identity"
)

var typeAliases = map[string]string{
	"horizontal_flip": TypeHorizontalFlip,
	"vertical_flip":   TypeVerticalFlip,
	"rotate":          TypeRotate90,
	"rot90":           TypeRotate90,
}

func canonicalType(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := typeAliases[key]; ok {
		return alias
	}
	return key
}

// Load reads and validates a pipeline file.
func Load(path string) (*Pipeline, error) {
	//nolint:gosec // G304: pipeline path is user input by design
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pipeline config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadDir looks for one of DefaultFileNames in dir.
func LoadDir(dir string) (*Pipeline, error) {
	for _, name := range DefaultFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return Load(path)
	}
	return nil, fmt.Errorf("%w: no %s in %s", os.ErrNotExist, strings.Join(DefaultFileNames, " or "), dir)
}

// Parse decodes YAML, applies defaults and validates the result.
// Unknown fields are rejected.
func Parse(data []byte) (*Pipeline, error) {
	var cfg Pipeline
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (p *Pipeline) applyDefaults() {
	if p.Task == "" {
		p.Task = tta.Segmentation.String()
	}
	if p.MergeMode == "" {
		p.MergeMode = tta.DefaultMergeMode
	}
	if p.Concurrency == 0 {
		p.Concurrency = 1
	}
}

// Validate checks the task, merge mode, concurrency and every transform entry.
func (p *Pipeline) Validate() error {
	if _, err := tta.ParseTask(p.Task); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := merge.ParseMode(p.MergeMode); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if p.Concurrency < 1 {
		return fmt.Errorf("%w: concurrency must be positive, got %d", ErrInvalidConfig, p.Concurrency)
	}
	if len(p.Transforms) == 0 {
		return fmt.Errorf("%w: at least one transform is required", ErrInvalidConfig)
	}
	for i, t := range p.Transforms {
		if _, err := t.choices(); err != nil {
			return fmt.Errorf("%w: transforms[%d]: %w", ErrInvalidConfig, i, err)
		}
	}
	return nil
}

// choices expands the entry into its parameter values.
func (t Transform) choices() ([]transforms.Transform, error) {
	kind := canonicalType(t.Type)

	var unexpected []string
	if kind != TypeRotate90 && len(t.Angles) > 0 {
		unexpected = append(unexpected, "angles")
	}
	if kind != TypeAdd && len(t.Values) > 0 {
		unexpected = append(unexpected, "values")
	}
	if kind != TypeMultiply && len(t.Factors) > 0 {
		unexpected = append(unexpected, "factors")
	}
	if len(unexpected) > 0 {
		return nil, fmt.Errorf("%s does not take %s", kind, strings.Join(unexpected, ", "))
	}

	switch kind {
	case TypeHorizontalFlip:
		return transforms.HorizontalFlips(), nil
	case TypeVerticalFlip:
		return transforms.VerticalFlips(), nil
	case TypeIdentity:
		return []transforms.Transform{transforms.Identity{}}, nil
	case TypeRotate90:
		angles := t.Angles
		if len(angles) == 0 {
			angles = []int{0, 90, 180, 270}
		}
		return transforms.Rotations(angles...)
	case TypeAdd:
		if len(t.Values) == 0 {
			return nil, errors.New("add needs values")
		}
		return transforms.Adds(t.Values...), nil
	case TypeMultiply:
		if len(t.Factors) == 0 {
			return nil, errors.New("multiply needs factors")
		}
		return transforms.Multiplies(t.Factors...), nil
	case "":
		return nil, errors.New("missing type")
	default:
		return nil, fmt.Errorf("unknown type %q", t.Type)
	}
}

// BuildTransforms expands the transform list into the composed transform set.
func (p *Pipeline) BuildTransforms() ([]transforms.Transform, error) {
	choices := make([][]transforms.Transform, len(p.Transforms))
	for i, t := range p.Transforms {
		c, err := t.choices()
		if err != nil {
			return nil, fmt.Errorf("%w: transforms[%d]: %w", ErrInvalidConfig, i, err)
		}
		choices[i] = c
	}
	return transforms.Compose(choices...)
}

// Options converts the pipeline into wrapper options.
func (p *Pipeline) Options() []tta.Option {
	return []tta.Option{
		tta.WithMergeMode(p.MergeMode),
		tta.WithOutputKey(p.OutputKey),
		tta.WithConcurrency(p.Concurrency),
	}
}

// NewWrapper builds the configured wrapper around model.
func (p *Pipeline) NewWrapper(model tta.Model, extra ...tta.Option) (tta.Wrapper, error) {
	task, err := tta.ParseTask(p.Task)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	set, err := p.BuildTransforms()
	if err != nil {
		return nil, err
	}
	return tta.New(task, model, set, append(p.Options(), extra...)...)
}

// Marshal encodes the pipeline as YAML.
func (p *Pipeline) Marshal() ([]byte, error) {
	return yaml.Marshal(p)
}
