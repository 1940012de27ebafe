// SPDX-License-Identifier: MIT
//
// File: config.go
// Role: Run configuration: defaults, strict YAML loading and validation.

package pipeline

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/tgraph/mutation"
	"github.com/katalvlaran/tgraph/output"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("pipeline: invalid config")

// Config describes one run over the step range [StartStep, EndStep).
type Config struct {
	InputDir  string `yaml:"input_dir"`
	StartStep int64  `yaml:"start_step"`
	EndStep   int64  `yaml:"end_step"`
	Source    int64  `yaml:"source"`

	// OutputDir receives vertices-<step>.csv files; empty disables output.
	OutputDir  string `yaml:"output_dir"`
	WriteEvery int    `yaml:"write_every"`

	ShardPattern    string `yaml:"shard_pattern"`
	StrictShards    bool   `yaml:"strict_shards"`
	ReadConcurrency int    `yaml:"read_concurrency"`

	// HorizonOffset is added to the step to form the compute horizon.
	// Sums past core.Infinity saturate, so math.MaxInt64 means unbounded.
	HorizonOffset     int64         `yaml:"horizon_offset"`
	MaxSettled        int           `yaml:"max_settled"`
	ComputeTimeout    time.Duration `yaml:"compute_timeout"`
	EdgeIntervalsOnly bool          `yaml:"edge_intervals_only"`
	VertexOverwrite   bool          `yaml:"vertex_overwrite"`

	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"`
	MetricsAddr string `yaml:"metrics_addr"`
}

// DefaultConfig returns the configuration every loaded file is overlaid on.
func DefaultConfig() Config {
	return Config{
		OutputDir:       "output",
		WriteEvery:      output.DefaultEvery,
		ShardPattern:    mutation.DefaultPattern,
		ReadConcurrency: 4,
		LogLevel:        "info",
		LogFormat:       "text",
	}
}

// LoadConfig reads a YAML file over DefaultConfig. Unknown keys are rejected.
// An empty path returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("pipeline: open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("pipeline: decode config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate reports the first inconsistency in c.
func (c Config) Validate() error {
	switch {
	case c.InputDir == "":
		return fmt.Errorf("%w: input_dir is required", ErrInvalidConfig)
	case c.StartStep < 0:
		return fmt.Errorf("%w: start_step %d is negative", ErrInvalidConfig, c.StartStep)
	case c.EndStep <= c.StartStep:
		return fmt.Errorf("%w: end_step %d must be greater than start_step %d", ErrInvalidConfig, c.EndStep, c.StartStep)
	case c.WriteEvery <= 0:
		return fmt.Errorf("%w: write_every must be positive", ErrInvalidConfig)
	case c.ReadConcurrency < 0:
		return fmt.Errorf("%w: read_concurrency is negative", ErrInvalidConfig)
	case c.HorizonOffset < 0:
		return fmt.Errorf("%w: horizon_offset is negative", ErrInvalidConfig)
	case c.MaxSettled < 0:
		return fmt.Errorf("%w: max_settled is negative", ErrInvalidConfig)
	case c.ComputeTimeout < 0:
		return fmt.Errorf("%w: compute_timeout is negative", ErrInvalidConfig)
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log_level must be 'debug', 'info', 'warn' or 'error'", ErrInvalidConfig)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be 'text' or 'json'", ErrInvalidConfig)
	}

	return nil
}
