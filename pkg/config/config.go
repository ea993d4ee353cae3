// Package config loads and validates the experiment configuration.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/dd0wney/neurograph/pkg/community"
	"github.com/dd0wney/neurograph/pkg/dataset"
)

// Detector algorithm names accepted in the config file.
const (
	DetectorGreedyModularity = "greedy-modularity"
	DetectorLabelPropagation = "label-propagation"
)

// validate is a singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Config describes one classification experiment.
type Config struct {
	// Vertices is N, fixed across the whole dataset.
	Vertices int `yaml:"vertices" validate:"required,min=2"`
	// Timesteps is T, the number of graphs per sequence.
	Timesteps int `yaml:"timesteps" validate:"required,min=1"`
	// ScoreTimesteps is K, the leading timesteps scored during
	// classification. Zero defaults to Timesteps/2 (minimum 1).
	ScoreTimesteps int `yaml:"score_timesteps" validate:"min=0"`

	// Labels names the two stimulus conditions, in order.
	Labels [2]string `yaml:"labels"`
	// TieLabel is returned on an exact score tie; empty defaults to
	// the first label.
	TieLabel string `yaml:"tie_label"`
	// ClassDirs maps each label to the directory of its sequence files.
	ClassDirs map[string]string `yaml:"class_dirs" validate:"required,len=2"`

	// Detector selects the community detection algorithm.
	Detector string `yaml:"detector" validate:"omitempty,oneof=greedy-modularity label-propagation"`

	// Seed drives the train/eval shuffle; fixed seeds reproduce splits.
	Seed int64 `yaml:"seed"`
	// TrainFraction is the share of sequences used for training.
	TrainFraction float64 `yaml:"train_fraction" validate:"omitempty,gt=0,lt=1"`

	// Workers bounds data-parallel fan-outs; zero uses all CPUs.
	Workers int `yaml:"workers" validate:"min=0"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// MetricsAddr, when set, serves prometheus metrics on this address
	// during the run, e.g. ":9090".
	MetricsAddr string `yaml:"metrics_addr"`
}

// Load reads, defaults, and validates a yaml config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Detector == "" {
		c.Detector = DetectorGreedyModularity
	}
	if c.TrainFraction == 0 {
		c.TrainFraction = 0.8
	}
	if c.ScoreTimesteps == 0 {
		c.ScoreTimesteps = c.Timesteps / 2
		if c.ScoreTimesteps < 1 {
			c.ScoreTimesteps = 1
		}
	}
	if c.TieLabel == "" {
		c.TieLabel = c.Labels[0]
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Validate checks struct tags plus the cross-field constraints the tags
// cannot express.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if c.Labels[0] == "" || c.Labels[1] == "" {
		return fmt.Errorf("invalid config: both labels must be set")
	}
	if c.Labels[0] == c.Labels[1] {
		return fmt.Errorf("invalid config: labels must be distinct, got %q twice", c.Labels[0])
	}
	if c.TieLabel != c.Labels[0] && c.TieLabel != c.Labels[1] {
		return fmt.Errorf("invalid config: tie_label %q is not one of the labels", c.TieLabel)
	}
	if c.ScoreTimesteps > c.Timesteps {
		return fmt.Errorf("invalid config: score_timesteps %d exceeds timesteps %d", c.ScoreTimesteps, c.Timesteps)
	}
	for _, label := range c.Labels {
		if _, ok := c.ClassDirs[label]; !ok {
			return fmt.Errorf("invalid config: class_dirs missing entry for label %q", label)
		}
	}
	return nil
}

// LabelPair returns the configured labels as a dataset pair.
func (c *Config) LabelPair() dataset.LabelPair {
	return dataset.LabelPair{dataset.Label(c.Labels[0]), dataset.Label(c.Labels[1])}
}

// ClassDirectories returns the per-label dataset directories.
func (c *Config) ClassDirectories() map[dataset.Label]string {
	dirs := make(map[dataset.Label]string, len(c.ClassDirs))
	for label, dir := range c.ClassDirs {
		dirs[dataset.Label(label)] = dir
	}
	return dirs
}

// BuildDetector constructs the configured detection algorithm.
func (c *Config) BuildDetector() (community.Detector, error) {
	switch c.Detector {
	case DetectorGreedyModularity:
		return community.NewGreedyModularity(), nil
	case DetectorLabelPropagation:
		return community.NewLabelPropagation(), nil
	default:
		return nil, fmt.Errorf("unknown detector %q", c.Detector)
	}
}
