package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/diffsim/internal/dynamo"
	"github.com/san-kum/diffsim/internal/physics"
	"github.com/san-kum/diffsim/internal/sim"
)

const (
	DefaultLength      = 300.0
	DefaultDx          = 0.5
	DefaultDiffusivity = 100.0
	DefaultSteps       = 5000
	DefaultProfile     = "step"
)

type Config struct {
	Length        float64 `yaml:"length"`
	Dx            float64 `yaml:"dx"`
	Diffusivity   float64 `yaml:"diffusivity"`
	Steps         int     `yaml:"steps"`
	Profile       string  `yaml:"profile"`
	SnapshotEvery int     `yaml:"snapshot_every,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Length:      DefaultLength,
		Dx:          DefaultDx,
		Diffusivity: DefaultDiffusivity,
		Steps:       DefaultSteps,
		Profile:     DefaultProfile,
	}
}

// Load reads a YAML file on top of DefaultConfig, so omitted keys keep their defaults.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads a YAML file on top of a copy of base.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the parameters the simulator would reject, in the same order.
// The profile name is resolved by the simulator's registry, not here.
func (c *Config) Validate() error {
	if _, err := physics.GridPoints(c.Length, c.Dx); err != nil {
		return err
	}
	if err := physics.Positive("diffusivity", c.Diffusivity); err != nil {
		return err
	}
	if c.Steps < 0 {
		return &dynamo.ParameterError{Name: "steps", Value: float64(c.Steps)}
	}
	if c.SnapshotEvery < 0 {
		return &dynamo.ParameterError{Name: "snapshot_every", Value: float64(c.SnapshotEvery)}
	}
	return nil
}

func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		Length:        c.Length,
		Dx:            c.Dx,
		Diffusivity:   c.Diffusivity,
		Steps:         c.Steps,
		Profile:       c.Profile,
		SnapshotEvery: c.SnapshotEvery,
		ValidateField: true,
	}
}

func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
