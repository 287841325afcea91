package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"ortholab/internal/mat3"
	"ortholab/internal/poly"
	"ortholab/internal/trajectory"
)

const (
	DefaultDegree = 3
	DefaultSteps  = 6
)

// DefaultCoefficients returns the recommended Newton-Schulz coefficient
// set for a degree.
func DefaultCoefficients(degree int) []float64 {
	if degree == 5 {
		return []float64{3.4445, -4.775, 2.0315}
	}
	return []float64{1.5, -0.5}
}

// Config is the yaml-facing run configuration.
type Config struct {
	Matrix       []float64 `yaml:"matrix"` // 9 row-major entries; empty = identity
	Degree       int       `yaml:"degree"`
	Coefficients []float64 `yaml:"coefficients"`
	Steps        int       `yaml:"steps"`
	Normalize    bool      `yaml:"normalize"`
}

func DefaultConfig() *Config {
	return &Config{
		Degree:       DefaultDegree,
		Coefficients: DefaultCoefficients(DefaultDegree),
		Steps:        DefaultSteps,
		Normalize:    true,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
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

// RunConfig translates the yaml form into the driver's configuration.
// An empty coefficient list falls back to the defaults for the degree;
// an empty matrix falls back to the identity.
func (c *Config) RunConfig() (trajectory.Config, error) {
	initial := mat3.Identity()
	if len(c.Matrix) > 0 {
		m, err := mat3.FromSlice(c.Matrix)
		if err != nil {
			return trajectory.Config{}, fmt.Errorf("config: %w", err)
		}
		initial = m
	}

	coeffs := c.Coefficients
	if len(coeffs) == 0 {
		coeffs = DefaultCoefficients(c.Degree)
	}
	if want := poly.CoefficientCount(c.Degree); len(coeffs) != want {
		return trajectory.Config{}, fmt.Errorf("config: %w: degree %d wants %d coefficients, got %d",
			poly.ErrInvalidCoefficients, c.Degree, want, len(coeffs))
	}

	return trajectory.Config{
		Initial:      initial,
		Degree:       c.Degree,
		Coefficients: coeffs,
		Steps:        c.Steps,
		Normalize:    c.Normalize,
	}, nil
}
