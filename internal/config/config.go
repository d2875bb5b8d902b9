package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Zymrael/torchODE/internal/linode"
)

const (
	DefaultDt    = 0.01
	DefaultSteps = 1000
	DefaultWidth = 8
)

// Config describes one integration problem: the coefficient matrix, the
// initial state and scale vectors, and the run parameters.
type Config struct {
	Method     string      `yaml:"method"`
	Dt         float64     `yaml:"dt"`
	Steps      int         `yaml:"steps"`
	Diagonal   bool        `yaml:"diagonal"`
	TraceEvery int         `yaml:"trace_every"`
	Width      int         `yaml:"width"`
	Matrix     [][]float64 `yaml:"matrix"`
	State      []float64   `yaml:"state"`
	Scale      []float64   `yaml:"scale"`
}

func DefaultConfig() *Config {
	return &Config{
		Method:     "RK4",
		Dt:         DefaultDt,
		Steps:      DefaultSteps,
		TraceEvery: 10,
		Width:      DefaultWidth,
		Matrix:     [][]float64{{-0.5}},
		State:      []float64{1.0},
		Scale:      []float64{1.0},
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

// Problem materializes the configured matrix and vectors. A single-element
// state or scale is broadcast to Width so presets can stay compact.
func (c *Config) Problem() (linode.Matrix, linode.State, linode.State, error) {
	F, err := linode.FromRows(c.Matrix)
	if err != nil {
		return linode.Matrix{}, nil, nil, fmt.Errorf("config matrix: %w", err)
	}

	x0 := broadcast(c.State, c.Width)
	g := broadcast(c.Scale, c.Width)
	if len(x0) == 0 || len(g) == 0 {
		return linode.Matrix{}, nil, nil, fmt.Errorf("config: empty state or scale vector")
	}
	return F, x0, g, nil
}

func broadcast(vals []float64, width int) linode.State {
	if len(vals) == 1 && width > 1 {
		out := make(linode.State, width)
		for i := range out {
			out[i] = vals[0]
		}
		return out
	}
	out := make(linode.State, len(vals))
	copy(out, vals)
	return out
}
