package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt       = 0.005
	DefaultDuration = 10.0
	DefaultF        = 18.0
	DefaultH        = 1.0
	DefaultC        = 10.0
	DefaultB        = 10.0
	DefaultK        = 8
	DefaultJ        = 32
)

type Config struct {
	Model      string       `yaml:"model"`      // twoscale | gcm
	Integrator string       `yaml:"integrator"` // euler | rk2 | rk4
	Closure    string       `yaml:"closure"`    // none | wilks | linear | poly
	Dt         float64      `yaml:"dt"`
	Duration   float64      `yaml:"duration"`
	Seed       int64        `yaml:"seed"`
	Coupling   bool         `yaml:"record_coupling"`
	Params     ParamsConfig `yaml:"params"`
	Poly       PolyConfig   `yaml:"poly"`
}

type ParamsConfig struct {
	F float64 `yaml:"f"`
	H float64 `yaml:"h"`
	C float64 `yaml:"c"`
	B float64 `yaml:"b"`
	K int     `yaml:"k"`
	J int     `yaml:"j"`
}

// PolyConfig carries fitted closure coefficients for closure=poly
// (ascending power order) or the slope/intercept pair for
// closure=linear.
type PolyConfig struct {
	Coeffs    []float64 `yaml:"coeffs"`
	Slope     float64   `yaml:"slope"`
	Intercept float64   `yaml:"intercept"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:      "twoscale",
		Integrator: "rk4",
		Closure:    "none",
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		Params: ParamsConfig{
			F: DefaultF, H: DefaultH, C: DefaultC, B: DefaultB,
			K: DefaultK, J: DefaultJ,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
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

// Steps converts the duration into a fixed step count.
func (c *Config) Steps() int {
	if c.Dt <= 0 {
		return 0
	}
	return int(c.Duration/c.Dt + 0.5)
}
