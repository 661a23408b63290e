package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultTicksPerSecond = 60
	DefaultDuration       = 10.0
	DefaultGravityY       = 1.0
	DefaultGroundY        = 600.0
	DefaultDataDir        = ".trusslab"
)

type Config struct {
	Duration       float64 `yaml:"duration"`
	TicksPerSecond int     `yaml:"ticks_per_second"`
	GravityY       float64 `yaml:"gravity_y"`
	GroundY        float64 `yaml:"ground_y"`
	DataDir        string  `yaml:"data_dir"`
}

func DefaultConfig() *Config {
	return &Config{
		Duration:       DefaultDuration,
		TicksPerSecond: DefaultTicksPerSecond,
		GravityY:       DefaultGravityY,
		GroundY:        DefaultGroundY,
		DataDir:        DefaultDataDir,
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
	return cfg, cfg.Validate()
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", c.Duration)
	}
	if c.TicksPerSecond <= 0 {
		return fmt.Errorf("ticks_per_second must be positive, got %d", c.TicksPerSecond)
	}
	return nil
}

// Ticks is the number of engine ticks a full run covers.
func (c *Config) Ticks() int {
	return int(c.Duration * float64(c.TicksPerSecond))
}
