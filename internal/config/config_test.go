package config

import (
	"path/filepath"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Duration = 3.5
	cfg.GravityY = 0.5

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if got.Duration != 3.5 {
		t.Errorf("duration = %f, want 3.5", got.Duration)
	}
	if got.GravityY != 0.5 {
		t.Errorf("gravity = %f, want 0.5", got.GravityY)
	}
	if got.TicksPerSecond != DefaultTicksPerSecond {
		t.Errorf("ticks = %d, want default %d", got.TicksPerSecond, DefaultTicksPerSecond)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Config)
	}{
		{"zero duration", func(c *Config) { c.Duration = 0 }},
		{"negative duration", func(c *Config) { c.Duration = -1 }},
		{"zero tick rate", func(c *Config) { c.TicksPerSecond = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mod(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestTicks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Duration = 2
	cfg.TicksPerSecond = 60
	if got := cfg.Ticks(); got != 120 {
		t.Errorf("ticks = %d, want 120", got)
	}
}
