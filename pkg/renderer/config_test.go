package renderer

import (
	"errors"
	"testing"

	"github.com/juli-99/raytracing.github.io/pkg/core"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	if err := config.Validate(); err != nil {
		t.Fatalf("Default config should be valid: %v", err)
	}
	if config.Height() != 225 {
		t.Errorf("Expected height 225 for 400 at 16:9, got %d", config.Height())
	}
	if config.NumWorkers < 1 {
		t.Errorf("Expected at least one worker, got %d", config.NumWorkers)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative aspect", func(c *Config) { c.AspectRatio = -1 }},
		{"empty height", func(c *Config) { c.Width = 1; c.AspectRatio = 2 }},
		{"zero samples", func(c *Config) { c.SamplesPerPixel = 0 }},
		{"negative depth", func(c *Config) { c.MaxDepth = -1 }},
		{"zero workers", func(c *Config) { c.NumWorkers = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.modify(&config)
			if err := config.Validate(); !errors.Is(err, core.ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestConfigZeroDepthIsValid(t *testing.T) {
	config := DefaultConfig()
	config.MaxDepth = 0
	if err := config.Validate(); err != nil {
		t.Errorf("Depth 0 renders black but is valid: %v", err)
	}
}

func TestFramebuffer(t *testing.T) {
	fb := NewFramebuffer(4, 3)
	if len(fb.Pixels) != 12 {
		t.Fatalf("Expected 12 pixels, got %d", len(fb.Pixels))
	}

	fb.Set(2, 1, core.NewVec3(1, 2, 3))
	if fb.Index(2, 1) != 6 {
		t.Errorf("Expected index 6, got %d", fb.Index(2, 1))
	}
	if got := fb.At(2, 1); got != core.NewVec3(1, 2, 3) {
		t.Errorf("Expected (1,2,3), got %v", got)
	}
	if row := fb.Row(1); len(row) != 4 || row[2] != core.NewVec3(1, 2, 3) {
		t.Errorf("Row(1) = %v", row)
	}
}
