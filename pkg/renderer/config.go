package renderer

import (
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"

	"github.com/juli-99/raytracing.github.io/pkg/core"
)

// Config contains rendering configuration
type Config struct {
	Width           int     // Image width in pixels
	AspectRatio     float64 // Width / height; height is derived
	SamplesPerPixel int     // Number of rays per pixel
	MaxDepth        int     // Maximum ray bounce depth
	NumWorkers      int     // Number of parallel row workers
	Seed            int64   // Base seed; worker i uses Seed+i
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:           400,
		AspectRatio:     16.0 / 9.0,
		SamplesPerPixel: 10,
		MaxDepth:        50,
		NumWorkers:      DefaultWorkerCount(),
		Seed:            42,
	}
}

// Height returns the image height derived from width and aspect ratio
func (c Config) Height() int {
	if c.AspectRatio <= 0 {
		return 0
	}
	return int(float64(c.Width) / c.AspectRatio)
}

// Validate reports the first invalid field, wrapping core.ErrInvalidConfig
func (c Config) Validate() error {
	switch {
	case c.Width <= 0:
		return fmt.Errorf("%w: width must be positive, got %d", core.ErrInvalidConfig, c.Width)
	case c.AspectRatio <= 0:
		return fmt.Errorf("%w: aspect ratio must be positive, got %g", core.ErrInvalidConfig, c.AspectRatio)
	case c.Height() <= 0:
		return fmt.Errorf("%w: width %d and aspect ratio %g give an empty image", core.ErrInvalidConfig, c.Width, c.AspectRatio)
	case c.SamplesPerPixel <= 0:
		return fmt.Errorf("%w: samples per pixel must be positive, got %d", core.ErrInvalidConfig, c.SamplesPerPixel)
	case c.MaxDepth < 0:
		return fmt.Errorf("%w: max depth must not be negative, got %d", core.ErrInvalidConfig, c.MaxDepth)
	case c.NumWorkers <= 0:
		return fmt.Errorf("%w: worker count must be positive, got %d", core.ErrInvalidConfig, c.NumWorkers)
	}
	return nil
}

// DefaultWorkerCount returns the number of logical CPUs
func DefaultWorkerCount() int {
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}
