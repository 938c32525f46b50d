package renderer

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/juli-99/raytracing.github.io/pkg/core"
)

// Render allocates a framebuffer and fills it using config.NumWorkers workers
func (rt *Raytracer) Render(ctx context.Context) (*Framebuffer, RenderStats, error) {
	fb := NewFramebuffer(rt.width, rt.height)
	stats, err := rt.RenderInto(ctx, fb)
	if err != nil {
		return nil, RenderStats{}, err
	}
	return fb, stats, nil
}

// RenderInto fills fb in parallel. It returns only after every worker has
// finished; on error fb must be treated as incomplete.
func (rt *Raytracer) RenderInto(ctx context.Context, fb *Framebuffer) (RenderStats, error) {
	if err := rt.config.Validate(); err != nil {
		return RenderStats{}, err
	}
	// A camera built for another aspect would stretch the image
	if math.Abs(rt.camera.AspectRatio()-rt.config.AspectRatio) > 1e-9*rt.config.AspectRatio {
		return RenderStats{}, fmt.Errorf("%w: camera aspect ratio %g does not match image aspect ratio %g",
			core.ErrInvalidConfig, rt.camera.AspectRatio(), rt.config.AspectRatio)
	}
	if fb.Width != rt.width || fb.Height != rt.height || len(fb.Pixels) != rt.width*rt.height {
		return RenderStats{}, fmt.Errorf("%w: framebuffer is %dx%d, image is %dx%d",
			core.ErrInvalidConfig, fb.Width, fb.Height, rt.width, rt.height)
	}

	pool, err := NewWorkerPool(rt, rt.config.NumWorkers, rt.config.Seed)
	if err != nil {
		return RenderStats{}, err
	}

	rt.logger.Printf("Start rendering %dx%d, %d samples/pixel, depth %d with %d workers.\n",
		rt.width, rt.height, rt.config.SamplesPerPixel, rt.config.MaxDepth, pool.GetNumWorkers())

	start := time.Now()
	workerStats, err := pool.Run(ctx, fb)
	if err != nil {
		return RenderStats{}, fmt.Errorf("rendering failed: %w", err)
	}

	stats := summarize(workerStats, time.Since(start))
	rt.logger.Printf("Render completed in %v (%d pixels, %.1f samples/pixel)\n",
		stats.Duration, stats.TotalPixels, stats.AverageSamples())

	return stats, nil
}
