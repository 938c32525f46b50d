package renderer

import (
	"context"

	"github.com/juli-99/raytracing.github.io/pkg/core"
	"github.com/juli-99/raytracing.github.io/pkg/geometry"
	"github.com/juli-99/raytracing.github.io/pkg/integrator"
)

// Raytracer resolves camera rays against a world of shapes.
// It holds no mutable state and may be shared between workers.
type Raytracer struct {
	world      geometry.Shape
	camera     *Camera
	integrator integrator.Integrator
	width      int
	height     int
	config     Config
	logger     core.Logger

	// newSampler creates the sampler for one worker from its seed
	newSampler func(seed int64) core.Sampler
}

// NewRaytracer creates a new raytracer
func NewRaytracer(world geometry.Shape, camera *Camera, config Config, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = NopLogger{}
	}
	return &Raytracer{
		world:      world,
		camera:     camera,
		integrator: integrator.NewPathTracingIntegrator(config.MaxDepth),
		width:      config.Width,
		height:     config.Height(),
		config:     config,
		logger:     logger,

		newSampler: seededSampler,
	}
}

func seededSampler(seed int64) core.Sampler {
	return core.NewSeededSampler(seed)
}

// SamplePixel returns the SUM of SamplesPerPixel jittered samples for pixel
// (i, j), where row j = 0 is the bottom of the viewport
func (rt *Raytracer) SamplePixel(i, j int, sampler core.Sampler) core.Vec3 {
	// The last column and row map onto the viewport edge
	uScale := float64(max(rt.width-1, 1))
	vScale := float64(max(rt.height-1, 1))

	colorAccum := core.Vec3{}
	for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
		s := (float64(i) + sampler.Get1D()) / uScale
		t := (float64(j) + sampler.Get1D()) / vScale

		ray := rt.camera.GetRay(s, t, sampler)
		colorAccum = colorAccum.Add(rt.integrator.RayColor(ray, rt.world, sampler))
	}

	return colorAccum
}

// RenderRows fills rows [rows.Start, rows.End) of fb, checking ctx before
// each row. It returns the number of rows completed.
func (rt *Raytracer) RenderRows(ctx context.Context, rows RowRange, fb *Framebuffer, sampler core.Sampler) (int, error) {
	done := 0
	for j := rows.Start; j < rows.End; j++ {
		if err := ctx.Err(); err != nil {
			return done, err
		}
		rt.RenderRow(j, fb, sampler)
		done++
	}
	return done, nil
}

// RenderRow fills one row of fb
func (rt *Raytracer) RenderRow(j int, fb *Framebuffer, sampler core.Sampler) {
	for i := 0; i < rt.width; i++ {
		fb.Set(i, j, rt.SamplePixel(i, j, sampler))
	}
}
