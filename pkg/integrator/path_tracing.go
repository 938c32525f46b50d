package integrator

import (
	"math"

	"github.com/juli-99/raytracing.github.io/pkg/core"
	"github.com/juli-99/raytracing.github.io/pkg/geometry"
)

// ShadowAcneEpsilon is the smallest t accepted for a hit, so scattered rays
// don't re-hit the surface they leave
const ShadowAcneEpsilon = 0.001

var (
	skyBottom = core.NewVec3(1.0, 1.0, 1.0)
	skyTop    = core.NewVec3(0.5, 0.7, 1.0)
)

// PathTracingIntegrator implements unidirectional path tracing with a sky
// gradient as the only light source
type PathTracingIntegrator struct {
	maxDepth int
}

// NewPathTracingIntegrator creates a path tracer following at most maxDepth
// bounces per ray
func NewPathTracingIntegrator(maxDepth int) *PathTracingIntegrator {
	return &PathTracingIntegrator{maxDepth: maxDepth}
}

// Sky returns the background gradient: white looking straight down,
// sky blue looking straight up
func Sky(direction core.Vec3) core.Vec3 {
	unitDirection := direction.Normalize()
	t := 0.5 * (unitDirection.Y + 1.0)
	return skyBottom.Lerp(skyTop, t)
}

// RayColor is the loop form of the recursion
//
//	color(r, d) = black                               if d <= 0
//	            = attenuation ⊙ color(scattered, d-1) on hit and scatter
//	            = black                               on hit and absorb
//	            = Sky(r)                              on miss
func (pt *PathTracingIntegrator) RayColor(r core.Ray, world geometry.Shape, sampler core.Sampler) core.Vec3 {
	throughput := core.NewVec3(1, 1, 1)

	for depth := pt.maxDepth; depth > 0; depth-- {
		hit, isHit := world.Hit(r, ShadowAcneEpsilon, math.Inf(1))
		if !isHit {
			return throughput.MultiplyVec(Sky(r.Direction))
		}

		scatter, didScatter := hit.Material.Scatter(r, *hit, sampler)
		if !didScatter {
			return core.Vec3{}
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		r = scatter.Scattered
	}

	// Bounce budget exhausted, no more light is gathered
	return core.Vec3{}
}
