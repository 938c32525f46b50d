package integrator

import (
	"github.com/juli-99/raytracing.github.io/pkg/core"
	"github.com/juli-99/raytracing.github.io/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the color carried back along ray from world.
	// The sampler belongs to the calling goroutine.
	RayColor(ray core.Ray, world geometry.Shape, sampler core.Sampler) core.Vec3
}
