package geometry

import (
	"github.com/juli-99/raytracing.github.io/pkg/core"
	"github.com/juli-99/raytracing.github.io/pkg/material"
)

// Shape interface for objects that can be hit by rays.
// Implementations are immutable and safe for concurrent use.
type Shape interface {
	Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)
	BoundingBox() core.AABB
}
