package core

import "math"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// Hit tests if a ray intersects with this AABB using the slab method
func (aabb AABB) Hit(ray Ray, tMin, tMax float64) bool {
	_, _, ok := aabb.Clip(ray, tMin, tMax)
	return ok
}

// Clip narrows [tMin, tMax] to the part of the ray inside the box.
// ok is false when the ray misses the box within the interval.
func (aabb AABB) Clip(ray Ray, tMin, tMax float64) (t0, t1 float64, ok bool) {
	for axis := 0; axis < 3; axis++ {
		var min, max, origin, direction float64

		switch axis {
		case 0:
			min, max = aabb.Min.X, aabb.Max.X
			origin, direction = ray.Origin.X, ray.Direction.X
		case 1:
			min, max = aabb.Min.Y, aabb.Max.Y
			origin, direction = ray.Origin.Y, ray.Direction.Y
		case 2:
			min, max = aabb.Min.Z, aabb.Max.Z
			origin, direction = ray.Origin.Z, ray.Direction.Z
		}

		// Ray parallel to this slab
		if direction == 0 {
			if origin < min || origin > max {
				return 0, 0, false
			}
			continue
		}

		invDirection := 1.0 / direction
		near := (min - origin) * invDirection
		far := (max - origin) * invDirection
		if near > far {
			near, far = far, near
		}

		tMin = math.Max(tMin, near)
		tMax = math.Min(tMax, far)
		if tMin > tMax {
			return 0, 0, false
		}
	}

	return tMin, tMax, true
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	min := Vec3{
		X: math.Min(aabb.Min.X, other.Min.X),
		Y: math.Min(aabb.Min.Y, other.Min.Y),
		Z: math.Min(aabb.Min.Z, other.Min.Z),
	}
	max := Vec3{
		X: math.Max(aabb.Max.X, other.Max.X),
		Y: math.Max(aabb.Max.Y, other.Max.Y),
		Z: math.Max(aabb.Max.Z, other.Max.Z),
	}
	return AABB{Min: min, Max: max}
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}
