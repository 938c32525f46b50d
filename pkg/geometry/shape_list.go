package geometry

import (
	"github.com/juli-99/raytracing.github.io/pkg/core"
	"github.com/juli-99/raytracing.github.io/pkg/material"
)

// ShapeList answers nearest-hit queries with a linear scan over its shapes
type ShapeList struct {
	Shapes []Shape
}

// NewShapeList creates a list over a copy of shapes
func NewShapeList(shapes ...Shape) *ShapeList {
	list := make([]Shape, len(shapes))
	copy(list, shapes)
	return &ShapeList{Shapes: list}
}

// Hit returns the closest intersection over all shapes
func (l *ShapeList) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return closestHit(l.Shapes, ray, tMin, tMax)
}

// BoundingBox returns the union of all shape bounds
func (l *ShapeList) BoundingBox() core.AABB {
	return unionBounds(l.Shapes)
}

// closestHit scans shapes, shrinking tMax to the closest hit found so far
func closestHit(shapes []Shape, ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closest *material.HitRecord
	closestSoFar := tMax

	for _, shape := range shapes {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closest = hit
		}
	}

	return closest, closest != nil
}

func unionBounds(shapes []Shape) core.AABB {
	if len(shapes) == 0 {
		return core.AABB{}
	}
	box := shapes[0].BoundingBox()
	for _, shape := range shapes[1:] {
		box = box.Union(shape.BoundingBox())
	}
	return box
}
