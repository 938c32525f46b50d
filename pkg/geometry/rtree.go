package geometry

import (
	"fmt"
	"math"
	"slices"

	"github.com/dhconnelly/rtreego"

	"github.com/juli-99/raytracing.github.io/pkg/core"
	"github.com/juli-99/raytracing.github.io/pkg/material"
)

const (
	rtreeMinChildren = 4
	rtreeMaxChildren = 16

	// Rectangles in the tree must have positive extent on every axis
	minRectExtent = 1e-9
	// Query boxes are padded so rounding in ray.At cannot drop a touching shape
	queryPadding = 1e-6
)

// indexedShape adapts a Shape to rtreego.Spatial
type indexedShape struct {
	shape  Shape
	box    core.AABB
	bounds rtreego.Rect
	order  int // position in the original shape list
}

func (s *indexedShape) Bounds() rtreego.Rect {
	return s.bounds
}

// RTreeIndex answers nearest-hit queries through an R-tree over shape bounds.
// It reports exactly the same hit as a ShapeList over the same shapes.
type RTreeIndex struct {
	tree   *rtreego.Rtree
	shapes []Shape
	bounds core.AABB
}

// NewRTreeIndex bulk-loads an R-tree from shapes
func NewRTreeIndex(shapes []Shape) (*RTreeIndex, error) {
	objects := make([]rtreego.Spatial, 0, len(shapes))
	for i, shape := range shapes {
		box := shape.BoundingBox()
		rect, err := toRect(box, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to index shape %d: %w", i, err)
		}
		objects = append(objects, &indexedShape{shape: shape, box: box, bounds: rect, order: i})
	}

	list := make([]Shape, len(shapes))
	copy(list, shapes)

	return &RTreeIndex{
		tree:   rtreego.NewTree(3, rtreeMinChildren, rtreeMaxChildren, objects...),
		shapes: list,
		bounds: unionBounds(shapes),
	}, nil
}

// Size returns the number of indexed shapes
func (idx *RTreeIndex) Size() int {
	return idx.tree.Size()
}

// BoundingBox returns the bounds of every indexed shape
func (idx *RTreeIndex) BoundingBox() core.AABB {
	return idx.bounds
}

// Hit returns the closest intersection, querying only shapes whose bounds
// overlap the part of the ray inside the scene
func (idx *RTreeIndex) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if len(idx.shapes) == 0 {
		return nil, false
	}

	t0, t1, ok := idx.bounds.Clip(ray, tMin, tMax)
	if !ok {
		return nil, false
	}
	if math.IsInf(t1, 0) || math.IsNaN(t0) || math.IsNaN(t1) {
		// Degenerate direction; the segment has no finite box
		return closestHit(idx.shapes, ray, tMin, tMax)
	}

	segment := boxAround(ray.At(t0), ray.At(t1))
	query, err := toRect(segment, queryPadding)
	if err != nil {
		return closestHit(idx.shapes, ray, tMin, tMax)
	}

	results := idx.tree.SearchIntersect(query, func(_ []rtreego.Spatial, obj rtreego.Spatial) (refuse, abort bool) {
		return !obj.(*indexedShape).box.Hit(ray, tMin, tMax), false
	})
	if len(results) == 0 {
		return nil, false
	}

	// Scan candidates in scene order so ties resolve like the linear scan
	candidates := make([]*indexedShape, len(results))
	for i, r := range results {
		candidates[i] = r.(*indexedShape)
	}
	slices.SortFunc(candidates, func(a, b *indexedShape) int {
		return a.order - b.order
	})

	var closest *material.HitRecord
	closestSoFar := tMax
	for _, c := range candidates {
		if hit, isHit := c.shape.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closest = hit
		}
	}

	return closest, closest != nil
}

func boxAround(a, b core.Vec3) core.AABB {
	return core.NewAABB(
		core.NewVec3(math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z)),
		core.NewVec3(math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z)),
	)
}

// toRect converts a box to an rtreego rectangle grown by pad on every side
func toRect(box core.AABB, pad float64) (rtreego.Rect, error) {
	size := box.Size()
	point := rtreego.Point{box.Min.X - pad, box.Min.Y - pad, box.Min.Z - pad}
	lengths := []float64{
		math.Max(size.X+2*pad, minRectExtent),
		math.Max(size.Y+2*pad, minRectExtent),
		math.Max(size.Z+2*pad, minRectExtent),
	}
	return rtreego.NewRect(point, lengths)
}
