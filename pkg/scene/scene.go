package scene

import (
	"fmt"

	"github.com/juli-99/raytracing.github.io/pkg/core"
	"github.com/juli-99/raytracing.github.io/pkg/geometry"
	"github.com/juli-99/raytracing.github.io/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name         string
	Shapes       []geometry.Shape // Objects in the scene, in intersection order
	CameraConfig renderer.CameraConfig
}

// Accelerator selects how the world answers nearest-hit queries
type Accelerator string

const (
	AccelNone  Accelerator = "none"  // linear scan over every shape
	AccelRTree Accelerator = "rtree" // R-tree over shape bounds
)

// ParseAccelerator validates an accelerator name
func ParseAccelerator(name string) (Accelerator, error) {
	switch accel := Accelerator(name); accel {
	case AccelNone, AccelRTree:
		return accel, nil
	default:
		return "", fmt.Errorf("%w: unknown accelerator %q (want none or rtree)", core.ErrInvalidConfig, name)
	}
}

// World returns the scene's shapes as a single queryable shape. Both
// accelerators report identical hits.
func (s *Scene) World(accel Accelerator) (geometry.Shape, error) {
	switch accel {
	case AccelNone, "":
		return geometry.NewShapeList(s.Shapes...), nil
	case AccelRTree:
		index, err := geometry.NewRTreeIndex(s.Shapes)
		if err != nil {
			return nil, fmt.Errorf("failed to build index for scene %s: %w", s.Name, err)
		}
		return index, nil
	default:
		return nil, fmt.Errorf("%w: unknown accelerator %q", core.ErrInvalidConfig, accel)
	}
}

// GetPrimitiveCount returns the number of shapes in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Shapes)
}

// defaultCameraConfig is the view of the weekend cover scene
func defaultCameraConfig() renderer.CameraConfig {
	return renderer.CameraConfig{
		Center:        core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20.0,
		AspectRatio:   16.0 / 9.0,
		Aperture:      0.1,
		FocusDistance: 10.0,
	}
}
