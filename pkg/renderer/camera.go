package renderer

import (
	"fmt"
	"math"

	"github.com/juli-99/raytracing.github.io/pkg/core"
)

// CameraConfig describes a thin-lens camera
type CameraConfig struct {
	Center        core.Vec3 // Look-from point
	LookAt        core.Vec3 // Point the camera looks at
	Up            core.Vec3 // World up direction
	VFov          float64   // Vertical field of view in degrees
	AspectRatio   float64   // Viewport width / height
	Aperture      float64   // Lens diameter, 0 for a pinhole
	FocusDistance float64   // Distance to the plane in focus, 0 = distance to LookAt
}

// Camera generates rays for rendering. It is immutable and shared by all workers.
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3
	lensRadius      float64
	aspectRatio     float64
}

// NewCamera derives the camera basis and viewport from config
func NewCamera(config CameraConfig) (*Camera, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	focusDistance := config.FocusDistance
	if focusDistance == 0 {
		focusDistance = config.Center.Subtract(config.LookAt).Length()
	}

	theta := config.VFov * math.Pi / 180
	h := math.Tan(theta / 2)
	viewportHeight := 2.0 * h
	viewportWidth := config.AspectRatio * viewportHeight

	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	origin := config.Center
	horizontal := u.Multiply(focusDistance * viewportWidth)
	vertical := v.Multiply(focusDistance * viewportHeight)
	lowerLeftCorner := origin.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(focusDistance))

	return &Camera{
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
		aspectRatio:     config.AspectRatio,
	}, nil
}

// Validate checks that the camera configuration describes a usable view
func (c CameraConfig) Validate() error {
	switch {
	case c.AspectRatio <= 0:
		return fmt.Errorf("%w: camera aspect ratio must be positive, got %g", core.ErrInvalidConfig, c.AspectRatio)
	case c.VFov <= 0 || c.VFov >= 180:
		return fmt.Errorf("%w: vertical field of view must be in (0, 180), got %g", core.ErrInvalidConfig, c.VFov)
	case c.Aperture < 0:
		return fmt.Errorf("%w: aperture must not be negative, got %g", core.ErrInvalidConfig, c.Aperture)
	case c.FocusDistance < 0:
		return fmt.Errorf("%w: focus distance must not be negative, got %g", core.ErrInvalidConfig, c.FocusDistance)
	}

	view := c.Center.Subtract(c.LookAt)
	if view.NearZero() {
		return fmt.Errorf("%w: look-from and look-at must differ", core.ErrInvalidConfig)
	}
	if c.Up.Cross(view).NearZero() {
		return fmt.Errorf("%w: up vector must not be parallel to the view direction", core.ErrInvalidConfig)
	}
	return nil
}

// GetRay generates a ray for viewport coordinates (s, t) where 0 <= s,t <= 1.
// (0,0) is the lower-left corner. The origin is jittered across the lens.
func (c *Camera) GetRay(s, t float64, sampler core.Sampler) core.Ray {
	rd := core.SamplePointInUnitDisk(sampler.Get2D()).Multiply(c.lensRadius)
	offset := c.u.Multiply(rd.X).Add(c.v.Multiply(rd.Y))

	origin := c.origin.Add(offset)
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(origin)

	return core.NewRay(origin, direction)
}

// Forward returns the unit viewing direction
func (c *Camera) Forward() core.Vec3 {
	return c.w.Negate()
}

// LensRadius returns half the aperture
func (c *Camera) LensRadius() float64 {
	return c.lensRadius
}

// AspectRatio returns the viewport width / height the camera was built for
func (c *Camera) AspectRatio() float64 {
	return c.aspectRatio
}
