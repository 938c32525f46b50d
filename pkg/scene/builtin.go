package scene

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/juli-99/raytracing.github.io/pkg/core"
	"github.com/juli-99/raytracing.github.io/pkg/geometry"
	"github.com/juli-99/raytracing.github.io/pkg/material"
	"github.com/juli-99/raytracing.github.io/pkg/renderer"
)

// builtins maps scene names to constructors; seed only affects random scenes
var builtins = map[string]func(seed int64) *Scene{
	"weekend":       NewWeekendScene,
	"ground":        func(int64) *Scene { return NewGroundScene() },
	"three-spheres": func(int64) *Scene { return NewThreeSpheresScene() },
}

// Names returns the built-in scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewBuiltin creates the built-in scene with the given name
func NewBuiltin(name string, seed int64) (*Scene, error) {
	create, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown scene %q (available: %v)", core.ErrInvalidConfig, name, Names())
	}
	return create(seed), nil
}

// NewWeekendScene creates the random sphere field: a ground sphere, a 22x22
// grid of small spheres (80% diffuse, 15% metal, 5% glass) and three large
// spheres. The same seed always yields the same scene.
func NewWeekendScene(seed int64) *Scene {
	random := rand.New(rand.NewSource(seed))
	randomIn := func(min, max float64) float64 {
		return min + (max-min)*random.Float64()
	}
	randomColor := func(min, max float64) core.Vec3 {
		return core.NewVec3(randomIn(min, max), randomIn(min, max), randomIn(min, max))
	}

	shapes := []geometry.Shape{
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
	}

	// Small spheres keep clear of the big metal sphere
	clearing := core.NewVec3(4, 0.2, 0)

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := random.Float64()
			center := core.NewVec3(float64(a)+0.9*random.Float64(), 0.2, float64(b)+0.9*random.Float64())

			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			var mat material.Material
			switch {
			case chooseMat < 0.8:
				albedo := randomColor(0, 1).MultiplyVec(randomColor(0, 1))
				mat = material.NewLambertian(albedo)
			case chooseMat < 0.95:
				albedo := randomColor(0.5, 1)
				mat = material.NewMetal(albedo, randomIn(0, 0.5))
			default:
				mat = material.NewDielectric(1.5)
			}
			shapes = append(shapes, geometry.NewSphere(center, 0.2, mat))
		}
	}

	shapes = append(shapes,
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	)

	return &Scene{
		Name:         "weekend",
		Shapes:       shapes,
		CameraConfig: defaultCameraConfig(),
	}
}

// NewGroundScene creates a single huge diffuse sphere under a horizontal
// camera; the horizon splits the image in half
func NewGroundScene() *Scene {
	return &Scene{
		Name: "ground",
		Shapes: []geometry.Shape{
			geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
		},
		CameraConfig: renderer.CameraConfig{
			Center:      core.NewVec3(0, 1, 0),
			LookAt:      core.NewVec3(0, 1, -1),
			Up:          core.NewVec3(0, 1, 0),
			VFov:        90.0,
			AspectRatio: 16.0 / 9.0,
		},
	}
}

// NewThreeSpheresScene creates a diffuse, a glass and a metal sphere on a
// yellow ground
func NewThreeSpheresScene() *Scene {
	ground := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	center := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	left := material.NewDielectric(1.5)
	right := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.0)

	return &Scene{
		Name: "three-spheres",
		Shapes: []geometry.Shape{
			geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, ground),
			geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, center),
			geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, left),
			geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, right),
		},
		CameraConfig: renderer.CameraConfig{
			Center:      core.NewVec3(-2, 2, 1),
			LookAt:      core.NewVec3(0, 0, -1),
			Up:          core.NewVec3(0, 1, 0),
			VFov:        40.0,
			AspectRatio: 16.0 / 9.0,
		},
	}
}
