package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/juli-99/raytracing.github.io/pkg/core"
	"github.com/juli-99/raytracing.github.io/pkg/material"
)

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	hit, isHit := sphere.Hit(ray, 0.001, math.Inf(1))
	if isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_FrontAndBackFace(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float64
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{
			name:           "front face hit",
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "back face hit",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedFront:  false,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
		{
			name:           "unnormalized direction",
			rayOrigin:      core.NewVec3(0, 3, 0),
			rayDirection:   core.NewVec3(0, -4, 0),
			expectedT:      0.5,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 1, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			hit, isHit := sphere.Hit(ray, 0.001, 1000.0)

			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, hit.FrontFace)
			}
			if !hit.Normal.Equals(tt.expectedNormal) {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
		})
	}
}

func TestSphere_Hit_NormalOpposesRay(t *testing.T) {
	sphere := NewSphere(core.NewVec3(1, -2, 0.5), 1.5, nil)
	sampler := core.NewSeededSampler(11)

	hits := 0
	for i := 0; i < 2000; i++ {
		// Origins both inside and outside the sphere
		origin := sphere.Center.Add(core.SamplePointInUnitSphere(sampler.Get3D()).Multiply(4))
		direction := core.SamplePointInUnitSphere(sampler.Get3D())
		ray := core.NewRay(origin, direction)

		// Origins hugging the surface can skip the near root via the epsilon
		dist := origin.Subtract(sphere.Center).Length()
		if math.Abs(dist-sphere.Radius) < 0.01 {
			continue
		}

		hit, isHit := sphere.Hit(ray, 0.001, math.Inf(1))
		if !isHit {
			continue
		}
		hits++

		if d := ray.Direction.Dot(hit.Normal); d >= 0 {
			t.Fatalf("Normal %v does not oppose ray direction %v (dot %f)", hit.Normal, ray.Direction, d)
		}
		if math.Abs(hit.Normal.Length()-1) > 1e-9 {
			t.Fatalf("Normal should be unit length, got %f", hit.Normal.Length())
		}
		inside := dist < sphere.Radius
		if hit.FrontFace == inside {
			t.Fatalf("FrontFace=%t for origin inside=%t", hit.FrontFace, inside)
		}
	}

	if hits == 0 {
		t.Fatal("Expected some rays to hit the sphere")
	}
}

func TestSphere_Hit_Bounds(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	if hit, isHit := sphere.Hit(ray, 0.001, 0.5); isHit {
		t.Errorf("Expected miss due to tMax bound, but got hit at t=%f", hit.T)
	}

	if hit, isHit := sphere.Hit(ray, 3.5, 1000.0); isHit {
		t.Errorf("Expected miss due to tMin bound, but got hit at t=%f", hit.T)
	}

	// Near root excluded, far root inside the interval
	hit, isHit := sphere.Hit(ray, 1.5, 1000.0)
	if !isHit || math.Abs(hit.T-3.0) > 1e-9 {
		t.Errorf("Expected far root t=3, got %v (hit=%t)", hit, isHit)
	}

	// Interval bounds are exclusive
	if _, isHit := sphere.Hit(ray, 1.0, 3.0); isHit {
		t.Error("Roots equal to tMin or tMax should not count as hits")
	}
}

func TestSphere_Hit_CarriesMaterial(t *testing.T) {
	mat := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.3))
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, mat)

	hit, isHit := sphere.Hit(core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1)), 0.001, 10)
	if !isHit {
		t.Fatal("Expected hit")
	}
	if hit.Material != mat {
		t.Errorf("Expected hit material to be the sphere's material")
	}
	if !hit.Point.Equals(core.NewVec3(0, 0, 1)) {
		t.Errorf("Expected hit point (0,0,1), got %v", hit.Point)
	}
}

func TestSphere_BoundingBox(t *testing.T) {
	sphere := NewSphere(core.NewVec3(1, 2, 3), 2, nil)
	box := sphere.BoundingBox()

	if !box.Min.Equals(core.NewVec3(-1, 0, 1)) || !box.Max.Equals(core.NewVec3(3, 4, 5)) {
		t.Errorf("Unexpected bounding box %v", box)
	}
}

// randomSpheres builds a scene resembling the cover scene: a ground sphere
// plus a grid of small spheres
func randomSpheres(random *rand.Rand) []Shape {
	mat := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	shapes := []Shape{NewSphere(core.NewVec3(0, -1000, 0), 1000, mat)}
	for a := -5; a < 5; a++ {
		for b := -5; b < 5; b++ {
			center := core.NewVec3(float64(a)+0.9*random.Float64(), 0.2, float64(b)+0.9*random.Float64())
			shapes = append(shapes, NewSphere(center, 0.2, mat))
		}
	}
	shapes = append(shapes, NewSphere(core.NewVec3(0, 1, 0), 1, mat))
	return shapes
}
