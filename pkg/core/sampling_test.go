package core

import (
	"math/rand"
	"testing"
)

func TestSamplePointInUnitSphere_InsideSphere(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(42)))

	for i := 0; i < 10000; i++ {
		p := SamplePointInUnitSphere(sampler.Get3D())
		if p.LengthSquared() > 1.0+1e-12 {
			t.Fatalf("Sample %d outside unit sphere: %v (len² %f)", i, p, p.LengthSquared())
		}
	}
}

func TestSamplePointInUnitSphere_Uniformity(t *testing.T) {
	// Half the volume of a unit sphere lies beyond radius 0.5^(1/3) ≈ 0.7937
	sampler := NewRandomSampler(rand.New(rand.NewSource(7)))
	const n = 20000
	outer := 0
	for i := 0; i < n; i++ {
		if SamplePointInUnitSphere(sampler.Get3D()).Length() > 0.7937 {
			outer++
		}
	}

	fraction := float64(outer) / n
	if fraction < 0.48 || fraction > 0.52 {
		t.Errorf("Expected about half the samples in the outer shell, got %f", fraction)
	}
}

func TestSamplePointInUnitDisk(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(42)))

	for i := 0; i < 10000; i++ {
		p := SamplePointInUnitDisk(sampler.Get2D())
		if p.Z != 0 {
			t.Fatalf("Disk sample should lie in the XY plane, got %v", p)
		}
		if p.X*p.X+p.Y*p.Y > 1.0+1e-12 {
			t.Fatalf("Sample %d outside unit disk: %v", i, p)
		}
	}

	if center := SamplePointInUnitDisk(NewVec2(0.5, 0.5)); center != (Vec3{}) {
		t.Errorf("Center sample should map to origin, got %v", center)
	}
}

func TestSequenceSampler(t *testing.T) {
	s := NewSequenceSampler(0.1, 0.2, 0.3)

	if v := s.Get1D(); v != 0.1 {
		t.Errorf("Expected 0.1, got %f", v)
	}
	if v := s.Get2D(); v != NewVec2(0.2, 0.3) {
		t.Errorf("Expected (0.2,0.3), got %v", v)
	}
	if v := s.Get3D(); v != NewVec3(0.1, 0.2, 0.3) {
		t.Errorf("Expected sequence to wrap, got %v", v)
	}
	if s.Draws() != 6 {
		t.Errorf("Expected 6 draws, got %d", s.Draws())
	}
}

func TestSeededSampler_Deterministic(t *testing.T) {
	a := NewSeededSampler(99)
	b := NewSeededSampler(99)
	for i := 0; i < 100; i++ {
		if a.Get1D() != b.Get1D() {
			t.Fatal("Samplers with the same seed diverged")
		}
	}
}
