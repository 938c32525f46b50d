package material

import (
	"math"

	"github.com/juli-99/raytracing.github.io/pkg/core"
)

// Dielectric is clear glass or water: each hit either bends the ray through
// the surface or bounces it off, never both
type Dielectric struct {
	RefractiveIndex float64 // 1.0 is vacuum, about 1.5 for window glass
}

// NewDielectric creates a dielectric with the given index of refraction
func NewDielectric(refractiveIndex float64) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex}
}

// eta is the index ratio across the surface in the direction of travel
func (d *Dielectric) eta(hit HitRecord) float64 {
	if hit.FrontFace {
		return 1.0 / d.RefractiveIndex
	}
	return d.RefractiveIndex
}

// Scatter always scatters with unit attenuation. Past the critical angle the
// ray reflects without drawing; otherwise one draw against the Schlick
// reflectance picks the branch.
func (d *Dielectric) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	eta := d.eta(hit)
	in := rayIn.Direction.Normalize()

	cosI := math.Min(-in.Dot(hit.Normal), 1.0)
	sinI := math.Sqrt(1.0 - cosI*cosI)

	out := Reflect(in, hit.Normal)
	if eta*sinI <= 1.0 && Reflectance(cosI, eta) <= sampler.Get1D() {
		out = Refract(in, hit.Normal, eta)
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, out),
		Attenuation: core.NewVec3(1.0, 1.0, 1.0),
	}, true
}

func (d *Dielectric) sealed() {}

// Refract bends unit vector in through a surface with normal n. eta is the
// incident index over the transmitted index.
func Refract(in, n core.Vec3, eta float64) core.Vec3 {
	cosI := math.Min(-in.Dot(n), 1.0)
	tangent := in.Add(n.Multiply(cosI)).Multiply(eta)
	along := n.Multiply(-math.Sqrt(math.Abs(1.0 - tangent.LengthSquared())))
	return tangent.Add(along)
}

// Reflectance is Schlick's fit to the Fresnel reflection coefficient
func Reflectance(cosine, eta float64) float64 {
	r0 := (1 - eta) / (1 + eta)
	r0 *= r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
