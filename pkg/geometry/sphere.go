package geometry

import (
	"math"

	"github.com/df07/go-normal-raytracer/pkg/core"
)

// Sphere represents a sphere shape. Radius is assumed positive.
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) *Sphere {
	return &Sphere{
		Center: center,
		Radius: radius,
	}
}

// Hit tests if a ray intersects with the sphere within the open interval (tMin, tMax)
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + 2·halfB·t + c = 0
	a := ray.Direction.LengthSquared()
	halfB := ray.Direction.Dot(oc)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if !surrounds(root, tMin, tMax) {
		root = (-halfB + sqrtD) / a
		if !surrounds(root, tMin, tMax) {
			return nil, false
		}
	}

	hitRecord := &core.HitRecord{
		T:     root,
		Point: ray.At(root),
	}

	outwardNormal := hitRecord.Point.Subtract(s.Center).Divide(s.Radius)
	hitRecord.SetFaceNormal(ray, outwardNormal)

	return hitRecord, true
}

// surrounds reports whether t lies strictly inside (tMin, tMax)
func surrounds(t, tMin, tMax float64) bool {
	return tMin < t && t < tMax
}
