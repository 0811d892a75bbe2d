package core

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// HitRecord contains information about a ray-surface intersection
type HitRecord struct {
	Point     Vec3    // Intersection point
	Normal    Vec3    // Unit normal, always facing against the incoming ray
	T         float64 // Ray parameter at the intersection
	FrontFace bool    // True if the ray origin is outside the surface
}

// SetFaceNormal orients the normal against the ray direction.
// outwardNormal must have unit length.
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// Shape interface for objects that can be hit by rays.
// A hit is only reported when tMin < t < tMax.
type Shape interface {
	Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool)
}
