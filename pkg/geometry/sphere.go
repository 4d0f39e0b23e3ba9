package geometry

import (
	"math"

	"github.com/df07/go-frame-tracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Origin core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(origin core.Vec3, radius float64) *Sphere {
	return &Sphere{Origin: origin, Radius: radius}
}

// Centroid returns the sphere center
func (s *Sphere) Centroid() core.Vec3 {
	return s.Origin
}

// hitLocal intersects a ray with a sphere of this radius centered at the origin
func (s *Sphere) hitLocal(ray core.Ray) (Intersection, bool) {
	if s.Radius <= 0 {
		return Intersection{}, false
	}

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	if a == 0 {
		return Intersection{}, false
	}
	b := 2.0 * ray.Direction.Dot(ray.Origin)
	c := ray.Origin.Dot(ray.Origin) - s.Radius*s.Radius

	discriminant := b*b - 4.0*a*c
	if discriminant < 0 {
		return Intersection{}, false
	}

	sqrtD := math.Sqrt(discriminant)
	near := (-b - sqrtD) / (2.0 * a)
	far := (-b + sqrtD) / (2.0 * a)

	// A root behind the origin means the sphere is behind the ray or the
	// ray starts inside it; neither is a hit
	if near < minHitDistance || far < minHitDistance {
		return Intersection{}, false
	}
	t := near

	return Intersection{
		Position: t,
		Normal:   ray.At(t).Multiply(1.0 / s.Radius),
	}, true
}
