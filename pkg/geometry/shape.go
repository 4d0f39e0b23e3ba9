package geometry

import "github.com/df07/go-frame-tracer/pkg/core"

// minHitDistance rejects roots at (or numerically indistinguishable from)
// the ray origin, so a ray leaving a surface does not report that surface.
const minHitDistance = 1e-7

// Intersection describes where a ray meets a shape
type Intersection struct {
	Position float64   // Parameter t along the ray
	Normal   core.Vec3 // Outward unit normal
}

// Shape is the closed set of analytic primitives: *Sphere and *AABB.
// Shapes are immutable once constructed.
type Shape interface {
	// Centroid is the point the object-local frame is centered on
	Centroid() core.Vec3
	// hitLocal tests a ray already expressed in the shape's local,
	// origin-centered, axis-aligned frame
	hitLocal(ray core.Ray) (Intersection, bool)
}
