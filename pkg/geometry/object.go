package geometry

import "github.com/df07/go-frame-tracer/pkg/core"

// Object is a shape with a flat material and an orientation.
// Objects are values; copies share nothing mutable.
type Object struct {
	Shape    Shape
	Emits    bool          // Light source: Color is returned as radiance
	Color    core.RGB      // Emitted radiance, or per-channel diffuse reflectance
	Rotation core.Rotation // Local-to-world orientation about the shape centroid
}

// NewDiffuse creates a diffuse reflector
func NewDiffuse(shape Shape, color core.RGB) Object {
	return Object{Shape: shape, Color: color, Rotation: core.IdentityRotation()}
}

// NewEmitter creates a light source
func NewEmitter(shape Shape, color core.RGB) Object {
	return Object{Shape: shape, Emits: true, Color: color, Rotation: core.IdentityRotation()}
}

// WithRotation returns a copy of the object with the given orientation
func (o Object) WithRotation(rotation core.Rotation) Object {
	o.Rotation = rotation
	return o
}

// LocalRay expresses a world-space ray in the object's local frame: centered
// on the shape centroid and with the object's rotation undone
func (o Object) LocalRay(ray core.Ray) core.Ray {
	inverse := o.Rotation.Inverse()
	return core.Ray{
		Origin:    inverse.Rotate(ray.Origin.Subtract(o.Shape.Centroid())),
		Direction: inverse.Rotate(ray.Direction),
	}
}

// ToWorld maps a local-frame direction to world space
func (o Object) ToWorld(direction core.Vec3) core.Vec3 {
	return o.Rotation.Rotate(direction)
}

// IntersectLocal tests a ray already in the object's local frame; the
// returned normal is in local space
func (o Object) IntersectLocal(local core.Ray) (Intersection, bool) {
	return o.Shape.hitLocal(local)
}

// IntersectRay tests a world-space ray; the returned normal is in world space.
// Position is the same parameter t along the world ray.
func (o Object) IntersectRay(ray core.Ray) (Intersection, bool) {
	hit, ok := o.IntersectLocal(o.LocalRay(ray))
	if !ok {
		return Intersection{}, false
	}
	hit.Normal = o.ToWorld(hit.Normal)
	return hit, true
}
