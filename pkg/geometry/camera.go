package geometry

import (
	"math"

	"github.com/df07/go-frame-tracer/pkg/core"
)

var worldUp = core.NewVec3(0, 1, 0)

// Camera is a pinhole camera that maps normalized image-plane coordinates to
// world-space rays. It is immutable after construction and safe to share
// between goroutines.
type Camera struct {
	origin     core.Vec3
	forward    core.Vec3
	horizontal core.Vec3
	vertical   core.Vec3
}

// NewCamera creates a camera at origin looking at lookAt. fov is the
// horizontal field of view in radians for a level camera; aspect is
// width/height. The image axes are not normalized, so tilting the camera
// up or down narrows the view by the cosine of the elevation.
func NewCamera(fov, aspect float64, origin, lookAt core.Vec3) *Camera {
	forward := lookAt.Subtract(origin).Normalize()

	horizontal := forward.Cross(worldUp)
	if horizontal.LengthSquared() < 1e-12 {
		// Looking straight up or down: any perpendicular axis will do
		horizontal = forward.Cross(core.NewVec3(0, 0, 1))
	}
	vertical := forward.Cross(horizontal)

	halfWidth := math.Tan(0.5 * fov)
	return &Camera{
		origin:     origin,
		forward:    forward,
		horizontal: horizontal.Multiply(halfWidth),
		vertical:   vertical.Multiply(halfWidth / aspect),
	}
}

// Ray returns the normalized ray through image-plane coordinates (x, y),
// where (0,0) is the top-left corner and (1,1) the bottom-right
func (c *Camera) Ray(x, y float64) core.Ray {
	direction := c.forward.
		Add(c.horizontal.Multiply(2*x - 1)).
		Add(c.vertical.Multiply(2*y - 1))
	return core.NewRay(c.origin, direction.Normalize())
}
