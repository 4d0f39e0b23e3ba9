package geometry

import (
	"math"

	"github.com/df07/go-frame-tracer/pkg/core"
)

// parallelEpsilon is the direction magnitude below which a ray is treated as
// parallel to a slab, giving that axis an infinite extent.
const parallelEpsilon = 1e-12

// AABB is a box given by absolute min and max corners. When the owning object
// is rotated, the box rotates about its centroid.
type AABB struct {
	Min core.Vec3
	Max core.Vec3
}

// NewAABB creates a new box from two corners, in any order
func NewAABB(a, b core.Vec3) *AABB {
	return &AABB{
		Min: core.NewVec3(math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z)),
		Max: core.NewVec3(math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z)),
	}
}

// Centroid returns the center of the box
func (b *AABB) Centroid() core.Vec3 {
	return b.Min.Add(b.Max).Multiply(0.5)
}

// HalfExtents returns half the box size along each axis
func (b *AABB) HalfExtents() core.Vec3 {
	return b.Max.Subtract(b.Min).Multiply(0.5)
}

// hitLocal intersects a ray with the box translated to be centered at the
// origin, using the slab method
func (b *AABB) hitLocal(ray core.Ray) (Intersection, bool) {
	if ray.Direction.LengthSquared() == 0 {
		return Intersection{}, false
	}

	half := b.HalfExtents()
	invDirection := core.NewVec3(1, 1, 1).DivideVec(ray.Direction)
	entry := half.Negate().Subtract(ray.Origin).MultiplyVec(invDirection)
	exit := half.Subtract(ray.Origin).MultiplyVec(invDirection)

	tMin := math.Inf(-1)
	tMax := math.Inf(1)
	for axis := 0; axis < 3; axis++ {
		if math.Abs(ray.Direction.Component(axis)) < parallelEpsilon {
			// Parallel to this slab: the slab never bounds t
			extent := half.Component(axis)
			if origin := ray.Origin.Component(axis); origin < -extent || origin > extent {
				return Intersection{}, false
			}
			continue
		}

		t1, t2 := entry.Component(axis), exit.Component(axis)
		tMin = math.Max(tMin, math.Min(t1, t2))
		tMax = math.Min(tMax, math.Max(t1, t2))
	}

	if tMax < math.Max(0, tMin) {
		return Intersection{}, false
	}

	// From inside the box the entry lies behind the origin
	t := tMin
	if t < minHitDistance {
		return Intersection{}, false
	}

	return Intersection{
		Position: t,
		Normal:   faceNormal(ray.At(t), half),
	}, true
}

var faceNormals = [6]core.Vec3{
	{X: -1}, {Y: -1}, {Z: -1},
	{X: 1}, {Y: 1}, {Z: 1},
}

// faceNormal returns the outward normal of the face nearest to p.
// Faces are checked -X, -Y, -Z, +X, +Y, +Z; on ties the first wins.
func faceNormal(p, half core.Vec3) core.Vec3 {
	best := 0
	bestDeviation := math.Inf(1)
	for i, n := range faceNormals {
		axis := i % 3
		// Signed face coordinate: -extent for min faces, +extent for max faces
		face := half.Component(axis) * n.Component(axis)
		deviation := math.Abs(p.Component(axis) - face)
		if deviation < bestDeviation {
			best = i
			bestDeviation = deviation
		}
	}
	return faceNormals[best]
}
