package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Rotation is a unit quaternion orientation. The zero value acts as the
// identity.
type Rotation struct {
	q mgl64.Quat
}

// IdentityRotation returns the rotation that leaves vectors unchanged
func IdentityRotation() Rotation {
	return Rotation{q: mgl64.QuatIdent()}
}

// RotationFromAngleAxis returns a rotation of angle radians around axis.
// A zero axis yields the identity.
func RotationFromAngleAxis(angle float64, axis Vec3) Rotation {
	if axis.LengthSquared() == 0 {
		return IdentityRotation()
	}
	a := axis.Normalize()
	return Rotation{q: mgl64.QuatRotate(angle, mgl64.Vec3{a.X, a.Y, a.Z}).Normalize()}
}

// RotationFromDegrees is RotationFromAngleAxis with the angle in degrees
func RotationFromDegrees(degrees float64, axis Vec3) Rotation {
	return RotationFromAngleAxis(mgl64.DegToRad(degrees), axis)
}

// Rotate applies the rotation to v
func (r Rotation) Rotate(v Vec3) Vec3 {
	if r.isZero() {
		return v
	}
	out := r.q.Rotate(mgl64.Vec3{v.X, v.Y, v.Z})
	return Vec3{out[0], out[1], out[2]}
}

// Inverse returns the rotation that undoes r
func (r Rotation) Inverse() Rotation {
	if r.isZero() {
		return IdentityRotation()
	}
	return Rotation{q: r.q.Inverse()}
}

// Then returns the rotation equivalent to applying r followed by next
func (r Rotation) Then(next Rotation) Rotation {
	if r.isZero() {
		return next
	}
	if next.isZero() {
		return r
	}
	return Rotation{q: next.q.Mul(r.q).Normalize()}
}

// IsIdentity reports whether the rotation leaves vectors unchanged
func (r Rotation) IsIdentity() bool {
	if r.isZero() {
		return true
	}
	// q and -q encode the same rotation
	return math.Abs(math.Abs(r.q.W)-1) < 1e-12
}

func (r Rotation) isZero() bool {
	return r.q.W == 0 && r.q.V == (mgl64.Vec3{})
}
