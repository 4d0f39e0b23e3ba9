package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func assertVecNear(t *testing.T, expected, actual Vec3) {
	t.Helper()
	const tolerance = 1e-9
	assert.InDelta(t, expected.X, actual.X, tolerance, "x")
	assert.InDelta(t, expected.Y, actual.Y, tolerance, "y")
	assert.InDelta(t, expected.Z, actual.Z, tolerance, "z")
}

func TestRotation_Rotate(t *testing.T) {
	tests := []struct {
		name     string
		rotation Rotation
		vector   Vec3
		expected Vec3
	}{
		{"identity", IdentityRotation(), NewVec3(1, 2, 3), NewVec3(1, 2, 3)},
		{"zero value acts as identity", Rotation{}, NewVec3(1, 2, 3), NewVec3(1, 2, 3)},
		{"90 degrees around Z", RotationFromAngleAxis(math.Pi/2, NewVec3(0, 0, 1)), NewVec3(1, 0, 0), NewVec3(0, 1, 0)},
		{"90 degrees around Y", RotationFromAngleAxis(math.Pi/2, NewVec3(0, 1, 0)), NewVec3(1, 0, 0), NewVec3(0, 0, -1)},
		{"90 degrees around X", RotationFromAngleAxis(math.Pi/2, NewVec3(1, 0, 0)), NewVec3(0, 1, 0), NewVec3(0, 0, 1)},
		{"180 degrees around unnormalized Y", RotationFromDegrees(180, NewVec3(0, 5, 0)), NewVec3(1, 0, 0), NewVec3(-1, 0, 0)},
		{"zero axis is identity", RotationFromDegrees(45, Vec3{}), NewVec3(1, 0, 0), NewVec3(1, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertVecNear(t, tt.expected, tt.rotation.Rotate(tt.vector))
		})
	}
}

func TestRotation_InverseUndoesRotate(t *testing.T) {
	r := RotationFromDegrees(37, NewVec3(1, 2, -0.5))
	v := NewVec3(0.3, -1.2, 4)

	assertVecNear(t, v, r.Inverse().Rotate(r.Rotate(v)))
	assertVecNear(t, v, r.Rotate(r.Inverse().Rotate(v)))
	assert.InDelta(t, v.Length(), r.Rotate(v).Length(), 1e-9, "rotation must preserve length")
}

func TestRotation_Then(t *testing.T) {
	first := RotationFromDegrees(90, NewVec3(0, 0, 1))
	second := RotationFromDegrees(90, NewVec3(1, 0, 0))

	// X -> Y (around Z) -> Z (around X)
	assertVecNear(t, NewVec3(0, 0, 1), first.Then(second).Rotate(NewVec3(1, 0, 0)))
}

func TestRotation_IsIdentity(t *testing.T) {
	assert.True(t, IdentityRotation().IsIdentity())
	assert.True(t, Rotation{}.IsIdentity())
	assert.True(t, RotationFromDegrees(360, NewVec3(0, 1, 0)).IsIdentity())
	assert.False(t, RotationFromDegrees(45, NewVec3(0, 1, 0)).IsIdentity())
}
