package core

import (
	"math"
	"math/rand"
)

// RandomUnitVector returns a direction uniformly distributed on the unit sphere.
// The caller owns random; it must not be shared between goroutines.
func RandomUnitVector(random *rand.Rand) Vec3 {
	theta := 2.0 * math.Pi * random.Float64()
	z := -1.0 + 2.0*random.Float64()
	r := math.Sqrt(math.Max(0, 1.0-z*z))
	return Vec3{
		X: r * math.Cos(theta),
		Y: r * math.Sin(theta),
		Z: z,
	}
}

// RandomHemisphereDirection returns a direction uniformly distributed over the
// hemisphere around normal. A sample on the wrong side is mirrored through the
// origin rather than redrawn.
func RandomHemisphereDirection(normal Vec3, random *rand.Rand) Vec3 {
	dir := RandomUnitVector(random)
	if dir.Dot(normal) < 0 {
		dir = dir.Negate()
	}
	return dir
}
