package integrator

import (
	"math/rand"

	"github.com/df07/go-frame-tracer/pkg/core"
	"github.com/df07/go-frame-tracer/pkg/scene"
)

// Integrator defines the interface for light transport algorithms.
// Implementations must be safe for concurrent use as long as each goroutine
// passes its own random source.
type Integrator interface {
	// RayColor estimates the radiance arriving along ray
	RayColor(ray core.Ray, s scene.Scene, random *rand.Rand) core.RGB
}
