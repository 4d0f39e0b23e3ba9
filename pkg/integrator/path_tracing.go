package integrator

import (
	"math/rand"

	"github.com/df07/go-frame-tracer/pkg/core"
	"github.com/df07/go-frame-tracer/pkg/geometry"
	"github.com/df07/go-frame-tracer/pkg/scene"
)

const (
	// DefaultMaxDepth bounds the number of segments per path
	DefaultMaxDepth = 50

	// bounceBias pulls a bounce origin back along the incoming ray so the
	// next segment does not re-hit the surface it leaves
	bounceBias = 0.01
)

// Outcome records why a path stopped
type Outcome int

const (
	OutcomeEscaped    Outcome = iota // Missed all geometry
	OutcomeEmitter                   // Reached a light source
	OutcomeAbsorbed                  // Throughput fell to exactly zero
	OutcomeDepthLimit                // Hit the bounce bound
)

func (o Outcome) String() string {
	switch o {
	case OutcomeEscaped:
		return "escaped"
	case OutcomeEmitter:
		return "emitter"
	case OutcomeAbsorbed:
		return "absorbed"
	case OutcomeDepthLimit:
		return "depth-limit"
	default:
		return "unknown"
	}
}

// PathResult is the radiance carried by one path and how it ended
type PathResult struct {
	Color   core.RGB
	Bounces int
	Outcome Outcome
}

// PathTracer is a unidirectional path tracer with ideal diffuse surfaces and
// uniform hemisphere bounces
type PathTracer struct {
	MaxDepth int // Segments per path before returning black; <= 0 is unbounded
}

// NewPathTracer creates a path tracer with the given depth bound
func NewPathTracer(maxDepth int) *PathTracer {
	return &PathTracer{MaxDepth: maxDepth}
}

// RayColor implements Integrator
func (pt *PathTracer) RayColor(ray core.Ray, s scene.Scene, random *rand.Rand) core.RGB {
	return pt.TraceRay(s, ray, random)
}

// TraceRay estimates the radiance arriving along ray
func (pt *PathTracer) TraceRay(s scene.Scene, ray core.Ray, random *rand.Rand) core.RGB {
	return pt.TracePath(s, ray, random).Color
}

// TracePath follows a single path through the scene. Each diffuse bounce
// multiplies the running throughput by the surface color; the path ends at an
// emitter (returning throughput times its color), on escape (black) or at
// MaxDepth (black).
func (pt *PathTracer) TracePath(s scene.Scene, ray core.Ray, random *rand.Rand) PathResult {
	throughput := core.NewRGB(1, 1, 1)

	for depth := 0; pt.MaxDepth <= 0 || depth < pt.MaxDepth; depth++ {
		_, obj, hit, ok := nearestHit(s.IntersectionCandidates(ray), ray)
		if !ok {
			return PathResult{Color: core.Black, Bounces: depth, Outcome: OutcomeEscaped}
		}

		if obj.Emits {
			return PathResult{Color: throughput.Multiply(obj.Color), Bounces: depth, Outcome: OutcomeEmitter}
		}

		throughput = throughput.Multiply(obj.Color)
		if throughput.IsBlack() {
			return PathResult{Color: core.Black, Bounces: depth, Outcome: OutcomeAbsorbed}
		}

		// hit.Normal is in the object's local frame
		bounce := core.RandomHemisphereDirection(hit.Normal, random)
		ray = core.NewRay(ray.At(hit.Position-bounceBias), obj.ToWorld(bounce))
	}

	return PathResult{Color: core.Black, Bounces: pt.MaxDepth, Outcome: OutcomeDepthLimit}
}

// nearestHit returns the candidate with the smallest non-negative hit
// position and its index. Equal positions keep the earlier candidate. The
// returned normal is in the hit object's local frame.
func nearestHit(candidates []geometry.Object, ray core.Ray) (int, geometry.Object, geometry.Intersection, bool) {
	var (
		bestIndex = -1
		best      geometry.Object
		bestHit   geometry.Intersection
	)

	for i, obj := range candidates {
		hit, ok := obj.IntersectLocal(obj.LocalRay(ray))
		if !ok || hit.Position < 0 {
			continue
		}
		if bestIndex < 0 || hit.Position < bestHit.Position {
			bestIndex, best, bestHit = i, obj, hit
		}
	}

	return bestIndex, best, bestHit, bestIndex >= 0
}

// SurfaceHit describes the first surface along a ray
type SurfaceHit struct {
	Index    int             // Position among the scene's candidates for the ray
	Object   geometry.Object // The object that was hit
	Position float64         // Ray parameter of the hit
	Point    core.Vec3       // World-space hit point
	Normal   core.Vec3       // World-space outward normal
}

// FirstHit finds the surface a path would interact with first
func FirstHit(s scene.Scene, ray core.Ray) (SurfaceHit, bool) {
	index, obj, _, ok := nearestHit(s.IntersectionCandidates(ray), ray)
	if !ok {
		return SurfaceHit{}, false
	}
	hit, _ := obj.IntersectRay(ray)
	return SurfaceHit{
		Index:    index,
		Object:   obj,
		Position: hit.Position,
		Point:    ray.At(hit.Position),
		Normal:   hit.Normal,
	}, true
}
