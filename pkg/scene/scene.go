package scene

import (
	"github.com/df07/go-frame-tracer/pkg/core"
	"github.com/df07/go-frame-tracer/pkg/geometry"
)

// Scene provides the objects a ray must be tested against. Implementations
// may prune, but must never omit an object the ray could hit. The returned
// slice is a copy owned by the caller.
type Scene interface {
	IntersectionCandidates(ray core.Ray) []geometry.Object
}

// LinearScene returns every object for every ray. It is built once before
// rendering and must not be modified while a render is running.
type LinearScene struct {
	objects []geometry.Object
}

// NewLinearScene creates a scene holding the given objects in order
func NewLinearScene(objects ...geometry.Object) *LinearScene {
	s := &LinearScene{}
	for _, obj := range objects {
		s.Add(obj)
	}
	return s
}

// Add appends an object. Scene order is the tie-break order for equal hits.
func (s *LinearScene) Add(obj geometry.Object) {
	s.objects = append(s.objects, obj)
}

// Len returns the number of objects
func (s *LinearScene) Len() int {
	return len(s.objects)
}

// Objects returns a copy of the objects in scene order
func (s *LinearScene) Objects() []geometry.Object {
	out := make([]geometry.Object, len(s.objects))
	copy(out, s.objects)
	return out
}

// IntersectionCandidates returns all objects regardless of the ray
func (s *LinearScene) IntersectionCandidates(_ core.Ray) []geometry.Object {
	return s.Objects()
}

// SamplingConfig holds a scene's recommended render settings
type SamplingConfig struct {
	Width    int // Image width
	Height   int // Image height
	Samples  int // Independent full-frame passes to average
	MaxDepth int // Maximum bounce depth (0 = unbounded)
}

// Description is a ready-to-render scene: objects, camera and the settings
// it was composed for
type Description struct {
	Name     string
	Camera   *geometry.Camera
	Scene    *LinearScene
	Sampling SamplingConfig
}
