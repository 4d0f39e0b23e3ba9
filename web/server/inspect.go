package server

import (
	"fmt"
	"net/http"

	"github.com/df07/go-frame-tracer/pkg/core"
	"github.com/df07/go-frame-tracer/pkg/geometry"
	"github.com/df07/go-frame-tracer/pkg/integrator"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool       `json:"hit"`
	ObjectIndex  int        `json:"objectIndex"`
	GeometryType string     `json:"geometryType"`
	Emits        bool       `json:"emits"`
	Color        [3]float64 `json:"color"`
	Point        [3]float64 `json:"point"`
	Normal       [3]float64 `json:"normal"`
	Distance     float64    `json:"distance"`
	Rotated      bool       `json:"rotated"`
}

// handleInspect casts the unjittered ray through the center of a pixel and
// reports the first object it hits
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	sceneName := query.Get("scene")
	if sceneName == "" {
		sceneName = s.config.Render.Scene
	}

	desc, err := createScene(sceneName)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	width, err := parseIntParam(query, "width", desc.Sampling.Width, 1, 2000)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	height, err := parseIntParam(query, "height", desc.Sampling.Height, 1, 2000)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	x, err := parseIntParam(query, "x", -1, 0, width-1)
	if err == nil && x < 0 {
		err = fmt.Errorf("x is required")
	}
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	y, err := parseIntParam(query, "y", -1, 0, height-1)
	if err == nil && y < 0 {
		err = fmt.Errorf("y is required")
	}
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	ray := desc.Camera.Ray((float64(x)+0.5)/float64(width), (float64(y)+0.5)/float64(height))
	hit, ok := integrator.FirstHit(desc.Scene, ray)
	if !ok {
		s.writeJSON(w, http.StatusOK, InspectResponse{Hit: false, ObjectIndex: -1})
		return
	}

	s.writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		ObjectIndex:  hit.Index,
		GeometryType: geometryType(hit.Object.Shape),
		Emits:        hit.Object.Emits,
		Color:        [3]float64{hit.Object.Color.R, hit.Object.Color.G, hit.Object.Color.B},
		Point:        toArray(hit.Point),
		Normal:       toArray(hit.Normal),
		Distance:     hit.Position,
		Rotated:      !hit.Object.Rotation.IsIdentity(),
	})
}

func geometryType(shape geometry.Shape) string {
	switch shape.(type) {
	case *geometry.Sphere:
		return "sphere"
	case *geometry.AABB:
		return "box"
	default:
		return "unknown"
	}
}

func toArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}
