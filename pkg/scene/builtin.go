package scene

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-frame-tracer/pkg/core"
	"github.com/df07/go-frame-tracer/pkg/geometry"
)

// ErrUnknownScene is returned for a scene name that is neither built in nor a
// scene file
var ErrUnknownScene = errors.New("unknown scene")

type builtinScene struct {
	info   SceneInfo
	create func() *Description
}

var builtinScenes = map[string]builtinScene{
	"default": {
		info: SceneInfo{
			ID:          "default",
			DisplayName: "Default",
			Type:        TypeBuiltin,
			Description: "Sky light over a floor with a red ball and a rotated teal box",
		},
		create: NewDefaultScene,
	},
	"area-light": {
		info: SceneInfo{
			ID:          "area-light",
			DisplayName: "Area Light",
			Type:        TypeBuiltin,
			Description: "Large emissive panel behind a small diffuse box",
		},
		create: NewAreaLightScene,
	},
	"empty": {
		info: SceneInfo{
			ID:          "empty",
			DisplayName: "Empty",
			Type:        TypeBuiltin,
			Description: "No geometry; every ray escapes to black",
		},
		create: NewEmptyScene,
	},
}

// ListScenes returns the built-in scenes sorted by ID
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for _, s := range builtinScenes {
		scenes = append(scenes, s.info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// Create returns a built-in scene by name, or loads a YAML scene file when
// name ends in .yaml or .yml
func Create(name string) (*Description, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".yaml", ".yml":
		return LoadFile(name)
	}

	s, ok := builtinScenes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return s.create(), nil
}

// NewDefaultScene creates the reference scene: an emissive sky slab above a
// floor slab, a red ball and a teal box turned 45 degrees around Y
func NewDefaultScene() *Description {
	sky := geometry.NewEmitter(
		geometry.NewAABB(core.NewVec3(-10, 6, -10), core.NewVec3(10, 6.1, 0)),
		core.NewRGB(1, 1, 1),
	)
	floor := geometry.NewDiffuse(
		geometry.NewAABB(core.NewVec3(-10, -0.1, -10), core.NewVec3(10, 0, 0)),
		core.NewRGB(0.6, 0.6, 0.6),
	)
	ball := geometry.NewDiffuse(
		geometry.NewSphere(core.NewVec3(-2, 1, -4), 1),
		core.NewRGB(0.8, 0.3, 0.3),
	)
	box := geometry.NewDiffuse(
		geometry.NewAABB(core.NewVec3(1, 0, -7), core.NewVec3(2, 1, -6)),
		core.NewRGB(0.3, 0.8, 0.8),
	).WithRotation(core.RotationFromDegrees(45, core.NewVec3(0, 1, 0)))

	return &Description{
		Name:   "default",
		Camera: geometry.NewCamera(1.57, 1.33, core.NewVec3(0, 2, 0), core.NewVec3(0, 0, -5)),
		Scene:  NewLinearScene(sky, floor, ball, box),
		Sampling: SamplingConfig{
			Width:    800,
			Height:   600,
			Samples:  150,
			MaxDepth: 50,
		},
	}
}

// NewAreaLightScene creates a large emissive panel with a small diffuse box
// in front of it, seen head-on
func NewAreaLightScene() *Description {
	panel := geometry.NewEmitter(
		geometry.NewAABB(core.NewVec3(-4, -4, -10.1), core.NewVec3(4, 4, -10)),
		core.NewRGB(1, 1, 1),
	)
	box := geometry.NewDiffuse(
		geometry.NewAABB(core.NewVec3(-0.5, -0.5, -5.5), core.NewVec3(0.5, 0.5, -4.5)),
		core.NewRGB(0.7, 0.7, 0.7),
	)

	return &Description{
		Name:   "area-light",
		Camera: geometry.NewCamera(1.2, 1, core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -5)),
		Scene:  NewLinearScene(panel, box),
		Sampling: SamplingConfig{
			Width:    200,
			Height:   200,
			Samples:  32,
			MaxDepth: 50,
		},
	}
}

// NewEmptyScene creates a scene without geometry
func NewEmptyScene() *Description {
	return &Description{
		Name:   "empty",
		Camera: geometry.NewCamera(1.57, 1, core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)),
		Scene:  NewLinearScene(),
		Sampling: SamplingConfig{
			Width:    64,
			Height:   64,
			Samples:  1,
			MaxDepth: 50,
		},
	}
}
