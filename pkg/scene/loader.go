package scene

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/df07/go-frame-tracer/pkg/core"
	"github.com/df07/go-frame-tracer/pkg/geometry"
)

// ErrInvalidDescription is returned when a scene file parses but cannot be built
var ErrInvalidDescription = errors.New("invalid scene description")

// File is the YAML form of a scene
type File struct {
	Name    string       `yaml:"name"`
	Camera  CameraFile   `yaml:"camera"`
	Render  RenderFile   `yaml:"render"`
	Objects []ObjectFile `yaml:"objects"`
}

// CameraFile configures the pinhole camera. Exactly one of FOV (radians) or
// FOVDegrees is used; FOV wins when both are set.
type CameraFile struct {
	FOV        float64    `yaml:"fov"`
	FOVDegrees float64    `yaml:"fov_degrees"`
	Aspect     float64    `yaml:"aspect"`
	Origin     [3]float64 `yaml:"origin"`
	LookAt     [3]float64 `yaml:"look_at"`
}

// RenderFile holds the scene's recommended render settings
type RenderFile struct {
	Width    int `yaml:"width"`
	Height   int `yaml:"height"`
	Samples  int `yaml:"samples"`
	MaxDepth int `yaml:"max_depth"`
}

// ObjectFile is one object: exactly one of Sphere or Box must be set
type ObjectFile struct {
	Sphere   *SphereFile    `yaml:"sphere,omitempty"`
	Box      *BoxFile       `yaml:"box,omitempty"`
	Color    [3]float64     `yaml:"color"`
	Emits    bool           `yaml:"emits"`
	Rotation []RotationFile `yaml:"rotation,omitempty"`
}

// SphereFile is a sphere given by its center and radius
type SphereFile struct {
	Origin [3]float64 `yaml:"origin"`
	Radius float64    `yaml:"radius"`
}

// BoxFile is a box given by two opposite corners in world space
type BoxFile struct {
	Min [3]float64 `yaml:"min"`
	Max [3]float64 `yaml:"max"`
}

// RotationFile is an angle in degrees around an axis. Several rotations are
// applied in list order.
type RotationFile struct {
	Degrees float64    `yaml:"degrees"`
	Axis    [3]float64 `yaml:"axis"`
}

var defaultSampling = SamplingConfig{
	Width:    400,
	Height:   300,
	Samples:  64,
	MaxDepth: 50,
}

// LoadFile reads and builds a YAML scene file
func LoadFile(path string) (*Description, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene file: %w", err)
	}
	defer f.Close()

	desc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	if desc.Name == "" {
		desc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return desc, nil
}

// Decode parses a YAML scene from r and builds it. Unknown keys are errors.
func Decode(r io.Reader) (*Description, error) {
	var file File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	return file.Build()
}

// Build validates the file and constructs the scene
func (f *File) Build() (*Description, error) {
	sampling := f.Render.sampling()

	camera, err := f.Camera.build(sampling)
	if err != nil {
		return nil, err
	}

	s := NewLinearScene()
	for i, o := range f.Objects {
		obj, err := o.build()
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		s.Add(obj)
	}

	return &Description{
		Name:     f.Name,
		Camera:   camera,
		Scene:    s,
		Sampling: sampling,
	}, nil
}

func (r RenderFile) sampling() SamplingConfig {
	s := defaultSampling
	if r.Width > 0 {
		s.Width = r.Width
	}
	if r.Height > 0 {
		s.Height = r.Height
	}
	if r.Samples > 0 {
		s.Samples = r.Samples
	}
	if r.MaxDepth > 0 {
		s.MaxDepth = r.MaxDepth
	}
	return s
}

func (c CameraFile) build(sampling SamplingConfig) (*geometry.Camera, error) {
	fov := c.FOV
	if fov == 0 {
		fov = c.FOVDegrees * math.Pi / 180
	}
	if fov <= 0 || fov >= math.Pi {
		return nil, fmt.Errorf("%w: camera fov must be in (0, pi) radians", ErrInvalidDescription)
	}

	aspect := c.Aspect
	if aspect == 0 {
		aspect = float64(sampling.Width) / float64(sampling.Height)
	}
	if aspect <= 0 {
		return nil, fmt.Errorf("%w: camera aspect must be positive", ErrInvalidDescription)
	}

	origin, lookAt := vec(c.Origin), vec(c.LookAt)
	if origin == lookAt {
		return nil, fmt.Errorf("%w: camera origin and look_at coincide", ErrInvalidDescription)
	}
	return geometry.NewCamera(fov, aspect, origin, lookAt), nil
}

func (o ObjectFile) build() (geometry.Object, error) {
	var shape geometry.Shape
	switch {
	case o.Sphere != nil && o.Box != nil:
		return geometry.Object{}, fmt.Errorf("%w: object has both sphere and box", ErrInvalidDescription)
	case o.Sphere != nil:
		if o.Sphere.Radius <= 0 {
			return geometry.Object{}, fmt.Errorf("%w: sphere radius must be positive", ErrInvalidDescription)
		}
		shape = geometry.NewSphere(vec(o.Sphere.Origin), o.Sphere.Radius)
	case o.Box != nil:
		shape = geometry.NewAABB(vec(o.Box.Min), vec(o.Box.Max))
	default:
		return geometry.Object{}, fmt.Errorf("%w: object needs a sphere or box", ErrInvalidDescription)
	}

	color := core.NewRGB(o.Color[0], o.Color[1], o.Color[2])
	if !color.IsFinite() || color.R < 0 || color.G < 0 || color.B < 0 {
		return geometry.Object{}, fmt.Errorf("%w: color must be finite and non-negative", ErrInvalidDescription)
	}

	obj := geometry.NewDiffuse(shape, color)
	if o.Emits {
		obj = geometry.NewEmitter(shape, color)
	}

	rotation := core.IdentityRotation()
	for _, r := range o.Rotation {
		rotation = rotation.Then(core.RotationFromDegrees(r.Degrees, vec(r.Axis)))
	}
	return obj.WithRotation(rotation), nil
}

func vec(v [3]float64) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}
