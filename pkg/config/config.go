// Package config loads render settings from YAML files. Zero values in the
// render section defer to the scene's own recommendations.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/df07/go-frame-tracer/pkg/logging"
	"github.com/df07/go-frame-tracer/pkg/raster"
	"github.com/df07/go-frame-tracer/pkg/renderer"
	"github.com/df07/go-frame-tracer/pkg/scene"
)

// ErrInvalidConfig is returned by Validate and Load for unusable settings
var ErrInvalidConfig = errors.New("invalid config")

// Output formats
const (
	FormatPNG = "png"
	FormatPPM = "ppm"
)

// Config is the top-level settings file shared by the CLI and the web server
type Config struct {
	Render RenderConfig `yaml:"render"`
	Output OutputConfig `yaml:"output"`
	Log    LogConfig    `yaml:"log"`
	Server ServerConfig `yaml:"server"`
}

// RenderConfig selects the scene and overrides its recommended render settings
type RenderConfig struct {
	Scene    string `yaml:"scene"`     // Built-in scene name or YAML scene path
	Width    int    `yaml:"width"`     // 0 = scene default
	Height   int    `yaml:"height"`    // 0 = scene default
	Samples  int    `yaml:"samples"`   // 0 = scene default
	MaxDepth int    `yaml:"max_depth"` // 0 = scene default
	Workers  int    `yaml:"workers"`   // 0 = CPU count
	Seed     int64  `yaml:"seed"`      // 0 = time based
}

// OutputConfig controls where and how the CLI writes the finished image
type OutputConfig struct {
	Dir    string  `yaml:"dir"`
	Format string  `yaml:"format"`
	Gamma  float64 `yaml:"gamma"` // PNG only
}

// LogConfig sets the zap log level
type LogConfig struct {
	Level string `yaml:"level"`
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port int `yaml:"port"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Render: RenderConfig{Scene: "default"},
		Output: OutputConfig{Dir: "output", Format: FormatPNG, Gamma: raster.DefaultGamma},
		Log:    LogConfig{Level: logging.DefaultLevel},
		Server: ServerConfig{Port: 8080},
	}
}

// Load reads a YAML file over the defaults and validates the result
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads YAML over the defaults. Unknown keys are rejected.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings that cannot be used
func (c Config) Validate() error {
	r := c.Render
	switch {
	case r.Width < 0 || r.Height < 0:
		return fmt.Errorf("%w: negative image size %dx%d", ErrInvalidConfig, r.Width, r.Height)
	case r.Samples < 0:
		return fmt.Errorf("%w: negative samples %d", ErrInvalidConfig, r.Samples)
	case r.MaxDepth < 0:
		return fmt.Errorf("%w: negative max_depth %d", ErrInvalidConfig, r.MaxDepth)
	case r.Workers < 0:
		return fmt.Errorf("%w: negative workers %d", ErrInvalidConfig, r.Workers)
	}

	if c.Output.Format != FormatPNG && c.Output.Format != FormatPPM {
		return fmt.Errorf("%w: unknown output format %q", ErrInvalidConfig, c.Output.Format)
	}
	if !(c.Output.Gamma > 0) {
		return fmt.Errorf("%w: gamma must be positive, got %v", ErrInvalidConfig, c.Output.Gamma)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Server.Port)
	}
	return nil
}

// RendererConfig merges the render section with a scene's recommended
// sampling settings
func (c Config) RendererConfig(sampling scene.SamplingConfig) renderer.Config {
	cfg := renderer.Config{
		Width:      pick(c.Render.Width, sampling.Width),
		Height:     pick(c.Render.Height, sampling.Height),
		Samples:    pick(c.Render.Samples, sampling.Samples),
		MaxDepth:   pick(c.Render.MaxDepth, sampling.MaxDepth),
		NumWorkers: c.Render.Workers,
		Seed:       c.Render.Seed,
	}

	defaults := renderer.DefaultConfig()
	cfg.Width = pick(cfg.Width, defaults.Width)
	cfg.Height = pick(cfg.Height, defaults.Height)
	cfg.Samples = pick(cfg.Samples, defaults.Samples)
	cfg.MaxDepth = pick(cfg.MaxDepth, defaults.MaxDepth)
	return cfg
}

func pick(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}
