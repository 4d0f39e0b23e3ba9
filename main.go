package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/df07/go-frame-tracer/pkg/config"
	"github.com/df07/go-frame-tracer/pkg/logging"
	"github.com/df07/go-frame-tracer/pkg/raster"
	"github.com/df07/go-frame-tracer/pkg/renderer"
	"github.com/df07/go-frame-tracer/pkg/scene"
)

// options holds the command line flags
type options struct {
	configPath string
	sceneName  string
	width      int
	height     int
	samples    int
	maxDepth   int
	workers    int
	seed       int64
	format     string
	output     string
	logLevel   string
	help       bool
}

func parseFlags(args []string, stderr io.Writer) (*options, *flag.FlagSet, error) {
	opts := &options{}
	fs := flag.NewFlagSet("frame-tracer", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.configPath, "config", "", "YAML config file")
	fs.StringVar(&opts.sceneName, "scene", "default", "Built-in scene name or path to a .yaml scene file")
	fs.IntVar(&opts.width, "width", 0, "Image width (0 = scene default)")
	fs.IntVar(&opts.height, "height", 0, "Image height (0 = scene default)")
	fs.IntVar(&opts.samples, "samples", 0, "Full-frame samples to average (0 = scene default)")
	fs.IntVar(&opts.maxDepth, "max-depth", 0, "Maximum path length (0 = scene default)")
	fs.IntVar(&opts.workers, "workers", 0, "Concurrent samples (0 = CPU count)")
	fs.Int64Var(&opts.seed, "seed", 0, "Base random seed (0 = time based)")
	fs.StringVar(&opts.format, "format", config.FormatPNG, "Output format: png or ppm")
	fs.StringVar(&opts.output, "output", "output", "Output directory")
	fs.StringVar(&opts.logLevel, "log-level", logging.DefaultLevel, "Log level: debug, info, warn, error")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return opts, fs, nil
}

// loadConfig reads the config file, if any, then applies flags that were set
// explicitly on the command line
func loadConfig(opts *options, fs *flag.FlagSet) (config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scene":
			cfg.Render.Scene = opts.sceneName
		case "width":
			cfg.Render.Width = opts.width
		case "height":
			cfg.Render.Height = opts.height
		case "samples":
			cfg.Render.Samples = opts.samples
		case "max-depth":
			cfg.Render.MaxDepth = opts.maxDepth
		case "workers":
			cfg.Render.Workers = opts.workers
		case "seed":
			cfg.Render.Seed = opts.seed
		case "format":
			cfg.Output.Format = opts.format
		case "output":
			cfg.Output.Dir = opts.output
		case "log-level":
			cfg.Log.Level = opts.logLevel
		}
	})

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func printHelp(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Frame Tracer")
	fmt.Fprintln(w, "Usage: frame-tracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	scenes, err := scene.ListAllScenes("scenes")
	if err != nil {
		scenes = scene.ListScenes()
	}
	for _, info := range scenes {
		fmt.Fprintf(w, "  %-24s %s\n", info.ID, info.Description)
	}
	fmt.Fprintln(w, "  <file>.yaml              Any other scene description file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output will be saved to output/<scene>/render_<timestamp>.<format>")
}

// outputPath returns output/<scene>/render_<timestamp>.<format>
func outputPath(dir, sceneName, format string, now time.Time) string {
	timestamp := now.Format("20060102_150405")
	return filepath.Join(dir, sceneName, fmt.Sprintf("render_%s.%s", timestamp, format))
}

func writeImage(path string, img *raster.Image, format string, gamma float64) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output file: %w", cerr)
		}
	}()

	switch format {
	case config.FormatPPM:
		return img.WritePPM(file)
	default:
		return img.WritePNG(file, gamma)
	}
}

// run renders one scene and returns the path of the written image. A nil
// logger is built from the configured level.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, logger *zap.Logger) (string, error) {
	opts, fs, err := parseFlags(args, stderr)
	if err != nil {
		return "", err
	}
	if opts.help {
		printHelp(stdout, fs)
		return "", nil
	}

	cfg, err := loadConfig(opts, fs)
	if err != nil {
		return "", err
	}

	if logger == nil {
		logger, err = logging.NewWriter(cfg.Log.Level, stderr)
		if err != nil {
			return "", err
		}
		defer func() { _ = logger.Sync() }()
	}

	desc, err := scene.Create(cfg.Render.Scene)
	if err != nil {
		return "", err
	}

	renderID := uuid.NewString()
	logger = logger.With(zap.String("render_id", renderID), zap.String("scene", desc.Name))
	logger.Debug("scene loaded", zap.Int("objects", desc.Scene.Len()))

	r, err := renderer.NewRenderer(desc.Camera, desc.Scene, cfg.RendererConfig(desc.Sampling), logger)
	if err != nil {
		return "", err
	}

	img, stats, err := r.Render(ctx)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", desc.Name, err)
	}

	path := outputPath(cfg.Output.Dir, desc.Name, cfg.Output.Format, time.Now())
	if err := writeImage(path, img, cfg.Output.Format, cfg.Output.Gamma); err != nil {
		return "", err
	}

	logger.Info("render saved",
		zap.String("path", path),
		zap.Int("samples", stats.Samples),
		zap.Duration("elapsed", stats.Elapsed),
	)
	fmt.Fprintf(stdout, "Render saved as %s\n", path)
	return path, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if _, err := run(ctx, os.Args[1:], os.Stdout, os.Stderr, nil); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
