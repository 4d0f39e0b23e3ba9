package renderer

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/df07/go-frame-tracer/pkg/geometry"
	"github.com/df07/go-frame-tracer/pkg/integrator"
	"github.com/df07/go-frame-tracer/pkg/raster"
	"github.com/df07/go-frame-tracer/pkg/scene"
)

// ErrInvalidConfig is returned for render settings that cannot produce an image
var ErrInvalidConfig = errors.New("invalid render config")

// Config contains configuration for a multi-sample render
type Config struct {
	Width      int   // Image width in pixels
	Height     int   // Image height in pixels
	Samples    int   // Independent full-frame passes to average
	MaxDepth   int   // Maximum path length (<= 0 = unbounded)
	NumWorkers int   // Concurrent passes (0 = use CPU count)
	Seed       int64 // Base seed for per-sample generators (0 = time based)

	// OnSample is called from worker goroutines as each pass finishes.
	// It must be safe for concurrent use.
	OnSample func(SampleProgress)
}

// DefaultConfig returns the settings of the reference render
func DefaultConfig() Config {
	return Config{
		Width:    800,
		Height:   600,
		Samples:  150,
		MaxDepth: integrator.DefaultMaxDepth,
	}
}

// Validate reports settings that cannot produce an image
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: image size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.Samples <= 0:
		return fmt.Errorf("%w: samples must be positive, got %d", ErrInvalidConfig, c.Samples)
	case c.NumWorkers < 0:
		return fmt.Errorf("%w: negative worker count %d", ErrInvalidConfig, c.NumWorkers)
	}
	return nil
}

// Renderer averages independent full-frame passes of a scene
type Renderer struct {
	camera *geometry.Camera
	scene  scene.Scene
	tracer integrator.Integrator
	config Config
	pool   *WorkerPool
	logger *zap.Logger
}

// NewRenderer creates a renderer that traces paths with a PathTracer bounded
// by config.MaxDepth. A nil logger disables logging.
func NewRenderer(camera *geometry.Camera, s scene.Scene, config Config, logger *zap.Logger) (*Renderer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if camera == nil || s == nil {
		return nil, fmt.Errorf("%w: camera and scene are required", ErrInvalidConfig)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Renderer{
		camera: camera,
		scene:  s,
		tracer: integrator.NewPathTracer(config.MaxDepth),
		config: config,
		pool:   NewWorkerPool(config.NumWorkers),
		logger: logger,
	}, nil
}

// NumWorkers returns the number of concurrent passes
func (r *Renderer) NumWorkers() int {
	return r.pool.NumWorkers()
}

// RenderPass renders a single pass using the renderer's scene and camera
func (r *Renderer) RenderPass(random *rand.Rand) *raster.Image {
	return RenderPass(r.camera, r.scene, r.tracer, r.config.Width, r.config.Height, random)
}

// Render runs Samples passes concurrently and returns their mean. Each pass
// gets its own generator seeded from the base seed and its index, and passes
// are folded in index order after all of them finish, so a fixed non-zero
// seed gives the same image for any worker count.
//
// If ctx is cancelled, passes that have not started are skipped and Render
// returns ctx.Err() without an image.
func (r *Renderer) Render(ctx context.Context) (*raster.Image, RenderStats, error) {
	cfg := r.config
	start := time.Now()

	baseSeed := cfg.Seed
	if baseSeed == 0 {
		baseSeed = start.UnixNano()
	}

	r.logger.Info("render started",
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Int("samples", cfg.Samples),
		zap.Int("max_depth", cfg.MaxDepth),
		zap.Int("workers", r.pool.NumWorkers()),
		zap.Int64("seed", baseSeed),
	)

	tasks := make([]SampleTask, cfg.Samples)
	for i := range tasks {
		tasks[i] = SampleTask{Index: i, Seed: sampleSeed(baseSeed, i)}
	}

	var completed atomic.Int64
	passes, err := r.pool.Run(ctx, tasks, func(ctx context.Context, task SampleTask) (*raster.Image, error) {
		random := rand.New(rand.NewSource(task.Seed))
		img, err := renderPass(ctx, r.camera, r.scene, r.tracer, cfg.Width, cfg.Height, random)
		if err != nil {
			return nil, err
		}

		done := int(completed.Add(1))
		r.logger.Debug("frame completed", zap.Int("sample", task.Index), zap.Int("completed", done))
		if cfg.OnSample != nil {
			cfg.OnSample(SampleProgress{
				Index:     task.Index,
				Completed: done,
				Total:     cfg.Samples,
				Elapsed:   time.Since(start),
			})
		}
		return img, nil
	})
	if err != nil {
		r.logger.Warn("render aborted", zap.Error(err), zap.Int64("completed", completed.Load()))
		return nil, RenderStats{}, err
	}

	// Fold sequentially in submission order
	acc := raster.New(cfg.Width, cfg.Height)
	for i, pass := range passes {
		if err := pass.BlendInto(acc, i); err != nil {
			return nil, RenderStats{}, fmt.Errorf("fold sample %d: %w", i, err)
		}
	}

	stats := newRenderStats(acc, cfg.Samples, r.pool.NumWorkers(), baseSeed, time.Since(start))
	r.logger.Info("render finished",
		zap.Duration("elapsed", stats.Elapsed),
		zap.Float64("average_luminance", stats.AverageLuminance),
	)

	return acc, stats, nil
}

// Render renders samples passes of a scene with default depth and workers.
// The image size is width x height.
func Render(ctx context.Context, camera *geometry.Camera, s scene.Scene, width, height, samples int) (*raster.Image, error) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height, cfg.Samples = width, height, samples

	r, err := NewRenderer(camera, s, cfg, nil)
	if err != nil {
		return nil, err
	}
	img, _, err := r.Render(ctx)
	return img, err
}
