package renderer

import (
	"time"

	"github.com/df07/go-frame-tracer/pkg/raster"
)

// RenderStats contains statistics about a finished render
type RenderStats struct {
	TotalPixels      int           // Pixels in the image
	Samples          int           // Passes averaged into each pixel
	Workers          int           // Concurrency used
	Seed             int64         // Effective base seed
	Elapsed          time.Duration // Wall time including the fold
	AverageLuminance float64       // Mean luminance of the final image
}

// SampleProgress reports a finished pass
type SampleProgress struct {
	Index     int           // Which pass finished
	Completed int           // Passes finished so far, including this one
	Total     int           // Passes in the render
	Elapsed   time.Duration // Time since the render started
}

// Fraction returns the completed share of the render in [0, 1]
func (p SampleProgress) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	return float64(p.Completed) / float64(p.Total)
}

func newRenderStats(img *raster.Image, samples, workers int, seed int64, elapsed time.Duration) RenderStats {
	return RenderStats{
		TotalPixels:      img.Width() * img.Height(),
		Samples:          samples,
		Workers:          workers,
		Seed:             seed,
		Elapsed:          elapsed,
		AverageLuminance: img.AverageLuminance(),
	}
}
