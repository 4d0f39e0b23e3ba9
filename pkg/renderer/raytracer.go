package renderer

import (
	"context"
	"math/rand"

	"github.com/df07/go-frame-tracer/pkg/geometry"
	"github.com/df07/go-frame-tracer/pkg/integrator"
	"github.com/df07/go-frame-tracer/pkg/raster"
	"github.com/df07/go-frame-tracer/pkg/scene"
)

// RenderPass renders one full frame with a single jittered sample per pixel.
// It runs on the calling goroutine and draws every random number from random.
func RenderPass(camera *geometry.Camera, s scene.Scene, tracer integrator.Integrator, width, height int, random *rand.Rand) *raster.Image {
	img, _ := renderPass(context.Background(), camera, s, tracer, width, height, random)
	return img
}

// renderPass checks ctx between rows so a cancelled render stops promptly
func renderPass(ctx context.Context, camera *geometry.Camera, s scene.Scene, tracer integrator.Integrator, width, height int, random *rand.Rand) (*raster.Image, error) {
	img := raster.New(width, height)
	w, h := float64(width), float64(height)

	for y := 0; y < height; y++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for x := 0; x < width; x++ {
			// Jitter within the pixel footprint
			u := (float64(x) + random.Float64()) / w
			v := (float64(y) + random.Float64()) / h

			img.Set(x, y, tracer.RayColor(camera.Ray(u, v), s, random))
		}
	}

	return img, nil
}
