package raster

import (
	"errors"
	"fmt"

	"github.com/df07/go-frame-tracer/pkg/core"
)

// ErrDimensionMismatch is returned when two images of different sizes are combined
var ErrDimensionMismatch = errors.New("image dimensions do not match")

// Image is a row-major grid of linear, unclamped colors. A new image is black.
type Image struct {
	width  int
	height int
	pixels []core.RGB
}

// New creates a black image. Negative dimensions are treated as zero.
func New(width, height int) *Image {
	width = max(width, 0)
	height = max(height, 0)
	return &Image{
		width:  width,
		height: height,
		pixels: make([]core.RGB, width*height),
	}
}

// Width returns the image width in pixels
func (img *Image) Width() int { return img.width }

// Height returns the image height in pixels
func (img *Image) Height() int { return img.height }

func (img *Image) index(x, y int) int {
	if x < 0 || x >= img.width || y < 0 || y >= img.height {
		panic(fmt.Sprintf("raster: pixel (%d, %d) out of bounds %dx%d", x, y, img.width, img.height))
	}
	return y*img.width + x
}

// Set stores the color of pixel (x, y); (0, 0) is the top-left corner
func (img *Image) Set(x, y int, c core.RGB) {
	img.pixels[img.index(x, y)] = c
}

// At returns the color of pixel (x, y)
func (img *Image) At(x, y int) core.RGB {
	return img.pixels[img.index(x, y)]
}

// EachCoordinate visits every pixel, x outer and y inner, until fn returns false
func (img *Image) EachCoordinate(fn func(x, y int) bool) {
	for x := 0; x < img.width; x++ {
		for y := 0; y < img.height; y++ {
			if !fn(x, y) {
				return
			}
		}
	}
}

// BlendInto folds img into acc as one more sample of a running mean. acc is
// assumed to already hold the mean of count samples; afterwards it holds the
// mean of count+1. With count == 0 acc becomes a copy of img.
func (img *Image) BlendInto(acc *Image, count int) error {
	if acc.width != img.width || acc.height != img.height {
		return fmt.Errorf("blend %dx%d into %dx%d: %w", img.width, img.height, acc.width, acc.height, ErrDimensionMismatch)
	}

	n := float64(count)
	inv := 1 / (n + 1)
	for i, sample := range img.pixels {
		acc.pixels[i] = acc.pixels[i].Scale(n).Add(sample).Scale(inv)
	}
	return nil
}

// AverageLuminance returns the mean Rec. 709 luminance over all pixels
func (img *Image) AverageLuminance() float64 {
	if len(img.pixels) == 0 {
		return 0
	}
	total := 0.0
	for _, c := range img.pixels {
		total += c.Luminance()
	}
	return total / float64(len(img.pixels))
}
