package raster

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"strconv"
)

// DefaultGamma is the display gamma applied when converting to 8-bit RGBA
const DefaultGamma = 2.0

// channelToByte scales a linear channel to [0, 255], truncating toward zero.
// NaN maps to 0.
func channelToByte(v float64) uint8 {
	scaled := v * 255
	if !(scaled > 0) {
		return 0
	}
	if scaled >= 255 {
		return 255
	}
	return uint8(scaled)
}

// WritePPM writes the image as an ASCII P3 pixmap with maxval 255. Pixels are
// written row by row from the top; values are linear (no gamma) and clamped.
func (img *Image) WritePPM(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", img.width, img.height); err != nil {
		return fmt.Errorf("write ppm header: %w", err)
	}

	buf := make([]byte, 0, 16)
	for y := 0; y < img.height; y++ {
		for x := 0; x < img.width; x++ {
			c := img.pixels[y*img.width+x]
			for i, v := range [3]float64{c.R, c.G, c.B} {
				if x > 0 || i > 0 {
					buf = append(buf, ' ')
				}
				buf = strconv.AppendUint(buf, uint64(channelToByte(v)), 10)
				if _, err := bw.Write(buf); err != nil {
					return fmt.Errorf("write ppm pixel: %w", err)
				}
				buf = buf[:0]
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("write ppm row: %w", err)
		}
	}

	return bw.Flush()
}

// ToRGBA converts to an 8-bit image, applying 1/gamma correction before
// clamping. A gamma <= 0 leaves values linear.
func (img *Image) ToRGBA(gamma float64) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.width, img.height))
	exponent := 1.0
	if gamma > 0 {
		exponent = 1 / gamma
	}

	correct := func(v float64) float64 {
		if v <= 0 || exponent == 1 {
			return v
		}
		return math.Pow(v, exponent)
	}

	img.EachCoordinate(func(x, y int) bool {
		c := img.At(x, y)
		out.SetRGBA(x, y, color.RGBA{
			R: channelToByte(correct(c.R)),
			G: channelToByte(correct(c.G)),
			B: channelToByte(correct(c.B)),
			A: 255,
		})
		return true
	})
	return out
}

// WritePNG encodes the gamma-corrected image as PNG
func (img *Image) WritePNG(w io.Writer, gamma float64) error {
	if err := png.Encode(w, img.ToRGBA(gamma)); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
