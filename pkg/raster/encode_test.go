package raster

import (
	"bytes"
	"image/png"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-frame-tracer/pkg/core"
)

func TestChannelToByte(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{0, 0},
		{-1, 0},
		{0.5, 127},
		{1, 255},
		{7, 255},
		{math.NaN(), 0},
		{math.Inf(1), 255},
		{math.Inf(-1), 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, channelToByte(tt.in), "input %v", tt.in)
	}
}

func TestWritePPM(t *testing.T) {
	img := New(2, 2)
	img.Set(0, 0, core.NewRGB(1, 0, 0))
	img.Set(1, 0, core.NewRGB(0, 1, 0.5))
	img.Set(0, 1, core.NewRGB(2, -1, 0.25))

	var buf bytes.Buffer
	require.NoError(t, img.WritePPM(&buf))

	expected := strings.Join([]string{
		"P3",
		"2 2",
		"255",
		"255 0 0 0 255 127",
		"255 0 63 0 0 0",
		"",
	}, "\n")
	assert.Equal(t, expected, buf.String())
}

func TestToRGBA_Gamma(t *testing.T) {
	img := New(1, 1)
	img.Set(0, 0, core.NewRGB(0.25, 1, 4))

	linear := img.ToRGBA(0).RGBAAt(0, 0)
	assert.Equal(t, uint8(63), linear.R)

	corrected := img.ToRGBA(DefaultGamma).RGBAAt(0, 0)
	assert.Equal(t, uint8(127), corrected.R) // sqrt(0.25) = 0.5
	assert.Equal(t, uint8(255), corrected.G)
	assert.Equal(t, uint8(255), corrected.B)
	assert.Equal(t, uint8(255), corrected.A)
}

func TestWritePNG_RoundTripDimensions(t *testing.T) {
	img := New(5, 3)
	img.Set(4, 2, core.NewRGB(1, 1, 1))

	var buf bytes.Buffer
	require.NoError(t, img.WritePNG(&buf, DefaultGamma))

	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 5, decoded.Bounds().Dx())
	assert.Equal(t, 3, decoded.Bounds().Dy())

	r, g, b, a := decoded.At(4, 2).RGBA()
	assert.Equal(t, []uint32{0xffff, 0xffff, 0xffff, 0xffff}, []uint32{r, g, b, a})
}
