package core

// RGB is an unclamped linear color. All arithmetic is component-wise.
type RGB struct {
	R, G, B float64
}

// Black is the zero color, returned for rays that escape the scene
var Black = RGB{}

// NewRGB creates a new color
func NewRGB(r, g, b float64) RGB {
	return RGB{R: r, G: g, B: b}
}

// Add returns the component-wise sum of two colors
func (c RGB) Add(other RGB) RGB {
	return RGB{c.R + other.R, c.G + other.G, c.B + other.B}
}

// Multiply returns the component-wise product of two colors
func (c RGB) Multiply(other RGB) RGB {
	return RGB{c.R * other.R, c.G * other.G, c.B * other.B}
}

// Scale returns the color scaled by a scalar
func (c RGB) Scale(s float64) RGB {
	return RGB{c.R * s, c.G * s, c.B * s}
}

// Luminance returns the perceptual luminance of the color
// using Rec. 709 weights.
func (c RGB) Luminance() float64 {
	return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
}

// IsBlack reports whether every channel is exactly zero
func (c RGB) IsBlack() bool {
	return c.R == 0 && c.G == 0 && c.B == 0
}

// IsFinite reports whether no channel is NaN or infinite
func (c RGB) IsFinite() bool {
	return isFinite(c.R) && isFinite(c.G) && isFinite(c.B)
}
