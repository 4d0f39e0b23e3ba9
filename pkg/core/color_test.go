package core

import (
	"math"
	"testing"
)

func TestRGB_Arithmetic(t *testing.T) {
	a := NewRGB(0.5, 0.25, 1)
	b := NewRGB(0.5, 2, 0)

	if got := a.Multiply(b); got != NewRGB(0.25, 0.5, 0) {
		t.Errorf("Multiply: got %v", got)
	}
	if got := a.Add(b); got != NewRGB(1, 2.25, 1) {
		t.Errorf("Add: got %v", got)
	}
	if got := a.Scale(2); got != NewRGB(1, 0.5, 2) {
		t.Errorf("Scale: got %v", got)
	}
}

func TestRGB_Luminance(t *testing.T) {
	if lum := NewRGB(1, 1, 1).Luminance(); math.Abs(lum-1) > 1e-12 {
		t.Errorf("White should have luminance 1, got %f", lum)
	}
	if lum := Black.Luminance(); lum != 0 {
		t.Errorf("Black should have luminance 0, got %f", lum)
	}
}

func TestRGB_IsFinite(t *testing.T) {
	if !NewRGB(0, 1, 2).IsFinite() {
		t.Error("Expected finite color")
	}
	if NewRGB(math.NaN(), 0, 0).IsFinite() {
		t.Error("NaN channel should not be finite")
	}
	if NewRGB(0, math.Inf(1), 0).IsFinite() {
		t.Error("Inf channel should not be finite")
	}
}
