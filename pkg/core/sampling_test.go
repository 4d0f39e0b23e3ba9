package core

import (
	"math"
	"math/rand"
	"testing"
)

func TestRandomUnitVector_UnitLengthAndUniform(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	const n = 20000

	var sum Vec3
	var upper int
	for i := 0; i < n; i++ {
		v := RandomUnitVector(random)
		if math.Abs(v.Length()-1) > 1e-9 {
			t.Fatalf("Sample %d not unit length: %v (len %f)", i, v, v.Length())
		}
		sum = sum.Add(v)
		if v.Y > 0 {
			upper++
		}
	}

	// Uniform on the sphere: mean is near the origin
	mean := sum.Multiply(1.0 / n)
	if mean.Length() > 0.03 {
		t.Errorf("Mean direction too far from origin: %v", mean)
	}

	// Half the samples land in any hemisphere
	fraction := float64(upper) / n
	if math.Abs(fraction-0.5) > 0.02 {
		t.Errorf("Expected ~50%% of samples with y > 0, got %.3f", fraction)
	}
}

func TestRandomHemisphereDirection(t *testing.T) {
	random := rand.New(rand.NewSource(7))
	normal := NewVec3(1, 1, 0).Normalize()

	var cosSum float64
	const n = 20000
	for i := 0; i < n; i++ {
		d := RandomHemisphereDirection(normal, random)
		cos := d.Dot(normal)
		if cos < 0 {
			t.Fatalf("Sample %d below hemisphere: %v", i, d)
		}
		cosSum += cos
	}

	// Uniform hemisphere sampling has E[cos] = 1/2 (cosine-weighted would be 2/3)
	if mean := cosSum / n; math.Abs(mean-0.5) > 0.02 {
		t.Errorf("Expected mean cosine ~0.5, got %f", mean)
	}
}

func TestRandomUnitVector_Deterministic(t *testing.T) {
	a := rand.New(rand.NewSource(99))
	b := rand.New(rand.NewSource(99))
	for i := 0; i < 10; i++ {
		if RandomUnitVector(a) != RandomUnitVector(b) {
			t.Fatal("Same seed must produce the same directions")
		}
	}
}
