package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-frame-tracer/pkg/core"
)

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewDiffuse(NewSphere(core.NewVec3(0, 0, 0), 1.0), core.NewRGB(1, 1, 1))
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	hit, isHit := sphere.IntersectRay(ray)
	if isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.Position)
	}
}

func TestSphere_Hit(t *testing.T) {
	tests := []struct {
		name           string
		center         core.Vec3
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectHit      bool
		expectedT      float64
		expectedNormal core.Vec3
	}{
		{
			name:           "front hit",
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectHit:      true,
			expectedT:      1.0,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "non-unit direction is parametric",
			rayOrigin:      core.NewVec3(0, 0, 3),
			rayDirection:   core.NewVec3(0, 0, -2),
			expectHit:      true,
			expectedT:      1.0,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "translated sphere",
			center:         core.NewVec3(5, -1, 0),
			rayOrigin:      core.NewVec3(0, -1, 0),
			rayDirection:   core.NewVec3(1, 0, 0),
			expectHit:      true,
			expectedT:      4.0,
			expectedNormal: core.NewVec3(-1, 0, 0),
		},
		{
			name:         "origin inside is not a hit",
			rayOrigin:    core.NewVec3(0, 0, 0),
			rayDirection: core.NewVec3(0, 0, 1),
			expectHit:    false,
		},
		{
			name:         "origin inside off center",
			rayOrigin:    core.NewVec3(0.3, -0.2, 0.5),
			rayDirection: core.NewVec3(0, 0, -1),
			expectHit:    false,
		},
		{
			name:         "sphere entirely behind",
			rayOrigin:    core.NewVec3(0, 0, 3),
			rayDirection: core.NewVec3(0, 0, 1),
			expectHit:    false,
		},
		{
			name:         "origin on surface pointing inward",
			rayOrigin:    core.NewVec3(1, 0, 0),
			rayDirection: core.NewVec3(-1, 0, 0),
			expectHit:    false,
		},
		{
			name:         "origin on surface pointing outward",
			rayOrigin:    core.NewVec3(1, 0, 0),
			rayDirection: core.NewVec3(1, 0, 0),
			expectHit:    false,
		},
		{
			name:         "origin on surface tangential",
			rayOrigin:    core.NewVec3(0, 1, 0),
			rayDirection: core.NewVec3(1, 0, 0),
			expectHit:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sphere := NewDiffuse(NewSphere(tt.center, 1.0), core.NewRGB(1, 1, 1))
			hit, isHit := sphere.IntersectRay(core.NewRay(tt.rayOrigin, tt.rayDirection))

			if isHit != tt.expectHit {
				t.Fatalf("Expected hit=%t, got hit=%t (t=%f)", tt.expectHit, isHit, hit.Position)
			}
			if !tt.expectHit {
				return
			}
			if hit.Position < 0 {
				t.Errorf("Hit position must be non-negative, got %f", hit.Position)
			}
			if math.Abs(hit.Position-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.Position)
			}
			if hit.Normal.Subtract(tt.expectedNormal).Length() > 1e-9 {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
		})
	}
}

func TestSphere_Hit_GlancingHit(t *testing.T) {
	sphere := NewDiffuse(NewSphere(core.NewVec3(0, 0, 0), 1.0), core.NewRGB(1, 1, 1))
	ray := core.NewRay(core.NewVec3(1, 0, 2), core.NewVec3(0, 0, -1))

	hit, isHit := sphere.IntersectRay(ray)
	if !isHit {
		t.Fatal("Expected glancing hit, but got miss")
	}

	expectedPoint := core.NewVec3(1, 0, 0)
	if ray.At(hit.Position).Subtract(expectedPoint).Length() > 1e-9 {
		t.Errorf("Expected hit point %v, got %v", expectedPoint, ray.At(hit.Position))
	}
}

func TestSphere_Hit_OutwardRaysFromSurfaceNeverHit(t *testing.T) {
	sphere := NewDiffuse(NewSphere(core.NewVec3(0.5, -2, 3), 1.5), core.NewRGB(1, 1, 1))
	center := sphere.Shape.Centroid()

	directions := []core.Vec3{
		core.NewVec3(1, 0, 0), core.NewVec3(0, -1, 0), core.NewVec3(0, 0, 1),
		core.NewVec3(1, 1, 1).Normalize(), core.NewVec3(-0.3, 0.8, -0.2).Normalize(),
	}
	for _, d := range directions {
		onSurface := center.Add(d.Multiply(1.5))

		if hit, ok := sphere.IntersectRay(core.NewRay(onSurface, d)); ok {
			t.Errorf("Outward ray along %v should miss, got t=%f", d, hit.Position)
		}

		hit, ok := sphere.IntersectRay(core.NewRay(onSurface, d.Negate()))
		if !ok {
			t.Errorf("Inward ray along %v should hit", d.Negate())
			continue
		}
		if hit.Position < 0 {
			t.Errorf("Inward hit must be non-negative, got %f", hit.Position)
		}
	}
}

func TestSphere_Hit_Degenerate(t *testing.T) {
	zero := NewDiffuse(NewSphere(core.NewVec3(0, 0, 0), 0), core.NewRGB(1, 1, 1))
	if _, ok := zero.IntersectRay(core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))); ok {
		t.Error("Zero-radius sphere should never be hit")
	}

	unit := NewDiffuse(NewSphere(core.NewVec3(0, 0, 0), 1), core.NewRGB(1, 1, 1))
	if _, ok := unit.IntersectRay(core.NewRay(core.NewVec3(0, 0, 5), core.Vec3{})); ok {
		t.Error("Zero-length direction should never hit")
	}
}
