package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-normal-raytracer/pkg/core"
)

var _ core.Shape = (*Sphere)(nil)

func vecNear(a, b core.Vec3, tolerance float64) bool {
	return math.Abs(a.X-b.X) <= tolerance &&
		math.Abs(a.Y-b.Y) <= tolerance &&
		math.Abs(a.Z-b.Z) <= tolerance
}

func TestSphere_Hit_FromOrigin(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -1), 0.5)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	hit, isHit := sphere.Hit(ray, 0, math.Inf(1))
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}

	if math.Abs(hit.T-0.5) > 1e-9 {
		t.Errorf("Expected t=0.5, got t=%f", hit.T)
	}
	if !vecNear(hit.Point, core.NewVec3(0, 0, -0.5), 1e-9) {
		t.Errorf("Expected hit point (0,0,-0.5), got %v", hit.Point)
	}
	if !vecNear(hit.Normal, core.NewVec3(0, 0, 1), 1e-9) {
		t.Errorf("Expected normal (0,0,1), got %v", hit.Normal)
	}
	if !hit.FrontFace {
		t.Error("Expected front face hit")
	}
}

func TestSphere_Hit_PointingAway(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -1), 0.5)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))

	hit, isHit := sphere.Hit(ray, 0, math.Inf(1))
	if isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
	if hit != nil {
		t.Error("Expected nil hit record on miss")
	}
}

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	hit, isHit := sphere.Hit(ray, 0.001, 1000.0)
	if isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_FrontAndBackFace(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float64
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{
			name:           "front face hit",
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "back face hit",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedFront:  false,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
		{
			name:           "unnormalized direction",
			rayOrigin:      core.NewVec3(0, 0, 3),
			rayDirection:   core.NewVec3(0, 0, -4),
			expectedT:      0.5,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			hit, isHit := sphere.Hit(ray, 0.001, 1000.0)

			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}

			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}

			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, hit.FrontFace)
			}

			if !vecNear(hit.Normal, tt.expectedNormal, 1e-9) {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}

			// Normal always opposes the incoming ray
			if ray.Direction.Dot(hit.Normal) >= 0 {
				t.Errorf("Normal %v does not oppose ray direction %v", hit.Normal, ray.Direction)
			}

			if math.Abs(hit.Normal.Length()-1) > 1e-9 {
				t.Errorf("Expected unit normal, got length %f", hit.Normal.Length())
			}
		})
	}
}

func TestSphere_Hit_Tangent(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)
	ray := core.NewRay(core.NewVec3(1, 0, 2), core.NewVec3(0, 0, -1))

	hit, isHit := sphere.Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected tangent hit, but got miss")
	}

	if !vecNear(hit.Point, core.NewVec3(1, 0, 0), 1e-9) {
		t.Errorf("Expected hit point (1,0,0), got %v", hit.Point)
	}
	if math.Abs(hit.T-2) > 1e-9 {
		t.Errorf("Expected t=2, got t=%f", hit.T)
	}
}

func TestSphere_Hit_OpenInterval(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	tests := []struct {
		name      string
		tMin      float64
		tMax      float64
		expectHit bool
		expectedT float64
	}{
		{"both roots inside", 0, 10, true, 1},
		{"tMax excludes both", 0.001, 0.5, false, 0},
		{"tMin excludes both", 3.5, 1000, false, 0},
		{"near root equals tMax", 0, 1, false, 0},
		{"near root equals tMin falls back to far root", 1, 10, true, 3},
		{"far root equals tMax", 1, 3, false, 0},
		{"only far root in window", 2, 4, true, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := sphere.Hit(ray, tt.tMin, tt.tMax)
			if isHit != tt.expectHit {
				t.Fatalf("Expected hit=%t, got %t", tt.expectHit, isHit)
			}
			if isHit && math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
		})
	}
}

func TestSphere_Hit_ClosestIntersection(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	hit, isHit := sphere.Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}

	if math.Abs(hit.T-1.0) > 1e-9 {
		t.Errorf("Expected closest intersection at t=1, got t=%f", hit.T)
	}

	if !hit.FrontFace {
		t.Error("Expected closest intersection to be front face")
	}
}
