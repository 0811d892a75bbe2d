package renderer

import (
	"context"
	"math"
	"time"

	"github.com/df07/go-normal-raytracer/pkg/core"
	"github.com/df07/go-normal-raytracer/pkg/geometry"
)

var (
	White   = core.NewVec3(1.0, 1.0, 1.0)
	SkyBlue = core.NewVec3(0.5, 0.7, 1.0)
)

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *Camera
	GetSphere() *geometry.Sphere
}

// Raytracer resolves one color per pixel for a single-sphere scene
type Raytracer struct {
	camera   *Camera
	sphere   *geometry.Sphere
	progress ProgressReporter
	logger   core.Logger
}

// NewRaytracer creates a new raytracer for the given scene
func NewRaytracer(scene Scene, logger core.Logger) *Raytracer {
	return &Raytracer{
		camera: scene.GetCamera(),
		sphere: scene.GetSphere(),
		logger: logger,
	}
}

// SetProgressReporter installs a per-scanline progress callback; nil disables reporting
func (rt *Raytracer) SetProgressReporter(progress ProgressReporter) {
	rt.progress = progress
}

// Width returns the image width in pixels
func (rt *Raytracer) Width() int { return rt.camera.Width() }

// Height returns the image height in pixels
func (rt *Raytracer) Height() int { return rt.camera.Height() }

// RayColor resolves the color seen along a ray
func (rt *Raytracer) RayColor(r core.Ray) core.Vec3 {
	color, _ := rt.rayColor(r)
	return color
}

func (rt *Raytracer) rayColor(r core.Ray) (core.Vec3, bool) {
	hit, isHit := rt.sphere.Hit(r, 0, math.Inf(1))
	if !isHit {
		return BackgroundGradient(r), false
	}
	return NormalColor(hit.Point.Subtract(rt.sphere.Center).UnitVector()), true
}

// NormalColor maps a unit normal from [-1,1] to [0,1] per component
func NormalColor(normal core.Vec3) core.Vec3 {
	return core.NewVec3(normal.X+1, normal.Y+1, normal.Z+1).Multiply(0.5)
}

// BackgroundGradient returns a white to sky-blue vertical gradient based on ray direction
func BackgroundGradient(r core.Ray) core.Vec3 {
	unitDirection := r.Direction.UnitVector()

	// Map y from [-1,1] to [0,1]: 0 at the bottom of the view, 1 at the top
	a := 0.5 * (unitDirection.Y + 1.0)

	return White.Multiply(1.0 - a).Add(SkyBlue.Multiply(a))
}

// RenderPass evaluates every pixel in row-major order, rows top to bottom.
// The context is checked between scanlines.
func (rt *Raytracer) RenderPass(ctx context.Context) ([]core.Vec3, RenderStats, error) {
	width, height := rt.camera.Width(), rt.camera.Height()
	pixels := make([]core.Vec3, 0, width*height)
	stats := RenderStats{TotalPixels: width * height}

	startTime := time.Now()
	if rt.logger != nil {
		rt.logger.Printf("Rendering %dx%d image\n", width, height)
	}

	for y := 0; y < height; y++ {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}
		if rt.progress != nil {
			rt.progress.ScanlineDone(height - y)
		}

		for x := 0; x < width; x++ {
			color, hit := rt.rayColor(rt.camera.GetRay(x, y))
			stats.record(hit)
			pixels = append(pixels, color)
		}
	}

	if rt.progress != nil {
		rt.progress.Done()
	}

	stats.Duration = time.Since(startTime)
	if rt.logger != nil {
		rt.logger.Printf("Render completed in %v (%d hits, %d misses)\n", stats.Duration, stats.Hits, stats.Misses)
	}

	return pixels, stats, nil
}

// TestPattern produces the red/green ramp image with no scene: red grows left
// to right, green grows top to bottom.
func TestPattern(width, height int) []core.Vec3 {
	pixels := make([]core.Vec3, 0, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			pixels = append(pixels, core.NewVec3(ramp(x, width), ramp(y, height), 0))
		}
	}
	return pixels
}

func ramp(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(i) / float64(n-1)
}
