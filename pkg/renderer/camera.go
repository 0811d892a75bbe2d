package renderer

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-normal-raytracer/pkg/core"
)

var (
	ErrInvalidWidth          = errors.New("image width must be at least 1")
	ErrInvalidAspectRatio    = errors.New("aspect ratio must be positive")
	ErrInvalidFocalLength    = errors.New("focal length must be positive")
	ErrInvalidViewportHeight = errors.New("viewport height must be positive")
	ErrImageTooLarge         = errors.New("image exceeds pixel limit")
)

// MaxPixels caps width * height so a render buffer can always be allocated
const MaxPixels = 1 << 26

// CameraConfig contains the fixed, axis-aligned camera parameters
type CameraConfig struct {
	AspectRatio    float64   // Requested width / height ratio
	Width          int       // Image width in pixels
	FocalLength    float64   // Distance from camera center to viewport plane
	ViewportHeight float64   // Viewport height in world units
	Center         core.Vec3 // Camera center; the camera looks down -Z
}

// DefaultCameraConfig returns the standard 16:9 camera at the origin
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		AspectRatio:    16.0 / 9.0,
		Width:          400,
		FocalLength:    1.0,
		ViewportHeight: 2.0,
		Center:         core.NewVec3(0, 0, 0),
	}
}

// Validate checks that the config can produce a non-degenerate viewport
func (c CameraConfig) Validate() error {
	if c.Width < 1 {
		return fmt.Errorf("%w, got %d", ErrInvalidWidth, c.Width)
	}
	if !(c.AspectRatio > 0) {
		return fmt.Errorf("%w, got %g", ErrInvalidAspectRatio, c.AspectRatio)
	}
	if !(c.FocalLength > 0) {
		return fmt.Errorf("%w, got %g", ErrInvalidFocalLength, c.FocalLength)
	}
	if !(c.ViewportHeight > 0) {
		return fmt.Errorf("%w, got %g", ErrInvalidViewportHeight, c.ViewportHeight)
	}

	// Checked in floating point so a tiny aspect ratio cannot overflow the int conversion
	height := max(1, math.Floor(float64(c.Width)/c.AspectRatio))
	if pixels := float64(c.Width) * height; pixels > MaxPixels {
		return fmt.Errorf("%w of %d: %d x %.0f", ErrImageTooLarge, MaxPixels, c.Width, height)
	}
	return nil
}

// ImageHeight returns the pixel height implied by width and aspect ratio, at least 1.
// Only meaningful for a config that passes Validate.
func (c CameraConfig) ImageHeight() int {
	return max(1, int(float64(c.Width)/c.AspectRatio))
}

// Camera generates one ray per pixel center
type Camera struct {
	config       CameraConfig
	width        int
	height       int
	center       core.Vec3
	pixel00Loc   core.Vec3 // Center of pixel (0, 0)
	pixelDeltaU  core.Vec3 // Offset to the pixel on the right
	pixelDeltaV  core.Vec3 // Offset to the pixel below
	viewportSize [2]float64
}

// NewCamera derives the viewport geometry once from the config
func NewCamera(config CameraConfig) *Camera {
	width := config.Width
	height := config.ImageHeight()

	// Use the actual pixel ratio, which can differ from the requested one after rounding
	viewportHeight := config.ViewportHeight
	viewportWidth := viewportHeight * float64(width) / float64(height)

	// Viewport v points down so pixel rows grow downward
	viewportU := core.NewVec3(viewportWidth, 0, 0)
	viewportV := core.NewVec3(0, -viewportHeight, 0)

	pixelDeltaU := viewportU.Divide(float64(width))
	pixelDeltaV := viewportV.Divide(float64(height))

	viewportUpperLeft := config.Center.
		Subtract(core.NewVec3(0, 0, config.FocalLength)).
		Subtract(viewportU.Divide(2)).
		Subtract(viewportV.Divide(2))
	pixel00Loc := viewportUpperLeft.Add(pixelDeltaU.Add(pixelDeltaV).Multiply(0.5))

	return &Camera{
		config:       config,
		width:        width,
		height:       height,
		center:       config.Center,
		pixel00Loc:   pixel00Loc,
		pixelDeltaU:  pixelDeltaU,
		pixelDeltaV:  pixelDeltaV,
		viewportSize: [2]float64{viewportWidth, viewportHeight},
	}
}

// GetRay returns the ray from the camera center through the center of pixel (x, y)
func (c *Camera) GetRay(x, y int) core.Ray {
	pixelCenter := c.pixel00Loc.
		Add(c.pixelDeltaU.Multiply(float64(x))).
		Add(c.pixelDeltaV.Multiply(float64(y)))
	return core.NewRay(c.center, pixelCenter.Subtract(c.center))
}

// Width returns the image width in pixels
func (c *Camera) Width() int { return c.width }

// Height returns the image height in pixels
func (c *Camera) Height() int { return c.height }

// Center returns the camera center
func (c *Camera) Center() core.Vec3 { return c.center }

// Pixel00 returns the world-space center of the top-left pixel
func (c *Camera) Pixel00() core.Vec3 { return c.pixel00Loc }

// PixelDeltas returns the horizontal and vertical per-pixel offsets
func (c *Camera) PixelDeltas() (u, v core.Vec3) { return c.pixelDeltaU, c.pixelDeltaV }

// ViewportSize returns the viewport width and height in world units
func (c *Camera) ViewportSize() (width, height float64) {
	return c.viewportSize[0], c.viewportSize[1]
}

// Config returns the config the camera was built from
func (c *Camera) Config() CameraConfig { return c.config }

// MergeCameraConfig returns base with every non-zero field of override applied
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.FocalLength != 0 {
		result.FocalLength = override.FocalLength
	}
	if override.ViewportHeight != 0 {
		result.ViewportHeight = override.ViewportHeight
	}
	if override.Center != (core.Vec3{}) {
		result.Center = override.Center
	}
	return result
}
