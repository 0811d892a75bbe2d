package scene

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/df07/go-normal-raytracer/pkg/core"
	"github.com/df07/go-normal-raytracer/pkg/geometry"
	"github.com/df07/go-normal-raytracer/pkg/renderer"
)

// ErrInvalidRadius is returned when a scene file gives a non-positive sphere radius
var ErrInvalidRadius = errors.New("sphere radius must be positive")

// Config is the YAML form of a scene. Omitted fields keep their defaults.
//
//	camera:
//	  aspect_ratio: 1.7777
//	  width: 400
//	  focal_length: 1.0
//	  viewport_height: 2.0
//	  center: [0, 0, 0]
//	sphere:
//	  center: [0, 0, -1]
//	  radius: 0.5
type Config struct {
	Camera CameraFile `yaml:"camera"`
	Sphere SphereFile `yaml:"sphere"`
}

// CameraFile holds the optional camera fields of a scene file
type CameraFile struct {
	AspectRatio    float64 `yaml:"aspect_ratio"`
	Width          int     `yaml:"width"`
	FocalLength    float64 `yaml:"focal_length"`
	ViewportHeight float64 `yaml:"viewport_height"`
	Center         *Vec3   `yaml:"center"`
}

// SphereFile holds the optional sphere fields of a scene file
type SphereFile struct {
	Center *Vec3    `yaml:"center"`
	Radius *float64 `yaml:"radius"`
}

// Vec3 decodes a three-element YAML sequence
type Vec3 core.Vec3

// UnmarshalYAML implements yaml.Unmarshaler
func (v *Vec3) UnmarshalYAML(value *yaml.Node) error {
	var components []float64
	if err := value.Decode(&components); err != nil {
		return fmt.Errorf("line %d: vector must be a list of numbers: %w", value.Line, err)
	}
	if len(components) != 3 {
		return fmt.Errorf("line %d: vector must have 3 components, got %d", value.Line, len(components))
	}
	*v = Vec3{X: components[0], Y: components[1], Z: components[2]}
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (v Vec3) MarshalYAML() (interface{}, error) {
	return []float64{v.X, v.Y, v.Z}, nil
}

// ParseConfig decodes a YAML scene description
func ParseConfig(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse scene config: %w", err)
	}
	return cfg, nil
}

// LoadConfig reads and decodes a YAML scene file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene config: %w", err)
	}
	return ParseConfig(data)
}

// CameraConfig returns the camera fields as an override for renderer.MergeCameraConfig
func (c *Config) CameraConfig() renderer.CameraConfig {
	override := renderer.CameraConfig{
		AspectRatio:    c.Camera.AspectRatio,
		Width:          c.Camera.Width,
		FocalLength:    c.Camera.FocalLength,
		ViewportHeight: c.Camera.ViewportHeight,
	}
	if c.Camera.Center != nil {
		override.Center = core.Vec3(*c.Camera.Center)
	}
	return override
}

// Build merges the file over the defaults, applies overrides, and validates the result
func (c *Config) Build(cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	cameraConfig := renderer.MergeCameraConfig(renderer.DefaultCameraConfig(), c.CameraConfig())
	for _, override := range cameraOverrides {
		cameraConfig = renderer.MergeCameraConfig(cameraConfig, override)
	}

	sphere := DefaultSphere()
	if c.Sphere.Center != nil {
		sphere.Center = core.Vec3(*c.Sphere.Center)
	}
	if c.Sphere.Radius != nil {
		if !(*c.Sphere.Radius > 0) {
			return nil, fmt.Errorf("%w, got %g", ErrInvalidRadius, *c.Sphere.Radius)
		}
		sphere.Radius = *c.Sphere.Radius
	}

	return NewScene(cameraConfig, sphere)
}

// DescribeConfig returns the effective configuration of a scene in file form
func DescribeConfig(s *Scene) *Config {
	cameraConfig := s.Camera.Config()
	center := Vec3(cameraConfig.Center)
	sphereCenter := Vec3(s.Sphere.Center)
	radius := s.Sphere.Radius
	return &Config{
		Camera: CameraFile{
			AspectRatio:    cameraConfig.AspectRatio,
			Width:          cameraConfig.Width,
			FocalLength:    cameraConfig.FocalLength,
			ViewportHeight: cameraConfig.ViewportHeight,
			Center:         &center,
		},
		Sphere: SphereFile{
			Center: &sphereCenter,
			Radius: &radius,
		},
	}
}

var _ renderer.Scene = (*Scene)(nil)
var _ core.Shape = (*geometry.Sphere)(nil)
