package scene

import (
	"fmt"

	"github.com/df07/go-normal-raytracer/pkg/core"
	"github.com/df07/go-normal-raytracer/pkg/geometry"
	"github.com/df07/go-normal-raytracer/pkg/renderer"
)

// Scene contains everything needed for one render: the camera and the single sphere
type Scene struct {
	Camera *renderer.Camera
	Sphere *geometry.Sphere
}

// DefaultSphere returns the sphere at (0,0,-1) with radius 0.5
func DefaultSphere() *geometry.Sphere {
	return geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5)
}

// NewScene validates the camera config and builds a scene around sphere
func NewScene(cameraConfig renderer.CameraConfig, sphere *geometry.Sphere) (*Scene, error) {
	if err := cameraConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid camera config: %w", err)
	}
	if sphere == nil {
		sphere = DefaultSphere()
	}
	return &Scene{
		Camera: renderer.NewCamera(cameraConfig),
		Sphere: sphere,
	}, nil
}

// NewDefaultScene creates the default single-sphere scene viewed from the origin.
// Overrides are merged over the default camera before validation.
func NewDefaultScene(cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	cameraConfig := renderer.DefaultCameraConfig()
	for _, override := range cameraOverrides {
		cameraConfig = renderer.MergeCameraConfig(cameraConfig, override)
	}
	return NewScene(cameraConfig, DefaultSphere())
}

// GetCamera implements renderer.Scene
func (s *Scene) GetCamera() *renderer.Camera {
	return s.Camera
}

// GetSphere implements renderer.Scene
func (s *Scene) GetSphere() *geometry.Sphere {
	return s.Sphere
}
