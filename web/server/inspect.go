package server

import (
	"math"
	"net/http"
	"strconv"

	"github.com/df07/go-normal-raytracer/pkg/core"
	"github.com/df07/go-normal-raytracer/pkg/renderer"
	"github.com/df07/go-normal-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for pixel inspection
type InspectResponse struct {
	Hit       bool       `json:"hit"`
	Direction [3]float64 `json:"direction"`
	Color     [3]float64 `json:"color"`
	Point     [3]float64 `json:"point"`
	Normal    [3]float64 `json:"normal"`
	Distance  float64    `json:"distance,omitempty"`
	FrontFace bool       `json:"frontFace"`
}

func toArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// inspectPixel casts the ray through the pixel center and reports what it sees
func inspectPixel(sceneObj *scene.Scene, pixelX, pixelY int) InspectResponse {
	ray := sceneObj.Camera.GetRay(pixelX, pixelY)
	raytracer := renderer.NewRaytracer(sceneObj, nil)

	response := InspectResponse{
		Direction: toArray(ray.Direction),
		Color:     toArray(raytracer.RayColor(ray)),
	}

	hit, isHit := sceneObj.Sphere.Hit(ray, 0, math.Inf(1))
	if !isHit {
		return response
	}

	response.Hit = true
	response.Point = toArray(hit.Point)
	response.Normal = toArray(hit.Normal)
	response.Distance = hit.T
	response.FrontFace = hit.FrontFace
	return response
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid scene parameters: " + err.Error()})
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid x coordinate"})
		return
	}

	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid y coordinate"})
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if pixelX < 0 || pixelX >= sceneObj.Camera.Width() || pixelY < 0 || pixelY >= sceneObj.Camera.Height() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Pixel coordinates out of bounds"})
		return
	}

	writeJSON(w, http.StatusOK, inspectPixel(sceneObj, pixelX, pixelY))
}
