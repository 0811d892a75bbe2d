package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/df07/go-normal-raytracer/pkg/renderer"
	"github.com/df07/go-normal-raytracer/pkg/scene"
)

// consoleBuffer is the number of console messages held until a client drains them
const consoleBuffer = 256

// Server handles web requests for the raytracer
type Server struct {
	port    int
	console chan ConsoleMessage
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	return &Server{
		port:    port,
		console: make(chan ConsoleMessage, consoleBuffer),
	}
}

// RenderRequest represents a render or inspect request from the client
type RenderRequest struct {
	Width     int    `json:"width"`     // Image width
	Format    string `json:"format"`    // "png" or "ppm"
	Unclamped bool   `json:"unclamped"` // Skip channel clamping (PPM only)
}

// Handler returns the HTTP routes served by the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("/api/console", s.handleConsole)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	req := &RenderRequest{}
	query := r.URL.Query()

	var err error
	if req.Width, err = parseIntParam(query, "width", 400, 16, 2000); err != nil {
		return nil, err
	}

	req.Format = query.Get("format")
	if req.Format == "" {
		req.Format = "png"
	}

	if value := query.Get("unclamped"); value != "" {
		if req.Unclamped, err = strconv.ParseBool(value); err != nil {
			return nil, fmt.Errorf("invalid unclamped: %s", value)
		}
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// createScene creates the default scene at the requested width
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	return scene.NewDefaultScene(renderer.CameraConfig{Width: req.Width})
}

// handleSceneConfig returns the default scene as a YAML scene file
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneObj, err := scene.NewDefaultScene()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	data, err := yaml.Marshal(scene.DescribeConfig(sceneObj))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	w.Header().Set("Content-Type", "application/yaml")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// handleConsole drains the buffered console messages
func (s *Server) handleConsole(w http.ResponseWriter, r *http.Request) {
	messages := make([]ConsoleMessage, 0)
drain:
	for {
		select {
		case msg := <-s.console:
			messages = append(messages, msg)
		default:
			break drain
		}
	}
	writeJSON(w, http.StatusOK, messages)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
