package server

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/df07/go-normal-raytracer/pkg/output"
	"github.com/df07/go-normal-raytracer/pkg/renderer"
)

// handleRender renders the scene and returns the encoded image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request: " + err.Error()})
		return
	}

	format, err := output.ParseFormat(req.Format)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	logger := NewWebLogger(renderID, s.console)

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	raytracer := renderer.NewRaytracer(sceneObj, logger)

	// Use request context to stop rendering when the client disconnects
	pixels, _, err := raytracer.RenderPass(r.Context())
	if err != nil {
		logger.Printf("Render %s aborted: %v\n", renderID, err)
		return
	}

	encoding := output.ChannelClamped
	if req.Unclamped {
		encoding = output.ChannelUnclamped
	}

	var buf bytes.Buffer
	if err := output.Encode(&buf, format, raytracer.Width(), raytracer.Height(), pixels, encoding); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Id", renderID)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
