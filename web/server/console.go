package server

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/df07/go-normal-raytracer/pkg/core"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	RenderID  string    `json:"renderId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// WebLogger implements core.Logger by sending messages to a console channel
type WebLogger struct {
	renderID    string
	consoleChan chan<- ConsoleMessage
}

// NewWebLogger creates a new web logger for a specific render
func NewWebLogger(renderID string, consoleChan chan<- ConsoleMessage) core.Logger {
	return &WebLogger{
		renderID:    renderID,
		consoleChan: consoleChan,
	}
}

// Printf implements core.Logger interface
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	// Also write to the server log
	log.Printf("[%s] %s", wl.renderID, strings.TrimSuffix(message, "\n"))

	// Non-blocking send; messages are dropped when nobody drains the console
	if wl.consoleChan != nil {
		select {
		case wl.consoleChan <- ConsoleMessage{
			RenderID:  wl.renderID,
			Message:   message,
			Timestamp: time.Now(),
			Level:     levelOf(message),
		}:
		default:
		}
	}
}

// levelOf classifies a message by its leading word
func levelOf(message string) string {
	lower := strings.ToLower(message)
	switch {
	case strings.HasPrefix(lower, "error"), strings.Contains(lower, "aborted"):
		return "error"
	case strings.HasPrefix(lower, "warning"):
		return "warning"
	}
	return "info"
}
