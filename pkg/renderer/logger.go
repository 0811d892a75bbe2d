package renderer

import (
	"io"
	"log"
	"os"

	"github.com/df07/go-normal-raytracer/pkg/core"
)

// DefaultLogger implements core.Logger by writing to stderr, keeping stdout free for image data
type DefaultLogger struct {
	logger *log.Logger
}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	dl.logger.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return NewWriterLogger(os.Stderr)
}

// NewWriterLogger creates a logger writing to w
func NewWriterLogger(w io.Writer) core.Logger {
	return &DefaultLogger{logger: log.New(w, "", log.LstdFlags)}
}

// NopLogger discards all output
type NopLogger struct{}

func (NopLogger) Printf(format string, args ...interface{}) {}
