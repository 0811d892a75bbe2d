package renderer

import (
	"fmt"
	"io"
)

// ProgressReporter receives scanline progress during a render pass
type ProgressReporter interface {
	ScanlineDone(remaining int)
	Done()
}

// ScanlineProgress writes a carriage-return progress line to a diagnostic writer
type ScanlineProgress struct {
	w io.Writer
}

// NewScanlineProgress creates a progress indicator writing to w (usually stderr)
func NewScanlineProgress(w io.Writer) *ScanlineProgress {
	return &ScanlineProgress{w: w}
}

// ScanlineDone reports the number of scanlines still to be rendered
func (p *ScanlineProgress) ScanlineDone(remaining int) {
	fmt.Fprintf(p.w, "\rScanlines remaining: %d ", remaining)
}

// Done clears the progress line
func (p *ScanlineProgress) Done() {
	fmt.Fprint(p.w, "\rDone.                 \n")
}
