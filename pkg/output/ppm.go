package output

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/df07/go-normal-raytracer/pkg/core"
)

// ErrPixelCount is returned when the pixel slice does not match the image dimensions
var ErrPixelCount = errors.New("pixel count does not match image dimensions")

// ChannelEncoding selects how a [0,1] color component becomes an integer channel
type ChannelEncoding int

const (
	// ChannelClamped clamps each component to [0,1] before scaling, so channels stay in [0,255]
	ChannelClamped ChannelEncoding = iota
	// ChannelUnclamped scales without clamping; components >= 1 produce values above 255
	ChannelUnclamped
)

// Channel converts one color component using int(255.999 * x)
func (e ChannelEncoding) Channel(x float64) int {
	r, _, _ := e.RGB(core.NewVec3(x, 0, 0))
	return r
}

// RGB converts a color to integer channels. NaN components become 0 in either
// encoding since int(NaN) is platform-defined.
func (e ChannelEncoding) RGB(c core.Vec3) (r, g, b int) {
	c = core.NewVec3(zeroNaN(c.X), zeroNaN(c.Y), zeroNaN(c.Z))
	if e == ChannelClamped {
		c = c.Clamp(0, 1)
	}
	return int(255.999 * c.X), int(255.999 * c.Y), int(255.999 * c.Z)
}

func zeroNaN(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	return x
}

// WritePPM writes pixels in row-major order as a plain-text P3 pixel map
func WritePPM(w io.Writer, width, height int, pixels []core.Vec3, enc ChannelEncoding) error {
	if err := checkPixels(width, height, pixels); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", width, height); err != nil {
		return fmt.Errorf("failed to write PPM header: %w", err)
	}

	for _, p := range pixels {
		r, g, b := enc.RGB(p)
		if _, err := fmt.Fprintf(bw, "%d %d %d\n", r, g, b); err != nil {
			return fmt.Errorf("failed to write PPM pixel: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush PPM: %w", err)
	}
	return nil
}

func checkPixels(width, height int, pixels []core.Vec3) error {
	if width < 1 || height < 1 || len(pixels) != width*height {
		return fmt.Errorf("%w: %dx%d with %d pixels", ErrPixelCount, width, height, len(pixels))
	}
	return nil
}
