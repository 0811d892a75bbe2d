package output

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-normal-raytracer/pkg/core"
)

// ErrUnknownFormat is returned for output paths with an unsupported extension
var ErrUnknownFormat = errors.New("unknown output format")

// Format is an output image encoding
type Format string

const (
	FormatPPM Format = "ppm"
	FormatPNG Format = "png"
)

// ParseFormat maps a format name such as "png" or ".ppm" to a Format
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "", "ppm":
		return FormatPPM, nil
	case "png":
		return FormatPNG, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// FormatForPath picks a format from a file extension; "-" and "" mean PPM on stdout
func FormatForPath(path string) (Format, error) {
	if path == "" || path == "-" {
		return FormatPPM, nil
	}
	return ParseFormat(filepath.Ext(path))
}

// ContentType returns the MIME type for the format
func (f Format) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "image/x-portable-pixmap"
}

// ToImage converts row-major pixels to an RGBA image. Channels are always
// clamped since image.RGBA cannot hold out-of-range values.
func ToImage(width, height int, pixels []core.Vec3) (*image.RGBA, error) {
	if err := checkPixels(width, height, pixels); err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b := ChannelClamped.RGB(pixels[y*width+x])
			img.SetRGBA(x, y, color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255})
		}
	}
	return img, nil
}

// Encode writes pixels to w in the given format
func Encode(w io.Writer, format Format, width, height int, pixels []core.Vec3, enc ChannelEncoding) error {
	switch format {
	case FormatPPM:
		return WritePPM(w, width, height, pixels, enc)
	case FormatPNG:
		img, err := ToImage(width, height, pixels)
		if err != nil {
			return err
		}
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("failed to encode PNG: %w", err)
		}
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// WriteFile encodes pixels to path, creating parent directories as needed.
// A path of "-" or "" writes PPM to stdout.
func WriteFile(path string, width, height int, pixels []core.Vec3, enc ChannelEncoding) error {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}

	if path == "" || path == "-" {
		return Encode(os.Stdout, format, width, height, pixels, enc)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := Encode(file, format, width, height, pixels, enc); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
