package output

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/df07/go-normal-raytracer/pkg/core"
)

func TestChannelEncoding_Channel(t *testing.T) {
	tests := []struct {
		name      string
		enc       ChannelEncoding
		component float64
		expected  int
	}{
		{"clamped zero", ChannelClamped, 0, 0},
		{"clamped one", ChannelClamped, 1, 255},
		{"clamped half", ChannelClamped, 0.5, 127},
		{"clamped above one", ChannelClamped, 1.5, 255},
		{"clamped negative", ChannelClamped, -0.5, 0},
		{"unclamped one", ChannelUnclamped, 1, 255},
		{"unclamped above one overflows", ChannelUnclamped, 1.5, 383},
		{"unclamped just above one", ChannelUnclamped, 1.01, 258},
		{"unclamped negative", ChannelUnclamped, -0.5, -127},
		{"clamped NaN", ChannelClamped, math.NaN(), 0},
		{"unclamped NaN", ChannelUnclamped, math.NaN(), 0},
		{"clamped +Inf", ChannelClamped, math.Inf(1), 255},
		{"clamped -Inf", ChannelClamped, math.Inf(-1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.enc.Channel(tt.component); got != tt.expected {
				t.Errorf("Channel(%f) = %d, expected %d", tt.component, got, tt.expected)
			}
		})
	}
}

func TestWritePPM(t *testing.T) {
	pixels := []core.Vec3{
		core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), core.NewVec3(0, 0, 1),
		core.NewVec3(1, 1, 1), core.NewVec3(0, 0, 0), core.NewVec3(0.5, 0.5, 0.5),
	}

	var buf bytes.Buffer
	if err := WritePPM(&buf, 3, 2, pixels, ChannelClamped); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := "P3\n3 2\n255\n" +
		"255 0 0\n0 255 0\n0 0 255\n" +
		"255 255 255\n0 0 0\n127 127 127\n"
	if buf.String() != expected {
		t.Errorf("Unexpected PPM output:\n%s\nexpected:\n%s", buf.String(), expected)
	}
}

func TestWritePPM_OutOfRangeComponents(t *testing.T) {
	pixels := []core.Vec3{core.NewVec3(1.2, -0.1, 0.5)}

	var clamped, unclamped bytes.Buffer
	if err := WritePPM(&clamped, 1, 1, pixels, ChannelClamped); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := WritePPM(&unclamped, 1, 1, pixels, ChannelUnclamped); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !strings.HasSuffix(clamped.String(), "\n255 0 127\n") {
		t.Errorf("Expected clamped pixel line \"255 0 127\", got %q", clamped.String())
	}
	if !strings.HasSuffix(unclamped.String(), "\n307 -25 127\n") {
		t.Errorf("Expected unclamped pixel line \"307 -25 127\", got %q", unclamped.String())
	}
}

func TestWritePPM_NaNComponents(t *testing.T) {
	// The zero vector's unit vector is all NaN
	pixels := []core.Vec3{core.Vec3{}.UnitVector(), core.NewVec3(math.NaN(), 1, 0.5)}

	for _, enc := range []ChannelEncoding{ChannelClamped, ChannelUnclamped} {
		var buf bytes.Buffer
		if err := WritePPM(&buf, 2, 1, pixels, enc); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !strings.HasSuffix(buf.String(), "\n0 0 0\n0 255 127\n") {
			t.Errorf("Expected NaN components written as 0 (encoding %d), got %q", enc, buf.String())
		}
	}
}

func TestWritePPM_PixelCountMismatch(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		pixels        int
	}{
		{"too few", 2, 2, 3},
		{"too many", 1, 1, 2},
		{"zero width", 0, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := WritePPM(&buf, tt.width, tt.height, make([]core.Vec3, tt.pixels), ChannelClamped)
			if !errors.Is(err, ErrPixelCount) {
				t.Errorf("Expected ErrPixelCount, got %v", err)
			}
			if buf.Len() != 0 {
				t.Errorf("Expected nothing written, got %q", buf.String())
			}
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, errors.New("disk full") }

func TestWritePPM_WriterError(t *testing.T) {
	err := WritePPM(failingWriter{}, 1, 1, []core.Vec3{{}}, ChannelClamped)
	if err == nil {
		t.Fatal("Expected error from failing writer")
	}
	if !strings.Contains(err.Error(), "disk full") {
		t.Errorf("Expected wrapped writer error, got %v", err)
	}
}
