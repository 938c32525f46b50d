package output

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"io"
	"strings"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/juli-99/raytracing.github.io/pkg/core"
	"github.com/juli-99/raytracing.github.io/pkg/renderer"
)

func TestToRGB8(t *testing.T) {
	tests := []struct {
		name     string
		sum      core.Vec3
		spp      int
		expected [3]uint8
	}{
		{"black", core.NewVec3(0, 0, 0), 1, [3]uint8{0, 0, 0}},
		{"white clamps to 255", core.NewVec3(1, 1, 1), 1, [3]uint8{255, 255, 255}},
		{"over-bright clamps", core.NewVec3(40, 4, 2), 2, [3]uint8{255, 255, 255}},
		{"gamma 2", core.NewVec3(0.25, 0.64, 0.01), 1, [3]uint8{128, 204, 25}},
		{"averaged over samples", core.NewVec3(1, 2.56, 0.04), 4, [3]uint8{128, 204, 25}},
		{"negative is black", core.NewVec3(-1, 0, 0), 1, [3]uint8{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b := ToRGB8(tt.sum, tt.spp)
			if got := [3]uint8{r, g, b}; got != tt.expected {
				t.Errorf("ToRGB8(%v, %d) = %v, expected %v", tt.sum, tt.spp, got, tt.expected)
			}
		})
	}
}

// gradientFramebuffer stores a distinct red value per pixel so the pixel
// order of the output can be checked
func gradientFramebuffer() *renderer.Framebuffer {
	fb := renderer.NewFramebuffer(3, 2)
	for idx := range fb.Pixels {
		// Red byte is idx*10 after gamma and scaling
		c := float64(idx*10) / 256
		fb.Pixels[idx] = core.NewVec3(c*c+1e-9, 0, 0)
	}
	return fb
}

func encodeString(t *testing.T, enc Encoder, fb *renderer.Framebuffer) string {
	t.Helper()
	var buf bytes.Buffer
	if err := enc.Encode(&buf, fb, 1); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	return buf.String()
}

func TestPPMEncoder_TopDown(t *testing.T) {
	out := encodeString(t, &PPMEncoder{Order: OrderTopDown}, gradientFramebuffer())

	expected := "P3\n3 2\n255\n" +
		"30 0 0\n40 0 0\n50 0 0\n" +
		"0 0 0\n10 0 0\n20 0 0\n"
	if out != expected {
		t.Errorf("Unexpected PPM:\n%s\nexpected:\n%s", out, expected)
	}
}

func TestPPMEncoder_Legacy(t *testing.T) {
	out := encodeString(t, &PPMEncoder{Order: OrderLegacy}, gradientFramebuffer())

	expected := "P3\n3 2\n255\n" +
		"50 0 0\n40 0 0\n30 0 0\n" +
		"20 0 0\n10 0 0\n0 0 0\n"
	if out != expected {
		t.Errorf("Unexpected PPM:\n%s\nexpected:\n%s", out, expected)
	}
}

func TestPPMEncoder_LineCount(t *testing.T) {
	fb := renderer.NewFramebuffer(40, 20)
	out := encodeString(t, &PPMEncoder{Order: OrderTopDown}, fb)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 3+40*20 {
		t.Errorf("Expected %d lines, got %d", 3+40*20, len(lines))
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestPPMEncoder_WriteError(t *testing.T) {
	err := (&PPMEncoder{Order: OrderTopDown}).Encode(failingWriter{}, renderer.NewFramebuffer(4, 4), 1)
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("Expected write error, got %v", err)
	}
}

func TestImageEncoders(t *testing.T) {
	decoders := map[Format]func(io.Reader) (image.Image, error){
		FormatPNG:  png.Decode,
		FormatBMP:  bmp.Decode,
		FormatTIFF: tiff.Decode,
	}

	for format, decode := range decoders {
		t.Run(string(format), func(t *testing.T) {
			enc, err := NewEncoder(format, OrderTopDown)
			if err != nil {
				t.Fatalf("NewEncoder failed: %v", err)
			}

			var buf bytes.Buffer
			if err := enc.Encode(&buf, gradientFramebuffer(), 1); err != nil {
				t.Fatalf("Encode failed: %v", err)
			}

			img, err := decode(&buf)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
				t.Fatalf("Unexpected bounds %v", img.Bounds())
			}

			// Framebuffer row 0 is the bottom image line
			expected := map[image.Point]uint32{
				{0, 0}: 30, {2, 0}: 50,
				{0, 1}: 0, {1, 1}: 10,
			}
			for p, red := range expected {
				r, _, _, _ := img.At(p.X, p.Y).RGBA()
				if r>>8 != red {
					t.Errorf("Pixel %v red = %d, expected %d", p, r>>8, red)
				}
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{"ppm": FormatPPM, "PNG": FormatPNG, "bmp": FormatBMP, "tif": FormatTIFF, "tiff": FormatTIFF}
	for name, expected := range tests {
		if got, err := ParseFormat(name); err != nil || got != expected {
			t.Errorf("ParseFormat(%q) = %q, %v", name, got, err)
		}
	}
	if _, err := ParseFormat("exr"); !errors.Is(err, core.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"out.png":          FormatPNG,
		"render/image.BMP": FormatBMP,
		"a.tiff":           FormatTIFF,
		"image.ppm":        FormatPPM,
		"image":            FormatPPM,
		"image.jpg":        FormatPPM,
	}
	for path, expected := range tests {
		if got := FormatFromPath(path); got != expected {
			t.Errorf("FormatFromPath(%q) = %q, expected %q", path, got, expected)
		}
	}
}

func TestNewEncoderRejectsBadOrder(t *testing.T) {
	if _, err := NewEncoder(FormatPPM, "sideways"); !errors.Is(err, core.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
	if _, err := NewEncoder("gif", OrderTopDown); !errors.Is(err, core.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}
