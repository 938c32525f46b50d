package output

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/juli-99/raytracing.github.io/pkg/core"
	"github.com/juli-99/raytracing.github.io/pkg/renderer"
)

// Format names an output file format
type Format string

const (
	FormatPPM  Format = "ppm"
	FormatPNG  Format = "png"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
)

// Order is the sequence in which PPM pixels are written
type Order string

const (
	OrderTopDown Order = "topdown" // top row first, each row left to right
	OrderLegacy  Order = "legacy"  // last linear index down to the first
)

// Encoder writes a finished framebuffer
type Encoder interface {
	Encode(w io.Writer, fb *renderer.Framebuffer, samplesPerPixel int) error
}

// ParseFormat validates a format name; "tif" is accepted for TIFF
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "ppm":
		return FormatPPM, nil
	case "png":
		return FormatPNG, nil
	case "bmp":
		return FormatBMP, nil
	case "tiff", "tif":
		return FormatTIFF, nil
	default:
		return "", fmt.Errorf("%w: unknown output format %q (want ppm, png, bmp or tiff)", core.ErrInvalidConfig, name)
	}
}

// FormatFromPath picks the format from the file extension, defaulting to PPM
func FormatFromPath(path string) Format {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if format, err := ParseFormat(ext); err == nil {
		return format
	}
	return FormatPPM
}

// ParseOrder validates a PPM pixel order name
func ParseOrder(name string) (Order, error) {
	switch order := Order(strings.ToLower(name)); order {
	case OrderTopDown, OrderLegacy:
		return order, nil
	default:
		return "", fmt.Errorf("%w: unknown pixel order %q (want topdown or legacy)", core.ErrInvalidConfig, name)
	}
}

// NewEncoder returns the encoder for format. order only applies to PPM.
func NewEncoder(format Format, order Order) (Encoder, error) {
	switch format {
	case FormatPPM:
		if _, err := ParseOrder(string(order)); err != nil {
			return nil, err
		}
		return &PPMEncoder{Order: order}, nil
	case FormatPNG:
		return imageEncoder(png.Encode), nil
	case FormatBMP:
		return imageEncoder(bmp.Encode), nil
	case FormatTIFF:
		return imageEncoder(func(w io.Writer, img image.Image) error {
			return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
		}), nil
	default:
		return nil, fmt.Errorf("%w: unknown output format %q", core.ErrInvalidConfig, format)
	}
}

// PPMEncoder writes plain-text P3 files
type PPMEncoder struct {
	Order Order
}

// Encode writes the P3 header followed by one "r g b" line per pixel
func (e *PPMEncoder) Encode(w io.Writer, fb *renderer.Framebuffer, samplesPerPixel int) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P3\n%d %d\n255\n", fb.Width, fb.Height)

	writePixel := func(c core.Vec3) {
		r, g, b := ToRGB8(c, samplesPerPixel)
		fmt.Fprintf(bw, "%d %d %d\n", r, g, b)
	}

	switch e.Order {
	case OrderLegacy:
		for idx := len(fb.Pixels) - 1; idx >= 0; idx-- {
			writePixel(fb.Pixels[idx])
		}
	default:
		for j := fb.Height - 1; j >= 0; j-- {
			for _, c := range fb.Row(j) {
				writePixel(c)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write PPM: %w", err)
	}
	return nil
}

// imageEncoder adapts an image/* style encode function
type imageEncoder func(w io.Writer, img image.Image) error

func (enc imageEncoder) Encode(w io.Writer, fb *renderer.Framebuffer, samplesPerPixel int) error {
	if err := enc(w, ToImage(fb, samplesPerPixel)); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return nil
}
