package output

import (
	"image"
	"image/color"
	"math"

	"github.com/juli-99/raytracing.github.io/pkg/core"
	"github.com/juli-99/raytracing.github.io/pkg/renderer"
)

// ToRGB8 converts an accumulated sample sum to 8-bit channels: average over
// samplesPerPixel, gamma 2, clamp to [0, 0.999], scale by 256
func ToRGB8(sum core.Vec3, samplesPerPixel int) (r, g, b uint8) {
	scale := 1.0 / float64(samplesPerPixel)
	return toByte(sum.X * scale), toByte(sum.Y * scale), toByte(sum.Z * scale)
}

func toByte(c float64) uint8 {
	// NaN from a degenerate sample shows as black rather than garbage
	if math.IsNaN(c) || c <= 0 {
		return 0
	}
	c = math.Min(math.Sqrt(c), 0.999)
	return uint8(256 * c)
}

// ToImage converts the framebuffer to an image with row 0 of the
// framebuffer as the bottom line of the image
func ToImage(fb *renderer.Framebuffer, samplesPerPixel int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for j := 0; j < fb.Height; j++ {
		y := fb.Height - 1 - j
		for i, c := range fb.Row(j) {
			r, g, b := ToRGB8(c, samplesPerPixel)
			img.SetRGBA(i, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}
