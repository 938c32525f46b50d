package renderer

import (
	"github.com/juli-99/raytracing.github.io/pkg/core"
)

// Framebuffer holds one accumulated color per pixel in row-major order,
// index row*Width+col. Row 0 is the bottom of the viewport.
//
// During rendering every row belongs to exactly one worker, so writes need no
// locking; it is only read after all workers have finished.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// NewFramebuffer allocates a zeroed framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// Index returns the linear index of pixel (col, row)
func (fb *Framebuffer) Index(col, row int) int {
	return row*fb.Width + col
}

// Set stores the color of pixel (col, row)
func (fb *Framebuffer) Set(col, row int, c core.Vec3) {
	fb.Pixels[fb.Index(col, row)] = c
}

// At returns the color of pixel (col, row)
func (fb *Framebuffer) At(col, row int) core.Vec3 {
	return fb.Pixels[fb.Index(col, row)]
}

// Row returns the pixels of one row; the slice aliases the buffer
func (fb *Framebuffer) Row(row int) []core.Vec3 {
	start := row * fb.Width
	return fb.Pixels[start : start+fb.Width]
}
