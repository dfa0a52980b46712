package renderer

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Framebuffer accumulates samples for a rectangle of pixels. Coordinates are camera
// coordinates: x grows to the right and y grows upwards from the bottom row.
type Framebuffer struct {
	bounds image.Rectangle
	pixels []PixelStats
}

// NewFramebuffer creates an empty buffer for a whole image
func NewFramebuffer(width, height int) *Framebuffer {
	return NewFramebufferForBounds(image.Rect(0, 0, width, height))
}

// NewFramebufferForBounds creates an empty buffer covering only bounds, typically a tile
func NewFramebufferForBounds(bounds image.Rectangle) *Framebuffer {
	return &Framebuffer{
		bounds: bounds,
		pixels: make([]PixelStats, bounds.Dx()*bounds.Dy()),
	}
}

// Bounds returns the covered pixel rectangle
func (fb *Framebuffer) Bounds() image.Rectangle {
	return fb.bounds
}

// Width returns the number of pixel columns
func (fb *Framebuffer) Width() int {
	return fb.bounds.Dx()
}

// Height returns the number of pixel rows
func (fb *Framebuffer) Height() int {
	return fb.bounds.Dy()
}

// Pixel returns the accumulator for pixel (x, y). It panics outside the bounds.
func (fb *Framebuffer) Pixel(x, y int) *PixelStats {
	if !image.Pt(x, y).In(fb.bounds) {
		panic(fmt.Sprintf("renderer: pixel (%d, %d) outside %v", x, y, fb.bounds))
	}
	return &fb.pixels[(y-fb.bounds.Min.Y)*fb.bounds.Dx()+(x-fb.bounds.Min.X)]
}

// AddSample adds one color sample to pixel (x, y)
func (fb *Framebuffer) AddSample(x, y int, color core.Vec3) {
	fb.Pixel(x, y).AddSample(color)
}

// Color returns the average color of pixel (x, y)
func (fb *Framebuffer) Color(x, y int) core.Vec3 {
	return fb.Pixel(x, y).Color()
}

// Merge adds every accumulator of other into the matching pixel of fb. Sums are
// component-wise, so merging a and b gives the same buffer as merging b and a.
// It panics if other covers pixels outside fb.
func (fb *Framebuffer) Merge(other *Framebuffer) {
	if !other.bounds.In(fb.bounds) {
		panic(fmt.Sprintf("renderer: cannot merge %v into %v", other.bounds, fb.bounds))
	}

	for y := other.bounds.Min.Y; y < other.bounds.Max.Y; y++ {
		for x := other.bounds.Min.X; x < other.bounds.Max.X; x++ {
			fb.Pixel(x, y).Merge(*other.Pixel(x, y))
		}
	}
}

// TotalSamples returns the number of samples over all pixels
func (fb *Framebuffer) TotalSamples() int {
	total := 0
	for i := range fb.pixels {
		total += fb.pixels[i].SampleCount
	}
	return total
}

// ToRGBA converts the buffer to an 8-bit image. Each pixel is averaged, gamma
// corrected with exponent 1/2 and clamped to [0, 0.999] before quantizing.
// Camera row y lands on image row Max.Y-1-y so the top of the scene is at the top.
func (fb *Framebuffer) ToRGBA() *image.RGBA {
	width, height := fb.Width(), fb.Height()
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	for y := fb.bounds.Min.Y; y < fb.bounds.Max.Y; y++ {
		for x := fb.bounds.Min.X; x < fb.bounds.Max.X; x++ {
			img.SetRGBA(x-fb.bounds.Min.X, fb.bounds.Max.Y-1-y, vec3ToColor(fb.Color(x, y)))
		}
	}

	return img
}

// vec3ToColor converts a linear color to RGBA with gamma correction and clamping
func vec3ToColor(colorVec core.Vec3) color.RGBA {
	return color.RGBA{
		R: quantize(colorVec.X),
		G: quantize(colorVec.Y),
		B: quantize(colorVec.Z),
		A: 255,
	}
}

// quantize maps a linear channel to 8 bits. Negative and NaN channels become 0.
func quantize(c float64) uint8 {
	if !(c > 0) {
		return 0
	}
	return uint8(256 * math.Min(math.Sqrt(c), 0.999))
}
