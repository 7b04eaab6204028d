package lmx

import (
	"image"
	"image/color"
)

// Pixel is a single RGB LED value. There is no per-pixel alpha: a pixel
// that renders exactly black is treated as transparent by the compositor
// (see Pattern.Render).
type Pixel struct {
	R, G, B uint8
}

// Black is the zero Pixel. Rendered black acts as "transparent" during
// compositing, letting lower tracks show through.
var Black = Pixel{}

// IsBlack reports whether all three channels are zero.
func (p Pixel) IsBlack() bool {
	return p.R == 0 && p.G == 0 && p.B == 0
}

// RGBA implements the color.Color interface, so a Pixel can be handed
// directly to the standard image packages.
func (p Pixel) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: p.R, G: p.G, B: p.B, A: 0xff}.RGBA()
}

// Index maps matrix coordinates to the row-major buffer index.
// The caller is responsible for bounds; Index performs no checks.
func Index(x, y, width int) int {
	return y*width + x
}

// NewBuffer allocates an all-black pixel buffer of width*height pixels.
func NewBuffer(width, height int) []Pixel {
	return make([]Pixel, width*height)
}

// CloneBuffer returns an independent copy of src.
func CloneBuffer(src []Pixel) []Pixel {
	dst := make([]Pixel, len(src))
	copy(dst, src)
	return dst
}

// padBuffer re-fits src to width*height pixels: extra pixels are dropped,
// missing positions are filled black. Used when resizing a pattern.
func padBuffer(src []Pixel, width, height int) []Pixel {
	want := width * height
	dst := make([]Pixel, want)
	copy(dst, src)
	return dst
}

// ToImage converts a rendered buffer to an *image.NRGBA, one image pixel
// per matrix pixel. Exporters that want an upscaled preview can resize
// the result with the golang.org/x/image/draw scalers.
func ToImage(buf []Pixel, width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p := buf[Index(x, y, width)]
			img.SetNRGBA(x, y, color.NRGBA{R: p.R, G: p.G, B: p.B, A: 0xff})
		}
	}
	return img
}
