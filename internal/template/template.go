// Package template generates pixel buffers for common pattern content:
// solid fills, gradients, rendered text for marquees, and QR codes.
// Generators return plain buffers; callers store them into tracks
// through an edit session.
package template

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/lumatrix/lmx"
)

// Solid fills a width*height buffer with one colour.
func Solid(width, height int, c lmx.Pixel) []lmx.Pixel {
	buf := lmx.NewBuffer(width, height)
	for i := range buf {
		buf[i] = c
	}
	return buf
}

// HorizontalGradient interpolates linearly from left to right.
func HorizontalGradient(width, height int, from, to lmx.Pixel) []lmx.Pixel {
	buf := lmx.NewBuffer(width, height)
	for x := 0; x < width; x++ {
		t := 0.0
		if width > 1 {
			t = float64(x) / float64(width-1)
		}
		px := lmx.Pixel{
			R: lerp(from.R, to.R, t),
			G: lerp(from.G, to.G, t),
			B: lerp(from.B, to.B, t),
		}
		for y := 0; y < height; y++ {
			buf[lmx.Index(x, y, width)] = px
		}
	}
	return buf
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}

// Text renders s with the fixed 7x13 bitmap face into a buffer exactly
// wide enough for the string, returning the buffer and its width. The
// buffer height is the face height (13). Pair the result with a scroll
// action for a marquee: store it on a track wider than the matrix and
// let the automation walk it across.
func Text(s string, c lmx.Pixel) ([]lmx.Pixel, int, int) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, s).Ceil()
	if width < 1 {
		width = 1
	}
	height := face.Height

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}),
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	drawer.DrawString(s)

	buf := lmx.NewBuffer(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			px := img.NRGBAAt(x, y)
			// The bitmap face is binary; treat any ink as full colour.
			if px.A > 0x7f {
				buf[lmx.Index(x, y, width)] = c
			}
		}
	}
	return buf, width, height
}

// QR encodes content as a QR code sized to the matrix. size is the
// square edge length in pixels; the code is rendered black-on-colour so
// the dark modules stay transparent during compositing and the light
// modules carry the ink.
func QR(content string, size int, ink lmx.Pixel) ([]lmx.Pixel, error) {
	q, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, errors.Wrap(err, "encoding qr content")
	}
	q.DisableBorder = true
	bitmap := q.Bitmap()

	buf := lmx.NewBuffer(size, size)
	modules := len(bitmap)
	if modules == 0 {
		return buf, nil
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			mx := x * modules / size
			my := y * modules / size
			if !bitmap[my][mx] {
				buf[lmx.Index(x, y, size)] = ink
			}
		}
	}
	return buf, nil
}
