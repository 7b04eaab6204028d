package lmx

// Transforms operate on a flat row-major buffer and return a new buffer,
// leaving the input untouched. Each one is a stateless function of
// (pixels, step, params): progressive actions multiply their per-frame
// offset by the step, so the same inputs always produce the same output.

// applyAction dispatches one action's transform against buf and returns
// the result. step is the action's frame-relative progress, already
// resolved by Action.Step.
func applyAction(buf []Pixel, p Params, step, width, height int) []Pixel {
	switch params := p.(type) {
	case ScrollParams:
		offset := step * clampOffset(params.Offset)
		var dx, dy int
		switch params.Direction {
		case DirRight:
			dx = offset
		case DirLeft:
			dx = -offset
		case DirDown:
			dy = offset
		case DirUp:
			dy = -offset
		}
		return scrollPixels(buf, width, height, dx, dy)
	case RotateParams:
		out := buf
		for i := 0; i < step%4; i++ {
			if params.Mode == RotateCounterClockwise {
				out = rotate90CCW(out, width, height)
			} else {
				out = rotate90CW(out, width, height)
			}
		}
		return out
	case MirrorParams:
		if params.Axis == AxisHorizontal {
			return mirrorHorizontal(buf, width, height)
		}
		return mirrorVertical(buf, width, height)
	case BounceParams:
		// Even steps show the original, odd steps the flipped buffer.
		if step%2 == 0 {
			return buf
		}
		if params.Axis == AxisHorizontal {
			return mirrorHorizontal(buf, width, height)
		}
		return mirrorVertical(buf, width, height)
	case WipeParams:
		pos := step * clampOffset(params.Offset)
		return wipePixels(buf, width, height, params.Mode, pos)
	case RevealParams:
		pos := step * clampOffset(params.Offset)
		return revealPixels(buf, width, height, params.Edge, pos)
	case InvertParams:
		return invertPixels(buf)
	default:
		Logger().Warn("unknown action params, transform skipped")
		return buf
	}
}

// clampOffset enforces the legacy minimum of one pixel per frame.
func clampOffset(offset int) int {
	if offset < 1 {
		return 1
	}
	return offset
}

// scrollPixels shifts the buffer by (dx, dy). Positions whose source
// falls outside [0,width)x[0,height) stay black; nothing wraps around.
func scrollPixels(buf []Pixel, width, height, dx, dy int) []Pixel {
	if dx == 0 && dy == 0 {
		return buf
	}
	out := make([]Pixel, len(buf))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			srcX := x - dx
			srcY := y - dy
			if srcX < 0 || srcX >= width || srcY < 0 || srcY >= height {
				continue
			}
			out[Index(x, y, width)] = buf[Index(srcX, srcY, width)]
		}
	}
	return out
}

// rotate90CW rotates one quarter turn clockwise: (x, y) maps to
// (height-1-y, x). On non-square matrices the destination is flattened
// against the original width, so coordinates past the right edge alias
// into later rows and only writes past the end of the buffer are
// dropped. The legacy tool renders rotation this way, so the aliasing
// is contractual.
func rotate90CW(buf []Pixel, width, height int) []Pixel {
	out := make([]Pixel, len(buf))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			newX := height - 1 - y
			newY := x
			if newX >= height || newY >= width {
				continue
			}
			dst := newY*width + newX
			if dst >= len(out) {
				continue
			}
			out[dst] = buf[Index(x, y, width)]
		}
	}
	return out
}

// rotate90CCW rotates one quarter turn counter-clockwise: (x, y) maps
// to (y, width-1-x), with the same flat-buffer aliasing as rotate90CW.
func rotate90CCW(buf []Pixel, width, height int) []Pixel {
	out := make([]Pixel, len(buf))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			newX := y
			newY := width - 1 - x
			if newX >= height || newY >= width {
				continue
			}
			dst := newY*width + newX
			if dst >= len(out) {
				continue
			}
			out[dst] = buf[Index(x, y, width)]
		}
	}
	return out
}

// mirrorHorizontal swaps left and right.
func mirrorHorizontal(buf []Pixel, width, height int) []Pixel {
	out := make([]Pixel, len(buf))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			out[Index(x, y, width)] = buf[Index(width-1-x, y, width)]
		}
	}
	return out
}

// mirrorVertical swaps top and bottom.
func mirrorVertical(buf []Pixel, width, height int) []Pixel {
	out := make([]Pixel, len(buf))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			out[Index(x, y, width)] = buf[Index(x, height-1-y, width)]
		}
	}
	return out
}

// invertPixels replaces each channel c with 255-c.
func invertPixels(buf []Pixel) []Pixel {
	out := make([]Pixel, len(buf))
	for i, p := range buf {
		out[i] = Pixel{R: 255 - p.R, G: 255 - p.G, B: 255 - p.B}
	}
	return out
}

// wipePixels keeps full brightness strictly before the boundary at pos
// (measured from the leading edge of the travel direction) and applies
// a linear fade past it: fade = 1 - (i-pos)/max(1, dim-pos). Channel
// scaling truncates toward zero, matching the legacy tool.
func wipePixels(buf []Pixel, width, height int, mode WipeMode, pos int) []Pixel {
	out := CloneBuffer(buf)
	horizontal := mode == WipeLeftToRight || mode == WipeRightToLeft
	forward := mode == WipeLeftToRight || mode == WipeTopToBottom

	dim := height
	if horizontal {
		dim = width
	}
	if pos > dim {
		pos = dim
	}

	fadeAt := func(i int) float64 {
		if i < pos {
			return 1.0
		}
		span := dim - pos
		if span < 1 {
			span = 1
		}
		f := 1.0 - float64(i-pos)/float64(span)
		if f < 0 {
			return 0
		}
		return f
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			// i is the distance from the edge the wipe travels away from.
			var i int
			if horizontal {
				i = x
				if !forward {
					i = width - 1 - x
				}
			} else {
				i = y
				if !forward {
					i = height - 1 - y
				}
			}
			fade := fadeAt(i)
			if fade >= 1.0 {
				continue
			}
			idx := Index(x, y, width)
			p := out[idx]
			out[idx] = Pixel{
				R: uint8(float64(p.R) * fade),
				G: uint8(float64(p.G) * fade),
				B: uint8(float64(p.B) * fade),
			}
		}
	}
	return out
}

// revealPixels shows a band of pos pixels anchored at the configured
// edge; everything outside the band is black.
func revealPixels(buf []Pixel, width, height int, edge Edge, pos int) []Pixel {
	out := make([]Pixel, len(buf))
	switch edge {
	case EdgeLeft:
		band := min(pos, width)
		for y := 0; y < height; y++ {
			for x := 0; x < band; x++ {
				out[Index(x, y, width)] = buf[Index(x, y, width)]
			}
		}
	case EdgeRight:
		band := min(pos, width)
		for y := 0; y < height; y++ {
			for x := width - band; x < width; x++ {
				out[Index(x, y, width)] = buf[Index(x, y, width)]
			}
		}
	case EdgeTop:
		band := min(pos, height)
		for y := 0; y < band; y++ {
			copy(out[y*width:(y+1)*width], buf[y*width:(y+1)*width])
		}
	case EdgeBottom:
		band := min(pos, height)
		for y := height - band; y < height; y++ {
			copy(out[y*width:(y+1)*width], buf[y*width:(y+1)*width])
		}
	default:
		return buf
	}
	return out
}

// applyOpacity scales every channel by opacity, truncating toward zero.
// Opacity at or above 1 returns the buffer unchanged. This is brightness
// scaling, not alpha blending: once written, a dimmed pixel is
// indistinguishable from an originally-dim one.
func applyOpacity(buf []Pixel, opacity float64) []Pixel {
	if opacity >= 1.0 {
		return buf
	}
	if opacity < 0 {
		opacity = 0
	}
	out := make([]Pixel, len(buf))
	for i, p := range buf {
		out[i] = Pixel{
			R: uint8(float64(p.R) * opacity),
			G: uint8(float64(p.G) * opacity),
			B: uint8(float64(p.B) * opacity),
		}
	}
	return out
}
