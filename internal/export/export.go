package export

import (
	"context"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"io"
	"runtime"

	"github.com/pkg/errors"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"github.com/lumatrix/lmx"
)

// Options configures an export job.
type Options struct {
	// Scale is the integer upscale factor for image formats. LED pixels
	// stay crisp: scaling uses nearest-neighbour, never interpolation.
	// Values below 1 are treated as 1. Raw device output ignores Scale.
	Scale int

	// DelayMS is the per-frame delay for animated formats, in
	// milliseconds. Values below 10 are treated as 10 (the GIF minimum
	// most decoders honour).
	DelayMS int

	// Workers bounds the number of frames rendered concurrently for
	// animated formats. Zero means one worker per CPU.
	Workers int
}

func (o Options) scale() int {
	if o.Scale < 1 {
		return 1
	}
	return o.Scale
}

func (o Options) delay() int {
	if o.DelayMS < 10 {
		return 10
	}
	return o.DelayMS
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.NumCPU()
}

// RGB24 writes the device byte stream for frames [0, FrameCount): three
// bytes per pixel in row-major order, frames back to back. This is the
// format hardware upload tools feed to the matrix controller.
func RGB24(w io.Writer, pat *lmx.Pattern) error {
	buf := make([]byte, pat.Width()*pat.Height()*3)
	for frame := 0; frame < pat.FrameCount(); frame++ {
		pixels := pat.Render(frame)
		for i, px := range pixels {
			buf[i*3] = px.R
			buf[i*3+1] = px.G
			buf[i*3+2] = px.B
		}
		if _, err := w.Write(buf); err != nil {
			return errors.Wrapf(err, "writing frame %d", frame)
		}
	}
	return nil
}

// PNG writes a single rendered frame as a PNG still.
func PNG(w io.Writer, pat *lmx.Pattern, frame int, opts Options) error {
	img := frameImage(pat, frame, opts.scale())
	defer defaultPool.put(img)
	if err := png.Encode(w, img); err != nil {
		return errors.Wrapf(err, "encoding frame %d", frame)
	}
	return nil
}

// GIF writes frames [0, FrameCount) as an animated GIF with an infinite
// loop. Frames render concurrently; palettization and encoding stay
// sequential to keep the output deterministic.
func GIF(ctx context.Context, w io.Writer, pat *lmx.Pattern, opts Options) error {
	count := pat.FrameCount()
	scale := opts.scale()
	width := pat.Width() * scale
	height := pat.Height() * scale

	paletted := make([]*image.Paletted, count)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())
	for frame := 0; frame < count; frame++ {
		frame := frame
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img := frameImage(pat, frame, scale)
			pal := image.NewPaletted(image.Rect(0, 0, width, height), palette.Plan9)
			draw.Draw(pal, pal.Bounds(), img, image.Point{}, draw.Src)
			defaultPool.put(img)
			paletted[frame] = pal
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return errors.Wrap(err, "rendering frames")
	}

	anim := &gif.GIF{LoopCount: 0}
	delay := opts.delay() / 10 // gif delays are in centiseconds
	for _, pal := range paletted {
		anim.Image = append(anim.Image, pal)
		anim.Delay = append(anim.Delay, delay)
	}
	if err := gif.EncodeAll(w, anim); err != nil {
		return errors.Wrap(err, "encoding gif")
	}
	return nil
}

// frameImage renders one frame and upscales it by the integer factor
// with nearest-neighbour sampling. The returned image comes from the
// package pool; callers hand it back with defaultPool.put.
func frameImage(pat *lmx.Pattern, frame, scale int) *image.NRGBA {
	src := lmx.ToImage(pat.Render(frame), pat.Width(), pat.Height())
	if scale == 1 {
		dst := defaultPool.get(pat.Width(), pat.Height())
		draw.Draw(dst, dst.Bounds(), src, image.Point{}, draw.Src)
		return dst
	}
	dst := defaultPool.get(pat.Width()*scale, pat.Height()*scale)
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}
