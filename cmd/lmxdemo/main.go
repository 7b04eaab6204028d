// Command lmxdemo builds a demonstration pattern and exports it as an
// animated GIF: a gradient backdrop, a scrolling text marquee, and a
// QR code that wipes into view.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/lumatrix/lmx"
	"github.com/lumatrix/lmx/internal/export"
	"github.com/lumatrix/lmx/internal/template"
)

func main() {
	var (
		width   = flag.Int("width", 32, "matrix width")
		height  = flag.Int("height", 16, "matrix height")
		frames  = flag.Int("frames", 80, "timeline length")
		scale   = flag.Int("scale", 8, "image upscale factor")
		text    = flag.String("text", "LMX", "marquee text")
		output  = flag.String("output", "demo.gif", "output file")
		rawOut  = flag.String("raw", "", "also write a raw RGB24 device stream to this file")
		verbose = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *verbose {
		lmx.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	pat, err := buildDemo(*width, *height, *frames, *text)
	if err != nil {
		log.Fatalf("Failed to build pattern: %v", err)
	}

	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("Failed to create output: %v", err)
	}
	defer f.Close()

	opts := export.Options{Scale: *scale, DelayMS: 50}
	if err := export.GIF(context.Background(), f, pat, opts); err != nil {
		log.Fatalf("Failed to export: %v", err)
	}
	log.Printf("Demo saved to %s (%d frames, %dx%d)\n", *output, *frames, *width, *height)

	if *rawOut != "" {
		raw, err := os.Create(*rawOut)
		if err != nil {
			log.Fatalf("Failed to create raw output: %v", err)
		}
		defer raw.Close()
		if err := export.RGB24(raw, pat); err != nil {
			log.Fatalf("Failed to export raw stream: %v", err)
		}
		log.Printf("Device stream saved to %s\n", *rawOut)
	}
}

func buildDemo(width, height, frames int, text string) (*lmx.Pattern, error) {
	pat, err := lmx.NewPattern(width, height, lmx.WithFrameCount(frames))
	if err != nil {
		return nil, err
	}

	if err := addBackdrop(pat, width, height, frames); err != nil {
		return nil, err
	}
	if err := addMarquee(pat, width, height, frames, text); err != nil {
		return nil, err
	}
	if err := addQR(pat, height, frames); err != nil {
		return nil, err
	}
	return pat, nil
}

// addBackdrop fills the bottom of the z-order with a dim gradient.
func addBackdrop(pat *lmx.Pattern, width, height, frames int) error {
	track := lmx.NewTrack("backdrop")
	track.ZIndex = 0
	track.Opacity = 0.25
	if err := pat.AddTrack(track); err != nil {
		return err
	}
	gradient := template.HorizontalGradient(width, height,
		lmx.Pixel{B: 160}, lmx.Pixel{R: 160})
	for frame := 0; frame < frames; frame++ {
		if err := storeFrame(pat, track.ID, frame, gradient); err != nil {
			return err
		}
	}
	return nil
}

// addMarquee renders the text once and lets a scroll action walk it
// across the matrix, one pixel per frame.
func addMarquee(pat *lmx.Pattern, width, height, frames int, text string) error {
	ink := lmx.Pixel{G: 255}
	glyphs, textWidth, textHeight := template.Text(text, ink)

	track := lmx.NewTrack("marquee")
	track.ZIndex = 10
	if err := pat.AddTrack(track); err != nil {
		return err
	}

	// Stamp the text at the right edge of every frame's buffer; the
	// scroll action moves it left over time.
	yOff := (height - textHeight) / 2
	if yOff < 0 {
		yOff = 0
	}
	buf := lmx.NewBuffer(width, height)
	for y := 0; y < textHeight && y+yOff < height; y++ {
		for x := 0; x < textWidth && x < width; x++ {
			buf[lmx.Index(x, y+yOff, width)] = glyphs[lmx.Index(x, y, textWidth)]
		}
	}
	for frame := 0; frame < frames; frame++ {
		if err := storeFrame(pat, track.ID, frame, buf); err != nil {
			return err
		}
	}

	sess, err := pat.BeginEdit(track.ID, 0)
	if err != nil {
		return err
	}
	defer sess.End()
	return sess.AddAction(lmx.Action{
		Params: lmx.ScrollParams{Direction: lmx.DirLeft, Offset: 1},
		Start:  0,
	})
}

// addQR shows a QR code in the second half of the timeline, revealed
// left to right.
func addQR(pat *lmx.Pattern, height, frames int) error {
	code, err := template.QR("https://github.com/lumatrix/lmx", height, lmx.Pixel{R: 255, G: 255, B: 255})
	if err != nil {
		return err
	}

	track := lmx.NewTrack("qr")
	track.ZIndex = 20
	track.Start = frames / 2
	if err := pat.AddTrack(track); err != nil {
		return err
	}

	width := pat.Width()
	buf := lmx.NewBuffer(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < height && x < width; x++ {
			buf[lmx.Index(x, y, width)] = code[lmx.Index(x, y, height)]
		}
	}
	for frame := frames / 2; frame < frames; frame++ {
		if err := storeFrame(pat, track.ID, frame, buf); err != nil {
			return err
		}
	}

	sess, err := pat.BeginEdit(track.ID, 0)
	if err != nil {
		return err
	}
	defer sess.End()
	return sess.AddAction(lmx.Action{
		Params: lmx.RevealParams{Edge: lmx.EdgeLeft, Offset: 2},
		Start:  frames / 2,
	})
}

func storeFrame(pat *lmx.Pattern, trackID string, frame int, pixels []lmx.Pixel) error {
	sess, err := pat.BeginEdit(trackID, frame)
	if err != nil {
		return err
	}
	defer sess.End()
	if _, err := sess.CreateFrame(); err != nil {
		return err
	}
	return sess.SetPixels(pixels)
}
