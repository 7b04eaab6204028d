// Command lmxserve runs the live preview server: it renders a pattern
// in a loop and streams frames to WebSocket clients, optionally
// announcing itself on the LAN via mDNS.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/lumatrix/lmx"
	"github.com/lumatrix/lmx/internal/config"
	"github.com/lumatrix/lmx/internal/stream"
	"github.com/lumatrix/lmx/internal/template"
)

func main() {
	var (
		cfgPath = flag.String("config", "", "YAML config file (defaults apply when empty)")
		text    = flag.String("text", "LMX", "marquee text to display")
	)
	flag.Parse()

	lmx.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}

	pat, err := buildPattern(cfg, *text)
	if err != nil {
		log.Fatalf("Failed to build pattern: %v", err)
	}

	server := stream.NewServer(pat, cfg.FPS)
	if cfg.Advertise {
		if err := server.Advertise(listenPort(cfg.Listen)); err != nil {
			// Preview still works without discovery.
			lmx.Logger().Warn("mdns advertisement failed", "err", err)
		}
		defer server.Shutdown()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		if err := server.Run(ctx); err != nil && err != context.Canceled {
			log.Fatalf("Broadcast loop failed: %v", err)
		}
	}()

	mux := http.NewServeMux()
	mux.Handle("/ws", server)
	httpServer := &http.Server{Addr: cfg.Listen, Handler: mux}
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	log.Printf("Preview server listening on %s (%dx%d @ %d fps)\n",
		cfg.Listen, cfg.Width, cfg.Height, cfg.FPS)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server failed: %v", err)
	}
}

// buildPattern assembles the served content: a marquee over a dim
// gradient, sized from the config.
func buildPattern(cfg *config.Config, text string) (*lmx.Pattern, error) {
	pat, err := lmx.NewPattern(cfg.Width, cfg.Height, lmx.WithFrameCount(cfg.FrameCount))
	if err != nil {
		return nil, err
	}

	backdrop := lmx.NewTrack("backdrop")
	backdrop.Opacity = 0.2
	if err := pat.AddTrack(backdrop); err != nil {
		return nil, err
	}
	marquee := lmx.NewTrack("marquee")
	marquee.ZIndex = 10
	if err := pat.AddTrack(marquee); err != nil {
		return nil, err
	}

	gradient := template.HorizontalGradient(cfg.Width, cfg.Height,
		lmx.Pixel{B: 200}, lmx.Pixel{G: 200})
	glyphs, textWidth, textHeight := template.Text(text, lmx.Pixel{R: 255, G: 255, B: 255})
	banner := lmx.NewBuffer(cfg.Width, cfg.Height)
	yOff := (cfg.Height - textHeight) / 2
	if yOff < 0 {
		yOff = 0
	}
	for y := 0; y < textHeight && y+yOff < cfg.Height; y++ {
		for x := 0; x < textWidth && x < cfg.Width; x++ {
			banner[lmx.Index(x, y+yOff, cfg.Width)] = glyphs[lmx.Index(x, y, textWidth)]
		}
	}

	for frame := 0; frame < cfg.FrameCount; frame++ {
		if err := storeFrame(pat, backdrop.ID, frame, gradient); err != nil {
			return nil, err
		}
		if err := storeFrame(pat, marquee.ID, frame, banner); err != nil {
			return nil, err
		}
	}

	sess, err := pat.BeginEdit(marquee.ID, 0)
	if err != nil {
		return nil, err
	}
	defer sess.End()
	err = sess.AddAction(lmx.Action{
		Params: lmx.ScrollParams{Direction: lmx.DirLeft, Offset: 1},
		Start:  0,
	})
	return pat, err
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

func listenPort(addr string) int {
	if i := strings.LastIndex(addr, ":"); i >= 0 {
		if port, err := strconv.Atoi(addr[i+1:]); err == nil {
			return port
		}
	}
	return 8089
}
