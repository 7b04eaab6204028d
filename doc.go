// Package lmx is a frame-indexed layer engine for LED-matrix animations.
//
// # Overview
//
// lmx models an animation as a set of layer tracks, each spanning the whole
// pattern timeline the way tracks do in a video editor. A track owns sparse
// per-frame pixel content, a z-order key, default visibility and opacity, an
// activity window, and an ordered list of automation actions (scroll, rotate,
// mirror, bounce, wipe, reveal, invert). The compositor folds the tracks into
// a final pixel buffer for any requested frame index.
//
// The engine reproduces the rendering of a legacy matrix-design tool exactly,
// byte for byte. That fixes several behaviors that look like quirks but are
// contractual: automation steps are always recomputed from the frame index
// (never accumulated across frames), opacity scales brightness rather than
// alpha-blending, and a rendered-black pixel is transparent to the layers
// beneath it.
//
// # Quick Start
//
//	import "github.com/lumatrix/lmx"
//
//	pat, _ := lmx.NewPattern(16, 8, lmx.WithFrameCount(32))
//	track := lmx.NewTrack("sprite")
//	pat.AddTrack(track)
//
//	sess, _ := pat.BeginEdit(track.ID, 0)
//	frame, _ := sess.CreateFrame()
//	frame.Pixels[lmx.Index(0, 3, 16)] = lmx.Pixel{R: 255}
//	sess.AddAction(lmx.Action{
//		Params: lmx.ScrollParams{Direction: lmx.DirRight, Offset: 1},
//	})
//	sess.End()
//
//	pixels := pat.Render(5) // deterministic, side-effect free
//
// # Rendering Model
//
// Render is a pure function of (tracks, frame index). For each track, the
// pipeline starts from that frame's stored base pixels, applies the active
// actions in a fixed priority order (scroll before rotate before mirror, with
// invert last), scales brightness by the effective opacity, and overwrites
// the composite with every non-black pixel. Rendering frames out of order, or
// repeatedly, yields bit-identical results.
//
// # Authoring
//
// Mutation goes through an EditSession bound to one (track, frame index)
// pair. Calls from a session that is no longer the active one fail with
// ErrIsolation, and all mutation fails while a render is in progress. Frames
// are never created implicitly: reads return nothing for absent frames, and
// editing an absent frame is an error distinct from editing an empty one.
//
// # Coordinate System
//
//   - Origin (0,0) at top-left
//   - X increases right, Y increases down
//   - Buffers are row-major: index = y*width + x
package lmx

// Version is the current version of the library.
const Version = "0.3.0"
