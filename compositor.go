package lmx

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
)

// Pattern is an animated LED-matrix document: fixed dimensions, a total
// frame count, and an ordered collection of tracks and groups.
//
// Rendering is a pure read; any number of renders may run concurrently.
// Mutation goes through an EditSession (see BeginEdit) and is rejected
// while a render is in flight.
type Pattern struct {
	width      int
	height     int
	frameCount int

	mu      sync.Mutex
	tracks  []*Track
	groups  map[string]*Group
	nextSeq int

	session   *EditSession
	rendering atomic.Int32
}

// NewPattern creates an empty pattern with the given matrix dimensions.
//
// Example:
//
//	pat, err := lmx.NewPattern(16, 16, lmx.WithFrameCount(60))
//	if err != nil {
//		log.Fatal(err)
//	}
func NewPattern(width, height int, opts ...PatternOption) (*Pattern, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadDimensions, width, height)
	}
	p := &Pattern{
		width:      width,
		height:     height,
		frameCount: 1,
		groups:     make(map[string]*Group),
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Width returns the matrix width in pixels.
func (p *Pattern) Width() int { return p.width }

// Height returns the matrix height in pixels.
func (p *Pattern) Height() int { return p.height }

// FrameCount returns the pattern's total timeline length. Tracks may
// store frames sparsely anywhere on the timeline.
func (p *Pattern) FrameCount() int { return p.frameCount }

// SetFrameCount extends or shortens the timeline. Stored frames beyond
// the new count are kept; they simply fall outside what players iterate.
func (p *Pattern) SetFrameCount(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if n < 1 {
		n = 1
	}
	p.frameCount = n
}

// AddTrack appends a track to the pattern. Every frame the track
// already stores must match the pattern's dimensions.
func (p *Pattern) AddTrack(t *Track) error {
	want := p.width * p.height
	for _, idx := range t.FrameIndices() {
		if f := t.FrameAt(idx); f != nil && len(f.Pixels) != want {
			return fmt.Errorf("%w: track %q frame %d has %d pixels, want %d",
				ErrBufferLength, t.Name, idx, len(f.Pixels), want)
		}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	t.seq = p.nextSeq
	p.nextSeq++
	p.tracks = append(p.tracks, t)
	return nil
}

// RemoveTrack deletes the track with the given ID.
func (p *Pattern) RemoveTrack(id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, t := range p.tracks {
		if t.ID == id {
			p.tracks = append(p.tracks[:i], p.tracks[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownTrack, id)
}

// Tracks returns the pattern's tracks in insertion order. The slice is
// a copy; the tracks themselves are shared.
func (p *Pattern) Tracks() []*Track {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*Track, len(p.tracks))
	copy(out, p.tracks)
	return out
}

// TrackByID looks a track up by its stable ID.
func (p *Pattern) TrackByID(id string) (*Track, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, t := range p.tracks {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownTrack, id)
}

// AddGroup registers a group. Tracks opt in by setting GroupID.
func (p *Pattern) AddGroup(g *Group) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.groups[g.ID] = g
}

// GroupByID looks a group up by ID, returning nil if absent.
func (p *Pattern) GroupByID(id string) *Group {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.groups[id]
}

// Render computes the final composite for one frame index. It is
// side-effect-free and deterministic: repeated calls, in any order,
// yield bit-identical buffers.
//
// Compositing walks tracks ascending by (ZIndex, insertion order). For
// each contributing track the evaluated pixels overwrite the output
// wherever they are not exactly black; black acts as transparent and
// lets lower tracks show through. A pixel dimmed to (0,0,0) by opacity
// is indistinguishable from a transparent one, which reproduces the
// legacy tool rather than "fixing" it.
func (p *Pattern) Render(frame int) []Pixel {
	p.rendering.Add(1)
	defer p.rendering.Add(-1)

	p.mu.Lock()
	tracks := make([]*Track, len(p.tracks))
	copy(tracks, p.tracks)
	groups := make(map[string]*Group, len(p.groups))
	for id, g := range p.groups {
		groups[id] = g
	}
	p.mu.Unlock()

	return RenderTracks(tracks, groups, frame, p.width, p.height)
}

// RenderTracks is the pure compositor underneath Pattern.Render. It
// reads the tracks and groups without mutating them and returns a fresh
// width*height buffer. Callers that manage their own track collections
// (exporters, previews) can use it directly.
func RenderTracks(tracks []*Track, groups map[string]*Group, frame, width, height int) []Pixel {
	out := NewBuffer(width, height)

	sorted := make([]*Track, len(tracks))
	copy(sorted, tracks)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].ZIndex != sorted[j].ZIndex {
			return sorted[i].ZIndex < sorted[j].ZIndex
		}
		return sorted[i].seq < sorted[j].seq
	})

	for _, t := range sorted {
		groupOpacity := 1.0
		if t.GroupID != "" {
			if g, ok := groups[t.GroupID]; ok && g != nil {
				if !g.Visible {
					continue
				}
				groupOpacity = g.Opacity
			}
		}
		pixels := evaluateTrack(t, frame, width, height, groupOpacity)
		if pixels == nil {
			continue
		}
		for i, px := range pixels {
			if !px.IsBlack() {
				out[i] = px
			}
		}
	}
	return out
}

// Resize changes the matrix dimensions and re-fits every stored frame
// in every track: pixels beyond the new size are dropped, new positions
// are filled black. Resize is rejected while a render is in flight.
func (p *Pattern) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrBadDimensions, width, height)
	}
	if p.rendering.Load() > 0 {
		return ErrRenderInProgress
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, t := range p.tracks {
		for _, idx := range t.FrameIndices() {
			f := t.FrameAt(idx)
			f.Pixels = padBuffer(f.Pixels, width, height)
		}
	}
	p.width = width
	p.height = height
	return nil
}
