package lmx

import "github.com/google/uuid"

// Track is a named layer spanning the whole pattern timeline, analogous
// to a track in a video editor. It owns a sparse set of Frames, an
// ordered list of automation actions, a z-order key and default
// visibility/opacity, and an activity window outside of which it
// contributes nothing.
type Track struct {
	// ID is a stable identity independent of the track's position.
	ID string

	// Name is the display name shown by authoring tools.
	Name string

	// ZIndex is the compositing order key: lower renders first (bottom).
	// Ties are broken by insertion order, ascending.
	ZIndex int

	// Visible is the track-level default; frames may override it.
	Visible bool

	// Opacity is the track-level default in [0, 1]; frames may override it.
	Opacity float64

	// Locked rejects all edits to the track until cleared.
	Locked bool

	// GroupID names the owning group, empty for ungrouped tracks.
	GroupID string

	// Start and End bound the track's activity window, inclusive.
	// End == nil means unbounded upward.
	Start int
	End   *int

	frames  map[int]*Frame
	actions []Action

	// seq is the insertion order within the owning pattern, used to
	// break z-index ties deterministically.
	seq int
}

// NewTrack creates an unlocked, fully visible track with a fresh ID and
// no stored frames.
func NewTrack(name string) *Track {
	return &Track{
		ID:      uuid.NewString(),
		Name:    name,
		Visible: true,
		Opacity: 1.0,
		frames:  make(map[int]*Frame),
	}
}

// activeAt reports whether frame falls inside the track's window.
func (t *Track) activeAt(frame int) bool {
	if frame < t.Start {
		return false
	}
	if t.End != nil && frame > *t.End {
		return false
	}
	return true
}

// FrameAt returns the stored frame at index, or nil. It never creates:
// absence means the track has no content there.
func (t *Track) FrameAt(index int) *Frame {
	if t.frames == nil {
		return nil
	}
	return t.frames[index]
}

// FrameIndices returns the indices at which the track stores frames,
// in unspecified order.
func (t *Track) FrameIndices() []int {
	indices := make([]int, 0, len(t.frames))
	for idx := range t.frames {
		indices = append(indices, idx)
	}
	return indices
}

// FrameCount returns the number of stored frames.
func (t *Track) FrameCount() int { return len(t.frames) }

// Actions returns a copy of the track's automation list in insertion
// order. Priority sorting happens at render time.
func (t *Track) Actions() []Action {
	out := make([]Action, len(t.actions))
	copy(out, t.actions)
	return out
}

// Clone returns a deep copy of the track, sharing nothing with the
// original. The copy keeps the same ID.
func (t *Track) Clone() *Track {
	c := *t
	c.frames = make(map[int]*Frame, len(t.frames))
	for idx, f := range t.frames {
		c.frames[idx] = f.Clone()
	}
	c.actions = make([]Action, len(t.actions))
	copy(c.actions, t.actions)
	return &c
}

// setFrame stores f at index, replacing any existing frame. Callers go
// through an EditSession; this is the unguarded primitive.
func (t *Track) setFrame(index int, f *Frame) {
	if t.frames == nil {
		t.frames = make(map[int]*Frame)
	}
	t.frames[index] = f
}
