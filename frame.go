package lmx

// Frame is the explicit pixel content a track holds at one frame index.
//
// Frames exist sparsely: a Frame is created only by an explicit create
// operation and destroyed only by an explicit delete. A track with no
// Frame at an index contributes nothing to the composite there, which
// is distinct from holding a frame whose pixels are all black.
type Frame struct {
	// Pixels is the frame's content, exactly width*height entries in
	// row-major order.
	Pixels []Pixel

	// Visible overrides the track's default visibility for this frame.
	// nil inherits the track default.
	Visible *bool

	// Opacity overrides the track's default opacity for this frame,
	// clamped to [0, 1]. nil inherits the track default.
	Opacity *float64
}

// newFrame allocates an all-black frame for the given dimensions with
// no overrides.
func newFrame(width, height int) *Frame {
	return &Frame{Pixels: NewBuffer(width, height)}
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	c := &Frame{Pixels: CloneBuffer(f.Pixels)}
	if f.Visible != nil {
		v := *f.Visible
		c.Visible = &v
	}
	if f.Opacity != nil {
		o := *f.Opacity
		c.Opacity = &o
	}
	return c
}

// effectiveVisible resolves the frame override against the track default.
func (f *Frame) effectiveVisible(trackDefault bool) bool {
	if f.Visible != nil {
		return *f.Visible
	}
	return trackDefault
}

// effectiveOpacity resolves the frame override against the track
// default, clamping overrides to [0, 1].
func (f *Frame) effectiveOpacity(trackDefault float64) float64 {
	if f.Opacity != nil {
		return clampOpacity(*f.Opacity)
	}
	return trackDefault
}

func clampOpacity(o float64) float64 {
	if o < 0 {
		return 0
	}
	if o > 1 {
		return 1
	}
	return o
}
