package lmx

import "fmt"

// EditSession is the single-writer gate for authoring. A session binds
// one (track, frame index) pair; every mutating call is checked against
// that pair and fails fast with ErrIsolation if the session is no
// longer the pattern's active one. This makes "edits only ever affect
// the layer and frame the caller believes is active" a checkable
// invariant instead of a convention.
//
// Sessions are not thread locks. Beginning a new session replaces the
// previous one, whose further calls all return ErrIsolation.
//
// Example:
//
//	sess, err := pat.BeginEdit(track.ID, 0)
//	if err != nil {
//		return err
//	}
//	if _, err := sess.CreateFrame(); err != nil {
//		return err
//	}
//	if err := sess.SetPixel(3, 2, lmx.Pixel{R: 255}); err != nil {
//		return err
//	}
//	sess.End()
type EditSession struct {
	pattern *Pattern
	track   *Track
	frame   int
}

// BeginEdit activates an edit session for one track and frame index.
// Any previously active session is invalidated. Editing a locked track
// is rejected up front.
func (p *Pattern) BeginEdit(trackID string, frame int) (*EditSession, error) {
	track, err := p.TrackByID(trackID)
	if err != nil {
		return nil, err
	}
	if track.Locked {
		return nil, fmt.Errorf("%w: %s", ErrTrackLocked, track.Name)
	}
	s := &EditSession{pattern: p, track: track, frame: frame}
	p.mu.Lock()
	p.session = s
	p.mu.Unlock()
	return s, nil
}

// Track returns the track this session edits.
func (s *EditSession) Track() *Track { return s.track }

// FrameIndex returns the frame index this session edits.
func (s *EditSession) FrameIndex() int { return s.frame }

// End deactivates the session. Further calls on it return ErrIsolation.
// Ending a session that was already replaced is a no-op.
func (s *EditSession) End() {
	s.pattern.mu.Lock()
	if s.pattern.session == s {
		s.pattern.session = nil
	}
	s.pattern.mu.Unlock()
}

// guard rejects the call unless this session is still the active one,
// no render is in flight, and the track is not locked. No mutation
// happens past a failed guard.
func (s *EditSession) guard() error {
	if s.pattern.rendering.Load() > 0 {
		return ErrRenderInProgress
	}
	s.pattern.mu.Lock()
	active := s.pattern.session == s
	s.pattern.mu.Unlock()
	if !active {
		return fmt.Errorf("%w: session for track %q frame %d is not active",
			ErrIsolation, s.track.Name, s.frame)
	}
	if s.track.Locked {
		return fmt.Errorf("%w: %s", ErrTrackLocked, s.track.Name)
	}
	return nil
}

// CreateFrame stores a new all-black frame at the session's index.
// It fails with ErrFrameExists if the index already holds a frame:
// frames are replaced by explicit delete-then-create, never silently
// overwritten.
func (s *EditSession) CreateFrame() (*Frame, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	if s.track.FrameAt(s.frame) != nil {
		return nil, fmt.Errorf("%w: track %q frame %d", ErrFrameExists, s.track.Name, s.frame)
	}
	f := newFrame(s.pattern.width, s.pattern.height)
	s.track.setFrame(s.frame, f)
	return f, nil
}

// DeleteFrame removes the frame at the session's index. Deleting an
// absent frame is an error: the caller's model of the track is wrong.
func (s *EditSession) DeleteFrame() error {
	if err := s.guard(); err != nil {
		return err
	}
	if s.track.FrameAt(s.frame) == nil {
		return fmt.Errorf("%w: track %q frame %d", ErrMissingFrame, s.track.Name, s.frame)
	}
	delete(s.track.frames, s.frame)
	return nil
}

// FrameForEdit returns the frame at the session's index for mutation.
// It fails with ErrMissingFrame if the frame was never created; unlike
// a read, an edit cannot target content that does not exist.
func (s *EditSession) FrameForEdit() (*Frame, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	f := s.track.FrameAt(s.frame)
	if f == nil {
		return nil, fmt.Errorf("%w: track %q frame %d", ErrMissingFrame, s.track.Name, s.frame)
	}
	return f, nil
}

// FrameForRead returns the frame at the session's index, or nil if none
// exists. It never creates a frame.
func (s *EditSession) FrameForRead() (*Frame, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	return s.track.FrameAt(s.frame), nil
}

// SetPixel writes one pixel of the session's frame. The frame must
// already exist.
func (s *EditSession) SetPixel(x, y int, px Pixel) error {
	f, err := s.FrameForEdit()
	if err != nil {
		return err
	}
	if x < 0 || x >= s.pattern.width || y < 0 || y >= s.pattern.height {
		return fmt.Errorf("%w: (%d,%d) on %dx%d", ErrOutOfBounds, x, y, s.pattern.width, s.pattern.height)
	}
	f.Pixels[Index(x, y, s.pattern.width)] = px
	return nil
}

// SetPixels replaces the session frame's whole buffer. The replacement
// must be exactly width*height pixels.
func (s *EditSession) SetPixels(pixels []Pixel) error {
	f, err := s.FrameForEdit()
	if err != nil {
		return err
	}
	want := s.pattern.width * s.pattern.height
	if len(pixels) != want {
		return fmt.Errorf("%w: got %d, want %d", ErrBufferLength, len(pixels), want)
	}
	f.Pixels = CloneBuffer(pixels)
	return nil
}

// SetVisibleOverride sets or clears the frame's visibility override.
// nil restores inheritance from the track default.
func (s *EditSession) SetVisibleOverride(v *bool) error {
	f, err := s.FrameForEdit()
	if err != nil {
		return err
	}
	f.Visible = v
	return nil
}

// SetOpacityOverride sets or clears the frame's opacity override,
// clamped to [0, 1]. nil restores inheritance from the track default.
func (s *EditSession) SetOpacityOverride(o *float64) error {
	f, err := s.FrameForEdit()
	if err != nil {
		return err
	}
	if o != nil {
		c := clampOpacity(*o)
		o = &c
	}
	f.Opacity = o
	return nil
}

// AddAction appends an automation action to the session's track.
// Insertion order is preserved and only matters between actions of
// equal priority.
func (s *EditSession) AddAction(a Action) error {
	if err := s.guard(); err != nil {
		return err
	}
	s.track.actions = append(s.track.actions, a)
	return nil
}

// SetActions replaces the track's automation list.
func (s *EditSession) SetActions(actions []Action) error {
	if err := s.guard(); err != nil {
		return err
	}
	s.track.actions = make([]Action, len(actions))
	copy(s.track.actions, actions)
	return nil
}

// RemoveAction deletes the action at position i in insertion order.
func (s *EditSession) RemoveAction(i int) error {
	if err := s.guard(); err != nil {
		return err
	}
	if i < 0 || i >= len(s.track.actions) {
		return fmt.Errorf("lmx: action index %d out of range [0,%d)", i, len(s.track.actions))
	}
	s.track.actions = append(s.track.actions[:i], s.track.actions[i+1:]...)
	return nil
}

// ReorderTrack changes the session track's z-index. Ties against other
// tracks keep insertion order.
func (s *EditSession) ReorderTrack(zIndex int) error {
	if err := s.guard(); err != nil {
		return err
	}
	s.track.ZIndex = zIndex
	return nil
}

// SetTrackVisible sets the track-level default visibility.
func (s *EditSession) SetTrackVisible(v bool) error {
	if err := s.guard(); err != nil {
		return err
	}
	s.track.Visible = v
	return nil
}

// SetTrackOpacity sets the track-level default opacity, clamped to [0, 1].
func (s *EditSession) SetTrackOpacity(o float64) error {
	if err := s.guard(); err != nil {
		return err
	}
	s.track.Opacity = clampOpacity(o)
	return nil
}

// SetWindow bounds the track's activity window. end == nil leaves the
// window unbounded upward.
func (s *EditSession) SetWindow(start int, end *int) error {
	if err := s.guard(); err != nil {
		return err
	}
	s.track.Start = start
	if end != nil {
		e := *end
		end = &e
	}
	s.track.End = end
	return nil
}
