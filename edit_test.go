package lmx

import (
	"errors"
	"testing"
)

func patternWithTrack(t *testing.T) (*Pattern, *Track) {
	t.Helper()
	p := newTestPattern(t, 4, 4)
	tr := NewTrack("layer 1")
	if err := p.AddTrack(tr); err != nil {
		t.Fatal(err)
	}
	return p, tr
}

func TestBeginEditUnknownTrack(t *testing.T) {
	p := newTestPattern(t, 2, 2)
	if _, err := p.BeginEdit("nope", 0); !errors.Is(err, ErrUnknownTrack) {
		t.Errorf("BeginEdit on unknown track: %v, want ErrUnknownTrack", err)
	}
}

func TestBeginEditLockedTrack(t *testing.T) {
	p, tr := patternWithTrack(t)
	tr.Locked = true
	if _, err := p.BeginEdit(tr.ID, 0); !errors.Is(err, ErrTrackLocked) {
		t.Errorf("BeginEdit on locked track: %v, want ErrTrackLocked", err)
	}
}

func TestCreateDeleteFrame(t *testing.T) {
	p, tr := patternWithTrack(t)
	sess, err := p.BeginEdit(tr.ID, 3)
	if err != nil {
		t.Fatal(err)
	}
	defer sess.End()

	f, err := sess.CreateFrame()
	if err != nil {
		t.Fatalf("CreateFrame: %v", err)
	}
	if len(f.Pixels) != 16 {
		t.Errorf("new frame has %d pixels, want 16", len(f.Pixels))
	}
	if tr.FrameAt(3) != f {
		t.Error("created frame not stored at index 3")
	}

	// A second create at the same index is rejected, never overwritten.
	if _, err := sess.CreateFrame(); !errors.Is(err, ErrFrameExists) {
		t.Errorf("duplicate CreateFrame: %v, want ErrFrameExists", err)
	}

	if err := sess.DeleteFrame(); err != nil {
		t.Fatalf("DeleteFrame: %v", err)
	}
	if tr.FrameAt(3) != nil {
		t.Error("frame still stored after delete")
	}
	if err := sess.DeleteFrame(); !errors.Is(err, ErrMissingFrame) {
		t.Errorf("deleting absent frame: %v, want ErrMissingFrame", err)
	}
}

func TestFrameForEditRequiresCreation(t *testing.T) {
	p, tr := patternWithTrack(t)
	sess, err := p.BeginEdit(tr.ID, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer sess.End()

	if _, err := sess.FrameForEdit(); !errors.Is(err, ErrMissingFrame) {
		t.Errorf("FrameForEdit on absent frame: %v, want ErrMissingFrame", err)
	}

	// Reads never create.
	f, err := sess.FrameForRead()
	if err != nil {
		t.Fatal(err)
	}
	if f != nil {
		t.Error("FrameForRead returned a frame that was never created")
	}
	if tr.FrameAt(0) != nil {
		t.Error("FrameForRead materialized a frame")
	}
}

func TestSetPixel(t *testing.T) {
	p, tr := patternWithTrack(t)
	sess, err := p.BeginEdit(tr.ID, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer sess.End()

	if err := sess.SetPixel(1, 1, Pixel{R: 9}); !errors.Is(err, ErrMissingFrame) {
		t.Errorf("SetPixel without a frame: %v, want ErrMissingFrame", err)
	}
	if _, err := sess.CreateFrame(); err != nil {
		t.Fatal(err)
	}
	if err := sess.SetPixel(1, 1, Pixel{R: 9}); err != nil {
		t.Fatal(err)
	}
	if got := tr.FrameAt(0).Pixels[Index(1, 1, 4)]; got != (Pixel{R: 9}) {
		t.Errorf("pixel = %v, want {9 0 0}", got)
	}
	if err := sess.SetPixel(4, 0, Pixel{}); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("out-of-bounds SetPixel: %v, want ErrOutOfBounds", err)
	}
}

func TestSetPixelsValidatesLength(t *testing.T) {
	p, tr := patternWithTrack(t)
	sess, err := p.BeginEdit(tr.ID, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer sess.End()
	if _, err := sess.CreateFrame(); err != nil {
		t.Fatal(err)
	}
	if err := sess.SetPixels(make([]Pixel, 3)); !errors.Is(err, ErrBufferLength) {
		t.Errorf("short buffer: %v, want ErrBufferLength", err)
	}
	if err := sess.SetPixels(make([]Pixel, 16)); err != nil {
		t.Errorf("exact buffer rejected: %v", err)
	}
}

func TestStaleSessionIsolation(t *testing.T) {
	p, tr := patternWithTrack(t)
	other := NewTrack("layer 2")
	if err := p.AddTrack(other); err != nil {
		t.Fatal(err)
	}

	first, err := p.BeginEdit(tr.ID, 0)
	if err != nil {
		t.Fatal(err)
	}
	// Beginning a second session invalidates the first: a stale writer
	// can no longer touch a track it no longer owns.
	second, err := p.BeginEdit(other.ID, 2)
	if err != nil {
		t.Fatal(err)
	}
	defer second.End()

	if _, err := first.CreateFrame(); !errors.Is(err, ErrIsolation) {
		t.Errorf("stale session CreateFrame: %v, want ErrIsolation", err)
	}
	if err := first.AddAction(Action{Params: InvertParams{}}); !errors.Is(err, ErrIsolation) {
		t.Errorf("stale session AddAction: %v, want ErrIsolation", err)
	}
	if tr.FrameAt(0) != nil || len(tr.Actions()) != 0 {
		t.Error("stale session mutated its track anyway")
	}

	// The active session still works.
	if _, err := second.CreateFrame(); err != nil {
		t.Errorf("active session CreateFrame: %v", err)
	}
}

func TestEndedSessionIsolation(t *testing.T) {
	p, tr := patternWithTrack(t)
	sess, err := p.BeginEdit(tr.ID, 0)
	if err != nil {
		t.Fatal(err)
	}
	sess.End()
	if _, err := sess.CreateFrame(); !errors.Is(err, ErrIsolation) {
		t.Errorf("ended session CreateFrame: %v, want ErrIsolation", err)
	}
}

func TestLockDuringSession(t *testing.T) {
	p, tr := patternWithTrack(t)
	sess, err := p.BeginEdit(tr.ID, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer sess.End()

	tr.Locked = true
	if _, err := sess.CreateFrame(); !errors.Is(err, ErrTrackLocked) {
		t.Errorf("locked mid-session CreateFrame: %v, want ErrTrackLocked", err)
	}
}

func TestSessionActionEditing(t *testing.T) {
	p, tr := patternWithTrack(t)
	sess, err := p.BeginEdit(tr.ID, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer sess.End()

	if err := sess.AddAction(Action{Params: ScrollParams{Direction: DirLeft, Offset: 2}, Start: 1}); err != nil {
		t.Fatal(err)
	}
	if err := sess.AddAction(Action{Params: InvertParams{}, Start: 0}); err != nil {
		t.Fatal(err)
	}
	if got := len(tr.Actions()); got != 2 {
		t.Fatalf("track has %d actions, want 2", got)
	}

	if err := sess.RemoveAction(0); err != nil {
		t.Fatal(err)
	}
	actions := tr.Actions()
	if len(actions) != 1 || actions[0].Kind() != ActionInvert {
		t.Errorf("after removal actions = %v", actions)
	}
	if err := sess.RemoveAction(5); err == nil {
		t.Error("RemoveAction accepted an out-of-range index")
	}

	if err := sess.SetActions(nil); err != nil {
		t.Fatal(err)
	}
	if len(tr.Actions()) != 0 {
		t.Error("SetActions(nil) did not clear the list")
	}
}

func TestSessionTrackProperties(t *testing.T) {
	p, tr := patternWithTrack(t)
	sess, err := p.BeginEdit(tr.ID, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer sess.End()

	if err := sess.ReorderTrack(7); err != nil {
		t.Fatal(err)
	}
	if tr.ZIndex != 7 {
		t.Errorf("ZIndex = %d, want 7", tr.ZIndex)
	}
	if err := sess.SetTrackOpacity(1.5); err != nil {
		t.Fatal(err)
	}
	if tr.Opacity != 1.0 {
		t.Errorf("opacity not clamped: %v", tr.Opacity)
	}
	if err := sess.SetTrackVisible(false); err != nil {
		t.Fatal(err)
	}
	if tr.Visible {
		t.Error("SetTrackVisible(false) had no effect")
	}
	if err := sess.SetWindow(2, intPtr(9)); err != nil {
		t.Fatal(err)
	}
	if tr.Start != 2 || tr.End == nil || *tr.End != 9 {
		t.Errorf("window = [%d, %v]", tr.Start, tr.End)
	}
}

func TestOverrideEditing(t *testing.T) {
	p, tr := patternWithTrack(t)
	sess, err := p.BeginEdit(tr.ID, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer sess.End()
	if _, err := sess.CreateFrame(); err != nil {
		t.Fatal(err)
	}

	if err := sess.SetVisibleOverride(boolPtr(false)); err != nil {
		t.Fatal(err)
	}
	if err := sess.SetOpacityOverride(floatPtr(2.0)); err != nil {
		t.Fatal(err)
	}
	f := tr.FrameAt(0)
	if f.Visible == nil || *f.Visible {
		t.Error("visible override not stored")
	}
	if f.Opacity == nil || *f.Opacity != 1.0 {
		t.Errorf("opacity override not clamped: %v", f.Opacity)
	}

	if err := sess.SetOpacityOverride(nil); err != nil {
		t.Fatal(err)
	}
	if f.Opacity != nil {
		t.Error("nil override did not restore inheritance")
	}
}

func TestEditsBlockedDuringRender(t *testing.T) {
	p, tr := patternWithTrack(t)
	sess, err := p.BeginEdit(tr.ID, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer sess.End()
	if _, err := sess.CreateFrame(); err != nil {
		t.Fatal(err)
	}

	// Raise the render gate the way an in-flight Render does.
	p.rendering.Add(1)

	if _, err := sess.FrameForEdit(); !errors.Is(err, ErrRenderInProgress) {
		t.Errorf("FrameForEdit during render: %v, want ErrRenderInProgress", err)
	}
	if err := sess.SetPixel(0, 0, Pixel{R: 1}); !errors.Is(err, ErrRenderInProgress) {
		t.Errorf("SetPixel during render: %v, want ErrRenderInProgress", err)
	}
	if err := sess.DeleteFrame(); !errors.Is(err, ErrRenderInProgress) {
		t.Errorf("DeleteFrame during render: %v, want ErrRenderInProgress", err)
	}
	if tr.FrameAt(0) == nil {
		t.Error("frame mutated while render gate was up")
	}
	if err := p.Resize(8, 8); !errors.Is(err, ErrRenderInProgress) {
		t.Errorf("Resize during render: %v, want ErrRenderInProgress", err)
	}
	if p.Width() != 4 {
		t.Errorf("width changed to %d while render gate was up", p.Width())
	}

	// Once the render completes, the same session works again.
	p.rendering.Add(-1)
	if err := sess.SetPixel(0, 0, Pixel{R: 1}); err != nil {
		t.Errorf("SetPixel after render finished: %v", err)
	}
}
