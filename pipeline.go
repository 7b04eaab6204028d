package lmx

// evaluateTrack runs one track's automation pipeline for a single frame
// and returns the transformed, opacity-scaled buffer, or nil when the
// track contributes nothing (no stored frame, outside its window, or
// hidden). groupOpacity is the owning group's opacity, 1 when the track
// is ungrouped.
//
// The pipeline obeys two rules at once: within a frame, each action
// operates on the output of the previous one (same-frame chaining), but
// every frame's pipeline restarts from that frame's own stored pixels
// (no cross-frame accumulation). A later render of an earlier frame
// therefore sees exactly what the first render of it saw.
func evaluateTrack(t *Track, frame, width, height int, groupOpacity float64) []Pixel {
	if !t.activeAt(frame) {
		return nil
	}
	base := t.FrameAt(frame)
	if base == nil {
		return nil
	}
	if !base.effectiveVisible(t.Visible) {
		return nil
	}

	buf := CloneBuffer(base.Pixels)
	for _, action := range sortActions(t.actions) {
		step, ok := action.Step(frame)
		if !ok {
			continue
		}
		Logger().Debug("applying action",
			"track", t.Name, "kind", action.Kind().String(), "frame", frame, "step", step)
		buf = applyAction(buf, action.Params, step, width, height)
	}

	opacity := base.effectiveOpacity(t.Opacity) * clampOpacity(groupOpacity)
	return applyOpacity(buf, opacity)
}
