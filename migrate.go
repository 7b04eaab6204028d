package lmx

import (
	"fmt"
	"sort"
)

// LegacyLayer is one named layer inside a single frame of the old
// per-frame document format, where every frame carried its own flat
// layer list instead of layers spanning the timeline.
type LegacyLayer struct {
	Name    string
	Pixels  []Pixel
	Visible bool
	Opacity float64
}

// FromLegacyFrames converts an old per-frame layer document into a
// Pattern. Layers sharing a name are grouped across frames into one
// track; the first frame (lowest index) at which a name appears
// supplies the track's default visibility and opacity, and later
// frames record per-frame overrides only where their values differ
// from that baseline.
//
// Track z-order follows each name's position in its first frame's
// layer list, so the legacy bottom-to-top stacking is preserved.
func FromLegacyFrames(frames map[int][]LegacyLayer, width, height int) (*Pattern, error) {
	p, err := NewPattern(width, height)
	if err != nil {
		return nil, err
	}
	want := width * height

	indices := make([]int, 0, len(frames))
	for idx := range frames {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	tracks := make(map[string]*Track)
	for _, idx := range indices {
		for _, layer := range frames[idx] {
			if len(layer.Pixels) != want {
				return nil, fmt.Errorf("%w: legacy layer %q frame %d has %d pixels, want %d",
					ErrBufferLength, layer.Name, idx, len(layer.Pixels), want)
			}

			track, ok := tracks[layer.Name]
			if !ok {
				// First appearance sets the baseline; this frame gets
				// no overrides.
				track = NewTrack(layer.Name)
				track.ZIndex = len(tracks)
				track.Visible = layer.Visible
				track.Opacity = clampOpacity(layer.Opacity)
				tracks[layer.Name] = track
				if err := p.AddTrack(track); err != nil {
					return nil, err
				}
			}

			f := &Frame{Pixels: CloneBuffer(layer.Pixels)}
			if layer.Visible != track.Visible {
				v := layer.Visible
				f.Visible = &v
			}
			if o := clampOpacity(layer.Opacity); o != track.Opacity {
				f.Opacity = &o
			}
			track.setFrame(idx, f)
		}
	}

	if n := len(indices); n > 0 {
		p.frameCount = indices[n-1] + 1
	}
	return p, nil
}
