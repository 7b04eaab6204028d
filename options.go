package lmx

// PatternOption configures a Pattern during creation.
//
// Example:
//
//	pat, err := lmx.NewPattern(32, 8,
//		lmx.WithFrameCount(120),
//		lmx.WithTrack(background),
//	)
type PatternOption func(*Pattern) error

// WithFrameCount sets the pattern's total timeline length. Values below
// one are treated as one.
func WithFrameCount(n int) PatternOption {
	return func(p *Pattern) error {
		if n < 1 {
			n = 1
		}
		p.frameCount = n
		return nil
	}
}

// WithTrack adds a track at creation time. Stored frames must match the
// pattern's dimensions, same as Pattern.AddTrack.
func WithTrack(t *Track) PatternOption {
	return func(p *Pattern) error {
		return p.AddTrack(t)
	}
}

// WithGroup registers a group at creation time.
func WithGroup(g *Group) PatternOption {
	return func(p *Pattern) error {
		p.AddGroup(g)
		return nil
	}
}
