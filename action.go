package lmx

// ActionKind identifies an automation transform.
type ActionKind int

const (
	// ActionScroll shifts the buffer by step*offset pixels per frame.
	ActionScroll ActionKind = iota

	// ActionRotate rotates the buffer by (step mod 4) quarter turns.
	ActionRotate

	// ActionMirror flips the buffer once along a fixed axis for every
	// frame the action is active.
	ActionMirror

	// ActionBounce flips the buffer along an axis on odd steps only,
	// producing a back-and-forth alternation.
	ActionBounce

	// ActionWipe fades the buffer out past a boundary that advances by
	// step*offset pixels per frame.
	ActionWipe

	// ActionReveal shows an edge-anchored band of step*offset pixels
	// and blacks out the rest.
	ActionReveal

	// ActionInvert replaces each channel c with 255-c for every frame
	// the action is active.
	ActionInvert
)

// String returns the action kind name.
func (k ActionKind) String() string {
	switch k {
	case ActionScroll:
		return "Scroll"
	case ActionRotate:
		return "Rotate"
	case ActionMirror:
		return "Mirror"
	case ActionBounce:
		return "Bounce"
	case ActionWipe:
		return "Wipe"
	case ActionReveal:
		return "Reveal"
	case ActionInvert:
		return "Invert"
	default:
		return "Unknown"
	}
}

// Priority returns the fixed evaluation priority for the kind. Lower
// values run earlier. The values reproduce the legacy tool's hard-coded
// execution order and are not configurable per action.
func (k ActionKind) Priority() int {
	switch k {
	case ActionScroll:
		return 10
	case ActionRotate:
		return 20
	case ActionMirror:
		return 30
	case ActionBounce:
		return 40
	case ActionWipe:
		return 50
	case ActionReveal:
		return 60
	case ActionInvert:
		return 90
	default:
		return 100
	}
}

// TimeBased reports whether the transform's magnitude scales with the
// frame-relative step. Mirror and Invert are binary: fully applied on
// every active frame regardless of step value.
func (k ActionKind) TimeBased() bool {
	switch k {
	case ActionScroll, ActionRotate, ActionBounce, ActionWipe, ActionReveal:
		return true
	default:
		return false
	}
}

// Direction is a scroll direction. Right and Down increase the
// respective coordinate.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	case DirRight:
		return "Right"
	default:
		return "Unknown"
	}
}

// Axis selects the flip axis for Mirror and Bounce. Horizontal swaps
// left and right; Vertical swaps top and bottom.
type Axis int

const (
	AxisHorizontal Axis = iota
	AxisVertical
)

// String returns the axis name.
func (a Axis) String() string {
	switch a {
	case AxisHorizontal:
		return "Horizontal"
	case AxisVertical:
		return "Vertical"
	default:
		return "Unknown"
	}
}

// RotateMode selects the base quarter-turn direction for Rotate.
type RotateMode int

const (
	RotateClockwise RotateMode = iota
	RotateCounterClockwise
)

// WipeMode selects the travel direction of the wipe boundary.
type WipeMode int

const (
	WipeLeftToRight WipeMode = iota
	WipeRightToLeft
	WipeTopToBottom
	WipeBottomToTop
)

// Edge selects which matrix edge a Reveal band grows from.
type Edge int

const (
	EdgeLeft Edge = iota
	EdgeRight
	EdgeTop
	EdgeBottom
)

// Params carries an action's kind-specific parameters. The concrete
// types form a closed set so transform dispatch is exhaustive.
type Params interface {
	// Kind identifies the transform this parameter set configures.
	Kind() ActionKind
}

// ScrollParams configures an ActionScroll. Offset is the per-frame
// shift in pixels; values below 1 are treated as 1.
type ScrollParams struct {
	Direction Direction
	Offset    int
}

// RotateParams configures an ActionRotate.
type RotateParams struct {
	Mode RotateMode
}

// MirrorParams configures an ActionMirror.
type MirrorParams struct {
	Axis Axis
}

// BounceParams configures an ActionBounce.
type BounceParams struct {
	Axis Axis
}

// WipeParams configures an ActionWipe. Offset is the per-frame boundary
// advance in pixels; values below 1 are treated as 1.
type WipeParams struct {
	Mode   WipeMode
	Offset int
}

// RevealParams configures an ActionReveal. Offset is the per-frame band
// growth in pixels; values below 1 are treated as 1.
type RevealParams struct {
	Edge   Edge
	Offset int
}

// InvertParams configures an ActionInvert. It carries no parameters.
type InvertParams struct{}

func (ScrollParams) Kind() ActionKind { return ActionScroll }
func (RotateParams) Kind() ActionKind { return ActionRotate }
func (MirrorParams) Kind() ActionKind { return ActionMirror }
func (BounceParams) Kind() ActionKind { return ActionBounce }
func (WipeParams) Kind() ActionKind   { return ActionWipe }
func (RevealParams) Kind() ActionKind { return ActionReveal }
func (InvertParams) Kind() ActionKind { return ActionInvert }

// Action is one automation entry on a track. Its window [Start, End]
// is inclusive and independent of the track's window; End == nil means
// unbounded upward.
type Action struct {
	Params Params
	Start  int
	End    *int
}

// Kind returns the kind of the action's parameter set.
func (a Action) Kind() ActionKind {
	if a.Params == nil {
		return ActionKind(-1)
	}
	return a.Params.Kind()
}

// Step resolves the action's frame-relative progress at frame.
// It returns (0, false) outside the action's window, otherwise
// (frame - a.Start, true), always >= 0.
//
// Step is pure: the same action at the same frame always yields the
// same value regardless of render order or prior calls. There is no
// accumulator, which is what keeps repeated and out-of-order rendering
// byte-identical.
func (a Action) Step(frame int) (int, bool) {
	if frame < a.Start {
		return 0, false
	}
	if a.End != nil && frame > *a.End {
		return 0, false
	}
	return frame - a.Start, true
}

// sortActions returns the actions ordered ascending by fixed priority.
// The sort is stable: equal priorities keep insertion order. The input
// slice is not modified.
func sortActions(actions []Action) []Action {
	sorted := make([]Action, len(actions))
	copy(sorted, actions)
	// Insertion sort keeps the stable ordering without pulling in a
	// comparator allocation for the handful of actions a track carries.
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].Kind().Priority() < sorted[j-1].Kind().Priority(); j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	return sorted
}
