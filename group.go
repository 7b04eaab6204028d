package lmx

import "github.com/google/uuid"

// Group gates and scales a set of tracks collectively. A hidden group
// suppresses all of its tracks; a group's opacity multiplies into each
// member track's effective opacity during rendering.
type Group struct {
	ID      string
	Name    string
	Visible bool
	Opacity float64
}

// NewGroup creates a visible, full-opacity group with a fresh ID.
func NewGroup(name string) *Group {
	return &Group{
		ID:      uuid.NewString(),
		Name:    name,
		Visible: true,
		Opacity: 1.0,
	}
}
