package lmx

import "errors"

// Sentinel errors returned by authoring and construction operations.
// Rendering itself never fails: malformed dimensions are rejected at
// construction or resize time, before any render can observe them.
var (
	// ErrBadDimensions reports a non-positive width or height.
	ErrBadDimensions = errors.New("lmx: width and height must be positive")

	// ErrBufferLength reports a pixel buffer whose length does not match
	// width*height for the pattern's current dimensions.
	ErrBufferLength = errors.New("lmx: pixel buffer length does not match width*height")

	// ErrIsolation reports a mutating call whose target track or frame
	// does not match the active edit session. The mutation is rejected
	// before any state changes.
	ErrIsolation = errors.New("lmx: edit targets a track/frame outside the active edit session")

	// ErrRenderInProgress reports a mutating call made while a render
	// is running.
	ErrRenderInProgress = errors.New("lmx: cannot edit while a render is in progress")

	// ErrMissingFrame reports an edit to a frame index that was never
	// explicitly created. Frames are never materialized implicitly;
	// callers must create before editing.
	ErrMissingFrame = errors.New("lmx: frame does not exist at this index")

	// ErrFrameExists reports an attempt to create a frame at an index
	// that already holds one.
	ErrFrameExists = errors.New("lmx: frame already exists at this index")

	// ErrTrackLocked reports an edit to a locked track.
	ErrTrackLocked = errors.New("lmx: track is locked")

	// ErrUnknownTrack reports a track ID that does not exist in the pattern.
	ErrUnknownTrack = errors.New("lmx: no track with this ID")

	// ErrOutOfBounds reports pixel coordinates outside the matrix.
	ErrOutOfBounds = errors.New("lmx: pixel coordinates out of bounds")
)
