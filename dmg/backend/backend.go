// Package backend defines the display-sink and input-source contract every
// frontend (terminal, headless) implements, keeping the emulation core free
// of any rendering or windowing dependency.
package backend

import (
	"dmgcore/dmg/input/action"
	"dmgcore/dmg/video"
)

// InputEvent represents a single input transition reported by a backend.
type InputEvent struct {
	Action  action.Action
	Pressed bool
}

// Backend represents a complete emulator frontend: it renders frames to
// some output and reports input transitions back to the core.
type Backend interface {
	// Init configures the backend. Called once before the first Update.
	Init(config Config) error

	// Update renders one frame and returns any input events collected
	// since the previous call.
	Update(frame *video.FrameBuffer) ([]InputEvent, error)

	// Cleanup releases any backend-owned resources.
	Cleanup() error
}

// Config holds the configuration shared by every backend implementation.
type Config struct {
	Title string
	Scale int
}
