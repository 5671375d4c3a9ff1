package backend

import (
	"log/slog"

	"dmgcore/dmg/video"
)

// Headless renders nothing; it's used for running a fixed number of frames
// with no display, e.g. for batch ROM-validation runs.
type Headless struct {
	frameCount int
}

// NewHeadless creates a Headless backend.
func NewHeadless() *Headless {
	return &Headless{}
}

func (h *Headless) Init(config Config) error {
	slog.Info("running headless", "title", config.Title)
	return nil
}

func (h *Headless) Update(frame *video.FrameBuffer) ([]InputEvent, error) {
	h.frameCount++
	if h.frameCount%60 == 0 {
		slog.Debug("headless progress", "frame", h.frameCount)
	}
	return nil, nil
}

func (h *Headless) Cleanup() error {
	return nil
}
