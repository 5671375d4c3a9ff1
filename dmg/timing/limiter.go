// Package timing paces frame emission against the real DMG clock and
// exposes the fixed cycle/frequency constants the rest of the emulator
// derives its scheduling from.
package timing

import "time"

// Game Boy hardware clock constants: a 4.194304 MHz CPU clock, 70224
// cycles per 154-scanline frame (exactly 59.7275 Hz).
const (
	CPUFrequency   = 4194304
	CyclesPerFrame = 70224
)

// TargetFPS is the exact DMG frame rate implied by CPUFrequency and
// CyclesPerFrame.
func TargetFPS() float64 {
	return float64(CPUFrequency) / float64(CyclesPerFrame)
}

// FrameDuration is the wall-clock interval one frame should take to stay
// in sync with TargetFPS.
func FrameDuration() time.Duration {
	return time.Duration(float64(time.Second) / TargetFPS())
}

// Limiter paces System.Run so frames aren't emitted faster than real
// hardware would produce them.
type Limiter interface {
	// WaitForNextFrame blocks until the next frame's scheduled time, or
	// returns immediately if pacing has fallen behind.
	WaitForNextFrame()
	// Reset resyncs the pacing clock, e.g. after resuming from a pause
	// that would otherwise read as one enormous backlog of due frames.
	Reset()
	// Close releases any resources the limiter holds (timers, tickers).
	// Safe to call on a Limiter that holds none.
	Close()
}

// noOpLimiter never blocks; used for headless batch runs where frames
// should be produced as fast as the host can compute them.
type noOpLimiter struct{}

// NewNoOpLimiter returns a Limiter with no pacing, for headless mode.
func NewNoOpLimiter() Limiter {
	return noOpLimiter{}
}

func (noOpLimiter) WaitForNextFrame() {}
func (noOpLimiter) Reset()            {}
func (noOpLimiter) Close()            {}
