package timing

import "time"

// TickerLimiter paces frames off a time.Ticker running at FrameDuration.
// It drifts under sustained CPU contention (each WaitForNextFrame only
// guarantees the ticker has fired at least once, not that it fired on
// schedule), but that's an acceptable tradeoff for a terminal renderer
// that isn't chasing perfect A/V sync.
type TickerLimiter struct {
	ticker *time.Ticker
}

// NewTickerLimiter starts a ticker paced at the DMG's real frame rate.
func NewTickerLimiter() *TickerLimiter {
	return &TickerLimiter{ticker: time.NewTicker(FrameDuration())}
}

// WaitForNextFrame blocks until the ticker's next tick.
func (t *TickerLimiter) WaitForNextFrame() {
	<-t.ticker.C
}

// Reset restarts the ticker's interval, used after a pause so the next
// frame isn't counted as already overdue.
func (t *TickerLimiter) Reset() {
	t.ticker.Reset(FrameDuration())
}

// Close stops the underlying ticker.
func (t *TickerLimiter) Close() {
	t.ticker.Stop()
}
