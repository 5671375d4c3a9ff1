// Package serial implements the non-goal link-cable port: it never talks to
// a real peer, but it still has to behave like a serial device to software
// that polls SB/SC, and it doubles as a debug console for test ROMs (like
// blargg's cpu_instrs suite) that report pass/fail by shifting text out over
// the link port instead of drawing it.
package serial

import (
	"log/slog"
	"strings"

	"dmgcore/dmg/addr"
	"dmgcore/dmg/bit"
)

// cyclesPerByte is how long a real DMG serial transfer takes at the
// internal ~8192 Hz bit clock: 8 bits at roughly 4194304/8192 CPU cycles
// each.
const cyclesPerByte = 4096

// LogSink is a stub SB/SC device: every byte written while a transfer is
// started gets appended to a line buffer and flushed to the logger on a
// newline, instead of being shifted out to a peer that doesn't exist.
type LogSink struct {
	onComplete func()

	sb, sc byte

	inFlight   bool
	cyclesLeft int
	immediate  bool

	idleRX byte // SB value read back once a transfer completes
	line   strings.Builder

	log *slog.Logger
}

// Option configures a LogSink at construction time.
type Option func(*LogSink)

// WithFixedTiming makes transfers take cyclesPerByte CPU cycles to complete
// instead of resolving on the same write that started them.
func WithFixedTiming() Option {
	return func(s *LogSink) { s.immediate = false }
}

// NewLogSink builds a serial stub that calls onComplete (expected to raise
// the serial interrupt) whenever a transfer finishes.
func NewLogSink(onComplete func(), opts ...Option) *LogSink {
	s := &LogSink{
		onComplete: onComplete,
		immediate:  true,
		idleRX:     0xFF,
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *LogSink) Read(address uint16) byte {
	switch address {
	case addr.SB:
		return s.sb
	case addr.SC:
		return s.sc
	default:
		panic("serial: read from unmapped address")
	}
}

func (s *LogSink) Write(address uint16, value byte) {
	switch address {
	case addr.SB:
		s.sb = value
	case addr.SC:
		s.sc = value
		s.tryStartTransfer()
	default:
		panic("serial: write to unmapped address")
	}
}

// Tick advances a fixed-timing transfer in progress; a no-op otherwise.
func (s *LogSink) Tick(cycles int) {
	if s.immediate || !s.inFlight {
		return
	}
	s.cyclesLeft -= cycles
	if s.cyclesLeft <= 0 {
		s.finishTransfer()
	}
}

// tryStartTransfer begins a transfer once SC's start bit (7) and clock
// source bit (0, internal) are both set - an external-clock transfer would
// need a peer to drive it, which never happens here, so it just never
// completes.
func (s *LogSink) tryStartTransfer() {
	if s.inFlight || !bit.IsSet(7, s.sc) || !bit.IsSet(0, s.sc) {
		return
	}

	s.bufferOutgoingByte(s.sb)

	if s.immediate {
		s.finishTransfer()
		return
	}
	s.inFlight = true
	s.cyclesLeft = cyclesPerByte
}

// bufferOutgoingByte accumulates printable serial output and flushes it
// line by line, so a test ROM's text report reads naturally instead of as
// one byte per log entry.
func (s *LogSink) bufferOutgoingByte(b byte) {
	if b == 0x00 || b == '\n' || b == '\r' {
		s.flushLine()
		return
	}
	s.line.WriteByte(b)
}

func (s *LogSink) flushLine() {
	if s.line.Len() == 0 {
		return
	}
	s.log.Info("serial output", "text", s.line.String())
	s.line.Reset()
}

func (s *LogSink) finishTransfer() {
	s.sb = s.idleRX
	s.sc = bit.Reset(7, s.sc)
	s.inFlight = false
	s.cyclesLeft = 0
	if s.onComplete != nil {
		s.onComplete()
	}
}
