// Package dmg wires together the CPU, bus and GPU into a runnable Game Boy
// system, and drives the backend/input loop around it.
package dmg

import (
	"fmt"
	"log/slog"
	"os"

	"dmgcore/dmg/backend"
	"dmgcore/dmg/cpu"
	"dmgcore/dmg/disasm"
	"dmgcore/dmg/input/action"
	"dmgcore/dmg/memory"
	"dmgcore/dmg/timing"
	"dmgcore/dmg/video"
)

// System owns one Game Boy's worth of state: CPU, bus and GPU, advanced in
// lockstep one instruction at a time.
type System struct {
	cpu *cpu.CPU
	mem *memory.MMU
	gpu *video.GPU

	// tracer, if set, is called with the decoded form of every instruction
	// just before it executes. Wired up by --disassemble.
	tracer func(disasm.DisassemblyLine)
}

// New creates a System with an empty (cartridge-less) bus, CPU reset to its
// post-boot-ROM state.
func New() *System {
	mem := memory.New()
	return &System{
		cpu: cpu.New(mem),
		mem: mem,
		gpu: video.NewGpu(mem),
	}
}

// NewWithFile loads a ROM image from disk and returns a System ready to run
// it. bootROM, if non-nil, is mapped at 0x0000-0x00FF and the CPU starts in
// power-on state instead of post-boot-ROM state.
func NewWithFile(path string, bootROM []byte) (*System, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rom file: %w", err)
	}

	cart := memory.NewCartridgeWithData(data)
	mem := memory.NewWithCartridge(cart)

	s := &System{mem: mem, gpu: video.NewGpu(mem)}
	if bootROM != nil {
		mem.SetBootROM(bootROM)
		s.cpu = cpu.NewAtBootROM(mem)
	} else {
		s.cpu = cpu.New(mem)
	}

	slog.Info("loaded cartridge", "title", cart.Title(), "type", fmt.Sprintf("0x%02X", cart.Type()))
	return s, nil
}

// Step executes a single CPU instruction and ticks the rest of the system by
// the same number of cycles.
func (s *System) Step() int {
	if s.tracer != nil {
		s.tracer(disasm.DisassembleAt(s.cpu.GetPC(), s.mem))
	}
	cycles := s.cpu.Step()
	s.mem.Tick(cycles)
	s.gpu.Tick(cycles)
	return cycles
}

// SetTracer installs a callback invoked with the decoded form of every
// instruction immediately before it executes. Pass nil to disable tracing.
func (s *System) SetTracer(tracer func(disasm.DisassemblyLine)) {
	s.tracer = tracer
}

// PC returns the CPU's current program counter, for diagnostics.
func (s *System) PC() uint16 { return s.cpu.GetPC() }

// RunFrame advances the system until a full 70224-cycle Game Boy frame has
// elapsed and returns the resulting framebuffer.
func (s *System) RunFrame() *video.FrameBuffer {
	spent := 0
	for spent < timing.CyclesPerFrame {
		spent += s.Step()
	}
	return s.gpu.GetFrameBuffer()
}

// CurrentFrame returns the GPU's current (possibly in-progress) framebuffer
// without advancing emulation.
func (s *System) CurrentFrame() *video.FrameBuffer {
	return s.gpu.GetFrameBuffer()
}

// Memory exposes the bus for diagnostics such as disassembly.
func (s *System) Memory() *memory.MMU { return s.mem }

func (s *System) HandleKeyPress(key memory.JoypadKey)   { s.mem.HandleKeyPress(key) }
func (s *System) HandleKeyRelease(key memory.JoypadKey) { s.mem.HandleKeyRelease(key) }

// actionToKey maps a backend-reported joypad Action to the bus's JoypadKey.
// Quit is handled by the caller and never reaches here.
func actionToKey(a action.Action) (memory.JoypadKey, bool) {
	switch a {
	case action.ButtonA:
		return memory.JoypadA, true
	case action.ButtonB:
		return memory.JoypadB, true
	case action.ButtonStart:
		return memory.JoypadStart, true
	case action.ButtonSelect:
		return memory.JoypadSelect, true
	case action.DPadUp:
		return memory.JoypadUp, true
	case action.DPadDown:
		return memory.JoypadDown, true
	case action.DPadLeft:
		return memory.JoypadLeft, true
	case action.DPadRight:
		return memory.JoypadRight, true
	default:
		return 0, false
	}
}

// RunConfig controls how Run drives the system: which backend renders
// frames and reports input, and how frame pacing is limited.
type RunConfig struct {
	Backend backend.Backend
	Limiter timing.Limiter
	Config  backend.Config

	// MaxFrames stops Run after the given number of frames if nonzero, used
	// by headless batch runs.
	MaxFrames int
}

// Run drives the system frame-by-frame through the given backend until the
// backend reports a quit action, or MaxFrames frames have elapsed.
func (s *System) Run(rc RunConfig) error {
	if err := rc.Backend.Init(rc.Config); err != nil {
		return fmt.Errorf("backend init failed: %w", err)
	}
	defer rc.Backend.Cleanup()
	defer rc.Limiter.Close()

	frames := 0
	for {
		frame := s.RunFrame()
		rc.Limiter.WaitForNextFrame()

		events, err := rc.Backend.Update(frame)
		if err != nil {
			return fmt.Errorf("backend update failed: %w", err)
		}

		for _, ev := range events {
			if ev.Action == action.Quit {
				return nil
			}
			key, ok := actionToKey(ev.Action)
			if !ok {
				continue
			}
			if ev.Pressed {
				s.HandleKeyPress(key)
			} else {
				s.HandleKeyRelease(key)
			}
		}

		frames++
		if rc.MaxFrames > 0 && frames >= rc.MaxFrames {
			return nil
		}
	}
}
