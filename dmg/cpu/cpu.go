package cpu

import (
	"log/slog"

	"dmgcore/dmg/addr"
)

// interruptVectors gives the jump target for each interrupt bit, in
// dispatch-priority order (lowest bit wins when several are pending).
var interruptVectors = []struct {
	mask addr.Interrupt
	vec  uint16
}{
	{addr.VBlankInterrupt, 0x0040},
	{addr.LCDSTATInterrupt, 0x0048},
	{addr.TimerInterrupt, 0x0050},
	{addr.SerialInterrupt, 0x0058},
	{addr.JoypadInterrupt, 0x0060},
}

// Step executes exactly one instruction (or services one pending interrupt,
// or idles one instruction-slot while halted) and returns the number of
// cycles it took.
func (c *CPU) Step() int {
	if cycles, serviced := c.dispatchInterrupt(); serviced {
		return cycles
	}

	if c.halted {
		return 4
	}

	pendingEI := c.imePending
	c.imePending = false

	opcode := c.fetch8()

	if c.haltBug {
		c.haltBug = false
		c.pc--
	}

	var cycles int
	if opcode == 0xCB {
		sub := c.fetch8()
		cycles = cbOpcodes[sub].exec(c)
	} else {
		cycles = opcodes[opcode].exec(c)
	}

	if pendingEI {
		c.ime = true
	}

	return cycles
}

// halt puts the CPU to sleep until an interrupt is pending. If IME is
// disabled while an interrupt is already pending, the halt bug fires: the
// next opcode byte is fetched but not advanced past, executing it twice.
func (c *CPU) halt() {
	pending := c.mem.Read(addr.IE) & c.mem.Read(addr.IF) & 0x1F
	if !c.ime && pending != 0 {
		c.haltBug = true
		return
	}
	c.halted = true
}

// dispatchInterrupt checks IE & IF & IME and, if an interrupt is pending and
// enabled, pushes PC and jumps to its vector. Halted CPUs wake on any
// pending-and-enabled interrupt regardless of IME.
func (c *CPU) dispatchInterrupt() (cycles int, serviced bool) {
	ie := c.mem.Read(addr.IE)
	iflags := c.mem.Read(addr.IF)
	pending := ie & iflags & 0x1F

	if pending == 0 {
		return 0, false
	}

	if c.halted {
		c.halted = false
	}

	if !c.ime {
		return 0, false
	}

	for _, entry := range interruptVectors {
		bit := byte(entry.mask)
		if pending&bit == 0 {
			continue
		}
		c.ime = false
		c.mem.Write(addr.IF, iflags&^bit)
		c.push16(c.pc)
		slog.Debug("servicing interrupt", "interrupt", entry.mask, "vector", entry.vec)
		c.pc = entry.vec
		return 20, true
	}

	return 0, false
}
