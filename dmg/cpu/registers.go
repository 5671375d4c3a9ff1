// Package cpu implements the Game Boy's Sharp SM83 CPU core: registers,
// flags, instruction decode/dispatch and interrupt handling.
package cpu

import (
	"fmt"

	"dmgcore/dmg/bit"
	"dmgcore/dmg/memory"
)

// Flag bits within the F register. The low nibble of F is always zero.
const (
	flagZ = 0x80 // Zero
	flagN = 0x40 // Subtract
	flagH = 0x20 // Half-carry
	flagC = 0x10 // Carry
)

// CPU holds the Sharp SM83 register file and drives instruction execution
// against a bus.
type CPU struct {
	a, f byte
	b, c byte
	d, e byte
	h, l byte

	sp, pc uint16

	mem *memory.MMU

	ime        bool // interrupt master enable
	imePending bool // EI takes effect after the *next* instruction
	halted     bool
	haltBug    bool // HALT with IME=0 and a pending interrupt re-reads the next byte twice
}

// New creates a CPU with the post-boot-ROM register state (the values the
// real boot ROM leaves behind when it hands off to cartridge code), bound to
// the given bus.
func New(mem *memory.MMU) *CPU {
	c := &CPU{mem: mem}
	c.a, c.f = 0x01, 0xB0
	c.b, c.c = 0x00, 0x13
	c.d, c.e = 0x00, 0xD8
	c.h, c.l = 0x01, 0x4D
	c.sp = 0xFFFE
	c.pc = 0x0100
	return c
}

// NewAtBootROM creates a CPU reset to power-on state (all registers zero,
// PC at the start of the mapped boot ROM), used when --boot-rom is given.
func NewAtBootROM(mem *memory.MMU) *CPU {
	return &CPU{mem: mem, sp: 0, pc: 0x0000}
}

func (c *CPU) GetPC() uint16 { return c.pc }
func (c *CPU) GetSP() uint16 { return c.sp }

// RegisterDump renders every register and flag for diagnostics: attached to
// a panic on an undefined opcode so the crash report shows the state that
// led there instead of just a bare PC.
func (c *CPU) RegisterDump() string {
	return fmt.Sprintf(
		"PC=%04X SP=%04X AF=%04X BC=%04X DE=%04X HL=%04X Z=%t N=%t H=%t C=%t IME=%t halted=%t",
		c.pc, c.sp, c.getAF(), c.getBC(), c.getDE(), c.getHL(),
		c.isSetFlag(flagZ), c.isSetFlag(flagN), c.isSetFlag(flagH), c.isSetFlag(flagC),
		c.ime, c.halted,
	)
}

func (c *CPU) getAF() uint16 { return bit.Combine(c.a, c.f&0xF0) }
func (c *CPU) setAF(v uint16) {
	c.a = bit.High(v)
	c.f = bit.Low(v) & 0xF0
}

func (c *CPU) getBC() uint16  { return bit.Combine(c.b, c.c) }
func (c *CPU) setBC(v uint16) { c.b, c.c = bit.High(v), bit.Low(v) }

func (c *CPU) getDE() uint16  { return bit.Combine(c.d, c.e) }
func (c *CPU) setDE(v uint16) { c.d, c.e = bit.High(v), bit.Low(v) }

func (c *CPU) getHL() uint16  { return bit.Combine(c.h, c.l) }
func (c *CPU) setHL(v uint16) { c.h, c.l = bit.High(v), bit.Low(v) }

func (c *CPU) setFlag(mask byte)   { c.f |= mask }
func (c *CPU) resetFlag(mask byte) { c.f &^= mask }
func (c *CPU) isSetFlag(mask byte) bool { return c.f&mask != 0 }

func (c *CPU) setFlagTo(mask byte, cond bool) {
	if cond {
		c.setFlag(mask)
	} else {
		c.resetFlag(mask)
	}
}

// r8 reads one of the 8 standard register-field encodings: B,C,D,E,H,L,(HL),A.
func (c *CPU) r8(index byte) byte {
	switch index & 0x07 {
	case 0:
		return c.b
	case 1:
		return c.c
	case 2:
		return c.d
	case 3:
		return c.e
	case 4:
		return c.h
	case 5:
		return c.l
	case 6:
		return c.mem.Read(c.getHL())
	default:
		return c.a
	}
}

func (c *CPU) setR8(index byte, v byte) {
	switch index & 0x07 {
	case 0:
		c.b = v
	case 1:
		c.c = v
	case 2:
		c.d = v
	case 3:
		c.e = v
	case 4:
		c.h = v
	case 5:
		c.l = v
	case 6:
		c.mem.Write(c.getHL(), v)
	default:
		c.a = v
	}
}

// r16 reads one of the 4 standard 16-bit group encodings used by LD rr,nn /
// ADD HL,rr / INC rr / DEC rr: BC,DE,HL,SP.
func (c *CPU) r16(group byte) uint16 {
	switch group & 0x03 {
	case 0:
		return c.getBC()
	case 1:
		return c.getDE()
	case 2:
		return c.getHL()
	default:
		return c.sp
	}
}

func (c *CPU) setR16(group byte, v uint16) {
	switch group & 0x03 {
	case 0:
		c.setBC(v)
	case 1:
		c.setDE(v)
	case 2:
		c.setHL(v)
	default:
		c.sp = v
	}
}

func (c *CPU) fetch8() byte {
	v := c.mem.Read(c.pc)
	c.pc++
	return v
}

func (c *CPU) fetch16() uint16 {
	lo := c.fetch8()
	hi := c.fetch8()
	return bit.Combine(hi, lo)
}

func (c *CPU) push16(v uint16) {
	c.sp--
	c.mem.Write(c.sp, bit.High(v))
	c.sp--
	c.mem.Write(c.sp, bit.Low(v))
}

func (c *CPU) pop16() uint16 {
	lo := c.mem.Read(c.sp)
	c.sp++
	hi := c.mem.Read(c.sp)
	c.sp++
	return bit.Combine(hi, lo)
}
