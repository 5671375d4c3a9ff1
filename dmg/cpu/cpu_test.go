package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dmgcore/dmg/memory"
)

func newTestCPU() (*CPU, *memory.MMU) {
	mem := memory.New()
	c := New(mem)
	return c, mem
}

func load(mem *memory.MMU, pc uint16, bytes ...byte) {
	for i, b := range bytes {
		mem.Write(pc+uint16(i), b)
	}
}

func TestFlagsLowNibbleAlwaysZero(t *testing.T) {
	c, _ := newTestCPU()
	c.f = 0xFF
	c.setAF(0x1234)
	assert.Equal(t, byte(0x30), c.f, "F's low nibble must always read back zero")
}

func TestPushPopRoundTrip(t *testing.T) {
	c, _ := newTestCPU()
	c.sp = 0xFFFE
	c.push16(0xBEEF)
	assert.Equal(t, uint16(0xBEEF), c.pop16())
	assert.Equal(t, uint16(0xFFFE), c.sp)
}

func TestIncDecFlagBoundaries(t *testing.T) {
	c, _ := newTestCPU()

	c.a = 0xFF
	c.a = c.inc8(c.a)
	assert.Equal(t, byte(0x00), c.a)
	assert.True(t, c.isSetFlag(flagZ))
	assert.True(t, c.isSetFlag(flagH))

	c.a = 0x00
	c.a = c.dec8(c.a)
	assert.Equal(t, byte(0xFF), c.a)
	assert.True(t, c.isSetFlag(flagH))
	assert.True(t, c.isSetFlag(flagN))
}

func TestRotateAndSwapRoundTrip(t *testing.T) {
	c, _ := newTestCPU()

	v := byte(0x85)
	rotated := c.rlc(v)
	back := c.rrc(rotated)
	assert.Equal(t, v, back)

	swapped := c.swap(v)
	assert.Equal(t, v, c.swap(swapped), "SWAP applied twice is the identity")
}

func TestCplIsInvolution(t *testing.T) {
	c, _ := newTestCPU()
	c.a = 0x5A
	c.cpl()
	c.cpl()
	assert.Equal(t, byte(0x5A), c.a)
}

func TestStepNOP(t *testing.T) {
	c, mem := newTestCPU()
	c.pc = 0xC000
	load(mem, 0xC000, 0x00)

	cycles := c.Step()
	assert.Equal(t, 4, cycles)
	assert.Equal(t, uint16(0xC001), c.pc)
}

func TestStepLDImmediate(t *testing.T) {
	c, mem := newTestCPU()
	c.pc = 0xC000
	load(mem, 0xC000, 0x06, 0x42) // LD B,0x42

	c.Step()
	assert.Equal(t, byte(0x42), c.b)
}

func TestStepCBBit(t *testing.T) {
	c, mem := newTestCPU()
	c.pc = 0xC000
	c.b = 0x00
	load(mem, 0xC000, 0xCB, 0x40) // BIT 0,B

	c.Step()
	assert.True(t, c.isSetFlag(flagZ))
	assert.True(t, c.isSetFlag(flagH))
	assert.False(t, c.isSetFlag(flagN))
}

func TestJumpAndCallRoundTrip(t *testing.T) {
	c, mem := newTestCPU()
	c.pc = 0xC000
	c.sp = 0xFFFE
	load(mem, 0xC000, 0xCD, 0x00, 0xD0) // CALL 0xD000
	load(mem, 0xD000, 0xC9)             // RET

	c.Step()
	require.Equal(t, uint16(0xD000), c.pc)

	c.Step()
	assert.Equal(t, uint16(0xC003), c.pc)
	assert.Equal(t, uint16(0xFFFE), c.sp)
}

func TestInterruptDispatchPriority(t *testing.T) {
	c, mem := newTestCPU()
	c.pc = 0xC000
	c.sp = 0xFFFE
	c.ime = true

	mem.Write(0xFFFF, 0xFF)         // IE: all enabled
	mem.RequestInterrupt(1)         // VBlank
	mem.RequestInterrupt(1 << 2)    // Timer, lower priority than VBlank

	cycles := c.Step()
	assert.Equal(t, 20, cycles)
	assert.Equal(t, uint16(0x0040), c.pc, "VBlank has top priority")
	assert.False(t, c.ime, "IME is cleared on dispatch")

	pending := mem.Read(0xFF0F)
	assert.False(t, pending&0x01 != 0, "VBlank flag is cleared once serviced")
	assert.True(t, pending&0x04 != 0, "Timer flag remains pending")
}

func TestEILatency(t *testing.T) {
	c, mem := newTestCPU()
	c.pc = 0xC000
	c.ime = false
	load(mem, 0xC000, 0xFB, 0x00, 0x00) // EI, NOP, NOP
	mem.Write(0xFFFF, 0xFF)
	mem.RequestInterrupt(1)

	c.Step() // EI: ime not yet active
	assert.False(t, c.ime)

	c.Step() // NOP executes, THEN ime takes effect
	assert.True(t, c.ime)
}

func TestHaltWakesOnPendingInterrupt(t *testing.T) {
	c, mem := newTestCPU()
	c.ime = true
	c.halted = true
	mem.Write(0xFFFF, 0xFF)
	mem.RequestInterrupt(1 << 4) // joypad

	c.Step()
	assert.False(t, c.halted)
}
