package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dmgcore/dmg/addr"
	"dmgcore/dmg/memory"
)

func newTestGPU() (*GPU, *memory.MMU) {
	mem := memory.New()
	mem.Write(addr.LCDC, 0x80) // LCD on, everything else off
	return NewGpu(mem), mem
}

func TestModeCycleWithinScanline(t *testing.T) {
	gpu, mem := newTestGPU()
	require.Equal(t, OAMScan, gpu.mode)

	gpu.Tick(oamScanCycles)
	assert.Equal(t, VRAMScan, gpu.mode)
	assert.Equal(t, byte(VRAMScan), mem.Read(addr.STAT)&0x03)

	gpu.Tick(vramScanCycles)
	assert.Equal(t, HBlank, gpu.mode)

	gpu.Tick(hblankCycles)
	assert.Equal(t, OAMScan, gpu.mode)
	assert.Equal(t, byte(1), mem.Read(addr.LY))
}

func TestFullFrameCycleCount(t *testing.T) {
	gpu, mem := newTestGPU()

	for i := 0; i < scanlineCycles*totalLines; i++ {
		gpu.Tick(1)
	}

	assert.Equal(t, byte(0), mem.Read(addr.LY), "after a full frame LY wraps back to 0")
	assert.Equal(t, OAMScan, gpu.mode)
}

func TestVBlankInterruptFiresAtLine144(t *testing.T) {
	gpu, mem := newTestGPU()

	for i := 0; i < scanlineCycles*visibleLines; i++ {
		gpu.Tick(1)
	}

	assert.Equal(t, VBlank, gpu.mode)
	assert.NotEqual(t, byte(0), mem.Read(addr.IF)&byte(addr.VBlankInterrupt))
}

func TestLYCCoincidenceSetsStatBit(t *testing.T) {
	gpu, mem := newTestGPU()
	mem.Write(addr.LYC, 1)

	gpu.Tick(scanlineCycles) // advance to line 1

	assert.Equal(t, uint16(1), uint16(gpu.line))
	assert.NotEqual(t, byte(0), mem.Read(addr.STAT)&0x04)
}

func TestDisabledLCDDoesNotAdvance(t *testing.T) {
	mem := memory.New()
	mem.Write(addr.LCDC, 0x00)
	gpu := NewGpu(mem)

	gpu.Tick(10000)
	assert.Equal(t, 0, gpu.cycles)
	assert.Equal(t, OAMScan, gpu.mode)
}

func TestPaletteColorMapping(t *testing.T) {
	palette := byte(0b11100100) // identity mapping: index n -> shade n
	assert.Equal(t, BlackColor, paletteColor(palette, 0))
	assert.Equal(t, DarkGreyColor, paletteColor(palette, 1))
	assert.Equal(t, LightGreyColor, paletteColor(palette, 2))
	assert.Equal(t, WhiteColor, paletteColor(palette, 3))
}
