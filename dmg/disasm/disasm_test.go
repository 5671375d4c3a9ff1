package disasm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dmgcore/dmg/memory"
)

func TestDisassembleImmediateForms(t *testing.T) {
	mem := memory.New()
	mem.Write(0xC000, 0x06) // LD B,n8
	mem.Write(0xC001, 0x42)

	line := DisassembleAt(0xC000, mem)
	assert.Equal(t, "LD B,0x42", line.Instruction)
	assert.Equal(t, 2, line.Length)
}

func TestDisassembleCBPrefixed(t *testing.T) {
	mem := memory.New()
	mem.Write(0xC000, 0xCB)
	mem.Write(0xC001, 0x40) // BIT 0,B

	line := DisassembleAt(0xC000, mem)
	assert.Equal(t, "BIT", line.Instruction)
	assert.Equal(t, 2, line.Length)
}

func TestDisassembleRangeAdvancesByLength(t *testing.T) {
	mem := memory.New()
	mem.Write(0xC000, 0x00)       // NOP, 1 byte
	mem.Write(0xC001, 0x06)       // LD B,n8, 2 bytes
	mem.Write(0xC002, 0x99)
	mem.Write(0xC003, 0xC9) // RET, 1 byte

	lines := DisassembleRange(0xC000, 3, mem)
	assert.Len(t, lines, 3)
	assert.Equal(t, uint16(0xC000), lines[0].Address)
	assert.Equal(t, uint16(0xC001), lines[1].Address)
	assert.Equal(t, uint16(0xC003), lines[2].Address)
}
