// Package disasm renders a short run of Game Boy machine code as text,
// pulling mnemonics and instruction lengths from the cpu package's decode
// table so the two can never drift apart.
package disasm

import (
	"fmt"
	"strings"

	"dmgcore/dmg/bit"
	"dmgcore/dmg/cpu"
	"dmgcore/dmg/memory"
)

// DisassemblyLine is one decoded instruction: its address, rendered text and
// length in bytes.
type DisassemblyLine struct {
	Address     uint16
	Instruction string
	Length      int
}

// DisassembleAt disassembles the single instruction at pc.
func DisassembleAt(pc uint16, mmu *memory.MMU) DisassemblyLine {
	opcode := mmu.Read(pc)

	if opcode == 0xCB {
		sub := mmu.Read(pc + 1)
		return DisassemblyLine{
			Address:     pc,
			Instruction: cpu.CBMnemonic(sub),
			Length:      int(cpu.CBLength(sub)),
		}
	}

	mnemonic := cpu.Mnemonic(opcode)
	length := int(cpu.Length(opcode))

	switch {
	case strings.Contains(mnemonic, "nn"):
		lo := mmu.Read(pc + 1)
		hi := mmu.Read(pc + 2)
		nn := bit.Combine(hi, lo)
		mnemonic = strings.Replace(mnemonic, "nn", fmt.Sprintf("0x%04X", nn), 1)
	case strings.Contains(mnemonic, "n8"):
		n := mmu.Read(pc + 1)
		mnemonic = strings.Replace(mnemonic, "n8", fmt.Sprintf("0x%02X", n), 1)
	case strings.Contains(mnemonic, ",e") || strings.HasSuffix(mnemonic, "e"):
		e := int8(mmu.Read(pc + 1))
		target := uint16(int32(pc) + int32(length) + int32(e))
		mnemonic = strings.Replace(mnemonic, "e", fmt.Sprintf("0x%04X", target), 1)
	}

	return DisassemblyLine{
		Address:     pc,
		Instruction: mnemonic,
		Length:      length,
	}
}

// DisassembleRange disassembles up to count instructions starting at startPC.
func DisassembleRange(startPC uint16, count int, mmu *memory.MMU) []DisassemblyLine {
	lines := make([]DisassemblyLine, 0, count)
	pc := startPC

	for i := 0; i < count && int(pc)+i < 0x10000; i++ {
		line := DisassembleAt(pc, mmu)
		lines = append(lines, line)
		if line.Length == 0 {
			break
		}
		pc += uint16(line.Length)
	}

	return lines
}

// FormatDisassemblyLine renders one line for display, e.g. "0x0100: NOP".
func FormatDisassemblyLine(line DisassemblyLine) string {
	return fmt.Sprintf("0x%04X: %s", line.Address, line.Instruction)
}
