package cpu

// Mnemonic returns the textual mnemonic for an unprefixed opcode, with
// "n8", "nn" or "e" standing in for an immediate byte, word or signed
// displacement that the disassembler fills in from the bytes following it.
func Mnemonic(opcode byte) string { return opcodes[opcode].mnemonic }

// Length returns the total instruction length in bytes for an unprefixed
// opcode, including the opcode byte itself.
func Length(opcode byte) byte { return opcodes[opcode].length }

// CBMnemonic returns the mnemonic for a CB-prefixed opcode (not including
// the 0xCB byte itself).
func CBMnemonic(opcode byte) string { return cbOpcodes[opcode].mnemonic }

// CBLength returns the instruction length in bytes of a CB-prefixed
// instruction, including both the 0xCB byte and the suffix opcode byte.
func CBLength(opcode byte) byte { return cbOpcodes[opcode].length }
