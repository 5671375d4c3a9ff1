package cpu

// instruction describes one decoded opcode: how to execute it against a CPU
// and how many cycles it costs (including conditional branches, which report
// their own cycle count when taken vs not taken).
type instruction struct {
	mnemonic string
	length   byte
	exec     func(c *CPU) int
}

var opcodes [256]instruction
var cbOpcodes [256]instruction

var regNames = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}
var r16Names = [4]string{"BC", "DE", "HL", "SP"}
var ccNames = [4]string{"NZ", "Z", "NC", "C"}

func (c *CPU) checkCond(cc byte) bool {
	switch cc & 0x03 {
	case 0:
		return !c.isSetFlag(flagZ)
	case 1:
		return c.isSetFlag(flagZ)
	case 2:
		return !c.isSetFlag(flagC)
	default:
		return c.isSetFlag(flagC)
	}
}

func init() {
	initLoads()
	initALU()
	initIncDec()
	initRotatesAndMisc()
	initControlFlow()
	initCBTable()
}

// initLoads fills the 0x40-0x7F LD r,r' block (0x76 is HALT) plus the
// assorted single-opcode load forms.
func initLoads() {
	for op := 0x40; op <= 0x7F; op++ {
		if op == 0x76 {
			continue // HALT, set in initRotatesAndMisc
		}
		dst := byte((op >> 3) & 0x07)
		src := byte(op & 0x07)
		cycles := 4
		if dst == 6 || src == 6 {
			cycles = 8
		}
		opcodes[op] = instruction{
			mnemonic: "LD " + regNames[dst] + "," + regNames[src],
			length:   1,
			exec: func(dst, src byte, cycles int) func(c *CPU) int {
				return func(c *CPU) int {
					c.setR8(dst, c.r8(src))
					return cycles
				}
			}(dst, src, cycles),
		}
	}

	// LD r,n8
	for reg := byte(0); reg < 8; reg++ {
		op := 0x06 + reg*8
		cycles := byte(8)
		if reg == 6 {
			cycles = 12
		}
		opcodes[op] = instruction{
			mnemonic: "LD " + regNames[reg] + ",n8",
			length:   2,
			exec: func(reg byte, cycles int) func(c *CPU) int {
				return func(c *CPU) int {
					n := c.fetch8()
					c.setR8(reg, n)
					return cycles
				}
			}(reg, int(cycles)),
		}
	}

	// LD rr,nn
	for group := byte(0); group < 4; group++ {
		op := 0x01 + group*0x10
		opcodes[op] = instruction{
			mnemonic: "LD " + r16Names[group] + ",nn",
			length:   3,
			exec: func(group byte) func(c *CPU) int {
				return func(c *CPU) int {
					c.setR16(group, c.fetch16())
					return 12
				}
			}(group),
		}
	}

	opcodes[0x02] = instruction{"LD (BC),A", 1, func(c *CPU) int { c.mem.Write(c.getBC(), c.a); return 8 }}
	opcodes[0x12] = instruction{"LD (DE),A", 1, func(c *CPU) int { c.mem.Write(c.getDE(), c.a); return 8 }}
	opcodes[0x0A] = instruction{"LD A,(BC)", 1, func(c *CPU) int { c.a = c.mem.Read(c.getBC()); return 8 }}
	opcodes[0x1A] = instruction{"LD A,(DE)", 1, func(c *CPU) int { c.a = c.mem.Read(c.getDE()); return 8 }}

	opcodes[0x22] = instruction{"LD (HL+),A", 1, func(c *CPU) int {
		c.mem.Write(c.getHL(), c.a)
		c.setHL(c.getHL() + 1)
		return 8
	}}
	opcodes[0x32] = instruction{"LD (HL-),A", 1, func(c *CPU) int {
		c.mem.Write(c.getHL(), c.a)
		c.setHL(c.getHL() - 1)
		return 8
	}}
	opcodes[0x2A] = instruction{"LD A,(HL+)", 1, func(c *CPU) int {
		c.a = c.mem.Read(c.getHL())
		c.setHL(c.getHL() + 1)
		return 8
	}}
	opcodes[0x3A] = instruction{"LD A,(HL-)", 1, func(c *CPU) int {
		c.a = c.mem.Read(c.getHL())
		c.setHL(c.getHL() - 1)
		return 8
	}}

	opcodes[0x08] = instruction{"LD (nn),SP", 3, func(c *CPU) int {
		addr := c.fetch16()
		c.mem.Write(addr, byte(c.sp))
		c.mem.Write(addr+1, byte(c.sp>>8))
		return 20
	}}

	opcodes[0xE0] = instruction{"LDH (n),A", 2, func(c *CPU) int {
		n := c.fetch8()
		c.mem.Write(0xFF00+uint16(n), c.a)
		return 12
	}}
	opcodes[0xF0] = instruction{"LDH A,(n)", 2, func(c *CPU) int {
		n := c.fetch8()
		c.a = c.mem.Read(0xFF00 + uint16(n))
		return 12
	}}
	opcodes[0xE2] = instruction{"LD (C),A", 1, func(c *CPU) int {
		c.mem.Write(0xFF00+uint16(c.c), c.a)
		return 8
	}}
	opcodes[0xF2] = instruction{"LD A,(C)", 1, func(c *CPU) int {
		c.a = c.mem.Read(0xFF00 + uint16(c.c))
		return 8
	}}
	opcodes[0xEA] = instruction{"LD (nn),A", 3, func(c *CPU) int {
		c.mem.Write(c.fetch16(), c.a)
		return 16
	}}
	opcodes[0xFA] = instruction{"LD A,(nn)", 3, func(c *CPU) int {
		c.a = c.mem.Read(c.fetch16())
		return 16
	}}

	opcodes[0xF9] = instruction{"LD SP,HL", 1, func(c *CPU) int { c.sp = c.getHL(); return 8 }}
	opcodes[0xF8] = instruction{"LD HL,SP+e", 2, func(c *CPU) int {
		e := int8(c.fetch8())
		c.setHL(c.addSPSigned(e))
		return 12
	}}

	// PUSH/POP use the AF-instead-of-SP register group.
	pushPopNames := [4]string{"BC", "DE", "HL", "AF"}
	for group := byte(0); group < 4; group++ {
		group := group
		opcodes[0xC1+group*0x10] = instruction{"POP " + pushPopNames[group], 1, func(c *CPU) int {
			v := c.pop16()
			if group == 3 {
				c.setAF(v)
			} else {
				c.setR16(group, v)
			}
			return 12
		}}
		opcodes[0xC5+group*0x10] = instruction{"PUSH " + pushPopNames[group], 1, func(c *CPU) int {
			var v uint16
			if group == 3 {
				v = c.getAF()
			} else {
				v = c.r16(group)
			}
			c.push16(v)
			return 16
		}}
	}
}

// initALU fills the 0x80-0xBF ALU A,r8 block plus the 0xC6-style ALU A,n8
// immediate forms.
func initALU() {
	type aluOp struct {
		name string
		fn   func(c *CPU, v byte)
	}
	ops := [8]aluOp{
		{"ADD", func(c *CPU, v byte) { c.add(v) }},
		{"ADC", func(c *CPU, v byte) { c.adc(v) }},
		{"SUB", func(c *CPU, v byte) { c.sub(v) }},
		{"SBC", func(c *CPU, v byte) { c.sbc(v) }},
		{"AND", func(c *CPU, v byte) { c.and(v) }},
		{"XOR", func(c *CPU, v byte) { c.xor(v) }},
		{"OR", func(c *CPU, v byte) { c.or(v) }},
		{"CP", func(c *CPU, v byte) { c.cp(v) }},
	}

	for i, op := range ops {
		i, op := i, op
		for reg := byte(0); reg < 8; reg++ {
			reg := reg
			code := 0x80 + i*8 + int(reg)
			cycles := 4
			if reg == 6 {
				cycles = 8
			}
			opcodes[code] = instruction{
				mnemonic: op.name + " A," + regNames[reg],
				length:   1,
				exec: func(c *CPU) int {
					op.fn(c, c.r8(reg))
					return cycles
				},
			}
		}

		immCode := 0xC6 + i*8
		opcodes[immCode] = instruction{
			mnemonic: op.name + " A,n8",
			length:   2,
			exec: func(c *CPU) int {
				op.fn(c, c.fetch8())
				return 8
			},
		}
	}
}

func initIncDec() {
	for reg := byte(0); reg < 8; reg++ {
		reg := reg
		incCycles, decCycles := 4, 4
		if reg == 6 {
			incCycles, decCycles = 12, 12
		}
		opcodes[0x04+reg*8] = instruction{"INC " + regNames[reg], 1, func(c *CPU) int {
			c.setR8(reg, c.inc8(c.r8(reg)))
			return incCycles
		}}
		opcodes[0x05+reg*8] = instruction{"DEC " + regNames[reg], 1, func(c *CPU) int {
			c.setR8(reg, c.dec8(c.r8(reg)))
			return decCycles
		}}
	}

	for group := byte(0); group < 4; group++ {
		group := group
		opcodes[0x03+group*0x10] = instruction{"INC " + r16Names[group], 1, func(c *CPU) int {
			c.setR16(group, c.r16(group)+1)
			return 8
		}}
		opcodes[0x0B+group*0x10] = instruction{"DEC " + r16Names[group], 1, func(c *CPU) int {
			c.setR16(group, c.r16(group)-1)
			return 8
		}}
		opcodes[0x09+group*0x10] = instruction{"ADD HL," + r16Names[group], 1, func(c *CPU) int {
			c.addHL(c.r16(group))
			return 8
		}}
	}
}

func initRotatesAndMisc() {
	opcodes[0x00] = instruction{"NOP", 1, func(c *CPU) int { return 4 }}
	opcodes[0x76] = instruction{"HALT", 1, func(c *CPU) int {
		c.halt()
		return 4
	}}
	opcodes[0x10] = instruction{"STOP", 2, func(c *CPU) int {
		c.fetch8() // STOP is followed by a padding byte on real hardware
		c.halted = true
		return 4
	}}

	opcodes[0x07] = instruction{"RLCA", 1, func(c *CPU) int { c.a = c.rlc(c.a); c.resetFlag(flagZ); return 4 }}
	opcodes[0x0F] = instruction{"RRCA", 1, func(c *CPU) int { c.a = c.rrc(c.a); c.resetFlag(flagZ); return 4 }}
	opcodes[0x17] = instruction{"RLA", 1, func(c *CPU) int { c.a = c.rl(c.a); c.resetFlag(flagZ); return 4 }}
	opcodes[0x1F] = instruction{"RRA", 1, func(c *CPU) int { c.a = c.rr(c.a); c.resetFlag(flagZ); return 4 }}

	opcodes[0x27] = instruction{"DAA", 1, func(c *CPU) int { c.daa(); return 4 }}
	opcodes[0x2F] = instruction{"CPL", 1, func(c *CPU) int { c.cpl(); return 4 }}
	opcodes[0x37] = instruction{"SCF", 1, func(c *CPU) int { c.scf(); return 4 }}
	opcodes[0x3F] = instruction{"CCF", 1, func(c *CPU) int { c.ccf(); return 4 }}

	opcodes[0xF3] = instruction{"DI", 1, func(c *CPU) int { c.ime = false; c.imePending = false; return 4 }}
	opcodes[0xFB] = instruction{"EI", 1, func(c *CPU) int { c.imePending = true; return 4 }}

	for _, op := range []int{0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD} {
		op := byte(op)
		opcodes[int(op)] = instruction{"DB", 1, func(c *CPU) int {
			panic(&UnsupportedOpcodeError{Opcode: op, PC: c.pc - 1, Dump: c.RegisterDump()})
		}}
	}
}

func initControlFlow() {
	opcodes[0xC3] = instruction{"JP nn", 3, func(c *CPU) int { c.pc = c.fetch16(); return 16 }}
	opcodes[0xE9] = instruction{"JP HL", 1, func(c *CPU) int { c.pc = c.getHL(); return 4 }}
	opcodes[0x18] = instruction{"JR e", 2, func(c *CPU) int {
		e := int8(c.fetch8())
		c.pc = uint16(int32(c.pc) + int32(e))
		return 12
	}}
	opcodes[0xCD] = instruction{"CALL nn", 3, func(c *CPU) int {
		target := c.fetch16()
		c.push16(c.pc)
		c.pc = target
		return 24
	}}
	opcodes[0xC9] = instruction{"RET", 1, func(c *CPU) int { c.pc = c.pop16(); return 16 }}
	opcodes[0xD9] = instruction{"RETI", 1, func(c *CPU) int {
		c.pc = c.pop16()
		c.ime = true
		return 16
	}}

	for cc := byte(0); cc < 4; cc++ {
		cc := cc
		opcodes[0x20+cc*8] = instruction{"JR " + ccNames[cc] + ",e", 2, func(c *CPU) int {
			e := int8(c.fetch8())
			if c.checkCond(cc) {
				c.pc = uint16(int32(c.pc) + int32(e))
				return 12
			}
			return 8
		}}
		opcodes[0xC2+cc*8] = instruction{"JP " + ccNames[cc] + ",nn", 3, func(c *CPU) int {
			target := c.fetch16()
			if c.checkCond(cc) {
				c.pc = target
				return 16
			}
			return 12
		}}
		opcodes[0xC4+cc*8] = instruction{"CALL " + ccNames[cc] + ",nn", 3, func(c *CPU) int {
			target := c.fetch16()
			if c.checkCond(cc) {
				c.push16(c.pc)
				c.pc = target
				return 24
			}
			return 12
		}}
		opcodes[0xC0+cc*8] = instruction{"RET " + ccNames[cc], 1, func(c *CPU) int {
			if c.checkCond(cc) {
				c.pc = c.pop16()
				return 20
			}
			return 8
		}}
	}

	for n := byte(0); n < 8; n++ {
		n := n
		opcodes[0xC7+n*8] = instruction{"RST", 1, func(c *CPU) int {
			c.push16(c.pc)
			c.pc = uint16(n) * 8
			return 16
		}}
	}

	opcodes[0xE8] = instruction{"ADD SP,e", 2, func(c *CPU) int {
		e := int8(c.fetch8())
		c.sp = c.addSPSigned(e)
		return 16
	}}
}

// initCBTable fills the CB-prefixed block: rotates/shifts, BIT, RES, SET,
// each over the 8 standard r8 targets.
func initCBTable() {
	type shiftOp struct {
		name string
		fn   func(c *CPU, v byte) byte
	}
	shifts := [8]shiftOp{
		{"RLC", (*CPU).rlc},
		{"RRC", (*CPU).rrc},
		{"RL", (*CPU).rl},
		{"RR", (*CPU).rr},
		{"SLA", (*CPU).sla},
		{"SRA", (*CPU).sra},
		{"SWAP", (*CPU).swap},
		{"SRL", (*CPU).srl},
	}

	for i, op := range shifts {
		op := op
		for reg := byte(0); reg < 8; reg++ {
			reg := reg
			code := i*8 + int(reg)
			cycles := 8
			if reg == 6 {
				cycles = 16
			}
			cbOpcodes[code] = instruction{op.name + " " + regNames[reg], 2, func(c *CPU) int {
				c.setR8(reg, op.fn(c, c.r8(reg)))
				return cycles
			}}
		}
	}

	for b := byte(0); b < 8; b++ {
		for reg := byte(0); reg < 8; reg++ {
			b, reg := b, reg
			cycles := 8
			if reg == 6 {
				cycles = 12
			}
			cbOpcodes[0x40+int(b)*8+int(reg)] = instruction{"BIT", 2, func(c *CPU) int {
				c.bitTest(b, c.r8(reg))
				return cycles
			}}

			resSetCycles := 8
			if reg == 6 {
				resSetCycles = 16
			}
			cbOpcodes[0x80+int(b)*8+int(reg)] = instruction{"RES", 2, func(c *CPU) int {
				c.setR8(reg, c.res(b, c.r8(reg)))
				return resSetCycles
			}}
			cbOpcodes[0xC0+int(b)*8+int(reg)] = instruction{"SET", 2, func(c *CPU) int {
				c.setR8(reg, c.set(b, c.r8(reg)))
				return resSetCycles
			}}
		}
	}
}
