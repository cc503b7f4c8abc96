package cpu

// execFunc runs one opcode's already-fetched instruction to completion
// (resolving its operand, performing its semantics, and writing back any
// result) and returns the actual number of cycles it consumed, including
// any page-cross or branch-taken adjustment.
type execFunc func(c *Chip) int

// opcodeEntry is one row of the decode table: the mnemonic and addressing
// mode (used by the disassembler), and the closure that executes it.
type opcodeEntry struct {
	mnemonic string
	addrMode mode
	run      execFunc
}

// implied wraps a fixed-cost, no-addressing instruction body.
func implied(cycles int, fn func(c *Chip)) execFunc {
	return func(c *Chip) int {
		fn(c)
		return cycles
	}
}

// loadOp builds an exec func for a load/ALU instruction: resolve the
// operand in mode m, apply it, and pay the page-cross penalty if this
// opcode is one of the ones that does (per spec.md's table, only reads do).
func loadOp(m mode, cycles int, penalty bool, apply func(c *Chip, v uint8)) execFunc {
	return func(c *Chip) int {
		v, crossed := resolveLoad(c, m)
		apply(c, v)
		if penalty && crossed {
			return cycles + 1
		}
		return cycles
	}
}

// storeOp builds an exec func for a store instruction. Stores always take
// their worst-case cycle count; resolveStoreAddr already discards the
// page-cross bool.
func storeOp(m mode, cycles int, value func(c *Chip) uint8) execFunc {
	return func(c *Chip) int {
		addr := resolveStoreAddr(c, m)
		c.bus.Write(addr, value(c))
		return cycles
	}
}

// rmwOp builds an exec func for a read-modify-write instruction.
func rmwOp(m mode, cycles int, apply func(c *Chip, v uint8) uint8) execFunc {
	return func(c *Chip) int {
		addr, v := resolveRMW(c, m)
		c.bus.Write(addr, apply(c, v))
		return cycles
	}
}

// accumulatorOp builds an exec func for the accumulator-mode shift/rotate
// opcodes (ASL A, LSR A, ROL A, ROR A), which operate on A directly with
// no memory access.
func accumulatorOp(cycles int, apply func(c *Chip, v uint8) uint8) execFunc {
	return func(c *Chip) int {
		c.A = apply(c, c.A)
		return cycles
	}
}

// branchOpcode builds an exec func for a conditional branch: base cost 2,
// +1 if taken, +1 more if the taken target crosses a page.
func branchOpcode(pred func(c *Chip) bool) execFunc {
	taken := branchOn(pred)
	return func(c *Chip) int {
		return 2 + taken(c)
	}
}

// opcodes is the full decode table, keyed by opcode byte. Unlisted bytes
// (this emulator implements the documented/legal instruction set only,
// not the undocumented opcodes) default to a 1-cycle no-op per the policy
// documented in SPEC_FULL.md §7.
var opcodes = buildOpcodes()

func buildOpcodes() [256]opcodeEntry {
	var t [256]opcodeEntry
	unimplemented := opcodeEntry{"???", modeImplied, implied(1, func(c *Chip) {})}
	for i := range t {
		t[i] = unimplemented
	}

	set := func(op uint8, mnemonic string, m mode, run execFunc) {
		t[op] = opcodeEntry{mnemonic, m, run}
	}

	// --- Load/Store ---
	set(0xA9, "LDA", modeImmediate, loadOp(modeImmediate, 2, false, loadA))
	set(0xA5, "LDA", modeZeroPage, loadOp(modeZeroPage, 3, false, loadA))
	set(0xB5, "LDA", modeZeroPageX, loadOp(modeZeroPageX, 4, false, loadA))
	set(0xAD, "LDA", modeAbsolute, loadOp(modeAbsolute, 4, false, loadA))
	set(0xBD, "LDA", modeAbsoluteX, loadOp(modeAbsoluteX, 4, true, loadA))
	set(0xB9, "LDA", modeAbsoluteY, loadOp(modeAbsoluteY, 4, true, loadA))
	set(0xA1, "LDA", modeIndirectX, loadOp(modeIndirectX, 6, false, loadA))
	set(0xB1, "LDA", modeIndirectY, loadOp(modeIndirectY, 5, true, loadA))

	set(0xA2, "LDX", modeImmediate, loadOp(modeImmediate, 2, false, loadX))
	set(0xA6, "LDX", modeZeroPage, loadOp(modeZeroPage, 3, false, loadX))
	set(0xB6, "LDX", modeZeroPageY, loadOp(modeZeroPageY, 4, false, loadX))
	set(0xAE, "LDX", modeAbsolute, loadOp(modeAbsolute, 4, false, loadX))
	set(0xBE, "LDX", modeAbsoluteY, loadOp(modeAbsoluteY, 4, true, loadX))

	set(0xA0, "LDY", modeImmediate, loadOp(modeImmediate, 2, false, loadY))
	set(0xA4, "LDY", modeZeroPage, loadOp(modeZeroPage, 3, false, loadY))
	set(0xB4, "LDY", modeZeroPageX, loadOp(modeZeroPageX, 4, false, loadY))
	set(0xAC, "LDY", modeAbsolute, loadOp(modeAbsolute, 4, false, loadY))
	set(0xBC, "LDY", modeAbsoluteX, loadOp(modeAbsoluteX, 4, true, loadY))

	set(0x85, "STA", modeZeroPage, storeOp(modeZeroPage, 3, regA))
	set(0x95, "STA", modeZeroPageX, storeOp(modeZeroPageX, 4, regA))
	set(0x8D, "STA", modeAbsolute, storeOp(modeAbsolute, 4, regA))
	set(0x9D, "STA", modeAbsoluteX, storeOp(modeAbsoluteX, 5, regA))
	set(0x99, "STA", modeAbsoluteY, storeOp(modeAbsoluteY, 5, regA))
	set(0x81, "STA", modeIndirectX, storeOp(modeIndirectX, 6, regA))
	set(0x91, "STA", modeIndirectY, storeOp(modeIndirectY, 6, regA))

	set(0x86, "STX", modeZeroPage, storeOp(modeZeroPage, 3, regX))
	set(0x96, "STX", modeZeroPageY, storeOp(modeZeroPageY, 4, regX))
	set(0x8E, "STX", modeAbsolute, storeOp(modeAbsolute, 4, regX))

	set(0x84, "STY", modeZeroPage, storeOp(modeZeroPage, 3, regY))
	set(0x94, "STY", modeZeroPageX, storeOp(modeZeroPageX, 4, regY))
	set(0x8C, "STY", modeAbsolute, storeOp(modeAbsolute, 4, regY))

	// --- Arithmetic ---
	set(0x69, "ADC", modeImmediate, loadOp(modeImmediate, 2, false, adc))
	set(0x65, "ADC", modeZeroPage, loadOp(modeZeroPage, 3, false, adc))
	set(0x75, "ADC", modeZeroPageX, loadOp(modeZeroPageX, 4, false, adc))
	set(0x6D, "ADC", modeAbsolute, loadOp(modeAbsolute, 4, false, adc))
	set(0x7D, "ADC", modeAbsoluteX, loadOp(modeAbsoluteX, 4, true, adc))
	set(0x79, "ADC", modeAbsoluteY, loadOp(modeAbsoluteY, 4, true, adc))
	set(0x61, "ADC", modeIndirectX, loadOp(modeIndirectX, 6, false, adc))
	set(0x71, "ADC", modeIndirectY, loadOp(modeIndirectY, 5, true, adc))

	set(0xE9, "SBC", modeImmediate, loadOp(modeImmediate, 2, false, sbc))
	set(0xE5, "SBC", modeZeroPage, loadOp(modeZeroPage, 3, false, sbc))
	set(0xF5, "SBC", modeZeroPageX, loadOp(modeZeroPageX, 4, false, sbc))
	set(0xED, "SBC", modeAbsolute, loadOp(modeAbsolute, 4, false, sbc))
	set(0xFD, "SBC", modeAbsoluteX, loadOp(modeAbsoluteX, 4, true, sbc))
	set(0xF9, "SBC", modeAbsoluteY, loadOp(modeAbsoluteY, 4, true, sbc))
	set(0xE1, "SBC", modeIndirectX, loadOp(modeIndirectX, 6, false, sbc))
	set(0xF1, "SBC", modeIndirectY, loadOp(modeIndirectY, 5, true, sbc))

	// --- Logic ---
	set(0x29, "AND", modeImmediate, loadOp(modeImmediate, 2, false, and))
	set(0x25, "AND", modeZeroPage, loadOp(modeZeroPage, 3, false, and))
	set(0x35, "AND", modeZeroPageX, loadOp(modeZeroPageX, 4, false, and))
	set(0x2D, "AND", modeAbsolute, loadOp(modeAbsolute, 4, false, and))
	set(0x3D, "AND", modeAbsoluteX, loadOp(modeAbsoluteX, 4, true, and))
	set(0x39, "AND", modeAbsoluteY, loadOp(modeAbsoluteY, 4, true, and))
	set(0x21, "AND", modeIndirectX, loadOp(modeIndirectX, 6, false, and))
	set(0x31, "AND", modeIndirectY, loadOp(modeIndirectY, 5, true, and))

	set(0x09, "ORA", modeImmediate, loadOp(modeImmediate, 2, false, ora))
	set(0x05, "ORA", modeZeroPage, loadOp(modeZeroPage, 3, false, ora))
	set(0x15, "ORA", modeZeroPageX, loadOp(modeZeroPageX, 4, false, ora))
	set(0x0D, "ORA", modeAbsolute, loadOp(modeAbsolute, 4, false, ora))
	set(0x1D, "ORA", modeAbsoluteX, loadOp(modeAbsoluteX, 4, true, ora))
	set(0x19, "ORA", modeAbsoluteY, loadOp(modeAbsoluteY, 4, true, ora))
	set(0x01, "ORA", modeIndirectX, loadOp(modeIndirectX, 6, false, ora))
	set(0x11, "ORA", modeIndirectY, loadOp(modeIndirectY, 5, true, ora))

	set(0x49, "EOR", modeImmediate, loadOp(modeImmediate, 2, false, eor))
	set(0x45, "EOR", modeZeroPage, loadOp(modeZeroPage, 3, false, eor))
	set(0x55, "EOR", modeZeroPageX, loadOp(modeZeroPageX, 4, false, eor))
	set(0x4D, "EOR", modeAbsolute, loadOp(modeAbsolute, 4, false, eor))
	set(0x5D, "EOR", modeAbsoluteX, loadOp(modeAbsoluteX, 4, true, eor))
	set(0x59, "EOR", modeAbsoluteY, loadOp(modeAbsoluteY, 4, true, eor))
	set(0x41, "EOR", modeIndirectX, loadOp(modeIndirectX, 6, false, eor))
	set(0x51, "EOR", modeIndirectY, loadOp(modeIndirectY, 5, true, eor))

	set(0x24, "BIT", modeZeroPage, loadOp(modeZeroPage, 3, false, bit))
	set(0x2C, "BIT", modeAbsolute, loadOp(modeAbsolute, 4, false, bit))

	// --- Shifts/rotates ---
	set(0x0A, "ASL", modeAccumulator, accumulatorOp(2, asl))
	set(0x06, "ASL", modeZeroPage, rmwOp(modeZeroPage, 5, asl))
	set(0x16, "ASL", modeZeroPageX, rmwOp(modeZeroPageX, 6, asl))
	set(0x0E, "ASL", modeAbsolute, rmwOp(modeAbsolute, 6, asl))
	set(0x1E, "ASL", modeAbsoluteX, rmwOp(modeAbsoluteX, 7, asl))

	set(0x4A, "LSR", modeAccumulator, accumulatorOp(2, lsr))
	set(0x46, "LSR", modeZeroPage, rmwOp(modeZeroPage, 5, lsr))
	set(0x56, "LSR", modeZeroPageX, rmwOp(modeZeroPageX, 6, lsr))
	set(0x4E, "LSR", modeAbsolute, rmwOp(modeAbsolute, 6, lsr))
	set(0x5E, "LSR", modeAbsoluteX, rmwOp(modeAbsoluteX, 7, lsr))

	set(0x2A, "ROL", modeAccumulator, accumulatorOp(2, rol))
	set(0x26, "ROL", modeZeroPage, rmwOp(modeZeroPage, 5, rol))
	set(0x36, "ROL", modeZeroPageX, rmwOp(modeZeroPageX, 6, rol))
	set(0x2E, "ROL", modeAbsolute, rmwOp(modeAbsolute, 6, rol))
	set(0x3E, "ROL", modeAbsoluteX, rmwOp(modeAbsoluteX, 7, rol))

	set(0x6A, "ROR", modeAccumulator, accumulatorOp(2, ror))
	set(0x66, "ROR", modeZeroPage, rmwOp(modeZeroPage, 5, ror))
	set(0x76, "ROR", modeZeroPageX, rmwOp(modeZeroPageX, 6, ror))
	set(0x6E, "ROR", modeAbsolute, rmwOp(modeAbsolute, 6, ror))
	set(0x7E, "ROR", modeAbsoluteX, rmwOp(modeAbsoluteX, 7, ror))

	// --- Increment/decrement ---
	set(0xE6, "INC", modeZeroPage, rmwOp(modeZeroPage, 5, inc))
	set(0xF6, "INC", modeZeroPageX, rmwOp(modeZeroPageX, 6, inc))
	set(0xEE, "INC", modeAbsolute, rmwOp(modeAbsolute, 6, inc))
	set(0xFE, "INC", modeAbsoluteX, rmwOp(modeAbsoluteX, 7, inc))

	set(0xC6, "DEC", modeZeroPage, rmwOp(modeZeroPage, 5, dec))
	set(0xD6, "DEC", modeZeroPageX, rmwOp(modeZeroPageX, 6, dec))
	set(0xCE, "DEC", modeAbsolute, rmwOp(modeAbsolute, 6, dec))
	set(0xDE, "DEC", modeAbsoluteX, rmwOp(modeAbsoluteX, 7, dec))

	set(0xE8, "INX", modeImplied, implied(2, func(c *Chip) { c.X++; c.setNZ(c.X) }))
	set(0xC8, "INY", modeImplied, implied(2, func(c *Chip) { c.Y++; c.setNZ(c.Y) }))
	set(0xCA, "DEX", modeImplied, implied(2, func(c *Chip) { c.X--; c.setNZ(c.X) }))
	set(0x88, "DEY", modeImplied, implied(2, func(c *Chip) { c.Y--; c.setNZ(c.Y) }))

	// --- Compare ---
	set(0xC9, "CMP", modeImmediate, loadOp(modeImmediate, 2, false, compare(regA)))
	set(0xC5, "CMP", modeZeroPage, loadOp(modeZeroPage, 3, false, compare(regA)))
	set(0xD5, "CMP", modeZeroPageX, loadOp(modeZeroPageX, 4, false, compare(regA)))
	set(0xCD, "CMP", modeAbsolute, loadOp(modeAbsolute, 4, false, compare(regA)))
	set(0xDD, "CMP", modeAbsoluteX, loadOp(modeAbsoluteX, 4, true, compare(regA)))
	set(0xD9, "CMP", modeAbsoluteY, loadOp(modeAbsoluteY, 4, true, compare(regA)))
	set(0xC1, "CMP", modeIndirectX, loadOp(modeIndirectX, 6, false, compare(regA)))
	set(0xD1, "CMP", modeIndirectY, loadOp(modeIndirectY, 5, true, compare(regA)))

	set(0xE0, "CPX", modeImmediate, loadOp(modeImmediate, 2, false, compare(regX)))
	set(0xE4, "CPX", modeZeroPage, loadOp(modeZeroPage, 3, false, compare(regX)))
	set(0xEC, "CPX", modeAbsolute, loadOp(modeAbsolute, 4, false, compare(regX)))

	set(0xC0, "CPY", modeImmediate, loadOp(modeImmediate, 2, false, compare(regY)))
	set(0xC4, "CPY", modeZeroPage, loadOp(modeZeroPage, 3, false, compare(regY)))
	set(0xCC, "CPY", modeAbsolute, loadOp(modeAbsolute, 4, false, compare(regY)))

	// --- Branches ---
	set(0x90, "BCC", modeRelative, branchOpcode(func(c *Chip) bool { return !c.FlagGet(FlagCarry) }))
	set(0xB0, "BCS", modeRelative, branchOpcode(func(c *Chip) bool { return c.FlagGet(FlagCarry) }))
	set(0xD0, "BNE", modeRelative, branchOpcode(func(c *Chip) bool { return !c.FlagGet(FlagZero) }))
	set(0xF0, "BEQ", modeRelative, branchOpcode(func(c *Chip) bool { return c.FlagGet(FlagZero) }))
	set(0x10, "BPL", modeRelative, branchOpcode(func(c *Chip) bool { return !c.FlagGet(FlagNegative) }))
	set(0x30, "BMI", modeRelative, branchOpcode(func(c *Chip) bool { return c.FlagGet(FlagNegative) }))
	set(0x50, "BVC", modeRelative, branchOpcode(func(c *Chip) bool { return !c.FlagGet(FlagOverflow) }))
	set(0x70, "BVS", modeRelative, branchOpcode(func(c *Chip) bool { return c.FlagGet(FlagOverflow) }))

	// --- Control transfer ---
	set(0x4C, "JMP", modeAbsolute, implied(3, jmp))
	set(0x6C, "JMP", modeIndirect, implied(5, jmpIndirect))
	set(0x20, "JSR", modeAbsolute, implied(6, jsr))
	set(0x60, "RTS", modeImplied, implied(6, rts))
	set(0x40, "RTI", modeImplied, implied(6, rti))
	set(0x00, "BRK", modeImplied, implied(7, brk))

	// --- Stack ---
	set(0x48, "PHA", modeImplied, implied(3, pha))
	set(0x68, "PLA", modeImplied, implied(4, pla))
	set(0x08, "PHP", modeImplied, implied(3, php))
	set(0x28, "PLP", modeImplied, implied(4, plp))

	// --- Register transfers ---
	set(0xAA, "TAX", modeImplied, implied(2, func(c *Chip) { c.X = c.A; c.setNZ(c.X) }))
	set(0x8A, "TXA", modeImplied, implied(2, func(c *Chip) { c.A = c.X; c.setNZ(c.A) }))
	set(0xA8, "TAY", modeImplied, implied(2, func(c *Chip) { c.Y = c.A; c.setNZ(c.Y) }))
	set(0x98, "TYA", modeImplied, implied(2, func(c *Chip) { c.A = c.Y; c.setNZ(c.A) }))
	set(0xBA, "TSX", modeImplied, implied(2, func(c *Chip) { c.X = c.SP; c.setNZ(c.X) }))
	set(0x9A, "TXS", modeImplied, implied(2, func(c *Chip) { c.SP = c.X }))

	// --- Flags ---
	set(0x18, "CLC", modeImplied, implied(2, func(c *Chip) { c.FlagSet(FlagCarry, false) }))
	set(0x38, "SEC", modeImplied, implied(2, func(c *Chip) { c.FlagSet(FlagCarry, true) }))
	set(0x58, "CLI", modeImplied, implied(2, func(c *Chip) { c.FlagSet(FlagInterrupt, false) }))
	set(0x78, "SEI", modeImplied, implied(2, func(c *Chip) { c.FlagSet(FlagInterrupt, true) }))
	set(0xB8, "CLV", modeImplied, implied(2, func(c *Chip) { c.FlagSet(FlagOverflow, false) }))
	set(0xD8, "CLD", modeImplied, implied(2, func(c *Chip) { c.FlagSet(FlagDecimal, false) }))
	set(0xF8, "SED", modeImplied, implied(2, func(c *Chip) { c.FlagSet(FlagDecimal, true) }))

	set(0xEA, "NOP", modeImplied, implied(2, func(c *Chip) {}))

	return t
}
