package cpu

// This file holds the semantic body of every instruction. Addressing and
// cycle accounting are handled by the table in opcodes.go and the
// resolvers in addressing.go; these functions only ever see an already
// resolved operand value or effective address.

// loadA, loadX, loadY store the resolved operand into the named register
// and set N,Z from the new value. Used as the apply callback for LDA/LDX/LDY.
func loadA(c *Chip, v uint8) { c.A = v; c.setNZ(v) }
func loadX(c *Chip, v uint8) { c.X = v; c.setNZ(v) }
func loadY(c *Chip, v uint8) { c.Y = v; c.setNZ(v) }

// adc implements ADC: A := A + M + C (binary, 9-bit), with C, Z, N, V per
// spec.md §4.3.6's exact rules. "Overflow occurs when both operands share
// a sign different from the result's sign."
func adc(c *Chip, v uint8) {
	carry := uint16(0)
	if c.FlagGet(FlagCarry) {
		carry = 1
	}
	r := uint16(c.A) + uint16(v) + carry
	res := uint8(r)
	c.FlagSet(FlagOverflow, (c.A^res)&(v^res)&0x80 != 0)
	c.FlagSet(FlagCarry, r > 0xFF)
	c.setNZ(res)
	c.A = res
}

// sbc implements SBC as ADC with the operand's ones complement, which is
// the standard binary-mode identity: A - M - (1-C) == A + ^M + C.
func sbc(c *Chip, v uint8) {
	adc(c, ^v)
}

func and(c *Chip, v uint8) { c.A &= v; c.setNZ(c.A) }
func ora(c *Chip, v uint8) { c.A |= v; c.setNZ(c.A) }
func eor(c *Chip, v uint8) { c.A ^= v; c.setNZ(c.A) }

// asl shifts left one bit; C gets the old bit 7.
func asl(c *Chip, v uint8) uint8 {
	c.FlagSet(FlagCarry, v&0x80 != 0)
	r := v << 1
	c.setNZ(r)
	return r
}

// lsr shifts right one bit; C gets the old bit 0.
func lsr(c *Chip, v uint8) uint8 {
	c.FlagSet(FlagCarry, v&0x01 != 0)
	r := v >> 1
	c.setNZ(r)
	return r
}

// rol rotates left through carry.
func rol(c *Chip, v uint8) uint8 {
	oldCarry := uint8(0)
	if c.FlagGet(FlagCarry) {
		oldCarry = 1
	}
	c.FlagSet(FlagCarry, v&0x80 != 0)
	r := (v << 1) | oldCarry
	c.setNZ(r)
	return r
}

// ror rotates right through carry.
func ror(c *Chip, v uint8) uint8 {
	oldCarry := uint8(0)
	if c.FlagGet(FlagCarry) {
		oldCarry = 0x80
	}
	c.FlagSet(FlagCarry, v&0x01 != 0)
	r := (v >> 1) | oldCarry
	c.setNZ(r)
	return r
}

func inc(c *Chip, v uint8) uint8 { r := v + 1; c.setNZ(r); return r }
func dec(c *Chip, v uint8) uint8 { r := v - 1; c.setNZ(r); return r }

// bit computes A & M for the Z flag, but sets N and V straight from M's
// bits 7 and 6 regardless of the AND result. A is left unchanged.
func bit(c *Chip, v uint8) {
	c.FlagSet(FlagZero, c.A&v == 0)
	c.FlagSet(FlagNegative, v&0x80 != 0)
	c.FlagSet(FlagOverflow, v&0x40 != 0)
}

// regA, regX, regY read back the named register; used by compare() so a
// single implementation covers CMP/CPX/CPY.
func regA(c *Chip) uint8 { return c.A }
func regX(c *Chip) uint8 { return c.X }
func regY(c *Chip) uint8 { return c.Y }

// compare implements CMP/CPX/CPY: (reg - M) sets C,Z,N without storing
// the result or touching V.
func compare(reg func(c *Chip) uint8) func(c *Chip, v uint8) {
	return func(c *Chip, v uint8) {
		r := reg(c)
		c.FlagSet(FlagCarry, r >= v)
		c.setNZ(r - v)
	}
}

// branchOn builds the semantics for a conditional branch: fetch the
// signed offset, and if pred holds compute the new PC and the taken/
// page-cross cycle penalties described in spec.md §4.3.5/§4.3.8.
func branchOn(pred func(c *Chip) bool) func(c *Chip) int {
	return func(c *Chip) int {
		offset := int8(c.fetchByte())
		if !pred(c) {
			return 0
		}
		from := c.PC
		target := uint16(int32(from) + int32(offset))
		c.PC = target
		extra := 1
		if target&0xFF00 != from&0xFF00 {
			extra++
		}
		return extra
	}
}

// jmp loads PC from an absolute address.
func jmp(c *Chip) {
	c.PC = c.fetchWord()
}

// jmpIndirect loads PC from the word stored at the fetched pointer. The
// real 6502 bug where the high byte fetch wraps within the same page
// (rather than crossing into the next page) when the pointer's low byte
// is 0xFF is reproduced here since it's a well known hardware quirk for
// this exact opcode.
func jmpIndirect(c *Chip) {
	ptr := c.fetchWord()
	lo := c.bus.Read(ptr)
	hiAddr := (ptr & 0xFF00) | uint16(uint8(ptr)+1)
	hi := c.bus.Read(hiAddr)
	c.PC = uint16(hi)<<8 | uint16(lo)
}

// jsr pushes the return address (the last byte of this instruction, i.e.
// PC-1 at this point) then jumps.
func jsr(c *Chip) {
	target := c.fetchWord()
	c.pushWord(c.PC - 1)
	c.PC = target
}

// rts pops a return address and resumes just past the JSR that pushed it.
func rts(c *Chip) {
	c.PC = c.popWord() + 1
}

// rti pops status then PC, restoring execution after an interrupt.
func rti(c *Chip) {
	c.P = c.popStack() | maskUnused
	c.P &^= maskBreak
	c.PC = c.popWord()
}

// brk implements the software interrupt per spec.md §4.3.6: the pushed
// return address points one byte past BRK (leaving a signature-byte slot),
// B is set in the pushed status only, I is set in live state, and PC loads
// from the IRQ/BRK vector.
func brk(c *Chip) {
	returnPC := c.PC + 1
	c.pushWord(returnPC)
	c.pushStack(c.P | maskBreak | maskUnused)
	c.FlagSet(FlagInterrupt, true)
	lo := c.bus.Read(IrqVector)
	hi := c.bus.Read(IrqVector + 1)
	c.PC = uint16(hi)<<8 | uint16(lo)
}

func pha(c *Chip) { c.pushStack(c.A) }
func pla(c *Chip) { c.A = c.popStack(); c.setNZ(c.A) }
func php(c *Chip) { c.pushStack(c.P | maskBreak | maskUnused) }

// plp restores P from the stack. The pushed value always has B set (PHP
// forces it), so it's cleared back out here, the same as rti does.
func plp(c *Chip) { c.P = (c.popStack() | maskUnused) &^ maskBreak }
