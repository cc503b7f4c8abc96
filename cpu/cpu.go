// Package cpu implements the MOS 6502 CPU core: opcode decode, addressing
// mode resolution, per-instruction semantics, flag computation, cycle
// accounting, and stack discipline. It depends on a memory.Bus for all
// reads and writes, so multiple independent CPUs can coexist.
package cpu

import "github.com/hcoyote/sim6502/memory"

// Flag bit positions within P, per the documented 6502 status register
// layout: C=0, Z=1, I=2, D=3, B=4, U=5, V=6, N=7.
const (
	FlagCarry     = 0
	FlagZero      = 1
	FlagInterrupt = 2
	FlagDecimal   = 3
	FlagBreak     = 4
	FlagUnused    = 5
	FlagOverflow  = 6
	FlagNegative  = 7
)

// Flag bit masks, derived from the positions above.
const (
	maskCarry     = uint8(1) << FlagCarry
	maskZero      = uint8(1) << FlagZero
	maskInterrupt = uint8(1) << FlagInterrupt
	maskDecimal   = uint8(1) << FlagDecimal
	maskBreak     = uint8(1) << FlagBreak
	maskUnused    = uint8(1) << FlagUnused
	maskOverflow  = uint8(1) << FlagOverflow
	maskNegative  = uint8(1) << FlagNegative
)

const (
	resetPC  = uint16(0x0100) // Fixed boot address. See SPEC_FULL.md §4.3/§9.
	resetSP  = uint8(0xFD)
	resetP   = maskInterrupt | maskUnused
	stackTop = uint16(0x0100)

	// IrqVector is the vector BRK consults to load PC. NMI/Reset vectors
	// are architecturally defined but unused by this emulator: resets are
	// driven by Reset() directly and there is no NMI source (see Non-goals).
	IrqVector = uint16(0xFFFE)
)

// Chip is the 6502 architectural state: three data registers, a program
// counter, a stack pointer, and a processor-status register, plus the bus
// it's wired to. The register fields are exported so embedders and tests
// can inspect and script state between Execute calls.
type Chip struct {
	A  uint8
	X  uint8
	Y  uint8
	SP uint8
	P  uint8
	PC uint16

	bus *memory.Bus
}

// New creates a Chip wired to bus and powers it on via Reset.
func New(bus *memory.Bus) *Chip {
	c := &Chip{bus: bus}
	c.Reset()
	return c
}

// Reset sets PC, SP, A, X, Y, and P to their documented post-reset values
// and zeroes the bus's backing memory. Idempotent.
//
// A real 6502 loads PC from the vector at 0xFFFC/D; this emulator uses a
// fixed boot address instead so embedders can simply write a program
// starting there. Use SetPC after Reset to emulate vector-based boot.
func (c *Chip) Reset() {
	c.bus.Reset()
	c.PC = resetPC
	c.SP = resetSP
	c.A, c.X, c.Y = 0, 0, 0
	c.P = resetP
}

// SetPC overrides the program counter, e.g. to honor the standard reset
// vector instead of the fixed boot address Reset uses by default.
func (c *Chip) SetPC(pc uint16) {
	c.PC = pc
}

// Bus returns the memory.Bus this CPU is wired to, so embedders can
// pre-load programs and data with direct Bus.Write calls before Execute.
func (c *Chip) Bus() *memory.Bus {
	return c.bus
}

// FlagGet returns whether the flag at bit position is set.
func (c *Chip) FlagGet(bit int) bool {
	return c.P&(uint8(1)<<uint(bit)) != 0
}

// FlagSet sets or clears the flag at bit position, then unconditionally
// re-asserts the unused bit (bit 5 is always 1).
func (c *Chip) FlagSet(bit int, val bool) {
	m := uint8(1) << uint(bit)
	if val {
		c.P |= m
	} else {
		c.P &^= m
	}
	c.P |= maskUnused
}

// FlagToggle XORs the flag at bit position.
func (c *Chip) FlagToggle(bit int) {
	c.P ^= uint8(1) << uint(bit)
	c.P |= maskUnused
}

// setNZ sets Z from value == 0 and N from bit 7 of value.
func (c *Chip) setNZ(value uint8) {
	c.FlagSet(FlagZero, value == 0)
	c.FlagSet(FlagNegative, value&0x80 != 0)
}

// pushStack writes val to 0x0100|SP, then decrements SP (wrapping).
func (c *Chip) pushStack(val uint8) {
	c.bus.Write(stackTop|uint16(c.SP), val)
	c.SP--
}

// popStack increments SP (wrapping), then reads from 0x0100|SP.
func (c *Chip) popStack() uint8 {
	c.SP++
	return c.bus.Read(stackTop | uint16(c.SP))
}

// pushWord pushes a 16 bit value high-byte first, so two pops recover
// low then high.
func (c *Chip) pushWord(val uint16) {
	c.pushStack(uint8(val >> 8))
	c.pushStack(uint8(val))
}

// popWord pops a low byte then a high byte and assembles them little-endian.
func (c *Chip) popWord() uint16 {
	lo := c.popStack()
	hi := c.popStack()
	return uint16(hi)<<8 | uint16(lo)
}

// fetchByte reads the byte at PC, then advances PC (wrapping).
func (c *Chip) fetchByte() uint8 {
	v := c.bus.Read(c.PC)
	c.PC++
	return v
}

// fetchWord fetches a low byte then a high byte and assembles them
// little-endian, advancing PC by two.
func (c *Chip) fetchWord() uint16 {
	lo := c.fetchByte()
	hi := c.fetchByte()
	return uint16(hi)<<8 | uint16(lo)
}

// Execute runs instructions until the cycle budget is exhausted. Each
// instruction always completes once started, even if doing so pushes the
// budget negative; the loop never re-checks the budget mid-instruction.
// An unrecognized opcode costs 1 cycle and is a no-op (see SPEC_FULL.md §7
// for the policy choice). No errors propagate across this boundary.
func (c *Chip) Execute(cycles int) {
	for cycles > 0 {
		op := c.fetchByte()
		cycles -= opcodes[op].run(c)
	}
}
