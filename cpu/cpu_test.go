package cpu

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-test/deep"
	"github.com/stretchr/testify/assert"

	"github.com/hcoyote/sim6502/memory"
)

// newChip builds a fresh Chip over a full 64k RAM bank, ready for a test to
// load a short program at the default boot address and Execute it.
func newChip(t *testing.T) *Chip {
	t.Helper()
	c := New(memory.NewBus(memory.NewRAM()))
	return c
}

// load writes prog starting at addr via the bus, the way a test harness
// would stage a program image before Execute.
func load(c *Chip, addr uint16, prog ...uint8) {
	for i, b := range prog {
		c.Bus().Write(addr+uint16(i), b)
	}
}

// --- Invariant 1: bit 5 of P is always 1 after Execute. ---

func TestUnusedFlagAlwaysSet(t *testing.T) {
	c := newChip(t)
	load(c, c.PC, 0xA9, 0x00) // LDA #$00
	c.Execute(2)
	assert.True(t, c.P&maskUnused != 0)
}

// --- Invariant 2: balanced push/pop restores SP. ---

func TestStackBalancedRestoresSP(t *testing.T) {
	c := newChip(t)
	start := c.SP
	c.pushStack(0x11)
	c.pushStack(0x22)
	c.pushStack(0x33)
	c.popStack()
	c.popStack()
	c.popStack()
	assert.Equal(t, start, c.SP)
}

// --- Invariant 3: LDA #imm sets A, Z, N per imm's value. ---

func TestLDAImmediateSetsFlags(t *testing.T) {
	cases := []uint8{0x00, 0x01, 0x80, 0xFF, 0x7F}
	for _, imm := range cases {
		c := newChip(t)
		load(c, c.PC, 0xA9, imm)
		c.Execute(2)
		if diff := deep.Equal(c.A, imm); diff != nil {
			t.Errorf("imm %#x: A mismatch: %v\nstate: %s", imm, diff, spew.Sdump(c))
		}
		assert.Equal(t, imm == 0, c.FlagGet(FlagZero), "Z for imm %#x", imm)
		assert.Equal(t, imm>>7 == 1, c.FlagGet(FlagNegative), "N for imm %#x", imm)
	}
}

// --- Invariant 4: STA leaves P unchanged, in every addressing mode. ---

func TestSTALeavesFlagsUnchanged(t *testing.T) {
	modes := []struct {
		name string
		op   uint8
		prog []uint8
	}{
		{"zp", 0x85, []uint8{0x10}},
		{"zpx", 0x95, []uint8{0x10}},
		{"abs", 0x8D, []uint8{0x00, 0x20}},
		{"absx", 0x9D, []uint8{0x00, 0x20}},
		{"absy", 0x99, []uint8{0x00, 0x20}},
		{"indx", 0x81, []uint8{0x10}},
		{"indy", 0x91, []uint8{0x10}},
	}
	for _, m := range modes {
		c := newChip(t)
		c.A = 0x55
		c.P = maskCarry | maskOverflow | maskUnused
		before := c.P
		load(c, c.PC, m.prog...)
		opcodes[m.op].run(c)
		assert.Equal(t, before, c.P, "mode %s", m.name)
	}
}

// --- Invariant 5: zero-page,X effective address always stays in page 0. ---

func TestZeroPageXWraps(t *testing.T) {
	c := newChip(t)
	c.X = 0xFF
	load(c, c.PC, 0xB5, 0x02) // LDA $02,X -> effective 0x01
	c.Bus().Write(0x0001, 0x99)
	c.Execute(4)
	assert.Equal(t, uint8(0x99), c.A)
}

// --- Invariant 6: bus read-after-write returns the written byte. ---

func TestBusReadAfterWrite(t *testing.T) {
	c := newChip(t)
	c.Bus().Write(0x1234, 0xAB)
	assert.Equal(t, uint8(0xAB), c.Bus().Read(0x1234))
	c.Bus().Write(0x1234, 0xCD)
	assert.Equal(t, uint8(0xCD), c.Bus().Read(0x1234))
}

// --- Invariant 7: Reset leaves all of memory at 0x00. ---

func TestResetZeroesMemory(t *testing.T) {
	c := newChip(t)
	c.Bus().Write(0x0000, 0xFF)
	c.Bus().Write(0x7FFF, 0xFF)
	c.Bus().Write(0xFFFF, 0xFF)
	c.Reset()
	for _, addr := range []uint16{0x0000, 0x7FFF, 0xFFFF} {
		assert.Equal(t, uint8(0x00), c.Bus().Read(addr), "addr %#x", addr)
	}
}

// --- Round trip: push hi, push lo, pop -> lo, pop -> hi. ---

func TestPushPopOrder(t *testing.T) {
	c := newChip(t)
	c.pushStack(0xAA) // hi
	c.pushStack(0xBB) // lo
	assert.Equal(t, uint8(0xBB), c.popStack())
	assert.Equal(t, uint8(0xAA), c.popStack())
}

// --- Round trip: ADC with carry-in 0 then SBC inverts. ---

func TestAdcSbcRoundTrip(t *testing.T) {
	c := newChip(t)
	c.A = 0x10
	c.FlagSet(FlagCarry, false) // ADC with carry-in 0
	adc(c, 0x22)
	assert.Equal(t, uint8(0x32), c.A)
	c.FlagSet(FlagCarry, true) // SBC needs carry set to mean "no borrow"
	sbc(c, 0x22)
	assert.Equal(t, uint8(0x10), c.A)
}

// --- Boundary: LDA ABS,X crossing a page costs one extra cycle. ---

func TestAbsoluteXPageCrossPenalty(t *testing.T) {
	c := newChip(t)
	c.X = 0x01
	load(c, c.PC, 0xBD, 0xFF, 0x03) // LDA $03FF,X -> 0x0400
	c.Bus().Write(0x0400, 0x42)
	before := c.PC
	c.Execute(5)
	assert.Equal(t, uint8(0x42), c.A)
	assert.Equal(t, before+3, c.PC)
}

// --- Boundary: LDA (Indirect,X) with a zero-page-wrapping pointer. ---

func TestIndirectXZeroPageWrap(t *testing.T) {
	c := newChip(t)
	c.X = 0x01
	load(c, c.PC, 0xA1, 0xFE) // LDA ($FE,X) -> pointer at 0xFF,0x00
	c.Bus().Write(0x00FF, 0x00)
	c.Bus().Write(0x0000, 0x04)
	c.Bus().Write(0x0400, 0x77)
	c.Execute(6)
	assert.Equal(t, uint8(0x77), c.A)
}

// --- Boundary: branch at 0x02FD with offset +1 crosses a page, cost 4. ---

func TestBranchPageCrossCost(t *testing.T) {
	c := newChip(t)
	c.SetPC(0x02FD)
	load(c, 0x02FD, 0xF0, 0x01) // BEQ +1
	c.FlagSet(FlagZero, true)
	c.Execute(4)
	assert.Equal(t, uint16(0x0300), c.PC)
}

// --- Scenario 1: LDA #$20 then ADC #$22 -> A=0x42, all of C/Z/V/N clear. ---

func TestScenarioLDAThenADC(t *testing.T) {
	c := newChip(t)
	load(c, c.PC, 0xA9, 0x20, 0x69, 0x22)
	c.Execute(4)
	assert.Equal(t, uint8(0x42), c.A)
	assert.False(t, c.FlagGet(FlagCarry))
	assert.False(t, c.FlagGet(FlagZero))
	assert.False(t, c.FlagGet(FlagOverflow))
	assert.False(t, c.FlagGet(FlagNegative))
}

// --- Scenario 2: 0x7F + 1 overflows into negative without carry. ---

func TestScenarioADCSignedOverflow(t *testing.T) {
	c := newChip(t)
	c.A = 0x7F
	load(c, c.PC, 0x69, 0x01)
	c.Execute(2)
	assert.Equal(t, uint8(0x80), c.A)
	assert.True(t, c.FlagGet(FlagOverflow))
	assert.True(t, c.FlagGet(FlagNegative))
	assert.False(t, c.FlagGet(FlagCarry))
}

// --- Scenario 3: 0xFF + 1 wraps to zero with carry, no overflow. ---

func TestScenarioADCCarryWrap(t *testing.T) {
	c := newChip(t)
	c.A = 0xFF
	load(c, c.PC, 0x69, 0x01)
	c.Execute(2)
	assert.Equal(t, uint8(0x00), c.A)
	assert.True(t, c.FlagGet(FlagCarry))
	assert.True(t, c.FlagGet(FlagZero))
	assert.False(t, c.FlagGet(FlagOverflow))
}

// --- Scenario 4: LDA $FF,X with X=2 wraps to zero-page address 0x01. ---

func TestScenarioLDAZeroPageXWrap(t *testing.T) {
	c := newChip(t)
	c.X = 0x02
	c.Bus().Write(0x0001, 0x77)
	load(c, c.PC, 0xB5, 0xFF)
	c.Execute(4)
	assert.Equal(t, uint8(0x77), c.A)
}

// --- Scenario 5: BRK pushes return PC+1, status with B/U set, jumps via vector. ---

func TestScenarioBRK(t *testing.T) {
	c := newChip(t)
	c.Bus().Write(IrqVector, 0x34)
	c.Bus().Write(IrqVector+1, 0x12)
	c.SP = 0xFF
	c.SetPC(0x0200)
	load(c, 0x0200, 0x00)
	c.Execute(7)
	assert.Equal(t, uint16(0x1234), c.PC)
	assert.Equal(t, uint8(0xFC), c.SP)
	assert.Equal(t, uint8(0x02), c.Bus().Read(0x01FF))
	assert.Equal(t, uint8(0x02), c.Bus().Read(0x01FE))
	pushedStatus := c.Bus().Read(0x01FD)
	assert.True(t, pushedStatus&maskBreak != 0)
	assert.True(t, c.FlagGet(FlagInterrupt))
}

// --- Scenario 6: BIT sets Z/N/V from memory and leaves A unchanged. ---

func TestScenarioBIT(t *testing.T) {
	c := newChip(t)
	c.A = 0x0F
	c.Bus().Write(0x0010, 0xF0)
	load(c, c.PC, 0x24, 0x10)
	c.Execute(3)
	assert.True(t, c.FlagGet(FlagZero))
	assert.True(t, c.FlagGet(FlagNegative))
	assert.True(t, c.FlagGet(FlagOverflow))
	assert.Equal(t, uint8(0x0F), c.A)
}

// --- (ADDED) SBC borrow: carry clear means "borrow 1" on top of the operand. ---

func TestAddedSBCBorrow(t *testing.T) {
	c := newChip(t)
	c.A = 0x10
	c.FlagSet(FlagCarry, false)
	load(c, c.PC, 0xE9, 0x05) // SBC #$05, with borrow -> A - 5 - 1
	c.Execute(2)
	assert.Equal(t, uint8(0x0A), c.A)
	assert.True(t, c.FlagGet(FlagCarry))
}

// --- (ADDED) CMP sets Carry on >=, Zero on ==, Negative from the subtraction. ---

func TestAddedCMPFlagCombinations(t *testing.T) {
	cases := []struct {
		a, m          uint8
		carry, zero   bool
	}{
		{0x10, 0x10, true, true},
		{0x10, 0x05, true, false},
		{0x05, 0x10, false, false},
	}
	for _, tc := range cases {
		c := newChip(t)
		c.A = tc.a
		load(c, c.PC, 0xC9, tc.m)
		c.Execute(2)
		assert.Equal(t, tc.carry, c.FlagGet(FlagCarry), "a=%#x m=%#x", tc.a, tc.m)
		assert.Equal(t, tc.zero, c.FlagGet(FlagZero), "a=%#x m=%#x", tc.a, tc.m)
	}
}

// --- (ADDED) JSR/RTS round trip returns PC to just past the call site. ---

func TestAddedJSRRTSRoundTrip(t *testing.T) {
	c := newChip(t)
	c.SetPC(0x0300)
	load(c, 0x0300, 0x20, 0x00, 0x04) // JSR $0400
	load(c, 0x0400, 0x60)            // RTS
	c.Execute(6)
	assert.Equal(t, uint16(0x0400), c.PC)
	c.Execute(6)
	assert.Equal(t, uint16(0x0303), c.PC)
}

// --- (ADDED) PHA/PLA and PHP/PLP round trip through the stack. ---

func TestAddedStackRegisterRoundTrip(t *testing.T) {
	c := newChip(t)
	c.A = 0x42
	load(c, c.PC, 0x48, 0xA9, 0x00, 0x68) // PHA; LDA #0; PLA
	c.Execute(3 + 2 + 4)
	assert.Equal(t, uint8(0x42), c.A)

	c2 := newChip(t)
	c2.FlagSet(FlagCarry, true)
	c2.FlagSet(FlagOverflow, true)
	savedP := c2.P
	load(c2, c2.PC, 0x08, 0x18, 0x28) // PHP; CLC; PLP
	c2.Execute(3 + 2 + 4)
	assert.Equal(t, savedP, c2.P)
}
