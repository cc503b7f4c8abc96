package disassemble

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hcoyote/sim6502/memory"
)

func newBus(t *testing.T) *memory.Bus {
	t.Helper()
	return memory.NewBus(memory.NewRAM())
}

func TestStepImmediate(t *testing.T) {
	bus := newBus(t)
	bus.Write(0x0200, 0xA9)
	bus.Write(0x0201, 0x42)
	line, n := Step(0x0200, bus)
	assert.Equal(t, 2, n)
	assert.Contains(t, line, "LDA")
	assert.Contains(t, line, "#42")
}

func TestStepAbsolute(t *testing.T) {
	bus := newBus(t)
	bus.Write(0x0200, 0x4C)
	bus.Write(0x0201, 0x00)
	bus.Write(0x0202, 0x04)
	line, n := Step(0x0200, bus)
	assert.Equal(t, 3, n)
	assert.Contains(t, line, "JMP")
	assert.Contains(t, line, "0400")
}

func TestStepImplied(t *testing.T) {
	bus := newBus(t)
	bus.Write(0x0200, 0xEA) // NOP
	line, n := Step(0x0200, bus)
	assert.Equal(t, 1, n)
	assert.Contains(t, line, "NOP")
}

func TestStepRelativeShowsTarget(t *testing.T) {
	bus := newBus(t)
	bus.Write(0x02FD, 0xF0)
	bus.Write(0x02FE, 0x01)
	line, n := Step(0x02FD, bus)
	assert.Equal(t, 2, n)
	assert.Contains(t, line, "BEQ")
	assert.Contains(t, line, "0300")
}

func TestStepDoesNotFollowControlFlow(t *testing.T) {
	bus := newBus(t)
	bus.Write(0x0200, 0x4C) // JMP $0400
	bus.Write(0x0201, 0x00)
	bus.Write(0x0202, 0x04)
	bus.Write(0x0203, 0xA9) // LDA #$99, sits right after in memory
	bus.Write(0x0204, 0x99)
	lines := All(0x0200, 5, bus)
	assert.Len(t, lines, 2)
	assert.True(t, strings.Contains(lines[0], "JMP"))
	assert.True(t, strings.Contains(lines[1], "LDA"))
}

func TestStepBRKCountsSignatureByte(t *testing.T) {
	bus := newBus(t)
	bus.Write(0x0200, 0x00)
	_, n := Step(0x0200, bus)
	assert.Equal(t, 2, n)
}
