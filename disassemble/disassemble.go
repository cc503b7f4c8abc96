// Package disassemble renders 6502 machine code as text, reading directly
// from the same decode table cpu.Execute dispatches through so the two can
// never drift apart.
package disassemble

import (
	"fmt"

	"github.com/hcoyote/sim6502/cpu"
	"github.com/hcoyote/sim6502/memory"
)

// Step disassembles the instruction at pc and returns its text along with
// the number of bytes it occupies, so a caller can add that to pc to reach
// the next instruction. It does not follow jumps or branches: a JMP, LDA
// sequence in memory disassembles as that literal sequence.
//
// This always reads up to two bytes past pc, whether or not the opcode at
// pc actually uses them, so the caller's backing memory must have those
// addresses defined (any flat RAM bank does, reading 0x00 past the loaded
// program).
func Step(pc uint16, bus *memory.Bus) (string, int) {
	op := bus.Read(pc)
	b1 := bus.Read(pc + 1)
	b2 := bus.Read(pc + 2)
	info := cpu.Lookup(op)

	count := 2
	out := fmt.Sprintf("%04X %02X ", pc, op)
	switch info.Mode {
	case cpu.ModeImmediate:
		out += fmt.Sprintf("%02X      %s #%02X", b1, info.Mnemonic, b1)
	case cpu.ModeZeroPage:
		out += fmt.Sprintf("%02X      %s %02X", b1, info.Mnemonic, b1)
	case cpu.ModeZeroPageX:
		out += fmt.Sprintf("%02X      %s %02X,X", b1, info.Mnemonic, b1)
	case cpu.ModeZeroPageY:
		out += fmt.Sprintf("%02X      %s %02X,Y", b1, info.Mnemonic, b1)
	case cpu.ModeIndirectX:
		out += fmt.Sprintf("%02X      %s (%02X,X)", b1, info.Mnemonic, b1)
	case cpu.ModeIndirectY:
		out += fmt.Sprintf("%02X      %s (%02X),Y", b1, info.Mnemonic, b1)
	case cpu.ModeAbsolute:
		out += fmt.Sprintf("%02X %02X   %s %02X%02X", b1, b2, info.Mnemonic, b2, b1)
		count++
	case cpu.ModeAbsoluteX:
		out += fmt.Sprintf("%02X %02X   %s %02X%02X,X", b1, b2, info.Mnemonic, b2, b1)
		count++
	case cpu.ModeAbsoluteY:
		out += fmt.Sprintf("%02X %02X   %s %02X%02X,Y", b1, b2, info.Mnemonic, b2, b1)
		count++
	case cpu.ModeIndirect:
		out += fmt.Sprintf("%02X %02X   %s (%02X%02X)", b1, b2, info.Mnemonic, b2, b1)
		count++
	case cpu.ModeAccumulator:
		out += fmt.Sprintf("        %s A", info.Mnemonic)
		count--
	case cpu.ModeImplied:
		out += fmt.Sprintf("        %s", info.Mnemonic)
		count--
		if info.Mnemonic == "BRK" {
			// BRK's pushed return address skips a signature byte after the
			// opcode; show it as a 2 byte instruction so hex dumps stay aligned.
			count++
		}
	case cpu.ModeRelative:
		target := uint16(int32(pc) + 2 + int32(int8(b1)))
		out += fmt.Sprintf("%02X      %s %02X (%04X)", b1, info.Mnemonic, b1, target)
	default:
		panic(fmt.Sprintf("disassemble: unhandled mode %v", info.Mode))
	}
	return out, count
}

// All disassembles every instruction in bus starting at pc until count
// bytes have been consumed, returning one line of text per instruction.
func All(pc uint16, count int, bus *memory.Bus) []string {
	var lines []string
	consumed := 0
	for consumed < count {
		line, n := Step(pc, bus)
		lines = append(lines, line)
		pc += uint16(n)
		consumed += n
	}
	return lines
}
