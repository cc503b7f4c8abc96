package cpu

// Mode is the exported form of the addressing-mode tag, for tooling (the
// disassembler, debuggers) built outside this package that need to render
// an instruction without executing it.
type Mode = mode

// Exported addressing-mode constants, aliasing the package-private ones so
// external tooling never hardcodes a byte count or mode ordering of its own.
const (
	ModeImplied     = modeImplied
	ModeAccumulator = modeAccumulator
	ModeImmediate   = modeImmediate
	ModeZeroPage    = modeZeroPage
	ModeZeroPageX   = modeZeroPageX
	ModeZeroPageY   = modeZeroPageY
	ModeAbsolute    = modeAbsolute
	ModeAbsoluteX   = modeAbsoluteX
	ModeAbsoluteY   = modeAbsoluteY
	ModeIndirectX   = modeIndirectX
	ModeIndirectY   = modeIndirectY
	ModeRelative    = modeRelative
	ModeIndirect    = modeIndirect
)

// OpInfo is the read-only metadata for one opcode byte: its mnemonic and
// addressing mode, exactly as the decode table dispatches it.
type OpInfo struct {
	Mnemonic string
	Mode     Mode
}

// Lookup returns the metadata for op from the same decode table Execute
// dispatches through, so a disassembler never drifts from what the CPU
// actually does with a given byte.
func Lookup(op uint8) OpInfo {
	e := opcodes[op]
	return OpInfo{Mnemonic: e.mnemonic, Mode: e.addrMode}
}
