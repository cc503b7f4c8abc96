// repl is an interactive, single-step TUI debugger for the 6502 core. It
// loads a flat memory image, then lets a user step one instruction at a
// time while watching registers, flags, and a window of memory around the
// program counter. It only ever reaches the CPU through its documented
// entry points (Reset, SetPC, Execute, Bus, FlagGet) and its exported
// register fields — it has no access to internals an embedder couldn't
// also reach.
package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/urfave/cli.v2"

	"github.com/hcoyote/sim6502/cpu"
	"github.com/hcoyote/sim6502/disassemble"
	"github.com/hcoyote/sim6502/memory"
)

func main() {
	app := &cli.App{
		Name:    "repl",
		Usage:   "Interactive step debugger for the 6502 core",
		Version: "v0.0.1",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "offset",
				Aliases: []string{"o"},
				Usage:   "offset into RAM to load the program at, and where PC starts",
				Value:   0x0100,
			},
		},
		ArgsUsage: "<filename>",
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 1 {
				cli.ShowAppHelp(c)
				return cli.Exit("expected exactly one <filename> argument", 86)
			}
			program, err := os.ReadFile(c.Args().Get(0))
			if err != nil {
				return cli.Exit(fmt.Sprintf("open %q: %v", c.Args().Get(0), err), 1)
			}
			offset := uint16(c.Int("offset"))

			chip := cpu.New(memory.NewBus(memory.NewRAM()))
			for i, v := range program {
				chip.Bus().Write(offset+uint16(i), v)
			}
			chip.SetPC(offset)

			m := model{chip: chip}
			if _, err := tea.NewProgram(m).Run(); err != nil {
				return cli.Exit(err.Error(), 1)
			}
			return nil
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type model struct {
	chip   *cpu.Chip
	prevPC uint16
	quit   bool
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quit = true
			return m, tea.Quit
		case "r":
			m.chip.Reset()
			return m, nil
		case " ", "j", "n":
			m.prevPC = m.chip.PC
			// A budget of 1 always runs exactly one instruction: the loop
			// only checks the budget before starting the next one.
			m.chip.Execute(1)
			return m, nil
		}
	}
	return m, nil
}

// renderPage renders 16 contiguous bytes as one hex dump line, bracketing
// the byte at the current PC.
func (m model) renderPage(start uint16) string {
	s := fmt.Sprintf("%04X | ", start)
	for i := 0; i < 16; i++ {
		addr := start + uint16(i)
		v := m.chip.Bus().Read(addr)
		if addr == m.chip.PC {
			s += fmt.Sprintf("[%02X] ", v)
		} else {
			s += fmt.Sprintf(" %02X  ", v)
		}
	}
	return s
}

func (m model) pageTable() string {
	base := m.chip.PC &^ 0x0F
	lines := []string{"addr | " + strings.TrimSpace(strings.Repeat(" X  ", 16))}
	for i := -2; i <= 2; i++ {
		lines = append(lines, m.renderPage(base+uint16(i*16)))
	}
	return strings.Join(lines, "\n")
}

func (m model) status() string {
	flagRow := ""
	for _, f := range []int{cpu.FlagNegative, cpu.FlagOverflow, cpu.FlagUnused, cpu.FlagBreak,
		cpu.FlagDecimal, cpu.FlagInterrupt, cpu.FlagZero, cpu.FlagCarry} {
		if m.chip.FlagGet(f) {
			flagRow += "1 "
		} else {
			flagRow += "0 "
		}
	}
	return fmt.Sprintf(`
 PC: %04X (was %04X)
  A: %02X  X: %02X  Y: %02X  SP: %02X
N V U B D I Z C
%s`,
		m.chip.PC, m.prevPC, m.chip.A, m.chip.X, m.chip.Y, m.chip.SP, flagRow)
}

func (m model) View() string {
	line, _ := disassemble.Step(m.chip.PC, m.chip.Bus())
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, m.pageTable(), m.status()),
		"",
		"next: "+line,
		"",
		"space/j/n: step   r: reset   q: quit",
	)
}
