// disasm loads a flat binary memory image and disassembles it to stdout
// starting at a chosen program counter, using the same decode table the
// cpu package executes.
package main

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/urfave/cli.v2"

	"github.com/hcoyote/sim6502/disassemble"
	"github.com/hcoyote/sim6502/memory"
)

func main() {
	app := &cli.App{
		Name:    "disasm",
		Usage:   "Disassemble a flat 6502 memory image",
		Version: "v0.0.1",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "start_pc",
				Aliases: []string{"p"},
				Usage:   "address to start disassembling from",
				Value:   0x0000,
			},
			&cli.IntFlag{
				Name:    "offset",
				Aliases: []string{"o"},
				Usage:   "offset into RAM the image was loaded at",
				Value:   0x0000,
			},
		},
		ArgsUsage: "<filename>",
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 1 {
				cli.ShowAppHelp(c)
				return cli.Exit("expected exactly one <filename> argument", 86)
			}
			fn := c.Args().Get(0)
			offset := c.Int("offset")
			if offset < 0 || offset > 0xFFFF {
				return cli.Exit(fmt.Sprintf("offset %d out of range [0, 65535]", offset), 86)
			}
			pc := uint16(c.Int("start_pc"))

			b, err := os.ReadFile(fn)
			if err != nil {
				return cli.Exit(fmt.Sprintf("open %q: %v", fn, err), 1)
			}
			bank := memory.NewRAM()
			bus := memory.NewBus(bank)
			max := (1 << 16) - offset
			if l := len(b); l > max {
				fmt.Printf("length %d at offset %d too long, truncating to 64k\n", l, offset)
				b = b[:max]
			}
			for i, v := range b {
				bus.Write(uint16(offset+i), v)
			}
			fmt.Printf("0x%02X bytes at pc: %04X\n", len(b), pc)
			for _, line := range disassemble.All(pc, len(b), bus) {
				fmt.Println(line)
			}
			return nil
		},
	}
	sort.Sort(cli.FlagsByName(app.Flags))
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
