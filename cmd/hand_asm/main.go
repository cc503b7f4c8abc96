// hand_asm takes a hand written listing file and produces a flat binary
// memory image from it, so it can be loaded directly into a memory.Bank.
//
// Each non-blank input line has the form:
//
//	XXXX OP A1 A2 ...
//
// where XXXX is the address field (used only to recognize an assemblable
// line, not for placement — bytes are appended in listing order starting
// at -offset) and OP/A1/A2/... are hex byte values. Lines that don't start
// with four hex digits are treated as comments and skipped. Anything from
// the first tab onward is dropped as a trailing comment; every other field
// must be a hex byte, so disassembler output (whose mnemonic column is
// space separated) is rejected unless edited first.
package main

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/urfave/cli.v2"
)

func main() {
	app := &cli.App{
		Name:    "hand_asm",
		Usage:   "Assemble a hand written hex listing into a flat binary image",
		Version: "v0.0.1",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "offset",
				Aliases: []string{"o"},
				Usage:   "offset to start writing assembled data; everything before it is zero filled",
				Value:   0x0000,
			},
		},
		ArgsUsage: "<input> <output>",
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 2 {
				cli.ShowAppHelp(c)
				return cli.Exit("expected exactly <input> and <output> arguments", 86)
			}
			in, out := c.Args().Get(0), c.Args().Get(1)
			offset := c.Int("offset")
			if offset < 0 || offset > 0xFFFF {
				return cli.Exit(fmt.Sprintf("offset %d out of range [0, 65535]", offset), 86)
			}

			data, err := assembleFile(in, offset)
			if err != nil {
				return cli.Exit(fmt.Sprintf("assemble %q: %v", in, err), 1)
			}
			if err := os.WriteFile(out, data, 0644); err != nil {
				return cli.Exit(fmt.Sprintf("write %q: %v", out, err), 1)
			}
			fmt.Printf("wrote %d bytes to %s\n", len(data), out)
			return nil
		},
	}
	sort.Sort(cli.FlagsByName(app.Flags))
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// isHexLine reports whether line begins with a 4 hex digit address field,
// the marker that distinguishes an assemblable line from a comment.
func isHexLine(line string) bool {
	if len(line) < 4 {
		return false
	}
	_, err := strconv.ParseUint(line[:4], 16, 16)
	return err == nil
}

// assembleFile reads path line by line and returns the assembled image,
// zero padded from 0 up to offset.
func assembleFile(path string, offset int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	output := make([]byte, offset)
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if !isHexLine(line) {
			continue
		}
		// Drop the address field and any trailing comment starting at a tab.
		if i := strings.IndexByte(line, '\t'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line[4:])
		for _, tok := range fields {
			b, err := strconv.ParseUint(tok, 16, 8)
			if err != nil {
				return nil, fmt.Errorf("line %d: %q: %w", lineNo, line, err)
			}
			output = append(output, byte(b))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return output, nil
}
