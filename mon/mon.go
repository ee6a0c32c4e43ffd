// Copyright 2026 The gen6502 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mon implements an interactive inspector for compiled images.
// After a program is compiled, the monitor lets you browse its labels,
// references, memory regions, breakpoints, and watches from a command
// prompt.
package mon

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/beevik/cmd"

	"github.com/fernwood/gen6502/gen"
)

var cmds *cmd.Tree

func init() {
	// Create a command tree, where the parameter stored with each command
	// is a monitor callback capable of handling the command.
	root := cmd.NewTree(cmd.TreeDescriptor{Name: "monitor"})
	root.AddCommand(cmd.CommandDescriptor{
		Name:        "help",
		Description: "Display help for a command.",
		Usage:       "help [<command>]",
		Data:        (*Monitor).cmdHelp,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "labels",
		Brief: "List defined labels",
		Description: "List all labels defined by the compiled program" +
			" along with their addresses. Pass an abbreviated name to" +
			" resolve it to its full label.",
		Usage: "labels [<name>]",
		Data:  (*Monitor).cmdLabels,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "references",
		Brief: "List forward references",
		Description: "List the forward label references recorded while" +
			" compiling the program, with the address of each referring" +
			" instruction.",
		Usage: "references",
		Data:  (*Monitor).cmdReferences,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "dump",
		Brief: "Dump memory contents",
		Description: "Dump the contents of compiled memory starting at the" +
			" given address. The address may be hexadecimal or a label" +
			" name. An optional second argument gives the number of bytes" +
			" to dump; the default is 64.",
		Usage: "dump <address> [<count>]",
		Data:  (*Monitor).cmdDump,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "regions",
		Brief: "List memory regions by owner",
		Description: "List the contiguous regions of compiled memory," +
			" showing the address range and owning unit of each region.",
		Usage: "regions",
		Data:  (*Monitor).cmdRegions,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:        "breakpoints",
		Brief:       "List breakpoints",
		Description: "List the breakpoints requested by the compiled program.",
		Usage:       "breakpoints",
		Data:        (*Monitor).cmdBreakpoints,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:        "watches",
		Brief:       "List watched addresses",
		Description: "List the watched addresses requested by the compiled program.",
		Usage:       "watches",
		Data:        (*Monitor).cmdWatches,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:        "quit",
		Brief:       "Quit the monitor",
		Description: "Exit the monitor.",
		Usage:       "quit",
		Data:        (*Monitor).cmdQuit,
	})
	cmds = root
}

// A Monitor inspects one compilation result interactively.
type Monitor struct {
	result      *gen.Result
	input       *bufio.Scanner
	output      *bufio.Writer
	interactive bool
	lastCmd     *cmd.Selection
}

// New creates a monitor for a compilation result.
func New(result *gen.Result) *Monitor {
	return &Monitor{result: result}
}

// RunCommands accepts monitor commands from a reader and outputs the
// results to a writer. If the commands are interactive, a prompt is
// displayed while the monitor waits for the next command.
func (m *Monitor) RunCommands(r io.Reader, w io.Writer, interactive bool) {
	m.input = bufio.NewScanner(r)
	m.output = bufio.NewWriter(w)
	m.interactive = interactive

	if interactive {
		m.printf("Compiled %d instruction(s), $%04X-$%04X.\n",
			m.result.Emitted, m.result.Origin, m.result.End)
	}

	for {
		m.prompt()

		line, err := m.getLine()
		if err != nil {
			break
		}

		var c cmd.Selection
		if line != "" {
			c, err = cmds.Lookup(line)
			switch {
			case err == cmd.ErrNotFound:
				m.println("Command not found.")
				continue
			case err == cmd.ErrAmbiguous:
				m.println("Command is ambiguous.")
				continue
			case err != nil:
				m.printf("ERROR: %v.\n", err)
				continue
			}
		} else if m.lastCmd != nil {
			c = *m.lastCmd
		}

		if c.Command == nil {
			continue
		}
		m.lastCmd = &c

		handler := c.Command.Data.(func(*Monitor, cmd.Selection) error)
		err = handler(m, c)
		if err != nil {
			break
		}
	}

	m.flush()
}

func (m *Monitor) getLine() (string, error) {
	if m.input.Scan() {
		return m.input.Text(), nil
	}
	if m.input.Err() != nil {
		return "", m.input.Err()
	}
	return "", io.EOF
}

func (m *Monitor) prompt() {
	if m.interactive {
		m.printf("* ")
		m.flush()
	}
}

func (m *Monitor) print(args ...any) {
	fmt.Fprint(m.output, args...)
}

func (m *Monitor) printf(format string, args ...any) {
	fmt.Fprintf(m.output, format, args...)
}

func (m *Monitor) println(args ...any) {
	fmt.Fprintln(m.output, args...)
}

func (m *Monitor) flush() {
	m.output.Flush()
}

// parseAddr evaluates an address argument: a hexadecimal number with
// an optional $ or 0x prefix, a decimal number, or a label name.
func (m *Monitor) parseAddr(s string) (uint16, error) {
	num := s
	base := 10
	switch {
	case strings.HasPrefix(s, "$"):
		num, base = s[1:], 16
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		num, base = s[2:], 16
	}
	if v, err := strconv.ParseUint(num, base, 16); err == nil {
		return uint16(v), nil
	}
	if addr, ok := m.result.Labels.Address(s); ok {
		return addr, nil
	}
	return 0, fmt.Errorf("invalid address '%s'", s)
}

func (m *Monitor) cmdHelp(c cmd.Selection) error {
	switch {
	case len(c.Args) == 0:
		m.println("Monitor commands:")
		for _, e := range helpSummaries {
			m.printf("    %-12s  %s\n", e.name, e.brief)
		}
	default:
		s, err := cmds.Lookup(strings.Join(c.Args, " "))
		if err != nil {
			m.printf("%v\n", err)
			break
		}
		if s.Command.Usage != "" {
			m.printf("Syntax: %s\n\n", s.Command.Usage)
		}
		if s.Command.Description != "" {
			m.printf("Description:\n   %s\n\n", s.Command.Description)
		}
	}
	return nil
}

// helpSummaries drives the top-level help listing.
var helpSummaries = []struct {
	name  string
	brief string
}{
	{"help", "Display help for a command"},
	{"labels", "List defined labels"},
	{"references", "List forward references"},
	{"dump", "Dump memory contents"},
	{"regions", "List memory regions by owner"},
	{"breakpoints", "List breakpoints"},
	{"watches", "List watched addresses"},
	{"quit", "Quit the monitor"},
}

func (m *Monitor) cmdLabels(c cmd.Selection) error {
	if len(c.Args) > 0 {
		// Resolve an abbreviated label name to its full form.
		name, addr, err := m.result.Labels.Find(c.Args[0])
		if err != nil {
			m.printf("%v\n", err)
			return nil
		}
		m.printf("$%04X  %s\n", addr, name)
		return nil
	}

	names := m.result.Labels.Names()
	if len(names) == 0 {
		m.println("No labels.")
		return nil
	}
	for _, n := range names {
		addr, _ := m.result.Labels.Address(n)
		m.printf("$%04X  %s\n", addr, n)
	}
	return nil
}

func (m *Monitor) cmdReferences(c cmd.Selection) error {
	refs := m.result.Labels.References()
	if len(refs) == 0 {
		m.println("No forward references.")
		return nil
	}
	for _, r := range refs {
		m.printf("$%04X  %s\n", r.Addr, r.Name)
	}
	return nil
}

func (m *Monitor) cmdDump(c cmd.Selection) error {
	if len(c.Args) < 1 {
		m.printf("Syntax: %s\n", c.Command.Usage)
		return nil
	}

	addr, err := m.parseAddr(c.Args[0])
	if err != nil {
		m.printf("%v\n", err)
		return nil
	}

	count := 64
	if len(c.Args) >= 2 {
		n, err := strconv.Atoi(c.Args[1])
		if err != nil || n < 1 {
			m.printf("invalid count '%s'\n", c.Args[1])
			return nil
		}
		count = n
	}

	for base := int(addr); base < int(addr)+count; base += 16 {
		var sb strings.Builder
		fmt.Fprintf(&sb, "%04X-", base)
		for i := 0; i < 16 && base+i < int(addr)+count; i++ {
			if base+i > 0xffff {
				break
			}
			if b, ok := m.result.Image.Read(uint16(base + i)); ok {
				fmt.Fprintf(&sb, " %02X", b)
			} else {
				sb.WriteString(" ..")
			}
		}
		m.println(sb.String())
		if base+16 > 0xffff {
			break
		}
	}
	return nil
}

func (m *Monitor) cmdRegions(c cmd.Selection) error {
	regions := m.result.Image.Regions()
	if len(regions) == 0 {
		m.println("No compiled memory.")
		return nil
	}
	m.println("Start  End    Size  Owner")
	m.println("-----  -----  ----  -----")
	for _, r := range regions {
		m.printf("$%04X  $%04X  %4d  %s\n", r.Start, r.End, int(r.End)-int(r.Start)+1, r.Owner)
	}
	return nil
}

func (m *Monitor) cmdBreakpoints(c cmd.Selection) error {
	if len(m.result.Breakpoints) == 0 {
		m.println("No breakpoints.")
		return nil
	}
	m.println("Addr   Owner")
	m.println("-----  -----")
	for _, b := range m.result.Breakpoints {
		m.printf("$%04X  %s\n", b.Addr, b.Owner)
	}
	return nil
}

func (m *Monitor) cmdWatches(c cmd.Selection) error {
	if len(m.result.Watches) == 0 {
		m.println("No watches.")
		return nil
	}
	watches := make([]gen.Watch, len(m.result.Watches))
	copy(watches, m.result.Watches)
	sort.Slice(watches, func(i, j int) bool { return watches[i].Addr < watches[j].Addr })
	m.println("Addr   Name")
	m.println("-----  -----")
	for _, w := range watches {
		m.printf("$%04X  %s\n", w.Addr, w.Name)
	}
	return nil
}

func (m *Monitor) cmdQuit(c cmd.Selection) error {
	return fmt.Errorf("exiting monitor")
}
