// Copyright 2026 The gen6502 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gen implements a two-pass programmatic assembler engine for
// the NMOS 6502. Generator units emit instructions and data through a
// shared compilation context; the driver runs every unit twice, once to
// discover label addresses and once to produce final machine code.
package gen

import (
	"fmt"
	"io"
	"strings"
)

// Phase identifies which of the two compilation passes is running.
type Phase byte

const (
	// Discovery is the first pass. Label lookups on undefined names
	// return the placeholder address, and forward references are
	// recorded for diagnostics.
	Discovery Phase = iota

	// Final is the second pass. Every label must resolve to a real
	// address, and branch displacements are range checked.
	Final
)

func (p Phase) String() string {
	switch p {
	case Discovery:
		return "discovery"
	case Final:
		return "final"
	default:
		return "???"
	}
}

// Option flags used by Compile.
type Option uint

// Options for the Compile function.
const (
	Verbose Option = 1 << iota // verbose output during compilation
)

// A Context is the shared state of one compilation run: the memory
// image, the program cursor, the label table, and the stack of writer
// identities used to attribute memory ownership. A context is owned by
// exactly one compilation and must not be shared across runs.
type Context struct {
	phase   Phase
	image   *Image
	cursor  *Cursor
	labels  *Labels
	owners  []string
	brks    []Breakpoint
	watches []Watch
	emitted int
	out     io.Writer
	verbose bool
}

func newContext(origin uint16, out io.Writer, options Option) *Context {
	return &Context{
		phase:   Discovery,
		image:   NewImage(),
		cursor:  NewCursor(origin),
		labels:  NewLabels(),
		out:     out,
		verbose: (options & Verbose) != 0,
	}
}

// beginPass resets per-pass state: the cursor returns to the program
// start, reference tracking restarts, and the emit counter clears. The
// memory image persists so the final pass rewrites it in place.
func (c *Context) beginPass(p Phase) {
	c.phase = p
	c.cursor.Reset()
	c.labels.BeginPass(p)
	c.brks = nil
	c.watches = nil
	c.emitted = 0
	c.logSection(fmt.Sprintf("Running %s pass", p))
}

// Phase returns the pass currently executing.
func (c *Context) Phase() Phase {
	return c.phase
}

// PC returns the address the next byte will be written to.
func (c *Context) PC() uint16 {
	return c.cursor.PC()
}

// Cursor returns the program cursor.
func (c *Context) Cursor() *Cursor {
	return c.cursor
}

// Image returns the memory image.
func (c *Context) Image() *Image {
	return c.image
}

// LabelTable returns the label table.
func (c *Context) LabelTable() *Labels {
	return c.labels
}

// Owner returns the identity of the unit currently writing.
func (c *Context) Owner() string {
	if len(c.owners) == 0 {
		return "program"
	}
	return c.owners[len(c.owners)-1]
}

// WithOwner attributes all writes performed by fn to a child of the
// current owner. The previous owner is restored on every exit path,
// including errors.
func (c *Context) WithOwner(name string, fn func() error) error {
	owner := name
	if len(c.owners) > 0 {
		owner = c.Owner() + "." + name
	}
	c.owners = append(c.owners, owner)
	defer func() {
		c.owners = c.owners[:len(c.owners)-1]
	}()
	return fn()
}

// Org repositions the cursor to an absolute address.
func (c *Context) Org(addr uint16) {
	c.log("%04X  .ORG", addr)
	c.cursor.Jump(addr)
}

// Label defines a label at the current cursor address and returns that
// address.
func (c *Context) Label(name string) (uint16, error) {
	addr := c.cursor.PC()
	if err := c.labels.Define(name, addr); err != nil {
		return 0, err
	}
	c.log("%04X  %s:", addr, name)
	return addr, nil
}

// LabelAt defines a label at an explicitly supplied address.
func (c *Context) LabelAt(name string, addr uint16) error {
	if err := c.labels.Define(name, addr); err != nil {
		return err
	}
	c.log("%04X  %s: (placed)", addr, name)
	return nil
}

// LabelDouble defines the name_lo/name_hi sibling labels at the current
// cursor address, reserving no space.
func (c *Context) LabelDouble(name string) error {
	addr := c.cursor.PC()
	if err := c.labels.DefineDouble(name, addr); err != nil {
		return err
	}
	c.log("%04X  %s_lo/%s_hi:", addr, name, name)
	return nil
}

// Resolve returns the address of a label. During the discovery pass an
// undefined name resolves to the placeholder and is recorded as a
// forward reference.
func (c *Context) Resolve(name string) (uint16, error) {
	return c.labels.Resolve(name, c.cursor.PC())
}

// write stores one byte at the cursor on behalf of the current owner
// and advances the cursor past it.
func (c *Context) write(b byte) error {
	if err := c.image.Write(c.cursor.PC(), b, c.Owner()); err != nil {
		return err
	}
	c.cursor.Advance(1)
	return nil
}

// In verbose mode, log a string to the output sink.
func (c *Context) log(format string, args ...any) {
	if c.verbose {
		fmt.Fprintf(c.out, format, args...)
		fmt.Fprintf(c.out, "\n")
	}
}

// In verbose mode, log a section header to the output sink.
func (c *Context) logSection(name string) {
	if c.verbose {
		fmt.Fprintln(c.out, strings.Repeat("-", len(name)+6))
		fmt.Fprintf(c.out, "-- %s --\n", name)
		fmt.Fprintln(c.out, strings.Repeat("-", len(name)+6))
	}
}
