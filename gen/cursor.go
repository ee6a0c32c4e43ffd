// Copyright 2026 The gen6502 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gen

// Registers holds the 6502 register block carried by the program
// cursor. The assembler never executes code, but generator units may
// use the block to document register expectations while laying out
// subroutines.
type Registers struct {
	A  byte // accumulator
	X  byte // X indexing register
	Y  byte // Y indexing register
	SP byte // stack pointer ($100 + SP = stack memory location)
}

// Init resets all registers. A, X, Y = 0. SP = 0xff.
func (r *Registers) Init() {
	r.A = 0
	r.X = 0
	r.Y = 0
	r.SP = 0xff
}

// A Cursor tracks the address the next emitted byte will be written to.
// After any instruction is encoded, the cursor points to the address
// immediately following it.
type Cursor struct {
	start uint16
	pc    uint16
	Reg   Registers
}

// NewCursor creates a cursor positioned at the start address.
func NewCursor(start uint16) *Cursor {
	c := &Cursor{start: start, pc: start}
	c.Reg.Init()
	return c
}

// PC returns the address of the next byte to be written.
func (c *Cursor) PC() uint16 {
	return c.pc
}

// Start returns the program's start address.
func (c *Cursor) Start() uint16 {
	return c.start
}

// Advance moves the cursor forward by n bytes.
func (c *Cursor) Advance(n int) {
	c.pc += uint16(n)
}

// Jump repositions the cursor to an absolute address.
func (c *Cursor) Jump(addr uint16) {
	c.pc = addr
}

// Reset returns the cursor to the start address and clears the register
// block.
func (c *Cursor) Reset() {
	c.pc = c.start
	c.Reg.Init()
}
