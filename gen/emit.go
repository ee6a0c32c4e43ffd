// Copyright 2026 The gen6502 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gen

import (
	"fmt"

	"github.com/fernwood/gen6502/mos"
)

// Index selects an index register for an operand.
type Index byte

// Operand index registers.
const (
	NoIndex Index = iota
	X
	Y
)

// An Arg is one instruction operand: a literal value or a symbolic
// label, optionally indexed by X or Y, with modifier flags steering the
// addressing-mode decision.
type Arg struct {
	value    int
	label    string
	symbolic bool
	index    Index
	zeroPage bool
	indirect bool
}

// Val creates a literal operand.
func Val(v int) Arg {
	return Arg{value: v}
}

// Ref creates a symbolic operand resolved through the label table.
func Ref(name string) Arg {
	return Arg{label: name, symbolic: true}
}

// X indexes the operand by the X register.
func (a Arg) X() Arg {
	a.index = X
	return a
}

// Y indexes the operand by the Y register.
func (a Arg) Y() Arg {
	a.index = Y
	return a
}

// ZP forces a zero-page encoding regardless of the operand value.
func (a Arg) ZP() Arg {
	a.zeroPage = true
	return a
}

// Ind marks the operand as indirect.
func (a Arg) Ind() Arg {
	a.indirect = true
	return a
}

// selectMode decides the addressing mode for a non-branch operand whose
// numeric value is v.
func selectMode(a Arg, v int) (mos.Mode, error) {
	switch a.index {
	case NoIndex:
		switch {
		case a.zeroPage:
			return mos.ZPG, nil
		case v < 0x100:
			return mos.IMM, nil
		case a.indirect:
			return mos.IND, nil
		default:
			return mos.ABS, nil
		}

	case X:
		switch {
		case a.zeroPage && a.indirect:
			return mos.IDX, nil
		case a.zeroPage:
			return mos.ZPX, nil
		case v < 0x100 && a.indirect:
			return mos.IDX, nil
		case v < 0x100:
			return mos.ZPX, nil
		case a.indirect:
			// There is no indexed-indirect mode for absolute addresses.
			return 0, fmt.Errorf("indirect X-indexed operand $%04X exceeds the zero page", v)
		default:
			return mos.ABX, nil
		}

	default: // Y
		switch {
		case a.zeroPage && a.indirect:
			return mos.IDY, nil
		case a.zeroPage:
			return mos.ZPY, nil
		case v < 0x100 && a.indirect:
			return mos.IDY, nil
		case v < 0x100:
			return mos.ZPY, nil
		case a.indirect:
			return 0, fmt.Errorf("indirect Y-indexed operand $%04X exceeds the zero page", v)
		default:
			return mos.ABY, nil
		}
	}
}

// argValue resolves an operand to its numeric value, going through the
// label table for symbolic operands.
func (c *Context) argValue(a Arg) (int, error) {
	if !a.symbolic {
		return a.value, nil
	}
	addr, err := c.Resolve(a.label)
	if err != nil {
		return 0, err
	}
	return int(addr), nil
}

// Emit encodes one instruction at the cursor: the opcode byte followed
// by 0, 1, or 2 operand bytes (little-endian for 2). It returns the
// number of bytes written. Implied, accumulator, and relative-mode
// instructions take their mode from the instruction table; all others
// go through addressing-mode selection on the operand.
func (c *Context) Emit(mn mos.Mnemonic, args ...Arg) (int, error) {
	if len(args) > 1 {
		return 0, &ArityError{Op: mn.String(), Count: len(args)}
	}

	if mn.IsBranch() {
		if len(args) != 1 {
			return 0, &ArityError{Op: mn.String(), Count: len(args)}
		}
		return c.emitBranch(mn, args[0])
	}

	if len(args) == 0 {
		return c.emitImplied(mn)
	}

	arg := args[0]
	v, err := c.argValue(arg)
	if err != nil {
		return 0, err
	}

	mode, err := selectMode(arg, v)
	if err != nil {
		return 0, err
	}

	inst, err := mos.Lookup(mn, mode)
	if err != nil {
		return 0, err
	}

	pc := c.cursor.PC()
	if err := c.write(inst.Opcode); err != nil {
		return 0, err
	}
	switch inst.Length {
	case 2:
		if err := c.write(byte(v)); err != nil {
			return 0, err
		}
	case 3:
		if err := c.write(byte(v)); err != nil {
			return 0, err
		}
		if err := c.write(byte(v >> 8)); err != nil {
			return 0, err
		}
	}

	c.emitted++
	c.logEmit(pc, inst, v)
	return int(inst.Length), nil
}

// emitImplied encodes an instruction with no operand. Mnemonics whose
// only operand-free form is the accumulator variant use it.
func (c *Context) emitImplied(mn mos.Mnemonic) (int, error) {
	inst, err := mos.Lookup(mn, mos.IMP)
	if err != nil {
		inst, err = mos.Lookup(mn, mos.ACC)
		if err != nil {
			return 0, err
		}
	}

	pc := c.cursor.PC()
	if err := c.write(inst.Opcode); err != nil {
		return 0, err
	}
	c.emitted++
	c.logEmit(pc, inst, 0)
	return int(inst.Length), nil
}

// emitBranch encodes a relative branch. The operand is an absolute
// target address; the encoded byte is the two's-complement displacement
// from the address following the instruction. Range is checked only in
// the final pass, because placeholder targets make the displacement
// meaningless during discovery.
func (c *Context) emitBranch(mn mos.Mnemonic, arg Arg) (int, error) {
	target, err := c.argValue(arg)
	if err != nil {
		return 0, err
	}

	inst, err := mos.Lookup(mn, mos.REL)
	if err != nil {
		return 0, err
	}

	pc := c.cursor.PC()
	offset := target - (int(pc) + int(inst.Length))
	if c.phase == Final && (offset < -128 || offset > 127) {
		return 0, &BranchRangeError{Mnemonic: mn, PC: pc, Target: target, Offset: offset}
	}

	disp := offset
	if disp < 0 {
		disp = 256 + disp
	}

	if err := c.write(inst.Opcode); err != nil {
		return 0, err
	}
	if err := c.write(byte(disp)); err != nil {
		return 0, err
	}

	c.emitted++
	c.logEmit(pc, inst, target)
	return int(inst.Length), nil
}

// Byte emits one or more literal data bytes at the cursor.
func (c *Context) Byte(vals ...int) (int, error) {
	if len(vals) == 0 {
		return 0, &ArityError{Op: "byte", Count: 0}
	}
	pc := c.cursor.PC()
	for _, v := range vals {
		if v < 0 || v > 0xff {
			return 0, &ValueRangeError{Op: "byte", Value: v}
		}
		if err := c.write(byte(v)); err != nil {
			return 0, err
		}
	}
	c.logData(pc, len(vals))
	return len(vals), nil
}

// Word emits one or more 16-bit values at the cursor, low byte first.
func (c *Context) Word(vals ...int) (int, error) {
	if len(vals) == 0 {
		return 0, &ArityError{Op: "word", Count: 0}
	}
	pc := c.cursor.PC()
	for _, v := range vals {
		hi, lo, err := HiLo(v)
		if err != nil {
			return 0, err
		}
		if err := c.write(lo); err != nil {
			return 0, err
		}
		if err := c.write(hi); err != nil {
			return 0, err
		}
	}
	c.logData(pc, len(vals)*2)
	return len(vals) * 2, nil
}

// Ptr emits the address of a label as a little-endian 16-bit pointer.
func (c *Context) Ptr(name string) (int, error) {
	addr, err := c.Resolve(name)
	if err != nil {
		return 0, err
	}
	return c.Word(int(addr))
}

// Fill emits n copies of a fill byte at the cursor.
func (c *Context) Fill(n int, val byte) (int, error) {
	if n < 0 {
		return 0, &ValueRangeError{Op: "fill", Value: n}
	}
	pc := c.cursor.PC()
	for i := 0; i < n; i++ {
		if err := c.write(val); err != nil {
			return 0, err
		}
	}
	c.logData(pc, n)
	return n, nil
}

func (c *Context) logEmit(pc uint16, inst *mos.Instruction, v int) {
	if !c.verbose {
		return
	}
	b := make([]byte, 0, 3)
	for i := 0; i < int(inst.Length); i++ {
		bb, _ := c.image.Read(pc + uint16(i))
		b = append(b, bb)
	}
	c.log("%04X-   %-8s    %s  Mode:%s Val:$%X", pc, byteString(b), inst.Mnemonic, inst.Mode, v)
}

func (c *Context) logData(pc uint16, n int) {
	if !c.verbose {
		return
	}
	for i := 0; i < n; i += 3 {
		j := i + 3
		if j > n {
			j = n
		}
		b := make([]byte, 0, 3)
		for k := i; k < j; k++ {
			bb, _ := c.image.Read(pc + uint16(k))
			b = append(b, bb)
		}
		c.log("%04X-*  %s", pc+uint16(i), byteString(b))
	}
}
