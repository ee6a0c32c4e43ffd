// Copyright 2026 The gen6502 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package script runs user assembly programs written in starlark. A
// program file defines a function
//
//	def program(m):
//	    m.label("start")
//	    m.lda(0x42)
//	    m.sta(0xD020)
//
// which the compile driver invokes once per pass with a machine value
// exposing one builtin per 6502 mnemonic plus label, data, and layout
// primitives. Starlark is hermetic and deterministic by default, which
// is exactly what the two-pass contract requires of a generator.
package script

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/fernwood/gen6502/gen"
	"github.com/fernwood/gen6502/mos"
)

// entryPoint is the function a program file must define.
const entryPoint = "program"

// A Program is a loaded starlark assembly program usable as a
// generator unit.
type Program struct {
	name string
	fn   starlark.Callable
}

// Load reads and resolves a starlark program file.
func Load(path string) (*Program, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Parse(name, path, src)
}

// Parse resolves starlark program source. The src parameter accepts
// anything starlark's ExecFileOptions does (string, []byte, io.Reader).
func Parse(name, filename string, src any) (*Program, error) {
	thread := &starlark.Thread{Name: name}
	opts := &syntax.FileOptions{}

	globals, err := starlark.ExecFileOptions(opts, thread, filename, src, nil)
	if err != nil {
		return nil, err
	}

	v, ok := globals[entryPoint]
	if !ok {
		return nil, fmt.Errorf("%s: no '%s' function defined", filename, entryPoint)
	}
	fn, ok := v.(starlark.Callable)
	if !ok {
		return nil, fmt.Errorf("%s: '%s' is not callable", filename, entryPoint)
	}

	return &Program{name: name, fn: fn}, nil
}

// Name returns the program's unit name.
func (p *Program) Name() string {
	return p.name
}

// Compile runs the program function once against the compilation
// context. The driver calls this once per pass.
func (p *Program) Compile(ctx *gen.Context) error {
	thread := &starlark.Thread{Name: p.name}
	m := &Machine{ctx: ctx}
	_, err := starlark.Call(thread, p.fn, starlark.Tuple{m}, nil)
	return err
}

// A Machine is the starlark value handed to a program function. Its
// attributes are the emission and layout primitives of the engine; the
// per-mnemonic builtins are generated from the instruction table.
type Machine struct {
	ctx *gen.Context
}

var _ starlark.HasAttrs = (*Machine)(nil)

func (m *Machine) String() string        { return "<machine>" }
func (m *Machine) Type() string          { return "machine" }
func (m *Machine) Freeze()               {}
func (m *Machine) Truth() starlark.Bool  { return starlark.True }
func (m *Machine) Hash() (uint32, error) { return 0, fmt.Errorf("unhashable type: machine") }

var machineAttrNames = buildAttrNames()

func buildAttrNames() []string {
	names := []string{
		"brk_at", "byte", "fill", "hi", "label", "label2", "lo", "org",
		"pc", "place", "ptr", "resolve", "unit", "watch", "word",
	}
	for _, mn := range mos.Mnemonics() {
		names = append(names, strings.ToLower(mn.String()))
	}
	sort.Strings(names)
	return names
}

// AttrNames returns every attribute of the machine value.
func (m *Machine) AttrNames() []string {
	return machineAttrNames
}

// Attr resolves a machine attribute. Lower-case mnemonic names map to
// instruction builtins; everything else is a layout primitive.
func (m *Machine) Attr(name string) (starlark.Value, error) {
	if mn, ok := mos.ByName(strings.ToUpper(name)); ok && strings.ToLower(name) == name {
		return m.instBuiltin(name, mn), nil
	}

	switch name {
	case "label":
		return starlark.NewBuiltin(name, m.stLabel), nil
	case "label2":
		return starlark.NewBuiltin(name, m.stLabel2), nil
	case "place":
		return starlark.NewBuiltin(name, m.stPlace), nil
	case "resolve":
		return starlark.NewBuiltin(name, m.stResolve), nil
	case "byte":
		return starlark.NewBuiltin(name, m.stByte), nil
	case "word":
		return starlark.NewBuiltin(name, m.stWord), nil
	case "ptr":
		return starlark.NewBuiltin(name, m.stPtr), nil
	case "fill":
		return starlark.NewBuiltin(name, m.stFill), nil
	case "org":
		return starlark.NewBuiltin(name, m.stOrg), nil
	case "pc":
		return starlark.NewBuiltin(name, m.stPC), nil
	case "lo":
		return starlark.NewBuiltin(name, m.stLo), nil
	case "hi":
		return starlark.NewBuiltin(name, m.stHi), nil
	case "unit":
		return starlark.NewBuiltin(name, m.stUnit), nil
	case "brk_at":
		return starlark.NewBuiltin(name, m.stBreak), nil
	case "watch":
		return starlark.NewBuiltin(name, m.stWatch), nil
	}
	return nil, nil
}

// instBuiltin wraps one mnemonic as a starlark builtin. Positional
// arguments are operands (int for a value, string for a label);
// keyword arguments x, y, zp, and ind set the operand modifiers.
func (m *Machine) instBuiltin(name string, mn mos.Mnemonic) *starlark.Builtin {
	return starlark.NewBuiltin(name, func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		operands := make([]gen.Arg, 0, len(args))
		for _, v := range args {
			arg, err := operandOf(b.Name(), v)
			if err != nil {
				return nil, err
			}
			operands = append(operands, arg)
		}

		for _, kv := range kwargs {
			key := string(kv[0].(starlark.String))
			if len(operands) == 0 {
				return nil, fmt.Errorf("%s: keyword '%s' requires an operand", b.Name(), key)
			}
			on := bool(kv[1].Truth())
			if !on {
				continue
			}
			last := len(operands) - 1
			switch key {
			case "x":
				operands[last] = operands[last].X()
			case "y":
				operands[last] = operands[last].Y()
			case "zp":
				operands[last] = operands[last].ZP()
			case "ind":
				operands[last] = operands[last].Ind()
			default:
				return nil, fmt.Errorf("%s: unexpected keyword '%s'", b.Name(), key)
			}
		}

		n, err := m.ctx.Emit(mn, operands...)
		if err != nil {
			return nil, err
		}
		return starlark.MakeInt(n), nil
	})
}

func operandOf(op string, v starlark.Value) (gen.Arg, error) {
	switch v := v.(type) {
	case starlark.Int:
		i, err := starlark.AsInt32(v)
		if err != nil {
			return gen.Arg{}, fmt.Errorf("%s: %w", op, err)
		}
		return gen.Val(i), nil
	case starlark.String:
		return gen.Ref(string(v)), nil
	default:
		return gen.Arg{}, fmt.Errorf("%s: operand must be int or label string, got %s", op, v.Type())
	}
}

func (m *Machine) stLabel(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &name); err != nil {
		return nil, err
	}
	addr, err := m.ctx.Label(name)
	if err != nil {
		return nil, err
	}
	return starlark.MakeInt(int(addr)), nil
}

func (m *Machine) stLabel2(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &name); err != nil {
		return nil, err
	}
	if err := m.ctx.LabelDouble(name); err != nil {
		return nil, err
	}
	return starlark.MakeInt(int(m.ctx.PC())), nil
}

func (m *Machine) stPlace(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	var addr int
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &name, &addr); err != nil {
		return nil, err
	}
	if addr < 0 || addr > 0xffff {
		return nil, fmt.Errorf("%s: address $%X out of range", b.Name(), addr)
	}
	if err := m.ctx.LabelAt(name, uint16(addr)); err != nil {
		return nil, err
	}
	return starlark.None, nil
}

func (m *Machine) stResolve(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &name); err != nil {
		return nil, err
	}
	addr, err := m.ctx.Resolve(name)
	if err != nil {
		return nil, err
	}
	return starlark.MakeInt(int(addr)), nil
}

func (m *Machine) stByte(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	vals, err := intArgs(b.Name(), args)
	if err != nil {
		return nil, err
	}
	n, err := m.ctx.Byte(vals...)
	if err != nil {
		return nil, err
	}
	return starlark.MakeInt(n), nil
}

func (m *Machine) stWord(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	vals, err := intArgs(b.Name(), args)
	if err != nil {
		return nil, err
	}
	n, err := m.ctx.Word(vals...)
	if err != nil {
		return nil, err
	}
	return starlark.MakeInt(n), nil
}

func (m *Machine) stPtr(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &name); err != nil {
		return nil, err
	}
	n, err := m.ctx.Ptr(name)
	if err != nil {
		return nil, err
	}
	return starlark.MakeInt(n), nil
}

func (m *Machine) stFill(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var n, val int
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &n, &val); err != nil {
		return nil, err
	}
	if val < 0 || val > 0xff {
		return nil, fmt.Errorf("%s: fill value %d out of range", b.Name(), val)
	}
	written, err := m.ctx.Fill(n, byte(val))
	if err != nil {
		return nil, err
	}
	return starlark.MakeInt(written), nil
}

func (m *Machine) stOrg(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var addr int
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &addr); err != nil {
		return nil, err
	}
	if addr < 0 || addr > 0xffff {
		return nil, fmt.Errorf("%s: address $%X out of range", b.Name(), addr)
	}
	m.ctx.Org(uint16(addr))
	return starlark.None, nil
}

func (m *Machine) stPC(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	return starlark.MakeInt(int(m.ctx.PC())), nil
}

func (m *Machine) stLo(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	_, lo, err := m.splitArg(b, args, kwargs)
	if err != nil {
		return nil, err
	}
	return starlark.MakeInt(int(lo)), nil
}

func (m *Machine) stHi(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	hi, _, err := m.splitArg(b, args, kwargs)
	if err != nil {
		return nil, err
	}
	return starlark.MakeInt(int(hi)), nil
}

// splitArg evaluates the argument of lo()/hi(): an int or a label name.
func (m *Machine) splitArg(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (hi, lo byte, err error) {
	var v starlark.Value
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &v); err != nil {
		return 0, 0, err
	}

	var n int
	switch v := v.(type) {
	case starlark.Int:
		n, err = starlark.AsInt32(v)
		if err != nil {
			return 0, 0, err
		}
	case starlark.String:
		addr, err := m.ctx.Resolve(string(v))
		if err != nil {
			return 0, 0, err
		}
		n = int(addr)
	default:
		return 0, 0, fmt.Errorf("%s: want int or label string, got %s", b.Name(), v.Type())
	}

	return gen.HiLo(n)
}

func (m *Machine) stUnit(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	var fn starlark.Callable
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &name, &fn); err != nil {
		return nil, err
	}

	err := m.ctx.WithOwner(name, func() error {
		_, err := starlark.Call(thread, fn, starlark.Tuple{m}, nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return starlark.None, nil
}

func (m *Machine) stBreak(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	m.ctx.Break()
	return starlark.None, nil
}

func (m *Machine) stWatch(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	var addr = -1
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &name, &addr); err != nil {
		return nil, err
	}
	if addr >= 0 {
		if addr > 0xffff {
			return nil, fmt.Errorf("%s: address $%X out of range", b.Name(), addr)
		}
		m.ctx.WatchAddr(name, uint16(addr))
		return starlark.None, nil
	}
	if err := m.ctx.WatchLabel(name); err != nil {
		return nil, err
	}
	return starlark.None, nil
}

func intArgs(op string, args starlark.Tuple) ([]int, error) {
	vals := make([]int, 0, len(args))
	for _, v := range args {
		i, err := starlark.AsInt32(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		vals = append(vals, i)
	}
	return vals, nil
}
