// Copyright 2026 The gen6502 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gen

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fernwood/gen6502/mos"
)

func compileUnit(t *testing.T, unit Unit, origin uint16) *Result {
	t.Helper()
	result, err := Compile(unit, origin, io.Discard, 0)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	return result
}

func resultBytes(r *Result, addr uint16, n int) []byte {
	b := make([]byte, n)
	for i := 0; i < n; i++ {
		b[i], _ = r.Image.Read(addr + uint16(i))
	}
	return b
}

func TestCompileForwardReference(t *testing.T) {
	assert := assert.New(t)

	unit := NewUnit("jumper", func(ctx *Context) error {
		if _, err := ctx.Emit(mos.JMP, Ref("done")); err != nil {
			return err
		}
		if _, err := ctx.Label("done"); err != nil {
			return err
		}
		_, err := ctx.Emit(mos.RTS)
		return err
	})

	result := compileUnit(t, unit, 0x0600)

	// "done" was unknown on first use; the final pass patched the
	// operand with the real address.
	assert.Equal([]byte{0x4c, 0x03, 0x06, 0x60}, resultBytes(result, 0x0600, 4))
	assert.Equal(uint16(0x0604), result.End)
	assert.Equal(2, result.Emitted)

	addr, ok := result.Labels.Address("done")
	assert.True(ok)
	assert.Equal(uint16(0x0603), addr)

	// The forward reference was recorded at the use site.
	assert.Equal([]Reference{{Name: "done", Addr: 0x0600}}, result.Labels.References())
}

func TestCompileCountdownLoop(t *testing.T) {
	assert := assert.New(t)

	unit := NewUnit("countdown", func(ctx *Context) error {
		if _, err := ctx.Emit(mos.LDX, Val(0x03)); err != nil {
			return err
		}
		if _, err := ctx.Label("loop"); err != nil {
			return err
		}
		if _, err := ctx.Emit(mos.DEX); err != nil {
			return err
		}
		if _, err := ctx.Emit(mos.BNE, Ref("loop")); err != nil {
			return err
		}
		_, err := ctx.Emit(mos.RTS)
		return err
	})

	result := compileUnit(t, unit, 0x0600)

	// loop is at $0602; BNE at $0603 branches back to it.
	want := []byte{0xa2, 0x03, 0xca, 0xd0, 0xfd, 0x60}
	assert.Equal(want, resultBytes(result, 0x0600, len(want)))

	// A backward reference to a defined label is not a forward
	// reference.
	assert.Empty(result.Labels.References())
}

func TestCompilePassMismatch(t *testing.T) {
	assert := assert.New(t)

	// A generator that emits different code per pass violates the
	// determinism contract.
	unit := NewUnit("flaky", func(ctx *Context) error {
		if ctx.Phase() == Final {
			if _, err := ctx.Emit(mos.NOP); err != nil {
				return err
			}
		}
		_, err := ctx.Emit(mos.RTS)
		return err
	})

	_, err := Compile(unit, 0x0600, io.Discard, 0)
	assert.ErrorIs(err, ErrPassMismatch)
}

func TestCompileUndefinedLabel(t *testing.T) {
	assert := assert.New(t)

	unit := NewUnit("dangling", func(ctx *Context) error {
		_, err := ctx.Emit(mos.JMP, Ref("nowhere"))
		return err
	})

	_, err := Compile(unit, 0x0600, io.Discard, 0)
	var uerr *UndefinedLabelError
	assert.ErrorAs(err, &uerr)
	assert.Equal("nowhere", uerr.Name)
}

func TestCompileDuplicateLabel(t *testing.T) {
	assert := assert.New(t)

	unit := NewUnit("twice", func(ctx *Context) error {
		if _, err := ctx.Label("here"); err != nil {
			return err
		}
		_, err := ctx.Label("here")
		return err
	})

	_, err := Compile(unit, 0x0600, io.Discard, 0)
	var derr *DuplicateLabelError
	assert.ErrorAs(err, &derr)
}

func TestCompileModuleOwnership(t *testing.T) {
	assert := assert.New(t)

	module := NewModule("game",
		NewUnit("init", func(ctx *Context) error {
			_, err := ctx.Emit(mos.LDA, Val(0x00))
			return err
		}),
		NewUnit("loop", func(ctx *Context) error {
			_, err := ctx.Emit(mos.RTS)
			return err
		}),
	)

	result := compileUnit(t, module, 0x0600)

	owner, _ := result.Image.Owner(0x0600)
	assert.Equal("game.init", owner)
	owner, _ = result.Image.Owner(0x0602)
	assert.Equal("game.loop", owner)

	assert.Equal([]Region{
		{Start: 0x0600, End: 0x0601, Owner: "game.init"},
		{Start: 0x0602, End: 0x0602, Owner: "game.loop"},
	}, result.Image.Regions())
}

func TestCompileOwnershipConflict(t *testing.T) {
	assert := assert.New(t)

	// Two sibling units that both write $0700.
	collide := func(ctx *Context) error {
		ctx.Org(0x0700)
		_, err := ctx.Emit(mos.RTS)
		return err
	}
	module := NewModule("game",
		NewUnit("first", collide),
		NewUnit("second", collide),
	)

	_, err := Compile(module, 0x0600, io.Discard, 0)
	var cerr *OwnershipConflictError
	assert.ErrorAs(err, &cerr)
	assert.Equal(uint16(0x0700), cerr.Addr)
	assert.Equal("game.first", cerr.Owner)
	assert.Equal("game.second", cerr.Writer)
}

func TestCompileBreakpointsAndWatches(t *testing.T) {
	assert := assert.New(t)

	unit := NewUnit("debuggable", func(ctx *Context) error {
		if _, err := ctx.Label("state"); err != nil {
			return err
		}
		if _, err := ctx.Byte(0x00); err != nil {
			return err
		}
		ctx.Break()
		if err := ctx.WatchLabel("state"); err != nil {
			return err
		}
		ctx.WatchAddr("border", 0xd020)
		_, err := ctx.Emit(mos.RTS)
		return err
	})

	result := compileUnit(t, unit, 0x0600)

	// Recorded once, not once per pass.
	assert.Equal([]Breakpoint{{Addr: 0x0601, Owner: "debuggable"}}, result.Breakpoints)
	assert.Equal([]Watch{
		{Name: "state", Addr: 0x0600},
		{Name: "border", Addr: 0xd020},
	}, result.Watches)
}

func TestCompileMemoryPersistsAcrossPasses(t *testing.T) {
	assert := assert.New(t)

	// The discovery pass writes a placeholder operand at $0601; the
	// final pass rewrites the same bytes in place.
	unit := NewUnit("patcher", func(ctx *Context) error {
		if _, err := ctx.Emit(mos.JMP, Ref("end")); err != nil {
			return err
		}
		if _, err := ctx.Fill(5, 0xea); err != nil {
			return err
		}
		if _, err := ctx.Label("end"); err != nil {
			return err
		}
		_, err := ctx.Emit(mos.RTS)
		return err
	})

	result := compileUnit(t, unit, 0x0600)
	assert.Equal([]byte{0x4c, 0x08, 0x06}, resultBytes(result, 0x0600, 3))
}

func TestCompileLabelBeforeUse(t *testing.T) {
	assert := assert.New(t)

	// lo/hi sibling labels and pointer data.
	unit := NewUnit("vectors", func(ctx *Context) error {
		if err := ctx.LabelDouble("entry"); err != nil {
			return err
		}
		if _, err := ctx.Ptr("target"); err != nil {
			return err
		}
		if _, err := ctx.Label("target"); err != nil {
			return err
		}
		_, err := ctx.Emit(mos.RTS)
		return err
	})

	result := compileUnit(t, unit, 0x0600)

	assert.Equal([]byte{0x02, 0x06, 0x60}, resultBytes(result, 0x0600, 3))

	lo, _ := result.Labels.Address("entry_lo")
	hi, _ := result.Labels.Address("entry_hi")
	assert.Equal(uint16(0x0600), lo)
	assert.Equal(uint16(0x0601), hi)
}
