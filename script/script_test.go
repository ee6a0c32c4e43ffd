// Copyright 2026 The gen6502 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package script

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fernwood/gen6502/gen"
)

func compileSource(t *testing.T, src string) *gen.Result {
	t.Helper()

	program, err := Parse("demo", "demo.star", src)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	result, err := gen.Compile(program, 0x0600, io.Discard, 0)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	return result
}

func resultBytes(r *gen.Result, addr uint16, n int) []byte {
	b := make([]byte, n)
	for i := 0; i < n; i++ {
		b[i], _ = r.Image.Read(addr + uint16(i))
	}
	return b
}

func TestProgramBasic(t *testing.T) {
	assert := assert.New(t)

	result := compileSource(t, `
def program(m):
    m.label("start")
    m.lda(0x42)
    m.sta(0xD020)
    m.jmp("end")
    m.byte(1, 2, 3)
    m.label("end")
    m.rts()
`)

	want := []byte{
		0xa9, 0x42,
		0x8d, 0x20, 0xd0,
		0x4c, 0x0b, 0x06,
		0x01, 0x02, 0x03,
		0x60,
	}
	assert.Equal(want, resultBytes(result, 0x0600, len(want)))
	assert.Equal(uint16(0x060c), result.End)

	addr, ok := result.Labels.Address("end")
	assert.True(ok)
	assert.Equal(uint16(0x060b), addr)
}

func TestProgramOperandModifiers(t *testing.T) {
	assert := assert.New(t)

	result := compileSource(t, `
def program(m):
    m.lda(0x80, zp=True)
    m.sta(0x1000, x=True)
    m.lda(0x44, y=True, ind=True)
    m.ldx(0x44, y=True)
`)

	want := []byte{
		0xa5, 0x80,
		0x9d, 0x00, 0x10,
		0xb1, 0x44,
		0xb6, 0x44,
	}
	assert.Equal(want, resultBytes(result, 0x0600, len(want)))
}

func TestProgramDataPrimitives(t *testing.T) {
	assert := assert.New(t)

	result := compileSource(t, `
def program(m):
    m.label("start")
    m.word(0x1234)
    m.ptr("start")
    m.byte(m.lo("start"), m.hi("start"))
    m.fill(2, 0xAA)
`)

	want := []byte{
		0x34, 0x12,
		0x00, 0x06,
		0x00, 0x06,
		0xaa, 0xaa,
	}
	assert.Equal(want, resultBytes(result, 0x0600, len(want)))
}

func TestProgramLayout(t *testing.T) {
	assert := assert.New(t)

	result := compileSource(t, `
def program(m):
    m.rts()
    m.org(0x0700)
    m.label("table")
    m.byte(0xFF)
    m.place("border", 0xD020)
    m.label2("vec")
`)

	b, ok := result.Image.Read(0x0700)
	assert.True(ok)
	assert.Equal(byte(0xff), b)

	addr, ok := result.Labels.Address("border")
	assert.True(ok)
	assert.Equal(uint16(0xd020), addr)

	lo, _ := result.Labels.Address("vec_lo")
	hi, _ := result.Labels.Address("vec_hi")
	assert.Equal(uint16(0x0701), lo)
	assert.Equal(uint16(0x0702), hi)
}

func TestProgramUnits(t *testing.T) {
	assert := assert.New(t)

	result := compileSource(t, `
def init(m):
    m.lda(0)

def loop(m):
    m.rts()

def program(m):
    m.unit("init", init)
    m.unit("loop", loop)
`)

	owner, _ := result.Image.Owner(0x0600)
	assert.Equal("demo.init", owner)
	owner, _ = result.Image.Owner(0x0602)
	assert.Equal("demo.loop", owner)
}

func TestProgramDebugRecords(t *testing.T) {
	assert := assert.New(t)

	result := compileSource(t, `
def program(m):
    m.label("state")
    m.byte(0)
    m.brk_at()
    m.watch("state")
    m.watch("border", 0xD020)
    m.rts()
`)

	assert.Equal([]gen.Breakpoint{{Addr: 0x0601, Owner: "demo"}}, result.Breakpoints)
	assert.Equal([]gen.Watch{
		{Name: "state", Addr: 0x0600},
		{Name: "border", Addr: 0xd020},
	}, result.Watches)
}

func TestProgramErrors(t *testing.T) {
	assert := assert.New(t)

	// No entry point.
	_, err := Parse("bad", "bad.star", `x = 1`)
	assert.Error(err)

	// Entry point is not callable.
	_, err = Parse("bad", "bad.star", `program = 5`)
	assert.Error(err)

	// Bad operand type surfaces as a compile error.
	program, err := Parse("bad", "bad.star", `
def program(m):
    m.lda([1, 2])
`)
	assert.NoError(err)
	_, err = gen.Compile(program, 0x0600, io.Discard, 0)
	assert.Error(err)

	// Branch out of range.
	program, err = Parse("bad", "bad.star", `
def program(m):
    m.label("top")
    m.org(0x0800)
    m.bne("top")
`)
	assert.NoError(err)
	_, err = gen.Compile(program, 0x0600, io.Discard, 0)
	assert.Error(err)
}
