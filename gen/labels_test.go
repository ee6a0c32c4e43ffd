// Copyright 2026 The gen6502 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabelDefineResolve(t *testing.T) {
	assert := assert.New(t)

	l := NewLabels()
	l.BeginPass(Discovery)

	assert.NoError(l.Define("start", 0x0600))
	addr, err := l.Resolve("start", 0x0700)
	assert.NoError(err)
	assert.Equal(uint16(0x0600), addr)

	// Discovery forbids redefinition.
	err = l.Define("start", 0x0800)
	var derr *DuplicateLabelError
	assert.ErrorAs(err, &derr)
	assert.Equal("start", derr.Name)

	// The final pass redefines in place.
	l.BeginPass(Final)
	assert.NoError(l.Define("start", 0x0600))
	addr, _ = l.Address("start")
	assert.Equal(uint16(0x0600), addr)
}

func TestLabelForwardReference(t *testing.T) {
	assert := assert.New(t)

	l := NewLabels()
	l.BeginPass(Discovery)

	// An undefined name yields the placeholder and records a reference.
	addr, err := l.Resolve("later", 0x0600)
	assert.NoError(err)
	assert.Equal(uint16(Placeholder), addr)

	// The same use site is recorded once.
	l.Resolve("later", 0x0600)
	l.Resolve("later", 0x0610)
	assert.Equal([]Reference{
		{Name: "later", Addr: 0x0600},
		{Name: "later", Addr: 0x0610},
	}, l.References())

	// References survive the pass switch for export.
	l.BeginPass(Final)
	assert.Len(l.References(), 2)
}

func TestLabelUndefinedInFinalPass(t *testing.T) {
	assert := assert.New(t)

	l := NewLabels()
	l.BeginPass(Final)

	_, err := l.Resolve("nowhere", 0x0600)
	var uerr *UndefinedLabelError
	assert.ErrorAs(err, &uerr)
	assert.Equal("nowhere", uerr.Name)
}

func TestLabelDouble(t *testing.T) {
	assert := assert.New(t)

	l := NewLabels()
	l.BeginPass(Discovery)

	assert.NoError(l.DefineDouble("vector", 0x0620))

	lo, ok := l.Address("vector_lo")
	assert.True(ok)
	assert.Equal(uint16(0x0620), lo)

	hi, ok := l.Address("vector_hi")
	assert.True(ok)
	assert.Equal(uint16(0x0621), hi)
}

func TestLabelNames(t *testing.T) {
	assert := assert.New(t)

	l := NewLabels()
	l.BeginPass(Discovery)
	l.Define("zeta", 1)
	l.Define("alpha", 2)
	l.Define("mid", 3)

	assert.Equal([]string{"alpha", "mid", "zeta"}, l.Names())
}

func TestLabelFind(t *testing.T) {
	assert := assert.New(t)

	l := NewLabels()
	l.BeginPass(Discovery)
	l.Define("render", 0x0700)
	l.Define("reset", 0x0800)
	l.Define("main", 0x0600)

	name, addr, err := l.Find("ma")
	assert.NoError(err)
	assert.Equal("main", name)
	assert.Equal(uint16(0x0600), addr)

	// "re" matches both render and reset.
	_, _, err = l.Find("re")
	assert.Error(err)

	_, _, err = l.Find("missing")
	assert.Error(err)

	// Definitions after a lookup are still findable.
	l.Define("irq", 0x0900)
	name, addr, err = l.Find("ir")
	assert.NoError(err)
	assert.Equal("irq", name)
	assert.Equal(uint16(0x0900), addr)
}
