// Copyright 2026 The gen6502 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gen

const memSize = 0x10000

type cell struct {
	value   byte
	owner   string
	written bool
}

// An Image is a 64K byte-addressable memory image. Every written byte
// carries the identity of the generator unit that wrote it, so that two
// independently laid-out code regions cannot silently collide in the
// shared address space. Unwritten cells read as absent, not as zero.
type Image struct {
	cells   [memSize]cell
	lo, hi  uint16
	written bool
}

// NewImage creates an empty memory image.
func NewImage() *Image {
	return &Image{}
}

// Write stores a byte at the address on behalf of the named owner. A
// byte may be overwritten freely by its owner; an attempt by a
// different owner to overwrite an already-owned byte is an
// OwnershipConflictError.
func (m *Image) Write(addr uint16, b byte, owner string) error {
	c := &m.cells[addr]
	if c.written && c.owner != owner {
		return &OwnershipConflictError{Addr: addr, Owner: c.owner, Writer: owner}
	}
	c.value = b
	c.owner = owner
	c.written = true

	if !m.written || addr < m.lo {
		m.lo = addr
	}
	if !m.written || addr > m.hi {
		m.hi = addr
	}
	m.written = true
	return nil
}

// Read returns the byte at the address and whether it has been written.
func (m *Image) Read(addr uint16) (byte, bool) {
	c := &m.cells[addr]
	return c.value, c.written
}

// Owner returns the identity of the unit that last wrote the address.
func (m *Image) Owner(addr uint16) (string, bool) {
	c := &m.cells[addr]
	return c.owner, c.written
}

// Span returns the lowest and highest written addresses. ok is false if
// nothing has been written.
func (m *Image) Span() (lo, hi uint16, ok bool) {
	return m.lo, m.hi, m.written
}

// A Region is a contiguous run of bytes written by a single owner.
type Region struct {
	Start uint16
	End   uint16 // inclusive
	Owner string
}

// Regions returns the written address space as contiguous same-owner
// runs, in ascending address order.
func (m *Image) Regions() []Region {
	if !m.written {
		return nil
	}

	var regions []Region
	var cur *Region
	for addr := int(m.lo); addr <= int(m.hi); addr++ {
		c := &m.cells[addr]
		switch {
		case !c.written:
			cur = nil
		case cur != nil && cur.Owner == c.owner:
			cur.End = uint16(addr)
		default:
			regions = append(regions, Region{Start: uint16(addr), End: uint16(addr), Owner: c.owner})
			cur = &regions[len(regions)-1]
		}
	}
	return regions
}
