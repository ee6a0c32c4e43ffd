// Copyright 2026 The gen6502 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gen

// A Breakpoint marks a code address of interest for external debug
// tooling. Breakpoints are recorded only during the final pass.
type Breakpoint struct {
	Addr  uint16
	Owner string
}

// A Watch names a memory address to monitor in external debug tooling.
// Watches are recorded only during the final pass.
type Watch struct {
	Name string
	Addr uint16
}

// Break records a breakpoint at the current cursor address. It is a
// no-op during the discovery pass.
func (c *Context) Break() {
	if c.phase != Final {
		return
	}
	c.brks = append(c.brks, Breakpoint{Addr: c.cursor.PC(), Owner: c.Owner()})
	c.log("%04X  break", c.cursor.PC())
}

// WatchAddr records a named watch on a memory address. It is a no-op
// during the discovery pass.
func (c *Context) WatchAddr(name string, addr uint16) {
	if c.phase != Final {
		return
	}
	c.watches = append(c.watches, Watch{Name: name, Addr: addr})
	c.log("%04X  watch %s", addr, name)
}

// WatchLabel records a watch on a label's address.
func (c *Context) WatchLabel(name string) error {
	addr, err := c.Resolve(name)
	if err != nil {
		return err
	}
	c.WatchAddr(name, addr)
	return nil
}
