// Copyright 2026 The gen6502 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gen

// A Unit is a named generator of machine code. The driver invokes
// Compile once per pass; a unit must be deterministic, producing the
// same sequence of emissions on every run.
type Unit interface {
	Name() string
	Compile(ctx *Context) error
}

type unitFunc struct {
	name string
	fn   func(ctx *Context) error
}

func (u *unitFunc) Name() string {
	return u.name
}

func (u *unitFunc) Compile(ctx *Context) error {
	return u.fn(ctx)
}

// NewUnit wraps a function as a leaf generator unit.
func NewUnit(name string, fn func(ctx *Context) error) Unit {
	return &unitFunc{name: name, fn: fn}
}

// A Module is a unit composed of child units compiled in order. Each
// child's writes are attributed to the child, so sibling subroutines
// cannot silently overlap in memory.
type Module struct {
	name  string
	units []Unit
}

// NewModule creates a module from the given child units.
func NewModule(name string, units ...Unit) *Module {
	return &Module{name: name, units: units}
}

// Name returns the module's name.
func (m *Module) Name() string {
	return m.name
}

// Add appends a child unit to the module.
func (m *Module) Add(u Unit) {
	m.units = append(m.units, u)
}

// Compile compiles every child unit in order, attributing each child's
// writes to that child.
func (m *Module) Compile(ctx *Context) error {
	for _, u := range m.units {
		unit := u
		err := ctx.WithOwner(unit.Name(), func() error {
			return unit.Compile(ctx)
		})
		if err != nil {
			return err
		}
	}
	return nil
}
