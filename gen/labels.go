// Copyright 2026 The gen6502 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gen

import (
	"sort"

	"github.com/beevik/prefixtree/v2"
)

// Placeholder is the address returned for a not-yet-defined label
// during the discovery pass. It is deliberately outside the zero page
// (>= $100) so that a forward reference never selects a short encoding
// the final pass would have to widen.
const Placeholder = 0x3039

// A Reference records the use of a not-yet-defined label at a program
// counter address during the discovery pass. References are kept for
// diagnostics only; resolution itself happens by re-running the
// program.
type Reference struct {
	Name string
	Addr uint16
}

type labelEntry struct {
	name string
	addr uint16
}

// Labels maps symbolic names to absolute addresses and tracks forward
// references made before a name is defined. A label may be defined only
// once per discovery pass; the final pass re-runs the same program and
// is expected to redefine every label with an identical value.
type Labels struct {
	phase       Phase
	entries     map[string]*labelEntry
	refs        []Reference
	refSeen     map[Reference]bool
	placeholder uint16
	tree        *prefixtree.Tree[*labelEntry]
	treeStale   bool
}

// NewLabels creates an empty label table.
func NewLabels() *Labels {
	return &Labels{
		entries:     make(map[string]*labelEntry),
		refSeen:     make(map[Reference]bool),
		placeholder: Placeholder,
	}
}

// Placeholder returns the value handed out for unresolved names during
// the discovery pass.
func (l *Labels) Placeholder() uint16 {
	return l.placeholder
}

// BeginPass switches the table to the requested compilation phase.
// Label definitions persist across passes: the final pass resolves
// names using the addresses discovery assigned. References accumulated
// during discovery are kept through the final pass for export.
func (l *Labels) BeginPass(p Phase) {
	l.phase = p
	if p == Discovery {
		l.refs = nil
		l.refSeen = make(map[Reference]bool)
	}
}

// Define associates a name with an address. Redefinition is an error
// during the discovery pass and an overwrite during the final pass.
func (l *Labels) Define(name string, addr uint16) error {
	if e, found := l.entries[name]; found {
		if l.phase == Discovery {
			return &DuplicateLabelError{Name: name}
		}
		e.addr = addr
		return nil
	}
	l.entries[name] = &labelEntry{name: name, addr: addr}
	l.treeStale = true
	return nil
}

// DefineDouble defines the sibling labels name_lo at addr and name_hi
// at addr+1, for 16-bit pointers stored split across two bytes.
func (l *Labels) DefineDouble(name string, addr uint16) error {
	if err := l.Define(name+"_lo", addr); err != nil {
		return err
	}
	return l.Define(name+"_hi", addr+1)
}

// Resolve returns the address bound to a name. During discovery an
// undefined name yields the placeholder and records a reference; during
// the final pass an undefined name is an UndefinedLabelError.
func (l *Labels) Resolve(name string, at uint16) (uint16, error) {
	if e, found := l.entries[name]; found {
		return e.addr, nil
	}
	if l.phase == Final {
		return 0, &UndefinedLabelError{Name: name}
	}

	ref := Reference{Name: name, Addr: at}
	if !l.refSeen[ref] {
		l.refSeen[ref] = true
		l.refs = append(l.refs, ref)
	}
	return l.placeholder, nil
}

// Address returns the address bound to a name without recording a
// reference.
func (l *Labels) Address(name string) (uint16, bool) {
	e, found := l.entries[name]
	if !found {
		return 0, false
	}
	return e.addr, true
}

// Names returns all defined label names in sorted order.
func (l *Labels) Names() []string {
	names := make([]string, 0, len(l.entries))
	for name := range l.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// References returns the forward references recorded during the most
// recent discovery pass, in order of first use.
func (l *Labels) References() []Reference {
	return l.refs
}

// Find resolves a possibly-abbreviated label name to its full name and
// address. The abbreviation must be an unambiguous prefix of a defined
// label.
func (l *Labels) Find(prefix string) (name string, addr uint16, err error) {
	if l.tree == nil || l.treeStale {
		l.tree = prefixtree.New[*labelEntry]()
		for _, e := range l.entries {
			l.tree.Add(e.name, e)
		}
		l.treeStale = false
	}

	e, err := l.tree.FindValue(prefix)
	if err != nil {
		return "", 0, err
	}
	return e.name, e.addr, nil
}
