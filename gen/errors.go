// Copyright 2026 The gen6502 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gen

import (
	"errors"
	"fmt"

	"github.com/fernwood/gen6502/mos"
)

// ErrPassMismatch reports a generator that produced different output
// sizes in the discovery and final passes. This indicates either a
// non-deterministic generator or a placeholder that changed an encoding
// decision between passes.
var ErrPassMismatch = errors.New("discovery and final passes diverged")

// A DuplicateLabelError reports a label defined twice during the
// discovery pass.
type DuplicateLabelError struct {
	Name string
}

func (e *DuplicateLabelError) Error() string {
	return fmt.Sprintf("label '%s' defined more than once", e.Name)
}

// An UndefinedLabelError reports a label that was referenced but never
// defined anywhere in the program.
type UndefinedLabelError struct {
	Name string
}

func (e *UndefinedLabelError) Error() string {
	return fmt.Sprintf("label '%s' was never defined", e.Name)
}

// An OwnershipConflictError reports two different generator units
// writing to the same memory address.
type OwnershipConflictError struct {
	Addr   uint16 // conflicting address
	Owner  string // unit that owns the byte
	Writer string // unit attempting the overwrite
}

func (e *OwnershipConflictError) Error() string {
	return fmt.Sprintf("memory conflict at $%04X: owned by '%s', written by '%s'",
		e.Addr, e.Owner, e.Writer)
}

// A BranchRangeError reports a relative branch whose displacement does
// not fit in a signed byte.
type BranchRangeError struct {
	Mnemonic mos.Mnemonic
	PC       uint16 // address of the branch instruction
	Target   int    // absolute branch target
	Offset   int    // computed displacement
}

func (e *BranchRangeError) Error() string {
	return fmt.Sprintf("%s at $%04X: target $%04X is out of branch range (offset %d)",
		e.Mnemonic, e.PC, e.Target, e.Offset)
}

// An ArityError reports the wrong number of operands passed to an
// emission primitive.
type ArityError struct {
	Op    string
	Count int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("%s: invalid operand count %d", e.Op, e.Count)
}

// A ValueRangeError reports a numeric operand outside the representable
// range of its destination.
type ValueRangeError struct {
	Op    string
	Value int
}

func (e *ValueRangeError) Error() string {
	return fmt.Sprintf("%s: value %d out of range", e.Op, e.Value)
}
