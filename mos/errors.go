// Copyright 2026 The gen6502 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mos

import "fmt"

// An UnknownInstructionError reports a request for a (mnemonic, mode)
// pair that is not part of the instruction set.
type UnknownInstructionError struct {
	Mnemonic Mnemonic
	Mode     Mode
}

func (e *UnknownInstructionError) Error() string {
	return fmt.Sprintf("unknown instruction %s with %s addressing", e.Mnemonic, e.Mode)
}
