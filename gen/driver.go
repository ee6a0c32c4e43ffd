// Copyright 2026 The gen6502 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gen

import (
	"fmt"
	"io"
	"os"
)

// A Result holds the output of a completed compilation: the memory
// image plus the label, reference, and debug records accumulated during
// the final pass.
type Result struct {
	Origin      uint16       // program start address
	End         uint16       // cursor position after the last pass
	Image       *Image       // assembled memory image
	Labels      *Labels      // label table and reference tracker
	Breakpoints []Breakpoint // breakpoints recorded in the final pass
	Watches     []Watch      // watches recorded in the final pass
	Emitted     int          // instructions emitted per pass
}

// Compile runs a generator unit through both compilation passes and
// returns the assembled result.
//
// The discovery pass executes the whole program once so every label,
// including ones declared after their first use, ends up with an
// address. The final pass resets the cursor and executes the same
// program again with all labels resolved. The unit must be
// deterministic: both passes must produce byte-for-byte identical
// layout, and Compile fails with ErrPassMismatch when they do not.
//
// Any error aborts compilation immediately; a failed compilation
// produces no result.
func Compile(unit Unit, origin uint16, out io.Writer, options Option) (*Result, error) {
	if out == nil {
		out = os.Stdout
	}

	ctx := newContext(origin, out, options)
	if ctx.labels.Placeholder() < 0x100 {
		return nil, fmt.Errorf("placeholder $%04X aliases the zero page", ctx.labels.Placeholder())
	}

	ctx.beginPass(Discovery)
	err := ctx.WithOwner(unit.Name(), func() error {
		return unit.Compile(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("discovery pass: %w", err)
	}
	discEmitted := ctx.emitted
	discEnd := ctx.cursor.PC()
	ctx.log("discovery pass: %d instructions, end $%04X, %d forward references",
		discEmitted, discEnd, len(ctx.labels.References()))

	ctx.beginPass(Final)
	err = ctx.WithOwner(unit.Name(), func() error {
		return unit.Compile(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("final pass: %w", err)
	}

	if ctx.emitted != discEmitted || ctx.cursor.PC() != discEnd {
		return nil, fmt.Errorf("%w: discovery emitted %d instructions ending at $%04X, final %d ending at $%04X",
			ErrPassMismatch, discEmitted, discEnd, ctx.emitted, ctx.cursor.PC())
	}

	return &Result{
		Origin:      origin,
		End:         ctx.cursor.PC(),
		Image:       ctx.image,
		Labels:      ctx.labels,
		Breakpoints: ctx.brks,
		Watches:     ctx.watches,
		Emitted:     ctx.emitted,
	}, nil
}
