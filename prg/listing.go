// Copyright 2026 The gen6502 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prg

import (
	"fmt"
	"io"

	"github.com/fernwood/gen6502/gen"
)

// WriteLabelListing writes a plain-text label/address listing.
func WriteLabelListing(w io.Writer, result *gen.Result) error {
	for _, name := range result.Labels.Names() {
		addr, _ := result.Labels.Address(name)
		if _, err := fmt.Fprintf(w, "%-24s $%04X\n", name, addr); err != nil {
			return err
		}
	}
	return nil
}

// WriteReferenceListing writes the forward references recorded during
// the discovery pass: each not-yet-defined name with the address that
// used it.
func WriteReferenceListing(w io.Writer, result *gen.Result) error {
	for _, ref := range result.Labels.References() {
		if _, err := fmt.Fprintf(w, "$%04X -> %s\n", ref.Addr, ref.Name); err != nil {
			return err
		}
	}
	return nil
}

// WriteRegionListing writes the ownership map of the written address
// space as contiguous same-owner runs.
func WriteRegionListing(w io.Writer, result *gen.Result) error {
	for _, r := range result.Image.Regions() {
		size := int(r.End) - int(r.Start) + 1
		if _, err := fmt.Fprintf(w, "$%04X-$%04X %5d  %s\n", r.Start, r.End, size, r.Owner); err != nil {
			return err
		}
	}
	return nil
}

// WriteBreakpointListing writes the breakpoints recorded during the
// final pass.
func WriteBreakpointListing(w io.Writer, result *gen.Result) error {
	for _, b := range result.Breakpoints {
		if _, err := fmt.Fprintf(w, "$%04X  %s\n", b.Addr, b.Owner); err != nil {
			return err
		}
	}
	return nil
}

// WriteWatchListing writes the watches recorded during the final pass.
func WriteWatchListing(w io.Writer, result *gen.Result) error {
	for _, wt := range result.Watches {
		if _, err := fmt.Fprintf(w, "%-24s $%04X\n", wt.Name, wt.Addr); err != nil {
			return err
		}
	}
	return nil
}
