// Copyright 2026 The gen6502 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package prg serializes a compilation result into a loadable binary
// and plain-text debug listings.
package prg

import (
	"bufio"
	"io"
	"os"

	"github.com/fernwood/gen6502/gen"
)

// A Binary serializes the written span of a memory image as a loadable
// program file: a 2-byte little-endian load address followed by the
// contiguous byte range from the first to the last written address,
// with unwritten gaps filled by 0x00.
type Binary struct {
	result *gen.Result
}

// NewBinary creates a binary serializer for a compilation result.
func NewBinary(result *gen.Result) *Binary {
	return &Binary{result: result}
}

// WriteTo writes the binary program to an output stream.
func (b *Binary) WriteTo(w io.Writer) (n int64, err error) {
	lo, hi, ok := b.result.Image.Span()
	if !ok {
		return 0, nil
	}

	buf := make([]byte, 0, int(hi)-int(lo)+3)
	buf = append(buf, gen.Lo(lo), gen.Hi(lo))
	for addr := int(lo); addr <= int(hi); addr++ {
		v, _ := b.result.Image.Read(uint16(addr))
		buf = append(buf, v)
	}

	nn, err := w.Write(buf)
	return int64(nn), err
}

// WriteFile writes the binary program to the named file.
func (b *Binary) WriteFile(path string) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	if _, err := b.WriteTo(w); err != nil {
		return err
	}
	return w.Flush()
}
