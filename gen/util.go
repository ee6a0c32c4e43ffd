// Copyright 2026 The gen6502 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gen

var hex = "0123456789ABCDEF"

// Lo returns the low byte of a 16-bit value.
func Lo(v uint16) byte {
	return byte(v)
}

// Hi returns the high byte of a 16-bit value.
func Hi(v uint16) byte {
	return byte(v >> 8)
}

// HiLo splits a value into its high and low bytes. Values outside the
// 16-bit range are rejected.
func HiLo(v int) (hi, lo byte, err error) {
	if v < 0 || v > 0xffff {
		return 0, 0, &ValueRangeError{Op: "hilo", Value: v}
	}
	return byte(v >> 8), byte(v), nil
}

// Return a hexadecimal string representation of a byte slice.
func byteString(b []byte) string {
	if len(b) < 1 {
		return ""
	}

	s := make([]byte, len(b)*3-1)
	i, j := 0, 0
	for n := len(b) - 1; i < n; i, j = i+1, j+3 {
		s[j+0] = hex[(b[i] >> 4)]
		s[j+1] = hex[(b[i] & 0x0f)]
		s[j+2] = ' '
	}
	s[j+0] = hex[(b[i] >> 4)]
	s[j+1] = hex[(b[i] & 0x0f)]
	return string(s)
}
