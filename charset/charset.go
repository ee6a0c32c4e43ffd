// Copyright 2026 The gen6502 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package charset converts images into 8x8 character set data. Each
// 8x8 tile of the source image becomes 8 bytes, one byte per row with
// the most significant bit holding the leftmost pixel. The output is
// suitable for copying into character generator memory.
package charset

import (
	"fmt"
	"image"
	"io"

	_ "image/png"

	"golang.org/x/image/draw"
)

// TileSize is the pixel width and height of one character cell.
const TileSize = 8

// threshold separates lit pixels from dark ones after conversion to
// 8-bit luminance.
const threshold = 128

// Convert decodes an image and packs it into character set bytes.
// Images whose dimensions are not multiples of 8 are rescaled to the
// nearest multiple first. Tiles are emitted row-major, left to right.
func Convert(r io.Reader) ([]byte, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}

	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("charset: empty image")
	}

	w := snap(b.Dx())
	h := snap(b.Dy())
	if w != b.Dx() || h != b.Dy() {
		dst := image.NewGray(image.Rect(0, 0, w, h))
		draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
		src = dst
		b = dst.Bounds()
	}

	cols := w / TileSize
	rows := h / TileSize

	out := make([]byte, 0, cols*rows*TileSize)
	for ty := 0; ty < rows; ty++ {
		for tx := 0; tx < cols; tx++ {
			out = append(out, tile(src, b.Min.X+tx*TileSize, b.Min.Y+ty*TileSize)...)
		}
	}
	return out, nil
}

// tile packs one 8x8 cell starting at (x0, y0).
func tile(src image.Image, x0, y0 int) []byte {
	var cell [TileSize]byte
	for y := 0; y < TileSize; y++ {
		var row byte
		for x := 0; x < TileSize; x++ {
			if lit(src, x0+x, y0+y) {
				row |= 0x80 >> x
			}
		}
		cell[y] = row
	}
	return cell[:]
}

// lit reports whether the pixel's luminance clears the threshold.
func lit(src image.Image, x, y int) bool {
	r, g, b, _ := src.At(x, y).RGBA()
	// ITU-R 601 luma, computed in 16-bit then narrowed.
	luma := (19595*r + 38470*g + 7471*b) >> 16
	return luma>>8 >= threshold
}

// snap rounds up to the nearest multiple of the tile size.
func snap(n int) int {
	return (n + TileSize - 1) / TileSize * TileSize
}
