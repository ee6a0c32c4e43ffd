// Copyright 2026 The gen6502 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package charset

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
)

func encodePNG(t *testing.T, img image.Image) *bytes.Reader {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encode failed: %v", err)
	}
	return bytes.NewReader(buf.Bytes())
}

func TestConvertSingleTile(t *testing.T) {
	assert := assert.New(t)

	img := image.NewGray(image.Rect(0, 0, 8, 8))
	img.SetGray(0, 0, color.Gray{Y: 255})
	img.SetGray(7, 0, color.Gray{Y: 255})
	img.SetGray(3, 5, color.Gray{Y: 255})

	out, err := Convert(encodePNG(t, img))
	assert.NoError(err)
	assert.Len(out, 8)

	// MSB is the leftmost pixel of the row.
	assert.Equal(byte(0x81), out[0])
	assert.Equal(byte(0x10), out[5])
	assert.Equal(byte(0x00), out[1])
}

func TestConvertTileOrder(t *testing.T) {
	assert := assert.New(t)

	// Left tile dark, right tile lit: tiles are emitted left to right.
	img := image.NewGray(image.Rect(0, 0, 16, 8))
	for y := 0; y < 8; y++ {
		for x := 8; x < 16; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}

	out, err := Convert(encodePNG(t, img))
	assert.NoError(err)
	assert.Len(out, 16)
	assert.Equal(make([]byte, 8), out[:8])
	assert.Equal(bytes.Repeat([]byte{0xff}, 8), out[8:])
}

func TestConvertRescale(t *testing.T) {
	assert := assert.New(t)

	// A 4x4 source snaps up to one full 8x8 tile.
	img := image.NewGray(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}

	out, err := Convert(encodePNG(t, img))
	assert.NoError(err)
	assert.Len(out, 8)
	assert.Equal(bytes.Repeat([]byte{0xff}, 8), out)
}

func TestConvertThreshold(t *testing.T) {
	assert := assert.New(t)

	img := image.NewGray(image.Rect(0, 0, 8, 8))
	img.SetGray(0, 0, color.Gray{Y: 127}) // below threshold
	img.SetGray(1, 0, color.Gray{Y: 128}) // at threshold

	out, err := Convert(encodePNG(t, img))
	assert.NoError(err)
	assert.Equal(byte(0x40), out[0])
}

func TestConvertBadInput(t *testing.T) {
	assert := assert.New(t)

	_, err := Convert(bytes.NewReader([]byte("not a png")))
	assert.Error(err)
}
