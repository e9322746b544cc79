// Copyright (c) 2025 Niema Moshiri and The Zaparoo Project.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of go-gameid.
//
// go-gameid is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-gameid is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-gameid.  If not, see <https://www.gnu.org/licenses/>.

package pixel_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/legacymm/lodkit/internal/breader"
	"github.com/legacymm/lodkit/pixel"
)

// buildPCX8 builds a minimal uncompressed (literal-only) 8-bit single-plane
// PCX with a 256-entry VGA palette trailer.
func buildPCX8(t *testing.T, width, height int, pixels []byte) []byte {
	t.Helper()

	header := make([]byte, 128)
	header[0] = 0x0A // manufacturer
	header[1] = 5    // version
	header[2] = 1    // RLE encoding
	header[3] = 8    // bits per pixel
	binary.LittleEndian.PutUint16(header[4:], 0)
	binary.LittleEndian.PutUint16(header[6:], 0)
	binary.LittleEndian.PutUint16(header[8:], uint16(width-1))  //nolint:gosec // test fixture
	binary.LittleEndian.PutUint16(header[10:], uint16(height-1)) //nolint:gosec // test fixture
	header[65] = 1                                               // nPlanes
	binary.LittleEndian.PutUint16(header[66:], uint16(width))    //nolint:gosec // test fixture

	var body []byte
	for row := 0; row < height; row++ {
		rowPixels := pixels[row*width : (row+1)*width]
		for _, px := range rowPixels {
			// Always emit as a literal; avoid accidental run-marker bytes
			// by encoding every pixel as a length-1 "run" when it would
			// otherwise look like one.
			if px&0xC0 == 0xC0 {
				body = append(body, 0xC1, px)
			} else {
				body = append(body, px)
			}
		}
	}

	out := append(header, body...) //nolint:gocritic // test fixture assembly
	out = append(out, 0x0C)
	for i := range 256 {
		out = append(out, byte(i), byte(i), byte(i))
	}
	return out
}

func TestDecodePCX8RoundTrip(t *testing.T) {
	t.Parallel()

	want := []byte{0, 1, 2, 3, 10, 20, 30, 40}
	raw := buildPCX8(t, 4, 2, want)

	img, err := pixel.DecodePCX8(breader.NewSlice(raw))
	if err != nil {
		t.Fatalf("DecodePCX8: %v", err)
	}
	if img.Width != 4 || img.Height != 2 {
		t.Fatalf("dims = %dx%d, want 4x2", img.Width, img.Height)
	}
	for i, w := range want {
		if img.Pixels[i] != w {
			t.Fatalf("Pixels[%d] = %d, want %d", i, img.Pixels[i], w)
		}
	}
	if img.Palette[10] != (pixel.RGB{R: 10, G: 10, B: 10}) {
		t.Fatalf("Palette[10] = %+v, want {10,10,10}", img.Palette[10])
	}
}

func TestDecodePCXTruncated(t *testing.T) {
	t.Parallel()

	_, err := pixel.DecodePCX8(breader.NewSlice(make([]byte, 10)))
	if !errors.Is(err, pixel.ErrTruncated) {
		t.Fatalf("err = %v, want ErrTruncated", err)
	}
}

// buildBMP8 builds a minimal bottom-up, uncompressed 8-bit paletted BMP.
func buildBMP8(t *testing.T, width, height int, pixels []byte) []byte {
	t.Helper()

	rowWidth := (width + 3) &^ 3
	offBits := 14 + 40 + 256*4

	file := make([]byte, 14)
	copy(file[:2], "BM")
	binary.LittleEndian.PutUint32(file[10:], uint32(offBits)) //nolint:gosec // test fixture

	info := make([]byte, 40)
	binary.LittleEndian.PutUint32(info[0:], 40)
	binary.LittleEndian.PutUint32(info[4:], uint32(width))  //nolint:gosec // test fixture
	binary.LittleEndian.PutUint32(info[8:], uint32(height)) //nolint:gosec // test fixture
	binary.LittleEndian.PutUint16(info[12:], 1)              // biPlanes
	binary.LittleEndian.PutUint16(info[14:], 8)              // biBitCount
	binary.LittleEndian.PutUint32(info[16:], 0)               // biCompression = BI_RGB
	binary.LittleEndian.PutUint32(info[32:], 256)             // biClrUsed

	palette := make([]byte, 256*4)
	for i := range 256 {
		palette[i*4+0] = byte(i) // B
		palette[i*4+1] = byte(i) // G
		palette[i*4+2] = byte(i) // R
	}

	body := make([]byte, 0, rowWidth*height)
	for row := height - 1; row >= 0; row-- { // bottom-up on disk
		rowPixels := pixels[row*width : (row+1)*width]
		padded := make([]byte, rowWidth)
		copy(padded, rowPixels)
		body = append(body, padded...)
	}

	out := append([]byte{}, file...)
	out = append(out, info...)
	out = append(out, palette...)
	out = append(out, body...)
	return out
}

func TestDecodeBMP8RoundTrip(t *testing.T) {
	t.Parallel()

	want := []byte{0, 1, 2, 3, 10, 20, 30, 40}
	raw := buildBMP8(t, 4, 2, want)

	img, err := pixel.DecodeBMP8(breader.NewSlice(raw))
	if err != nil {
		t.Fatalf("DecodeBMP8: %v", err)
	}
	if img.Width != 4 || img.Height != 2 {
		t.Fatalf("dims = %dx%d, want 4x2", img.Width, img.Height)
	}
	for i, w := range want {
		if img.Pixels[i] != w {
			t.Fatalf("Pixels[%d] = %d, want %d", i, img.Pixels[i], w)
		}
	}
}

func TestDecodeBMPRejectsNonBM(t *testing.T) {
	t.Parallel()

	raw := make([]byte, 64)
	copy(raw[:2], "XX")
	_, err := pixel.DecodeBMP8(breader.NewSlice(raw))
	if !errors.Is(err, pixel.ErrUnsupported) {
		t.Fatalf("err = %v, want ErrUnsupported", err)
	}
}

func TestDecodeBMPTruncated(t *testing.T) {
	t.Parallel()

	raw := buildBMP8(t, 4, 2, []byte{0, 1, 2, 3, 10, 20, 30, 40})
	_, err := pixel.DecodeBMP8(breader.NewSlice(raw[:len(raw)-4]))
	if !errors.Is(err, pixel.ErrTruncated) {
		t.Fatalf("err = %v, want ErrTruncated", err)
	}
}

func TestEncodeDecodeBMP8RoundTrip(t *testing.T) {
	t.Parallel()

	img := &pixel.Indexed8{Width: 5, Height: 3, Pixels: []byte{
		0, 1, 2, 3, 4,
		5, 6, 7, 8, 9,
		10, 11, 12, 13, 14,
	}}
	for i := range img.Palette {
		img.Palette[i] = pixel.RGB{R: byte(i), G: byte(i), B: byte(i)}
	}

	var buf bytes.Buffer
	if err := pixel.EncodeBMP8(&buf, img); err != nil {
		t.Fatalf("EncodeBMP8: %v", err)
	}

	got, err := pixel.DecodeBMP8(breader.NewSlice(buf.Bytes()))
	if err != nil {
		t.Fatalf("DecodeBMP8: %v", err)
	}
	if got.Width != img.Width || got.Height != img.Height {
		t.Fatalf("dims = %dx%d, want %dx%d", got.Width, got.Height, img.Width, img.Height)
	}
	if !bytes.Equal(got.Pixels, img.Pixels) {
		t.Fatalf("Pixels = %v, want %v", got.Pixels, img.Pixels)
	}
	if got.Palette != img.Palette {
		t.Fatalf("Palette mismatch")
	}
}

func TestEncodeDecodeBMP24RoundTrip(t *testing.T) {
	t.Parallel()

	img := &pixel.RGB24{Width: 3, Height: 2, Pixels: []byte{
		255, 0, 0, 0, 255, 0, 0, 0, 255,
		10, 20, 30, 40, 50, 60, 70, 80, 90,
	}}

	var buf bytes.Buffer
	if err := pixel.EncodeBMP24(&buf, img); err != nil {
		t.Fatalf("EncodeBMP24: %v", err)
	}

	got, err := pixel.DecodeBMP24(breader.NewSlice(buf.Bytes()))
	if err != nil {
		t.Fatalf("DecodeBMP24: %v", err)
	}
	if got.Width != img.Width || got.Height != img.Height {
		t.Fatalf("dims = %dx%d, want %dx%d", got.Width, got.Height, img.Width, img.Height)
	}
	if !bytes.Equal(got.Pixels, img.Pixels) {
		t.Fatalf("Pixels = %v, want %v", got.Pixels, img.Pixels)
	}
}
