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

package pixel

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/legacymm/lodkit/internal/breader"
)

// biRGB is the only BITMAPINFOHEADER compression code this decoder handles.
const biRGB = 0

// bmpHeader mirrors the classic BITMAPFILEHEADER (14 bytes) + 40-byte
// BITMAPINFOHEADER layout.
type bmpHeader struct {
	offBits     uint32
	width       int
	height      int
	topDown     bool
	bitCount    int
	compression uint32
	clrUsed     uint32
}

func decodeBMPHeader(r *breader.Reader) (bmpHeader, error) {
	var h bmpHeader

	magic, err := r.Bytes(2)
	if err != nil {
		return h, fmt.Errorf("%w: reading file header: %w", ErrTruncated, err)
	}
	if string(magic) != "BM" {
		return h, fmt.Errorf("%w: not a BM file", ErrUnsupported)
	}

	if err := r.Seek(10); err != nil {
		return h, fmt.Errorf("%w: %w", ErrTruncated, err)
	}
	offBits, err := r.U32LE()
	if err != nil {
		return h, fmt.Errorf("%w: reading bfOffBits: %w", ErrTruncated, err)
	}
	h.offBits = offBits

	if err := r.Seek(14); err != nil { // BITMAPINFOHEADER starts here
		return h, fmt.Errorf("%w: %w", ErrTruncated, err)
	}
	infoSize, err := r.U32LE()
	if err != nil {
		return h, fmt.Errorf("%w: reading biSize: %w", ErrTruncated, err)
	}
	if infoSize != 40 {
		return h, UnsupportedFeatureError{Format: "bmp", Feature: "info-header-size", Value: int(infoSize)}
	}

	width, err := r.I32LE()
	if err != nil {
		return h, fmt.Errorf("%w: reading biWidth: %w", ErrTruncated, err)
	}
	height, err := r.I32LE()
	if err != nil {
		return h, fmt.Errorf("%w: reading biHeight: %w", ErrTruncated, err)
	}
	h.width = int(width)
	if height < 0 {
		h.topDown = true
		h.height = int(-height)
	} else {
		h.height = int(height)
	}

	if err := r.Seek(14 + 14); err != nil { // skip biPlanes(2)+biBitCount is next
		return h, fmt.Errorf("%w: %w", ErrTruncated, err)
	}
	bitCount, err := r.U16LE()
	if err != nil {
		return h, fmt.Errorf("%w: reading biBitCount: %w", ErrTruncated, err)
	}
	h.bitCount = int(bitCount)

	compression, err := r.U32LE()
	if err != nil {
		return h, fmt.Errorf("%w: reading biCompression: %w", ErrTruncated, err)
	}
	h.compression = compression
	if compression != biRGB {
		return h, UnsupportedFeatureError{Format: "bmp", Feature: "compression", Value: int(compression)}
	}

	if err := r.Seek(14 + 32); err != nil { // biClrUsed
		return h, fmt.Errorf("%w: %w", ErrTruncated, err)
	}
	clrUsed, err := r.U32LE()
	if err != nil {
		return h, fmt.Errorf("%w: reading biClrUsed: %w", ErrTruncated, err)
	}
	h.clrUsed = clrUsed

	return h, nil
}

func rowPaddedWidth(bytesPerRow int) int {
	return (bytesPerRow + 3) &^ 3
}

// DecodeBMP8 decodes a classic 8-bit paletted, uncompressed BMP.
func DecodeBMP8(r *breader.Reader) (*Indexed8, error) {
	h, err := decodeBMPHeader(r)
	if err != nil {
		return nil, err
	}
	if h.bitCount != 8 {
		return nil, UnsupportedFeatureError{Format: "bmp", Feature: "bit-count", Value: h.bitCount}
	}

	paletteCount := int(h.clrUsed)
	if paletteCount == 0 {
		paletteCount = 256
	}

	if err := r.Seek(54); err != nil { // palette immediately follows the 40-byte info header
		return nil, fmt.Errorf("%w: %w", ErrTruncated, err)
	}

	img := &Indexed8{Width: h.width, Height: h.height}
	for i := 0; i < paletteCount && i < 256; i++ {
		entry, err := r.Bytes(4) // B, G, R, reserved
		if err != nil {
			return nil, fmt.Errorf("%w: palette entry %d: %w", ErrTruncated, i, err)
		}
		img.Palette[i] = RGB{R: entry[2], G: entry[1], B: entry[0]}
	}

	if err := r.Seek(int64(h.offBits)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTruncated, err)
	}

	rowWidth := rowPaddedWidth(h.width)
	pixels := make([]byte, h.width*h.height)
	for row := 0; row < h.height; row++ {
		rowBytes, err := r.Bytes(rowWidth)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrTruncated, row, err)
		}
		destRow := row
		if !h.topDown {
			destRow = h.height - 1 - row
		}
		copy(pixels[destRow*h.width:(destRow+1)*h.width], rowBytes[:h.width])
	}
	img.Pixels = pixels

	return img, nil
}

// DecodeBMP24 decodes a classic 24-bit truecolour, uncompressed BMP.
func DecodeBMP24(r *breader.Reader) (*RGB24, error) {
	h, err := decodeBMPHeader(r)
	if err != nil {
		return nil, err
	}
	if h.bitCount != 24 {
		return nil, UnsupportedFeatureError{Format: "bmp", Feature: "bit-count", Value: h.bitCount}
	}

	if err := r.Seek(int64(h.offBits)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTruncated, err)
	}

	rowWidth := rowPaddedWidth(h.width * 3)
	pixels := make([]byte, h.width*h.height*3)
	for row := 0; row < h.height; row++ {
		rowBytes, err := r.Bytes(rowWidth)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrTruncated, row, err)
		}
		destRow := row
		if !h.topDown {
			destRow = h.height - 1 - row
		}
		for col := 0; col < h.width; col++ {
			src := rowBytes[col*3 : col*3+3] // B, G, R
			dst := pixels[(destRow*h.width+col)*3 : (destRow*h.width+col)*3+3]
			dst[0] = src[2]
			dst[1] = src[1]
			dst[2] = src[0]
		}
	}

	return &RGB24{Width: h.width, Height: h.height, Pixels: pixels}, nil
}

func writeBMPHeaders(w io.Writer, width, height, bitCount int, paletteEntries int) error {
	rowWidth := rowPaddedWidth(width * bitCount / 8)
	pixelDataSize := rowWidth * height
	paletteSize := paletteEntries * 4
	offBits := 14 + 40 + paletteSize
	fileSize := offBits + pixelDataSize

	buf := make([]byte, 14+40)
	buf[0], buf[1] = 'B', 'M'
	binary.LittleEndian.PutUint32(buf[2:], uint32(fileSize)) //nolint:gosec // bounded by caller-supplied dimensions
	binary.LittleEndian.PutUint32(buf[10:], uint32(offBits)) //nolint:gosec // bounded by caller-supplied dimensions

	binary.LittleEndian.PutUint32(buf[14:], 40)
	binary.LittleEndian.PutUint32(buf[18:], uint32(width))  //nolint:gosec // bounded by caller-supplied dimensions
	binary.LittleEndian.PutUint32(buf[22:], uint32(height)) //nolint:gosec // bottom-up, positive height
	binary.LittleEndian.PutUint16(buf[26:], 1)               // biPlanes
	binary.LittleEndian.PutUint16(buf[28:], uint16(bitCount))
	binary.LittleEndian.PutUint32(buf[30:], biRGB)
	binary.LittleEndian.PutUint32(buf[34:], uint32(pixelDataSize)) //nolint:gosec // bounded by caller-supplied dimensions
	binary.LittleEndian.PutUint32(buf[46:], uint32(paletteEntries)) //nolint:gosec // at most 256

	_, err := w.Write(buf)
	return err
}

// EncodeBMP8 writes a classic 8-bit paletted, uncompressed, bottom-up BMP.
// It is the structural inverse of DecodeBMP8.
func EncodeBMP8(w io.Writer, img *Indexed8) error {
	if err := writeBMPHeaders(w, img.Width, img.Height, 8, 256); err != nil {
		return fmt.Errorf("bmp: writing headers: %w", err)
	}

	palette := make([]byte, 256*4)
	for i, rgb := range img.Palette {
		palette[i*4+0] = rgb.B
		palette[i*4+1] = rgb.G
		palette[i*4+2] = rgb.R
	}
	if _, err := w.Write(palette); err != nil {
		return fmt.Errorf("bmp: writing palette: %w", err)
	}

	rowWidth := rowPaddedWidth(img.Width)
	row := make([]byte, rowWidth)
	for y := img.Height - 1; y >= 0; y-- {
		copy(row, img.Pixels[y*img.Width:(y+1)*img.Width])
		for i := img.Width; i < rowWidth; i++ {
			row[i] = 0
		}
		if _, err := w.Write(row); err != nil {
			return fmt.Errorf("bmp: writing row %d: %w", y, err)
		}
	}
	return nil
}

// EncodeBMP24 writes a classic 24-bit truecolour, uncompressed, bottom-up
// BMP. It is the structural inverse of DecodeBMP24.
func EncodeBMP24(w io.Writer, img *RGB24) error {
	if err := writeBMPHeaders(w, img.Width, img.Height, 24, 0); err != nil {
		return fmt.Errorf("bmp: writing headers: %w", err)
	}

	rowWidth := rowPaddedWidth(img.Width * 3)
	row := make([]byte, rowWidth)
	for y := img.Height - 1; y >= 0; y-- {
		for x := 0; x < img.Width; x++ {
			src := img.Pixels[(y*img.Width+x)*3 : (y*img.Width+x)*3+3]
			row[x*3+0], row[x*3+1], row[x*3+2] = src[2], src[1], src[0]
		}
		for i := img.Width * 3; i < rowWidth; i++ {
			row[i] = 0
		}
		if _, err := w.Write(row); err != nil {
			return fmt.Errorf("bmp: writing row %d: %w", y, err)
		}
	}
	return nil
}
