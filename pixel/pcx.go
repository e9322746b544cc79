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
	"fmt"

	"github.com/legacymm/lodkit/internal/breader"
)

const pcxHeaderSize = 128

// pcxHeader mirrors the 128-byte ZSoft PCX header.
type pcxHeader struct {
	encoding     uint8
	bitsPerPixel uint8
	xMin, yMin   uint16
	xMax, yMax   uint16
	nPlanes      uint8
	bytesPerLine uint16
}

func decodePCXHeader(r *breader.Reader) (pcxHeader, error) {
	var h pcxHeader

	if _, err := r.U8(); err != nil { // manufacturer
		return h, fmt.Errorf("%w: reading header: %w", ErrTruncated, err)
	}
	if _, err := r.U8(); err != nil { // version
		return h, fmt.Errorf("%w: reading header: %w", ErrTruncated, err)
	}

	enc, err := r.U8()
	if err != nil {
		return h, fmt.Errorf("%w: reading encoding: %w", ErrTruncated, err)
	}
	h.encoding = enc

	bpp, err := r.U8()
	if err != nil {
		return h, fmt.Errorf("%w: reading bits-per-pixel: %w", ErrTruncated, err)
	}
	h.bitsPerPixel = bpp

	xMin, err := r.U16LE()
	if err != nil {
		return h, fmt.Errorf("%w: %w", ErrTruncated, err)
	}
	h.xMin = xMin
	yMin, err := r.U16LE()
	if err != nil {
		return h, fmt.Errorf("%w: %w", ErrTruncated, err)
	}
	h.yMin = yMin
	xMax, err := r.U16LE()
	if err != nil {
		return h, fmt.Errorf("%w: %w", ErrTruncated, err)
	}
	h.xMax = xMax
	yMax, err := r.U16LE()
	if err != nil {
		return h, fmt.Errorf("%w: %w", ErrTruncated, err)
	}
	h.yMax = yMax

	if err := r.Seek(65); err != nil { // skip HDpi/VDpi/16-colour map/reserved
		return h, fmt.Errorf("%w: %w", ErrTruncated, err)
	}
	nPlanes, err := r.U8()
	if err != nil {
		return h, fmt.Errorf("%w: reading plane count: %w", ErrTruncated, err)
	}
	h.nPlanes = nPlanes

	bytesPerLine, err := r.U16LE()
	if err != nil {
		return h, fmt.Errorf("%w: %w", ErrTruncated, err)
	}
	h.bytesPerLine = bytesPerLine

	if err := r.Seek(pcxHeaderSize); err != nil {
		return h, fmt.Errorf("%w: %w", ErrTruncated, err)
	}

	return h, nil
}

// decodePCXPlanes unpacks the RLE-encoded scanline data, PCX's run-length
// scheme: a byte with its top two bits set encodes a run whose count is the
// low six bits, followed by one literal repeated that many times; any other
// byte is a single literal pixel.
func decodePCXPlanes(r *breader.Reader, height int, bytesPerLine, nPlanes int) ([]byte, error) {
	rowStride := bytesPerLine * nPlanes
	out := make([]byte, 0, rowStride*height)

	for row := 0; row < height; row++ {
		produced := 0
		for produced < rowStride {
			b, err := r.U8()
			if err != nil {
				return nil, fmt.Errorf("%w: row %d: %w", ErrTruncated, row, err)
			}
			if b&0xC0 == 0xC0 {
				count := int(b & 0x3F)
				value, err := r.U8()
				if err != nil {
					return nil, fmt.Errorf("%w: row %d: %w", ErrTruncated, row, err)
				}
				for i := 0; i < count && produced < rowStride; i++ {
					out = append(out, value)
					produced++
				}
			} else {
				out = append(out, b)
				produced++
			}
		}
	}

	return out, nil
}

// DecodePCX8 decodes a single-plane, 8-bit paletted PCX image. The 256-entry
// palette is read from the 769-byte trailer (a 0x0C marker followed by 256
// RGB triples), per the legacy convention; its absence is tolerated and
// yields a zero palette.
func DecodePCX8(r *breader.Reader) (*Indexed8, error) {
	h, err := decodePCXHeader(r)
	if err != nil {
		return nil, err
	}
	if h.bitsPerPixel != 8 || h.nPlanes != 1 {
		return nil, UnsupportedFeatureError{Format: "pcx", Feature: "bits-per-pixel/planes", Value: int(h.bitsPerPixel)}
	}

	width := int(h.xMax) - int(h.xMin) + 1
	height := int(h.yMax) - int(h.yMin) + 1

	planes, err := decodePCXPlanes(r, height, int(h.bytesPerLine), 1)
	if err != nil {
		return nil, err
	}

	pixels := make([]byte, width*height)
	for row := 0; row < height; row++ {
		copy(pixels[row*width:(row+1)*width], planes[row*int(h.bytesPerLine):])
	}

	img := &Indexed8{Width: width, Height: height, Pixels: pixels}

	// The VGA palette trailer is optional; its absence is not an error
	// since some embedded PCX blobs share a palette carried elsewhere.
	marker, err := r.U8()
	if err == nil && marker == 0x0C {
		for i := range 256 {
			rgb, err := r.Bytes(3)
			if err != nil {
				return img, fmt.Errorf("%w: palette entry %d: %w", ErrTruncated, i, err)
			}
			img.Palette[i] = RGB{R: rgb[0], G: rgb[1], B: rgb[2]}
		}
	}

	return img, nil
}

// DecodePCX24 decodes a three-plane, 8-bit-per-plane truecolour PCX image.
func DecodePCX24(r *breader.Reader) (*RGB24, error) {
	h, err := decodePCXHeader(r)
	if err != nil {
		return nil, err
	}
	if h.bitsPerPixel != 8 || h.nPlanes != 3 {
		return nil, UnsupportedFeatureError{Format: "pcx", Feature: "bits-per-pixel/planes", Value: int(h.bitsPerPixel)}
	}

	width := int(h.xMax) - int(h.xMin) + 1
	height := int(h.yMax) - int(h.yMin) + 1

	planes, err := decodePCXPlanes(r, height, int(h.bytesPerLine), 3)
	if err != nil {
		return nil, err
	}

	rowStride := int(h.bytesPerLine) * 3
	pixels := make([]byte, width*height*3)
	for row := 0; row < height; row++ {
		rowData := planes[row*rowStride : (row+1)*rowStride]
		for col := 0; col < width; col++ {
			base := (row*width + col) * 3
			pixels[base+0] = rowData[col]
			pixels[base+1] = rowData[int(h.bytesPerLine)+col]
			pixels[base+2] = rowData[2*int(h.bytesPerLine)+col]
		}
	}

	return &RGB24{Width: width, Height: height, Pixels: pixels}, nil
}
