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

package def

import (
	"encoding/binary"
	"fmt"

	"github.com/legacymm/lodkit/internal/breader"
)

type rowOffsetKind int

const (
	rowOffsetShort rowOffsetKind = iota // mode 1: 16-bit offsets, separate code+length bytes
	rowOffsetLong                       // mode 2: 32-bit offsets, packed code/length byte
)

// decodeModeRowOffsets implements encodings 1 and 2: one row-start offset
// table (relative to the frame body start), then per-row segment streams.
func decodeModeRowOffsets(r *breader.Reader, width, height int, kind rowOffsetKind) ([]byte, error) {
	bodyStart := r.Pos()

	offsets := make([]uint32, height)
	for row := range height {
		switch kind {
		case rowOffsetShort:
			v, err := r.U16LE()
			if err != nil {
				return nil, fmt.Errorf("%w: row offset %d: %w", ErrInvalidPixelStream, row, err)
			}
			offsets[row] = uint32(v)
		case rowOffsetLong:
			v, err := r.U32LE()
			if err != nil {
				return nil, fmt.Errorf("%w: row offset %d: %w", ErrInvalidPixelStream, row, err)
			}
			offsets[row] = v
		}
	}

	out := make([]byte, width*height)
	for row := range height {
		if err := r.Seek(bodyStart + int64(offsets[row])); err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrInvalidPixelStream, row, err)
		}

		var segErr error
		switch kind {
		case rowOffsetShort:
			segErr = decodeSegmentsSeparateBytes(r, out[row*width:(row+1)*width])
		case rowOffsetLong:
			segErr = decodeSegmentsPackedByte(r, out[row*width:(row+1)*width])
		}
		if segErr != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrInvalidPixelStream, row, segErr)
		}
	}

	return out, nil
}

// decodeSegmentsSeparateBytes implements mode 1's segment scheme: a
// { segment_code: u8, length: u8 } pair, segment_code == 0xFF meaning
// "length raw bytes follow", otherwise a run of length copies of
// segment_code.
func decodeSegmentsSeparateBytes(r *breader.Reader, row []byte) error {
	produced := 0
	for produced < len(row) {
		code, err := r.U8()
		if err != nil {
			return err
		}
		length, err := r.U8()
		if err != nil {
			return err
		}
		n := int(length)
		if produced+n > len(row) {
			n = len(row) - produced
		}

		if code == 0xFF {
			raw, err := r.Bytes(int(length))
			if err != nil {
				return err
			}
			copy(row[produced:produced+n], raw[:n])
		} else {
			for i := 0; i < n; i++ {
				row[produced+i] = code
			}
		}
		produced += n
	}
	return nil
}

// decodeSegmentsPackedByte implements modes 2/3's segment scheme: a single
// byte packs { code: high 3 bits, length-1: low 5 bits }; code == 7 means
// "length raw bytes follow", otherwise a run of length copies of palette
// index code.
func decodeSegmentsPackedByte(r *breader.Reader, row []byte) error {
	produced := 0
	for produced < len(row) {
		packed, err := r.U8()
		if err != nil {
			return err
		}
		code := packed >> 5
		length := int(packed&0x1F) + 1

		n := length
		if produced+n > len(row) {
			n = len(row) - produced
		}

		if code == 7 {
			raw, err := r.Bytes(length)
			if err != nil {
				return err
			}
			copy(row[produced:produced+n], raw[:n])
		} else {
			for i := 0; i < n; i++ {
				row[produced+i] = code
			}
		}
		produced += n
	}
	return nil
}

// decodeModeBlock32 implements encoding 3: one offset per 32-pixel-wide
// block per row, each block decoded with the packed-byte segment scheme.
func decodeModeBlock32(r *breader.Reader, width, height int) ([]byte, error) {
	const blockWidth = 32
	blocksPerRow := (width + blockWidth - 1) / blockWidth
	bodyStart := r.Pos()

	offsets := make([]uint32, height*blocksPerRow)
	for i := range offsets {
		v, err := r.U16LE()
		if err != nil {
			return nil, fmt.Errorf("%w: block offset %d: %w", ErrInvalidPixelStream, i, err)
		}
		offsets[i] = uint32(v)
	}

	out := make([]byte, width*height)
	for row := range height {
		for block := range blocksPerRow {
			blockStart := block * blockWidth
			blockLen := blockWidth
			if blockStart+blockLen > width {
				blockLen = width - blockStart
			}

			idx := row*blocksPerRow + block
			if err := r.Seek(bodyStart + int64(offsets[idx])); err != nil {
				return nil, fmt.Errorf("%w: row %d block %d: %w", ErrInvalidPixelStream, row, block, err)
			}

			rowSlice := out[row*width+blockStart : row*width+blockStart+blockLen]
			if err := decodeSegmentsPackedByte(r, rowSlice); err != nil {
				return nil, fmt.Errorf("%w: row %d block %d: %w", ErrInvalidPixelStream, row, block, err)
			}
		}
	}

	return out, nil
}

// encodeModeRowOffsets is the inverse of decodeModeRowOffsets: it lays out
// a row-offset table followed by each row's encoded segment stream, with
// offsets relative to the start of the offset table (matching the decoder's
// frame-body-relative convention).
func encodeModeRowOffsets(pixels []byte, width, height int, kind rowOffsetKind) ([]byte, error) {
	if len(pixels) != width*height {
		return nil, fmt.Errorf("%w: pixel buffer length %d, want %d", ErrInvalidPixelStream, len(pixels), width*height)
	}

	offsetEntrySize := 2
	if kind == rowOffsetLong {
		offsetEntrySize = 4
	}
	tableSize := height * offsetEntrySize

	rows := make([][]byte, height)
	for row := range height {
		rowPixels := pixels[row*width : (row+1)*width]
		if kind == rowOffsetShort {
			rows[row] = encodeSegmentsSeparateBytes(rowPixels)
		} else {
			rows[row] = encodeSegmentsPackedByte(rowPixels)
		}
	}

	out := make([]byte, tableSize)
	cursor := tableSize
	for row, data := range rows {
		if kind == rowOffsetShort {
			binary.LittleEndian.PutUint16(out[row*2:], uint16(cursor)) //nolint:gosec // frame body offsets fit u16
		} else {
			binary.LittleEndian.PutUint32(out[row*4:], uint32(cursor)) //nolint:gosec // frame body offsets fit u32
		}
		cursor += len(data)
	}
	for _, data := range rows {
		out = append(out, data...)
	}

	return out, nil
}

// encodeModeBlock32 is the inverse of decodeModeBlock32.
func encodeModeBlock32(pixels []byte, width, height int) ([]byte, error) {
	if len(pixels) != width*height {
		return nil, fmt.Errorf("%w: pixel buffer length %d, want %d", ErrInvalidPixelStream, len(pixels), width*height)
	}

	const blockWidth = 32
	blocksPerRow := (width + blockWidth - 1) / blockWidth
	tableSize := height * blocksPerRow * 2

	blocks := make([][]byte, 0, height*blocksPerRow)
	for row := range height {
		for block := range blocksPerRow {
			start := block * blockWidth
			end := start + blockWidth
			if end > width {
				end = width
			}
			blocks = append(blocks, encodeSegmentsPackedByte(pixels[row*width+start:row*width+end]))
		}
	}

	out := make([]byte, tableSize)
	cursor := tableSize
	for i, data := range blocks {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(cursor)) //nolint:gosec // frame body offsets fit u16
		cursor += len(data)
	}
	for _, data := range blocks {
		out = append(out, data...)
	}

	return out, nil
}

// encodeSegmentsSeparateBytes is the inverse of decodeSegmentsSeparateBytes:
// runs of >=3 identical bytes (other than 0xFF, reserved for the raw
// marker) are run-length encoded; everything else is emitted as raw
// segments.
func encodeSegmentsSeparateBytes(row []byte) []byte {
	var out []byte
	i := 0
	for i < len(row) {
		v := row[i]
		runLen := 1
		for runLen < 255 && i+runLen < len(row) && row[i+runLen] == v {
			runLen++
		}
		if runLen >= 3 && v != 0xFF {
			out = append(out, v, byte(runLen)) //nolint:gosec // runLen bounded to 255
			i += runLen
			continue
		}

		litStart := i
		litLen := 0
		for i < len(row) && litLen < 255 {
			if i+2 < len(row) && row[i] == row[i+1] && row[i+1] == row[i+2] && row[i] != 0xFF {
				break
			}
			litLen++
			i++
		}
		if litLen == 0 {
			litLen = 1
			i++
		}
		out = append(out, 0xFF, byte(litLen)) //nolint:gosec // litLen bounded to 255
		out = append(out, row[litStart:litStart+litLen]...)
	}
	return out
}

// encodeSegmentsPackedByte is the inverse of decodeSegmentsPackedByte: runs
// of >=3 identical bytes with a value of 0..6 (the indices the 3-bit code
// can carry, 7 being the raw-run marker) are run-length encoded up to 32
// pixels; everything else is emitted as raw segments up to 32 bytes.
func encodeSegmentsPackedByte(row []byte) []byte {
	var out []byte
	i := 0
	for i < len(row) {
		v := row[i]
		runLen := 1
		for runLen < 32 && i+runLen < len(row) && row[i+runLen] == v {
			runLen++
		}
		// The packed byte's high 3 bits are the run's palette index, so
		// only indices 0..6 are representable as a run (7 is the raw
		// marker); anything else must go through the literal path.
		if runLen >= 3 && v <= 6 {
			out = append(out, v<<5|byte(runLen-1))
			i += runLen
			continue
		}

		litStart := i
		litLen := 0
		for i < len(row) && litLen < 32 {
			if i+2 < len(row) && row[i] == row[i+1] && row[i+1] == row[i+2] && row[i] <= 6 {
				break
			}
			litLen++
			i++
		}
		if litLen == 0 {
			litLen = 1
			i++
		}
		out = append(out, 7<<5|byte(litLen-1))
		out = append(out, row[litStart:litStart+litLen]...)
	}
	return out
}
