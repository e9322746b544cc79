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
)

// EncodeFrame describes one frame to serialise. Encoding is written as
// given; its zero value is EncodingRaw (mode 0).
type EncodeFrame struct {
	Name                  string
	FullWidth, FullHeight uint32
	Width, Height         uint32
	Left, Top             int32
	Pixels                []byte // width*height palette indices, row-major
	Encoding              uint32
}

// EncodeGroup describes one animation group to serialise.
type EncodeGroup struct {
	GroupIndex uint32
	Unknown1   uint32
	Unknown2   uint32
	Frames     []EncodeFrame
}

// DefaultEncoding names the package's default mode, mode 2. Encode does not
// substitute it for any frame: a zero Encoding is EncodingRaw and is
// written as raw.
const DefaultEncoding = EncodingRowLong

// Encode serialises a header, palette, and group/frame table into a DEF
// binary equal in structure to what Decode accepts. Frame table offsets are
// computed in a second pass once every frame body has been serialised, per
// the two-pass layout §4.5 requires.
func Encode(header Header, palette Palette, groups []EncodeGroup) ([]byte, error) {
	header.GroupCount = uint32(len(groups)) //nolint:gosec // caller-bounded group count

	groupTableSize := 0
	for _, g := range groups {
		groupTableSize += groupHeaderSize + len(g.Frames)*(frameNameWidth+4)
	}
	bodyBase := headerSize + paletteSize + groupTableSize

	type encodedFrame struct {
		body   []byte
		offset int
	}
	var frameBodies []encodedFrame
	offset := bodyBase

	for _, g := range groups {
		for _, f := range g.Frames {
			body, err := encodeFrameBody(f, f.Encoding)
			if err != nil {
				return nil, fmt.Errorf("def: encoding frame %q: %w", f.Name, err)
			}
			frameBodies = append(frameBodies, encodedFrame{body: body, offset: offset})
			offset += len(body)
		}
	}

	out := make([]byte, 0, offset)

	hdr := make([]byte, headerSize)
	binary.LittleEndian.PutUint32(hdr[0:], header.DefType)
	binary.LittleEndian.PutUint32(hdr[4:], header.FullWidth)
	binary.LittleEndian.PutUint32(hdr[8:], header.FullHeight)
	binary.LittleEndian.PutUint32(hdr[12:], header.GroupCount)
	out = append(out, hdr...)

	for _, rgb := range palette {
		out = append(out, rgb.R, rgb.G, rgb.B)
	}

	frameIdx := 0
	for _, g := range groups {
		gh := make([]byte, groupHeaderSize)
		binary.LittleEndian.PutUint32(gh[0:], g.GroupIndex)
		binary.LittleEndian.PutUint32(gh[4:], uint32(len(g.Frames))) //nolint:gosec // caller-bounded frame count
		binary.LittleEndian.PutUint32(gh[8:], g.Unknown1)
		binary.LittleEndian.PutUint32(gh[12:], g.Unknown2)
		out = append(out, gh...)

		for _, f := range g.Frames {
			nameBytes := make([]byte, frameNameWidth)
			copy(nameBytes, []byte(f.Name))
			out = append(out, nameBytes...)
		}
		for range g.Frames {
			offBytes := make([]byte, 4)
			binary.LittleEndian.PutUint32(offBytes, uint32(frameBodies[frameIdx].offset)) //nolint:gosec // archive offsets fit u32
			out = append(out, offBytes...)
			frameIdx++
		}
	}

	for _, fb := range frameBodies {
		out = append(out, fb.body...)
	}

	return out, nil
}

func encodeFrameBody(f EncodeFrame, encoding uint32) ([]byte, error) {
	var pixelBody []byte
	var err error

	switch encoding {
	case EncodingRaw:
		pixelBody = append([]byte{}, f.Pixels...)
	case EncodingRowShort:
		pixelBody, err = encodeModeRowOffsets(f.Pixels, int(f.Width), int(f.Height), rowOffsetShort)
	case EncodingRowLong:
		pixelBody, err = encodeModeRowOffsets(f.Pixels, int(f.Width), int(f.Height), rowOffsetLong)
	case EncodingBlock32:
		pixelBody, err = encodeModeBlock32(f.Pixels, int(f.Width), int(f.Height))
	default:
		return nil, UnknownEncodingError{Encoding: encoding}
	}
	if err != nil {
		return nil, err
	}

	header := make([]byte, 32)
	binary.LittleEndian.PutUint32(header[0:], uint32(32+len(pixelBody))) //nolint:gosec // frame sizes fit u32
	binary.LittleEndian.PutUint32(header[4:], encoding)
	binary.LittleEndian.PutUint32(header[8:], f.FullWidth)
	binary.LittleEndian.PutUint32(header[12:], f.FullHeight)
	binary.LittleEndian.PutUint32(header[16:], f.Width)
	binary.LittleEndian.PutUint32(header[20:], f.Height)
	binary.LittleEndian.PutUint32(header[24:], uint32(f.Left)) //nolint:gosec // bit-reinterpreted i32
	binary.LittleEndian.PutUint32(header[28:], uint32(f.Top))  //nolint:gosec // bit-reinterpreted i32

	return append(header, pixelBody...), nil
}
