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
	"fmt"
	"io"

	"github.com/legacymm/lodkit/internal/breader"
	"github.com/legacymm/lodkit/pixel"
)

const headerSize = 16
const paletteSize = 256 * 3
const groupHeaderSize = 16
const frameNameWidth = 13

// Decode parses a DEF's header, palette, and group/frame table. Frame pixel
// data is not decoded here; call (*Def).Frame to decode and cache a frame
// on demand.
func Decode(src io.ReaderAt, size int64) (*Def, error) {
	r := breader.New(src, 0, size)

	defType, err := r.U32LE()
	if err != nil {
		return nil, fmt.Errorf("%w: reading def_type: %w", ErrInvalidDef, err)
	}
	fullWidth, err := r.U32LE()
	if err != nil {
		return nil, fmt.Errorf("%w: reading full_width: %w", ErrInvalidDef, err)
	}
	fullHeight, err := r.U32LE()
	if err != nil {
		return nil, fmt.Errorf("%w: reading full_height: %w", ErrInvalidDef, err)
	}
	groupCount, err := r.U32LE()
	if err != nil {
		return nil, fmt.Errorf("%w: reading group_count: %w", ErrInvalidDef, err)
	}

	d := &Def{
		Header: Header{DefType: defType, FullWidth: fullWidth, FullHeight: fullHeight, GroupCount: groupCount},
		src:    src,
		size:   size,
		frameCache: make(map[uint32]*Frame),
	}

	for i := range 256 {
		rgb, err := r.Bytes(3)
		if err != nil {
			return nil, fmt.Errorf("%w: palette entry %d: %w", ErrInvalidDef, i, err)
		}
		d.Palette[i] = pixel.RGB{R: rgb[0], G: rgb[1], B: rgb[2]}
	}

	groups := make([]Group, 0, groupCount)
	for g := range int(groupCount) {
		groupIndex, err := r.U32LE()
		if err != nil {
			return nil, fmt.Errorf("%w: group %d: %w", ErrInvalidDef, g, err)
		}
		frameCount, err := r.U32LE()
		if err != nil {
			return nil, fmt.Errorf("%w: group %d: %w", ErrInvalidDef, g, err)
		}
		unk1, err := r.U32LE()
		if err != nil {
			return nil, fmt.Errorf("%w: group %d: %w", ErrInvalidDef, g, err)
		}
		unk2, err := r.U32LE()
		if err != nil {
			return nil, fmt.Errorf("%w: group %d: %w", ErrInvalidDef, g, err)
		}

		names := make([]string, frameCount)
		for i := range int(frameCount) {
			name, err := r.FixedString(frameNameWidth)
			if err != nil {
				return nil, fmt.Errorf("%w: group %d frame %d name: %w", ErrInvalidDef, g, i, err)
			}
			names[i] = name
		}

		offsets := make([]uint32, frameCount)
		for i := range int(frameCount) {
			off, err := r.U32LE()
			if err != nil {
				return nil, fmt.Errorf("%w: group %d frame %d offset: %w", ErrInvalidDef, g, i, err)
			}
			offsets[i] = off
		}

		groups = append(groups, Group{
			GroupIndex:   groupIndex,
			FrameCount:   frameCount,
			Unknown1:     unk1,
			Unknown2:     unk2,
			FrameNames:   names,
			FrameOffsets: offsets,
		})
	}
	d.Groups = groups

	return d, nil
}

// Frame decodes (or returns the cached decode of) the frame at
// groups[groupIndex].frameOffsets[frameIndex]. Frames sharing an identical
// on-disk offset share a cache slot.
func (d *Def) Frame(groupIndex, frameIndex int) (*Frame, error) {
	if groupIndex < 0 || groupIndex >= len(d.Groups) {
		return nil, fmt.Errorf("%w: group index %d out of range", ErrInvalidDef, groupIndex)
	}
	group := d.Groups[groupIndex]
	if frameIndex < 0 || frameIndex >= len(group.FrameOffsets) {
		return nil, fmt.Errorf("%w: frame index %d out of range in group %d", ErrInvalidDef, frameIndex, groupIndex)
	}

	offset := group.FrameOffsets[frameIndex]
	if cached, ok := d.frameCache[offset]; ok {
		return cached, nil
	}

	frame, err := decodeFrameAt(d.src, d.size, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: group %d frame %d: %w", ErrInvalidDef, groupIndex, frameIndex, err)
	}

	if frame.Left < 0 || frame.Top < 0 ||
		uint32(frame.Left)+frame.Width > frame.FullWidth || //nolint:gosec // bounds-checked non-negative above
		uint32(frame.Top)+frame.Height > frame.FullHeight { //nolint:gosec // bounds-checked non-negative above
		return nil, FrameBoundsError{
			GroupIndex: groupIndex, FrameIndex: frameIndex,
			Left: frame.Left, Top: frame.Top,
			Width: frame.Width, Height: frame.Height,
			FullWidth: frame.FullWidth, FullHeight: frame.FullHeight,
		}
	}

	d.frameCache[offset] = frame
	return frame, nil
}

func decodeFrameAt(src io.ReaderAt, size int64, offset uint32) (*Frame, error) {
	r := breader.New(src, int64(offset), size)

	sizeOnDisk, err := r.U32LE()
	if err != nil {
		return nil, fmt.Errorf("reading size_on_disk: %w", err)
	}
	encoding, err := r.U32LE()
	if err != nil {
		return nil, fmt.Errorf("reading encoding: %w", err)
	}
	fullWidth, err := r.U32LE()
	if err != nil {
		return nil, fmt.Errorf("reading full_width: %w", err)
	}
	fullHeight, err := r.U32LE()
	if err != nil {
		return nil, fmt.Errorf("reading full_height: %w", err)
	}
	width, err := r.U32LE()
	if err != nil {
		return nil, fmt.Errorf("reading width: %w", err)
	}
	height, err := r.U32LE()
	if err != nil {
		return nil, fmt.Errorf("reading height: %w", err)
	}
	left, err := r.I32LE()
	if err != nil {
		return nil, fmt.Errorf("reading left: %w", err)
	}
	top, err := r.I32LE()
	if err != nil {
		return nil, fmt.Errorf("reading top: %w", err)
	}

	pixels, err := decodeFramePixels(r, encoding, int(width), int(height))
	if err != nil {
		return nil, err
	}

	return &Frame{
		SizeOnDisk: sizeOnDisk,
		Encoding:   encoding,
		FullWidth:  fullWidth,
		FullHeight: fullHeight,
		Width:      width,
		Height:     height,
		Left:       left,
		Top:        top,
		Pixels:     pixels,
	}, nil
}

// decodeFramePixels decodes the frame body in its declared encoding into a
// width*height indexed buffer. bodyReader is positioned at the first byte
// after the 32-byte frame header (the base for mode 1/2/3 row offsets).
func decodeFramePixels(bodyReader *breader.Reader, encoding uint32, width, height int) ([]byte, error) {
	switch encoding {
	case EncodingRaw:
		return decodeModeRaw(bodyReader, width, height)
	case EncodingRowShort:
		return decodeModeRowOffsets(bodyReader, width, height, rowOffsetShort)
	case EncodingRowLong:
		return decodeModeRowOffsets(bodyReader, width, height, rowOffsetLong)
	case EncodingBlock32:
		return decodeModeBlock32(bodyReader, width, height)
	default:
		return nil, UnknownEncodingError{Encoding: encoding}
	}
}

func decodeModeRaw(r *breader.Reader, width, height int) ([]byte, error) {
	data, err := r.Bytes(width * height)
	if err != nil {
		return nil, fmt.Errorf("%w: mode 0: %w", ErrInvalidPixelStream, err)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}
