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
	"io"

	"github.com/legacymm/lodkit/pixel"
)

// Recognised def_type values; downstream labelling/cropping keys off these
// but decoding itself is agnostic to which one is present.
const (
	TypeSpell     uint32 = 0x40
	TypeCreature  uint32 = 0x42
	TypeMapObject uint32 = 0x43
	TypeHero      uint32 = 0x44
	TypeTerrain   uint32 = 0x46
	TypeCursor    uint32 = 0x47
	TypeInterface uint32 = 0x49
)

// Frame pixel encodings.
const (
	EncodingRaw        uint32 = 0
	EncodingRowShort   uint32 = 1
	EncodingRowLong    uint32 = 2
	EncodingBlock32    uint32 = 3
)

// Header is the fixed 16-byte DEF preamble.
type Header struct {
	DefType    uint32
	FullWidth  uint32
	FullHeight uint32
	GroupCount uint32
}

// Palette is the 256-entry RGB table shared by every frame in a DEF.
type Palette [256]pixel.RGB

// Group is one animation group's frame table.
type Group struct {
	GroupIndex   uint32
	FrameCount   uint32
	Unknown1     uint32
	Unknown2     uint32
	FrameNames   []string
	FrameOffsets []uint32
}

// Frame is one decoded, palette-indexed sprite frame.
type Frame struct {
	SizeOnDisk   uint32
	Encoding     uint32
	FullWidth    uint32
	FullHeight   uint32
	Width        uint32
	Height       uint32
	Left         int32
	Top          int32
	Pixels       []byte // width*height palette indices, row-major
}

// Def is a fully parsed DEF: header, palette, and group/frame table read
// eagerly; frame pixel data decoded lazily and cached by on-disk offset.
type Def struct {
	Header  Header
	Palette Palette
	Groups  []Group

	src  io.ReaderAt
	size int64

	frameCache map[uint32]*Frame
}
