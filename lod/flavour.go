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

// Package lod implements the LOD-family archive engine: flavour detection,
// directory parsing, lazy decompressed entry access, and mutate-in-place
// rebuild.
package lod

// Flavour identifies one of the LOD-family archive variants. All variants
// share the same directory-record shape (NUL-padded name, offset,
// unpacked size, type tag, packed size, all little-endian u32 after the
// name) and differ only in magic bytes and name field width.
type Flavour uint8

const (
	// HeroesLod is the original Heroes of Might and Magic III .lod archive.
	HeroesLod Flavour = iota
	// Mm6Lod is the Might and Magic VI .lod archive.
	Mm6Lod
	// Mm7Lod is the Might and Magic VII .lod archive.
	Mm7Lod
	// Mm8Lod is the Might and Magic VIII .lod archive.
	Mm8Lod
	// Snd is the shared sound-bank archive (.snd).
	Snd
	// Vid is the shared video-bank archive (.vid).
	Vid
	// Lwd is the long-name variant used by a handful of expansion packs.
	Lwd
)

func (f Flavour) String() string {
	switch f {
	case HeroesLod:
		return "HeroesLod"
	case Mm6Lod:
		return "Mm6Lod"
	case Mm7Lod:
		return "Mm7Lod"
	case Mm8Lod:
		return "Mm8Lod"
	case Snd:
		return "Snd"
	case Vid:
		return "Vid"
	case Lwd:
		return "Lwd"
	default:
		return "Unknown"
	}
}

// spec fixes the on-disk layout for one flavour.
type spec struct {
	flavour Flavour
	magic   [4]byte
	// nameWidth is the NUL-padded ASCII width of the directory name field.
	// Per the data model this is 16 bytes (≤15 chars) for every flavour
	// except Lwd, which uses 40 bytes (≤39 chars).
	nameWidth int
}

// recordWidth is nameWidth plus four little-endian u32 fields: offset,
// unpacked size, type, packed size.
func (s spec) recordWidth() int { return s.nameWidth + 4*4 }

const (
	// entryCountOffset is the byte offset of the u32 entry count, fixed
	// across all flavours (bytes 92..96 in the canonical Heroes LOD layout).
	entryCountOffset = 92
	// directoryOffset is the byte offset of the first directory record,
	// fixed across all flavours (bytes 288.. in the canonical layout); the
	// gap between the entry count and the directory is reserved padding.
	directoryOffset = 288
)

var specs = []spec{
	{flavour: HeroesLod, magic: [4]byte{'L', 'O', 'D', 0}, nameWidth: 16},
	{flavour: Mm6Lod, magic: [4]byte{'M', 'M', '6', 0}, nameWidth: 16},
	{flavour: Mm7Lod, magic: [4]byte{'M', 'M', '7', 0}, nameWidth: 16},
	{flavour: Mm8Lod, magic: [4]byte{'M', 'M', '8', 0}, nameWidth: 16},
	{flavour: Snd, magic: [4]byte{'S', 'N', 'D', 0}, nameWidth: 16},
	{flavour: Vid, magic: [4]byte{'V', 'I', 'D', 0}, nameWidth: 16},
	{flavour: Lwd, magic: [4]byte{'L', 'W', 'D', 0}, nameWidth: 40},
}

// detectSpec matches the first 4 bytes of an archive against the known
// flavour magics.
func detectSpec(magic [4]byte) (spec, bool) {
	for _, s := range specs {
		if s.magic == magic {
			return s, true
		}
	}
	return spec{}, false
}
