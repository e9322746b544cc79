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

package lod

import "github.com/legacymm/lodkit/lodcompress"

// FlagCompressed is set on Entry.Flags when the entry's payload is stored
// compressed on disk. It is derived at parse time, never read from the wire.
const FlagCompressed uint32 = 1 << 0

// Entry describes one directory record.
type Entry struct {
	Name         string
	Offset       uint32
	PackedSize   uint32 // 0 means "stored uncompressed at UnpackedSize bytes"
	UnpackedSize uint32
	// Kind is the wire "type" tag. Its per-game meaning is opaque to this
	// engine and is preserved verbatim on rebuild.
	Kind uint32
	// Flags is derived, not stored on disk: FlagCompressed when the entry
	// is compressed.
	Flags uint32
	// Method is the codec resolved for this entry (Store or Implode by
	// default; RawDeflate for archives re-saved by third-party tools that
	// set the documented deflate marker in Kind's top bit).
	Method lodcompress.Method
}

// Compressed reports whether the entry's payload is stored compressed.
func (e Entry) Compressed() bool { return e.Flags&FlagCompressed != 0 }

// rawDeflateKindBit marks an entry re-saved with a standard deflate stream
// instead of the bespoke implode codec (see SPEC_FULL.md §3 CompressionMethod).
const rawDeflateKindBit = uint32(1) << 31

func resolveMethod(kind uint32, packedSize, unpackedSize uint32) lodcompress.Method {
	switch {
	case packedSize == 0 || packedSize == unpackedSize:
		return lodcompress.MethodStore
	case kind&rawDeflateKindBit != 0:
		return lodcompress.MethodRawDeflate
	default:
		return lodcompress.MethodImplode
	}
}
