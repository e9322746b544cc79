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

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/legacymm/lodkit/lodcompress"
)

// AddEntry stages a new or replacement entry for the next Rebuild. It does
// not touch the backing source; staged entries are held in memory until
// Rebuild is called. Staging the same name twice replaces the earlier
// staged payload rather than erroring.
func (a *Archive) AddEntry(name string, data []byte, compress bool) error {
	if name == "" {
		return fmt.Errorf("lod: %w: empty name", ErrDuplicateName)
	}

	method := lodcompress.MethodStore
	if compress {
		method = lodcompress.MethodImplode
	}

	_, replace := a.Find(name)

	for i, p := range a.pending {
		if strings.EqualFold(p.name, name) {
			a.pending[i] = pendingAdd{name: name, data: data, method: method, replace: replace}
			return nil
		}
	}

	a.pending = append(a.pending, pendingAdd{name: name, data: data, method: method, replace: replace})
	return nil
}

// Rebuild serializes the archive's header, directory, and payload into a
// fresh byte slice reflecting every staged AddEntry call. Untouched
// original entries are copied with their packed bytes unchanged; staged
// entries are compressed (or stored) fresh. Original on-disk order is
// preserved for untouched entries, with staged new names appended and
// staged replacements rewritten in place.
func (a *Archive) Rebuild() ([]byte, error) {
	sp, ok := flavourSpec(a.Flavour)
	if !ok {
		return nil, fmt.Errorf("%w: flavour %s has no known layout", ErrUnknownFormat, a.Flavour)
	}

	type finalEntry struct {
		name         string
		payload      []byte
		unpackedSize uint32
		kind         uint32
		method       lodcompress.Method
	}

	staged := make(map[string]pendingAdd, len(a.pending))
	var newOrder []string
	for _, p := range a.pending {
		staged[strings.ToLower(p.name)] = p
		if !p.replace {
			newOrder = append(newOrder, p.name)
		}
	}

	var finals []finalEntry
	for _, e := range a.entries {
		key := strings.ToLower(e.Name)
		if p, ok := staged[key]; ok {
			finals = append(finals, finalEntry{name: p.name, payload: p.data, unpackedSize: uint32(len(p.data)), kind: e.Kind, method: p.method}) //nolint:gosec // archive payload sizes fit u32
			delete(staged, key)
			continue
		}
		payload, err := a.rawPayload(e)
		if err != nil {
			return nil, err
		}
		// The payload is already packed: MethodStore makes packEntry copy it
		// as-is, and the record keeps the original kind and sizes.
		finals = append(finals, finalEntry{name: e.Name, payload: payload, unpackedSize: e.UnpackedSize, kind: e.Kind, method: lodcompress.MethodStore})
	}
	for _, name := range newOrder {
		p := staged[strings.ToLower(name)]
		finals = append(finals, finalEntry{name: p.name, payload: p.data, unpackedSize: uint32(len(p.data)), kind: 0, method: p.method}) //nolint:gosec // archive payload sizes fit u32
	}

	recordWidth := sp.recordWidth()
	count := len(finals)
	payloadStart := directoryOffset + count*recordWidth

	var header [directoryOffset]byte
	copy(header[:4], sp.magic[:])
	binary.LittleEndian.PutUint32(header[8:12], a.Subtype)
	binary.LittleEndian.PutUint32(header[entryCountOffset:entryCountOffset+4], uint32(count)) //nolint:gosec // entry counts fit u32

	var directory bytes.Buffer
	var payload bytes.Buffer
	offset := payloadStart

	for _, fe := range finals {
		packed, kind, ok := packEntry(fe.method, fe.payload, fe.kind)
		if !ok {
			packed = fe.payload
			kind = fe.kind
		}

		record := make([]byte, recordWidth)
		copy(record, []byte(fe.name))
		binary.LittleEndian.PutUint32(record[sp.nameWidth:], uint32(offset))        //nolint:gosec // archive offsets fit u32
		binary.LittleEndian.PutUint32(record[sp.nameWidth+4:], fe.unpackedSize)
		binary.LittleEndian.PutUint32(record[sp.nameWidth+8:], kind)
		packedSize := uint32(len(packed)) //nolint:gosec // archive payload sizes fit u32
		if packedSize == fe.unpackedSize {
			packedSize = 0 // store marker
		}
		binary.LittleEndian.PutUint32(record[sp.nameWidth+12:], packedSize)
		directory.Write(record)

		payload.Write(packed)
		offset += len(packed)
	}

	out := make([]byte, 0, payloadStart+payload.Len())
	out = append(out, header[:]...)
	out = append(out, directory.Bytes()...)
	out = append(out, payload.Bytes()...)
	return out, nil
}

// rawPayload returns an untouched entry's packed on-disk bytes, unchanged.
func (a *Archive) rawPayload(e Entry) ([]byte, error) {
	size := e.PackedSize
	if size == 0 {
		size = e.UnpackedSize
	}
	buf := make([]byte, size)
	n, err := a.src.ReadAt(buf, int64(e.Offset))
	if err != nil && n != len(buf) {
		return nil, fmt.Errorf("lod: rebuilding %q: %w", e.Name, err)
	}
	return buf, nil
}

// packEntry compresses data with the given method, falling back to Store
// when the codec declines (no size win) or cannot compress.
func packEntry(method lodcompress.Method, data []byte, kind uint32) (packed []byte, newKind uint32, ok bool) {
	newKind = kind
	if method == lodcompress.MethodStore {
		return data, newKind, true
	}

	codec, err := lodcompress.Get(method)
	if err != nil {
		return data, newKind, false
	}
	compressor, isCompressor := codec.(lodcompress.Compressor)
	if !isCompressor {
		return data, newKind, false
	}

	out, compressed := compressor.Compress(data)
	if !compressed {
		return data, newKind, false
	}
	if method == lodcompress.MethodRawDeflate {
		newKind |= rawDeflateKindBit
	}
	return out, newKind, true
}

// flavourSpec exposes the package-private layout table to Rebuild.
func flavourSpec(f Flavour) (spec, bool) {
	for _, s := range specs {
		if s.flavour == f {
			return s, true
		}
	}
	return spec{}, false
}
